package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/danielmsk/accord/internal/pkg/goerror"
)

func TestProfile(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		uc, deps := newTestUsecase(t)
		created, _ := seedAccount(t, uc, deps, "alice", "s3cret-password")

		// Act
		out, err := uc.Profile(context.Background(), ProfileInput{ID: created.ID})

		// Assert
		if err != nil {
			t.Fatalf("profile: %v", err)
		}
		if out == nil {
			t.Fatalf("expected a profile")
		}
		if out.ID != created.ID || out.Username != "alice" {
			t.Fatalf("unexpected profile: %+v", out)
		}
	})

	t.Run("MissingAccountIsNilNotError", func(t *testing.T) {

		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		out, err := uc.Profile(context.Background(), ProfileInput{ID: "acc-unknown"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error for a missing account, got %v", err)
		}
		if out != nil {
			t.Fatalf("expected nil profile, got %+v", out)
		}
	})

	t.Run("SecondReadServedFromCache", func(t *testing.T) {

		// Arrange
		uc, deps := newTestUsecase(t)
		created, _ := seedAccount(t, uc, deps, "alice", "s3cret-password")
		if _, err := uc.Profile(context.Background(), ProfileInput{ID: created.ID}); err != nil {
			t.Fatalf("first read: %v", err)
		}
		deps.store.getByIDErr = errors.New("connection refused")

		// Act
		out, err := uc.Profile(context.Background(), ProfileInput{ID: created.ID})

		// Assert
		if err != nil {
			t.Fatalf("expected cached read to succeed, got %v", err)
		}
		if out.Username != "alice" {
			t.Fatalf("unexpected cached profile: %+v", out)
		}
	})

	t.Run("MalformedCacheEntryFallsBackToStore", func(t *testing.T) {

		// Arrange
		uc, deps := newTestUsecase(t)
		created, _ := seedAccount(t, uc, deps, "alice", "s3cret-password")
		deps.cache.entries[profileCacheKey(created.ID)] = []byte("{not json")

		// Act
		out, err := uc.Profile(context.Background(), ProfileInput{ID: created.ID})

		// Assert
		if err != nil {
			t.Fatalf("profile: %v", err)
		}
		if out.Username != "alice" {
			t.Fatalf("unexpected profile: %+v", out)
		}
	})

	t.Run("CacheFailureIsBestEffort", func(t *testing.T) {

		// Arrange
		uc, deps := newTestUsecase(t)
		created, _ := seedAccount(t, uc, deps, "alice", "s3cret-password")
		deps.cache.getErr = errors.New("connection refused")
		deps.cache.setErr = errors.New("connection refused")

		// Act
		out, err := uc.Profile(context.Background(), ProfileInput{ID: created.ID})

		// Assert
		if err != nil {
			t.Fatalf("expected store read despite cache failure, got %v", err)
		}
		if out.Username != "alice" {
			t.Fatalf("unexpected profile: %+v", out)
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {

		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.Profile(context.Background(), ProfileInput{})

		// Assert
		gerr := asError(t, err)
		if gerr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %s", gerr.Code())
		}
	})

	t.Run("StoreUnavailable", func(t *testing.T) {

		// Arrange
		uc, deps := newTestUsecase(t)
		deps.store.getByIDErr = errors.New("connection refused")

		// Act
		_, err := uc.Profile(context.Background(), ProfileInput{ID: "acc-1"})

		// Assert
		gerr := asError(t, err)
		if gerr.Type() != goerror.TypeServer {
			t.Fatalf("expected server error, got %s", gerr.Type())
		}
	})
}
