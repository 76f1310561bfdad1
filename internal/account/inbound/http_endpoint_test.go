package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielmsk/accord/internal/account/usecase"
	"github.com/danielmsk/accord/internal/pkg/config"
	"github.com/danielmsk/accord/internal/pkg/goerror"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/router"
	"github.com/danielmsk/accord/internal/pkg/uid"
	"github.com/danielmsk/accord/internal/pkg/valueobject"
)

type fakeUsecase struct {
	createOut *usecase.CreateUserOutput
	createErr error

	authOut *usecase.AuthenticateOutput
	authErr error

	profileOut *usecase.ProfileOutput
	profileErr error

	lastCreateIn usecase.CreateUserInput
}

func (f *fakeUsecase) CreateUser(_ context.Context, in usecase.CreateUserInput) (*usecase.CreateUserOutput, error) {
	f.lastCreateIn = in

	return f.createOut, f.createErr
}

func (f *fakeUsecase) Authenticate(_ context.Context, _ usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error) {
	return f.authOut, f.authErr
}

func (f *fakeUsecase) Profile(_ context.Context, _ usecase.ProfileInput) (*usecase.ProfileOutput, error) {
	return f.profileOut, f.profileErr
}

func newTestRouter(t *testing.T, uc *fakeUsecase) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, uc)

	return r
}

func doPost(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}

	return envelope
}

func TestSignupEndpoint(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		uc := &fakeUsecase{createOut: &usecase.CreateUserOutput{
			ID:            "acc-1",
			Username:      "alice",
			FirstName:     valueobject.Some("Alice"),
			EnrollmentRef: "accounts/acc-1/enrollment.png",
			CreatedAt:     time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		}}
		r := newTestRouter(t, uc)

		// Act
		rec := doPost(t, r, "/api/v1/accounts/signup",
			`{"username":"alice","password":"s3cret-password","first_name":"Alice"}`)

		// Assert
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
		}

		envelope := decodeEnvelope(t, rec)
		var data SignupResponse
		if err := json.Unmarshal(envelope["data"], &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.ID != "acc-1" || data.Username != "alice" {
			t.Fatalf("unexpected data: %+v", data)
		}
		if data.EnrollmentRef != "accounts/acc-1/enrollment.png" {
			t.Fatalf("expected enrollment ref, got %q", data.EnrollmentRef)
		}
		if !strings.Contains(string(envelope["data"]), `"last_name":null`) {
			t.Fatalf("expected absent last_name serialized as null, got %s", envelope["data"])
		}

		if !uc.lastCreateIn.FirstNameSet || uc.lastCreateIn.FirstName != "Alice" {
			t.Fatalf("expected provided first_name passed through, got %+v", uc.lastCreateIn)
		}
		if uc.lastCreateIn.LastNameSet {
			t.Fatalf("expected omitted last_name to stay unset")
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {

		// Arrange
		r := newTestRouter(t, &fakeUsecase{})

		// Act
		rec := doPost(t, r, "/api/v1/accounts/signup", `{"username":`)

		// Assert
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {

		// Arrange
		uc := &fakeUsecase{createErr: goerror.NewBusiness("Username already registered", goerror.CodeConflict)}
		r := newTestRouter(t, uc)

		// Act
		rec := doPost(t, r, "/api/v1/accounts/signup",
			`{"username":"alice","password":"s3cret-password"}`)

		// Assert
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d (%s)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Username already registered") {
			t.Fatalf("expected conflict message, got %s", rec.Body.String())
		}
	})
}

func TestVerifyEndpoint(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		uc := &fakeUsecase{authOut: &usecase.AuthenticateOutput{ID: "acc-1", Username: "alice"}}
		r := newTestRouter(t, uc)

		// Act
		rec := doPost(t, r, "/api/v1/accounts/verify",
			`{"username":"alice","password":"s3cret-password","totp_code":"123456"}`)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Credentials verified") {
			t.Fatalf("expected verify message, got %s", rec.Body.String())
		}
	})

	t.Run("InvalidPassword", func(t *testing.T) {

		// Arrange
		uc := &fakeUsecase{authErr: goerror.NewBusiness("Invalid password", goerror.CodeUnauthorized)}
		r := newTestRouter(t, uc)

		// Act
		rec := doPost(t, r, "/api/v1/accounts/verify",
			`{"username":"alice","password":"wrong","totp_code":"123456"}`)

		// Assert
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d (%s)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Invalid password") {
			t.Fatalf("expected password message, got %s", rec.Body.String())
		}
	})

	t.Run("InvalidTOTPCode", func(t *testing.T) {

		// Arrange
		uc := &fakeUsecase{authErr: goerror.NewBusiness("Invalid TOTP code", goerror.CodeUnauthorized)}
		r := newTestRouter(t, uc)

		// Act
		rec := doPost(t, r, "/api/v1/accounts/verify",
			`{"username":"alice","password":"s3cret-password","totp_code":"000000"}`)

		// Assert
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d (%s)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Invalid TOTP code") {
			t.Fatalf("expected totp message, got %s", rec.Body.String())
		}
	})
}

func TestProfileEndpoint(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		uc := &fakeUsecase{profileOut: &usecase.ProfileOutput{
			ID:        "acc-1",
			Username:  "alice",
			FirstName: valueobject.Some("Alice"),
		}}
		r := newTestRouter(t, uc)

		// Act
		rec := doPost(t, r, "/api/v1/accounts/profile", `{"id":"acc-1"}`)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}

		envelope := decodeEnvelope(t, rec)
		var data ProfileResponse
		if err := json.Unmarshal(envelope["data"], &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.ID != "acc-1" || data.Username != "alice" {
			t.Fatalf("unexpected data: %+v", data)
		}
	})

	t.Run("NotFound", func(t *testing.T) {

		// Arrange
		r := newTestRouter(t, &fakeUsecase{})

		// Act
		rec := doPost(t, r, "/api/v1/accounts/profile", `{"id":"acc-unknown"}`)

		// Assert
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Account not found") {
			t.Fatalf("expected not found message, got %s", rec.Body.String())
		}
	})
}
