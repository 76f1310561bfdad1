package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/danielmsk/accord/internal/pkg/cache"
	"github.com/danielmsk/accord/internal/pkg/goerror"
	"github.com/danielmsk/accord/internal/pkg/valueobject"
)

type ProfileInput struct {
	ID string `validate:"required"`
}

type ProfileOutput struct {
	ID        string
	Username  string
	FirstName valueobject.Optional[string]
	LastName  valueobject.Optional[string]
}

type cachedProfile struct {
	ID        string                       `json:"id"`
	Username  string                       `json:"username"`
	FirstName valueobject.Optional[string] `json:"first_name"`
	LastName  valueobject.Optional[string] `json:"last_name"`
}

// Profile returns the public projection of an account. A missing account is
// not an error at this layer; the return is (nil, nil).
func (s *Usecase) Profile(ctx context.Context, in ProfileInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	in.ID = strings.TrimSpace(in.ID)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if out := s.profileFromCache(ctx, in.ID); out != nil {
		return out, nil
	}

	account, err := s.repoStore.GetAccountByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &ProfileOutput{
		ID:        account.ID,
		Username:  account.Username,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
	s.profileToCache(ctx, out)

	return out, nil
}

func (s *Usecase) profileFromCache(ctx context.Context, id string) *ProfileOutput {
	raw, err := s.cache.Get(ctx, profileCacheKey(id))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			slog.WarnContext(ctx, "profile cache read failed", "account_id", id, "error", err)
		}
		return nil
	}

	var cached cachedProfile
	if err := json.Unmarshal(raw, &cached); err != nil {
		slog.WarnContext(ctx, "profile cache entry is malformed", "account_id", id, "error", err)
		return nil
	}

	return &ProfileOutput{
		ID:        cached.ID,
		Username:  cached.Username,
		FirstName: cached.FirstName,
		LastName:  cached.LastName,
	}
}

// profileToCache is best effort; accounts never change after signup, so a
// stale-entry hazard does not exist.
func (s *Usecase) profileToCache(ctx context.Context, out *ProfileOutput) {
	raw, err := json.Marshal(cachedProfile{
		ID:        out.ID,
		Username:  out.Username,
		FirstName: out.FirstName,
		LastName:  out.LastName,
	})
	if err != nil {
		return
	}

	ttl := s.cfg.GetMinute("modules.account.profile_cache_ttl_minutes")
	if err := s.cache.Set(ctx, profileCacheKey(out.ID), raw, ttl); err != nil {
		slog.WarnContext(ctx, "profile cache write failed", "account_id", out.ID, "error", err)
	}
}

func profileCacheKey(id string) string {
	return "account:profile:" + id
}
