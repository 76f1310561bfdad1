package inbound

import (
	"context"

	"github.com/danielmsk/accord/internal/account/usecase"
	"github.com/danielmsk/accord/internal/pkg/router"
)

type uc interface {
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*usecase.CreateUserOutput, error)
	Authenticate(ctx context.Context, in usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error)
	Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/accounts/signup", end.Signup)
	r.POST("/api/v1/accounts/verify", end.Verify)
	r.POST("/api/v1/accounts/profile", end.Profile)
}
