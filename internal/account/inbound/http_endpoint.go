package inbound

import (
	"github.com/danielmsk/accord/internal/account/usecase"
	"github.com/danielmsk/accord/internal/pkg/goerror"
	"github.com/danielmsk/accord/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the account signup and verification workflows.
type HTTPEndpoint struct {
	uc uc
}

// Signup creates an account with a password and an enrolled TOTP factor.
// @Summary Create account
// @Description Registers a username/password account, enrolls a TOTP second factor, and returns the enrollment artifact reference.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} router.successResponse{data=SignupResponse} "Created account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Username already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/accounts/signup [post]
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	in := usecase.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
	}
	if req.FirstName != nil {
		in.FirstName = *req.FirstName
		in.FirstNameSet = true
	}
	if req.LastName != nil {
		in.LastName = *req.LastName
		in.LastNameSet = true
	}

	resp, err := h.uc.CreateUser(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return SignupResponse{
		ID:            resp.ID,
		Username:      resp.Username,
		FirstName:     resp.FirstName,
		LastName:      resp.LastName,
		EnrollmentRef: resp.EnrollmentRef,
		CreatedAt:     resp.CreatedAt,
	}, nil
}

// Verify checks a password plus TOTP code pair.
// @Summary Verify account credentials
// @Description Validates the password and the current TOTP code for an account.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid password or TOTP code"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/accounts/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Authenticate(r.Context(), usecase.AuthenticateInput{
		Username: req.Username,
		Password: req.Password,
		TOTPCode: req.TOTPCode,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		ID:       resp.ID,
		Username: resp.Username,
	}, nil
}

// Profile returns the public projection of an account.
// @Summary Get account profile
// @Description Returns the username and optional names for an account ID.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body ProfileRequest true "Profile payload"
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Account profile"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/accounts/profile [post]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	var req ProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Profile(r.Context(), usecase.ProfileInput{ID: req.ID})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}

	return ProfileResponse{
		ID:        resp.ID,
		Username:  resp.Username,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
	}, nil
}
