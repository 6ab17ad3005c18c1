// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"time"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/response"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	msgRegistered = "You have been Registered"
	msgUpdated    = "User data has been successfully updated"
)

// SignUpRequest is the body of POST /sign-up.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// SignInRequest is the body of POST /sign-in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EditRequest is the body of PUT /edit. Only these fields can be changed;
// other keys in the body are ignored.
type EditRequest struct {
	Username *string `json:"username" validate:"omitempty,alphanum,min=3,max=30"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,max=72"`
}

func (r *EditRequest) changes() entity.AccountChanges {
	return entity.AccountChanges{
		Username: nonEmpty(r.Username),
		Email:    nonEmpty(r.Email),
		Password: nonEmpty(r.Password),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}

	return s
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// SignUp handles account registration.
func (h *AccountHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.uc.Register(c.Request().Context(), usecase.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, msgRegistered)
}

// SignIn exchanges credentials for a session token.
func (h *AccountHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Authenticate(c.Request().Context(), usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, response.AccessToken{
		AccessToken: output.AccessToken,
		ExpiresIn:   int64(output.ExpiresIn / time.Second),
	})
}

// Edit updates the session owner's account.
func (h *AccountHandler) Edit(c echo.Context) error {
	accountID, ok := deliverycontext.GetAccountID(c)
	if !ok {
		return domainerrors.ErrSessionInvalid
	}

	var req EditRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.uc.Edit(c.Request().Context(), accountID, req.changes()); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, msgUpdated)
}

// Delete removes the session owner's account.
func (h *AccountHandler) Delete(c echo.Context) error {
	accountID, ok := deliverycontext.GetAccountID(c)
	if !ok {
		return domainerrors.ErrSessionInvalid
	}

	if err := h.uc.Delete(c.Request().Context(), accountID); err != nil {
		return errors.WithStack(err)
	}

	return response.Empty(c)
}

// ListUsers returns the username of every account.
func (h *AccountHandler) ListUsers(c echo.Context) error {
	usernames, err := h.uc.ListUsernames(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, response.Usernames(usernames))
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.NewValidationError(map[string]string{
			"body": "request body must be a valid JSON object",
		})
	}

	return c.Validate(req)
}
