package middleware

import (
	"log/slog"

	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderAccessToken carries the session token.
const HeaderAccessToken = "accesstoken"

// SessionMiddleware guards routes by the session token in the accesstoken header.
type SessionMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// RequireSession rejects requests without a valid token and records the
// token's account for the handler.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(HeaderAccessToken)
		if token == "" {
			return domainerrors.ErrSessionInvalid.WrapMessage("missing access token")
		}

		claims, err := m.tokenSvc.VerifyToken(token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Session rejected", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrSessionInvalid, err.Error())
		}

		deliverycontext.SetAccountID(c, claims.AccountID)

		return next(c)
	}
}

// RejectSignedIn stops requests that already carry a valid token. An invalid
// or expired token is ignored so the caller can sign in again.
func (m *SessionMiddleware) RejectSignedIn(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(HeaderAccessToken)
		if token == "" {
			return next(c)
		}

		if _, err := m.tokenSvc.VerifyToken(token); err == nil {
			return domainerrors.ErrAlreadySignedIn.WrapMessage("valid session presented")
		}

		return next(c)
	}
}
