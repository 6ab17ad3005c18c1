package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	mockSvc "accounts/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionContext(token string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(HeaderAccessToken, token)
	}

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func newTestSessionMiddleware(t *testing.T) (*SessionMiddleware, *mockSvc.MockTokenService) {
	tokenSvc := mockSvc.NewMockTokenService(t)

	return NewSessionMiddleware(tokenSvc, slog.New(slog.NewTextHandler(io.Discard, nil))), tokenSvc
}

func TestSessionMiddleware_RequireSession(t *testing.T) {
	t.Run("valid token sets the account", func(t *testing.T) {
		m, tokenSvc := newTestSessionMiddleware(t)
		accountID := uuid.New()
		tokenSvc.EXPECT().VerifyToken("good").Return(&service.Claims{AccountID: accountID}, nil)

		c := newSessionContext("good")
		called := false
		err := m.RequireSession(func(c echo.Context) error {
			called = true
			got, ok := deliverycontext.GetAccountID(c)
			assert.True(t, ok)
			assert.Equal(t, accountID, got)

			return nil
		})(c)

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("missing token", func(t *testing.T) {
		m, _ := newTestSessionMiddleware(t)

		err := m.RequireSession(func(echo.Context) error {
			t.Fatal("handler must not run")

			return nil
		})(newSessionContext(""))

		assert.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
	})

	for _, verifyErr := range []error{service.ErrTokenExpired, service.ErrTokenInvalidSignature} {
		t.Run(verifyErr.Error(), func(t *testing.T) {
			m, tokenSvc := newTestSessionMiddleware(t)
			tokenSvc.EXPECT().VerifyToken("bad").Return(nil, verifyErr)

			err := m.RequireSession(func(echo.Context) error {
				t.Fatal("handler must not run")

				return nil
			})(newSessionContext("bad"))

			assert.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
		})
	}
}

func TestSessionMiddleware_RejectSignedIn(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("no token passes", func(t *testing.T) {
		m, _ := newTestSessionMiddleware(t)
		assert.NoError(t, m.RejectSignedIn(next)(newSessionContext("")))
	})

	t.Run("valid token is rejected", func(t *testing.T) {
		m, tokenSvc := newTestSessionMiddleware(t)
		tokenSvc.EXPECT().VerifyToken("good").Return(&service.Claims{AccountID: uuid.New()}, nil)

		err := m.RejectSignedIn(next)(newSessionContext("good"))
		assert.ErrorIs(t, err, domainerrors.ErrAlreadySignedIn)
	})

	t.Run("expired token passes", func(t *testing.T) {
		m, tokenSvc := newTestSessionMiddleware(t)
		tokenSvc.EXPECT().VerifyToken("old").Return(nil, service.ErrTokenExpired)

		assert.NoError(t, m.RejectSignedIn(next)(newSessionContext("old")))
	})
}
