package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/middleware"
	"accounts/internal/delivery/http/response"
	"accounts/internal/delivery/http/router"
	"accounts/internal/delivery/http/router/handler"
	"accounts/internal/infra/auth"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/infra/pubsub"
	"accounts/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t    *testing.T
	echo *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1KB"
	cfg.SecretKey = config.SecretKeyConfig{Hash: "hash-secret", JWT: "jwt-secret"}

	hasher, err := auth.NewBcryptHasher(cfg.SecretKey.Hash, bcrypt.MinCost)
	require.NoError(t, err)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	uc := impl.NewAccountService(impl.AccountServiceParams{
		AccountRepo:  memory.NewAccountRepository(),
		Hasher:       hasher,
		TokenService: tokenService,
		Publisher:    pubsub.NewNoopPublisher(logger),
		Logger:       logger,
	})

	e := newEcho(cfg, logger, router.RouterParams{
		AccountHandler:    handler.NewAccountHandler(uc, logger),
		SessionMiddleware: middleware.NewSessionMiddleware(tokenService, logger),
	})

	return &testServer{t: t, echo: e}
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(middleware.HeaderAccessToken, token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func (s *testServer) signUp(username, email, password string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/sign-up",
		`{"username":"`+username+`","email":"`+email+`","password":"`+password+`"}`, "")
}

func (s *testServer) signIn(email, password string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/sign-in", `{"email":"`+email+`","password":"`+password+`"}`, "")
}

func (s *testServer) token(email, password string) string {
	s.t.Helper()

	rec := s.signIn(email, password)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var body response.AccessToken
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(s.t, body.AccessToken)
	assert.Equal(s.t, int64(3600), body.ExpiresIn)

	return body.AccessToken
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_RequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_AccountLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.signUp("alice", "a@x.com", "pw1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "You have been Registered", rec.Body.String())

	token := s.token("a@x.com", "pw1")

	rec = s.do(http.MethodPut, "/edit", `{"email":"alice2@x.com"}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "User data has been successfully updated", rec.Body.String())

	rec = s.signIn("a@x.com", "pw1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "There is no user with that email, make sure it is the right email or sign up", rec.Body.String())

	s.token("alice2@x.com", "pw1")

	rec = s.do(http.MethodDelete, "/delete", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = s.signIn("alice2@x.com", "pw1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The token still verifies; the account is already gone.
	rec = s.do(http.MethodDelete, "/delete", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_SignUp_Errors(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.signUp("alice", "a@x.com", "pw1234").Code)

	t.Run("duplicate email", func(t *testing.T) {
		rec := s.signUp("alice2", "a@x.com", "pw1234")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "User already exists with that email or username", rec.Body.String())
	})

	t.Run("duplicate username", func(t *testing.T) {
		rec := s.signUp("alice", "other@x.com", "pw1234")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid fields", func(t *testing.T) {
		rec := s.signUp("a!", "not-an-email", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeMap(t, rec)
		assert.Contains(t, body, "username")
		assert.Contains(t, body, "email")
		assert.Contains(t, body, "password")
	})

	t.Run("unparsable body", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/sign-up", `{"username":`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeMap(t, rec), "body")
	})

	t.Run("body too large", func(t *testing.T) {
		rec := s.signUp("bob", "b@x.com", strings.Repeat("x", 2048))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestServer_SignIn_Errors(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.signUp("alice", "a@x.com", "pw1234").Code)

	rec := s.signIn("a@x.com", "wrong-password")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password is wrong", rec.Body.String())

	rec = s.signIn("nobody@x.com", "pw1234")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "There is no user with that email, make sure it is the right email or sign up", rec.Body.String())
}

func TestServer_AlreadySignedIn(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.signUp("alice", "a@x.com", "pw1234").Code)
	token := s.token("a@x.com", "pw1234")

	rec := s.do(http.MethodPost, "/sign-in", `{"email":"a@x.com","password":"pw1234"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You are already signed in", rec.Body.String())

	rec = s.do(http.MethodPost, "/sign-up", `{"username":"bob","email":"b@x.com","password":"pw1234"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You are already signed in", rec.Body.String())

	// An invalid token does not count as signed in.
	rec = s.do(http.MethodPost, "/sign-up", `{"username":"bob","email":"b@x.com","password":"pw1234"}`, "garbage")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_SessionRequired(t *testing.T) {
	s := newTestServer(t)

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPut, "/edit", `{"email":"x@x.com"}`},
		{http.MethodDelete, "/delete", ""},
		{http.MethodGet, "/users", ""},
	}

	for _, route := range routes {
		for _, token := range []string{"", "not-a-token"} {
			rec := s.do(route.method, route.path, route.body, token)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s token=%q", route.method, route.path, token)
			assert.Equal(t, "Your session has expired, please sign in again", rec.Body.String())
		}
	}
}

func TestServer_ListUsers(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.signUp("bob", "b@x.com", "pw1234").Code)
	require.Equal(t, http.StatusOK, s.signUp("alice", "a@x.com", "pw1234").Code)
	token := s.token("a@x.com", "pw1234")

	rec := s.do(http.MethodGet, "/users", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"username":"alice"},{"username":"bob"}]`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "email")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestServer_Edit(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.signUp("alice", "a@x.com", "pw1234").Code)
	require.Equal(t, http.StatusOK, s.signUp("bob", "b@x.com", "pw1234").Code)
	token := s.token("a@x.com", "pw1234")

	t.Run("password change", func(t *testing.T) {
		rec := s.do(http.MethodPut, "/edit", `{"password":"newpass1"}`, token)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, http.StatusBadRequest, s.signIn("a@x.com", "pw1234").Code)
		s.token("a@x.com", "newpass1")
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		rec := s.do(http.MethodPut, "/edit", `{"id":"00000000-0000-0000-0000-000000000000","username":"alice2"}`, token)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(http.MethodGet, "/users", "", token)
		assert.JSONEq(t, `[{"username":"alice2"},{"username":"bob"}]`, rec.Body.String())
	})

	t.Run("username taken", func(t *testing.T) {
		rec := s.do(http.MethodPut, "/edit", `{"username":"bob"}`, token)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := s.do(http.MethodPut, "/edit", `{"email":"nope"}`, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeMap(t, rec), "email")
	})
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
