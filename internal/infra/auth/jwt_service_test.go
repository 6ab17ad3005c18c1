package auth

import (
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret_key_very_long_for_testing"

func TestJWTService_RoundTrip(t *testing.T) {
	cfg := &config.Config{SecretKey: config.SecretKeyConfig{JWT: testJWTSecret}}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	accountID := uuid.New()
	token, err := jwtService.IssueToken(accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, accountID.String(), claims.Subject)
	assert.Equal(t, time.Hour, jwtService.TokenTTL())
}

func TestJWTService_ExpiryIsIssuedAtPlusTTL(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := newJWTService(testJWTSecret, 3600*time.Second, func() time.Time { return issued })

	token, err := svc.IssueToken(uuid.New())
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.True(t, issued.Equal(claims.IssuedAt.Time))
	assert.True(t, issued.Add(time.Hour).Equal(claims.ExpiresAt.Time))
}

func TestJWTService_Expired(t *testing.T) {
	svc := newJWTService(testJWTSecret, -time.Second, time.Now)

	token, err := svc.IssueToken(uuid.New())
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
	assert.False(t, errors.Is(err, service.ErrTokenInvalidSignature))
}

func TestJWTService_ExpiresWhenClockPassesExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	svc := newJWTService(testJWTSecret, time.Minute, clock)

	token, err := svc.IssueToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = svc.VerifyToken(token)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTService_WrongKey(t *testing.T) {
	issuer := newJWTService(testJWTSecret, time.Hour, time.Now)
	verifier := newJWTService("another_secret", time.Hour, time.Now)

	token, err := issuer.IssueToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.True(t, errors.Is(err, service.ErrTokenInvalidSignature))
}

func TestJWTService_TamperAnyCharacter(t *testing.T) {
	svc := newJWTService(testJWTSecret, time.Hour, time.Now)

	token, err := svc.IssueToken(uuid.New())
	require.NoError(t, err)

	for i := range len(token) {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		_, err := svc.VerifyToken(tampered)
		assert.Truef(t, errors.Is(err, service.ErrTokenInvalidSignature), "position %d: %v", i, err)
	}
}

func TestJWTService_TamperedExpiredTokenIsInvalidSignature(t *testing.T) {
	svc := newJWTService(testJWTSecret, -time.Second, time.Now)

	token, err := svc.IssueToken(uuid.New())
	require.NoError(t, err)

	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}

	_, err = svc.VerifyToken(token[:len(token)-1] + string(replacement))
	assert.True(t, errors.Is(err, service.ErrTokenInvalidSignature))
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newJWTService(testJWTSecret, time.Hour, time.Now)

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c"} {
		claims, err := svc.VerifyToken(token)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, service.ErrTokenInvalidSignature), "token %q", token)
	}
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newJWTService(testJWTSecret, time.Hour, time.Now)

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyToken(unsigned)
	assert.True(t, errors.Is(err, service.ErrTokenInvalidSignature))

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.VerifyToken(hs512)
	assert.True(t, errors.Is(err, service.ErrTokenInvalidSignature))
}

func TestJWTService_RejectsNonAccountSubject(t *testing.T) {
	svc := newJWTService(testJWTSecret, time.Hour, time.Now)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.True(t, errors.Is(err, service.ErrTokenInvalidSignature))
}

func TestJWTService_RequiresExpiry(t *testing.T) {
	svc := newJWTService(testJWTSecret, time.Hour, time.Now)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: uuid.NewString()}).
		SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.True(t, errors.Is(err, service.ErrTokenInvalidSignature))
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_UsesConfiguredTTL(t *testing.T) {
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{JWT: testJWTSecret},
		Auth:      &config.AuthConfig{TokenTTL: 15 * time.Minute},
	}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, jwtService.TokenTTL())
}
