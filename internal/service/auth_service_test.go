package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"invoxd/internal/config"
	"invoxd/internal/domain"
	"invoxd/internal/service"
)

func testAuthConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AuthConfig{
		JWTSecret:         "test-secret",
		AdminPasswordHash: string(hash),
		TokenExpiry:       time.Hour,
		Issuer:            "invoxd-test",
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	token, err := svc.Login(service.LoginInput{Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "invoxd-test", claims.Issuer)
}

func TestAuthService_WrongPassword(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	_, err := svc.Login(service.LoginInput{Password: "battery staple"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_DisabledWithoutSecret(t *testing.T) {
	cfg := testAuthConfig(t)
	cfg.JWTSecret = ""
	svc := service.NewAuthService(cfg)

	assert.False(t, svc.Enabled())
	_, err := svc.Login(service.LoginInput{Password: "correct horse"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RejectsGarbageToken(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	_, err := svc.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RejectsTokenFromOtherSecret(t *testing.T) {
	cfgA := testAuthConfig(t)
	cfgB := testAuthConfig(t)
	cfgB.JWTSecret = "different-secret"

	token, err := service.NewAuthService(cfgA).Login(service.LoginInput{Password: "correct horse"})
	require.NoError(t, err)

	_, err = service.NewAuthService(cfgB).ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
