package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/SscSPs/vending_machine_app/internal/core/services"
	"github.com/SscSPs/vending_machine_app/internal/dto"
	"github.com/SscSPs/vending_machine_app/internal/platform/config"
	"github.com/SscSPs/vending_machine_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "vending-test",
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	}
}

func TestLogin_Success(t *testing.T) {
	cfg := newAuthConfig(t)
	svc := services.NewAuthService(cfg, nil)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(res.AccessToken, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "vending-test", claims.Issuer)
}

func TestLogin_WrongCredentials(t *testing.T) {
	cfg := newAuthConfig(t)
	svc := services.NewAuthService(cfg, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "root", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_NoPasswordConfigured(t *testing.T) {
	cfg := newAuthConfig(t)
	cfg.AdminPasswordHash = ""
	svc := services.NewAuthService(cfg, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
