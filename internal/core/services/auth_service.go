package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/dto"
	"github.com/SscSPs/vending_machine_app/internal/platform/config"
	"github.com/SscSPs/vending_machine_app/internal/utils"
	"github.com/SscSPs/vending_machine_app/internal/utils/clock"
)

type authService struct {
	BaseService
	cfg   *config.Config
	clock clock.Clock
}

// NewAuthService creates the admin authentication service.
func NewAuthService(cfg *config.Config, c clock.Clock) portssvc.AuthSvc {
	if c == nil {
		c = clock.NewSystemClock(nil)
	}
	return &authService{cfg: cfg, clock: c}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.AdminPasswordHash == "" {
		s.LogWarn(ctx, "Admin login attempted but no password hash is configured")
		return nil, apperrors.ErrUnauthorized
	}

	userMatches := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) == 1
	passwordMatches := utils.CheckPasswordHash(req.Password, s.cfg.AdminPasswordHash)
	if !userMatches || !passwordMatches {
		s.LogWarn(ctx, "Admin login failed", slog.String("username", req.Username))
		return nil, apperrors.ErrUnauthorized
	}

	token, expiresAt, err := utils.GenerateJWT(s.cfg.AdminUsername, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.clock.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign admin token")
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "Admin logged in", slog.String("username", req.Username))
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
