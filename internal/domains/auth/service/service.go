package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"backoffice/config"
	"backoffice/infras/otel"
	"backoffice/internal/domains/auth/model/dto"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"backoffice/shared/password"
	"backoffice/shared/validator"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

const invalidCredentials = "Invalid username or password"

type Auth interface {
	// Login checks the operator credentials and returns the actor to attribute the session to.
	Login(ctx context.Context, req dto.LoginRequest) (actor string, err error)
}

type serviceImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (actor string, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !s.cfg.LoginRequired() {
		return "", failure.BadRequestFromString("Login is not enabled on this console")
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return "", err //nolint:wrapcheck
	}

	admin := s.cfg.App.Admin
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(admin.Username)) == 1

	// The hash is checked even for an unknown username so both failures take as long.
	verifyErr := password.Verify(req.Password, admin.PasswordHash)

	if verifyErr != nil && !errors.Is(verifyErr, password.ErrInvalidPassword) {
		log.Error().Err(verifyErr).Msg("failed to verify operator password")

		return "", fmt.Errorf("failed to verify password: %w", verifyErr)
	}

	if !usernameOK || verifyErr != nil {
		log.Warn().Str("username", req.Username).Msg("rejected console login")

		return "", failure.Unauthorized(invalidCredentials)
	}

	scope.AddEvent("operator signed in")

	return admin.Username, nil
}
