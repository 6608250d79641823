package jwt

import (
	"backoffice/config"
	"backoffice/shared/timezone"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

// Claims bind a console session to the operator who opened it.
type Claims struct {
	Actor     string `json:"actor"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWT signs and verifies session cookies.
type JWT interface {
	IssueSession(actor, sessionID string) (token string, expiresAt time.Time, err error)
	ValidateSession(tokenString string) (*Claims, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

func (s *Service) IssueSession(actor, sessionID string) (string, time.Time, error) {
	if s.config.JWT.SessionSecret == "" {
		return "", time.Time{}, errors.New("session secret is not configured")
	}

	now := timezone.Now()
	expiresAt := now.Add(time.Duration(s.config.JWT.SessionExpireMin) * time.Minute)

	claims := Claims{
		Actor:     actor,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.App.Name,
			Subject:   actor,
			ID:        sessionID,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.SessionSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

func (s *Service) ValidateSession(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.JWT.SessionSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.SessionID == "" || claims.Actor == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

const ephemeralSecretLength = 64

// EnsureSecret generates a per-process signing secret when none is configured.
// Cookies signed with it stop validating once the process exits.
func EnsureSecret(cfg *config.Config) (generated bool, err error) {
	if cfg.JWT.SessionSecret != "" {
		return false, nil
	}

	secret, err := gonanoid.New(ephemeralSecretLength)
	if err != nil {
		return false, fmt.Errorf("failed to generate session secret: %w", err)
	}

	cfg.JWT.SessionSecret = secret

	return true, nil
}
