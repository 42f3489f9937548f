package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
)

// SessionTTL matches the lifetime of the auth_token cookie.
const SessionTTL = 7 * 24 * time.Hour

// LandingRoute is where invalid sessions are sent back to.
const LandingRoute = "/"

// HomeRoute is the authenticated landing page. Login answers with a hard
// navigation target instead of a client-side transition so the browser
// refetches all session-dependent state.
const HomeRoute = "/leagues"

type SessionService struct {
	api      ports.PelotonAPI
	tokens   ports.TokenService
	cache    ports.CachePort
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewSessionService(
	api ports.PelotonAPI,
	tokens ports.TokenService,
	cache ports.CachePort,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *SessionService {
	return &SessionService{
		api:      api,
		tokens:   tokens,
		cache:    cache,
		logger:   logger,
		validate: validate,
	}
}

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type Registration struct {
	Pseudo   string `validate:"required,min=3,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func sessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

// Login exchanges credentials for a bearer token upstream and mirrors the
// token server-side. The cookie write (the second persistence location)
// belongs to the HTTP layer.
func (s *SessionService) Login(ctx context.Context, creds Credentials) (string, *domain.User, error) {
	if err := s.validate.Struct(creds); err != nil {
		return "", nil, &domain.ValidationError{Message: "invalid email or password format"}
	}

	token, err := s.api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		s.logger.Warn("Login rejected by peloton API", map[string]interface{}{
			"email": creds.Email,
			"error": err.Error(),
		})
		return "", nil, err
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		return "", nil, err
	}

	if err := s.cache.Set(sessionKey(user.ID), []byte(token), SessionTTL); err != nil {
		s.logger.Warn("Failed to mirror session token", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}

	s.logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"pseudo":  user.Pseudo,
	})
	return token, user, nil
}

func (s *SessionService) Register(ctx context.Context, reg Registration) error {
	if err := s.validate.Struct(reg); err != nil {
		return &domain.ValidationError{Message: "invalid registration data"}
	}
	// Account creation does not log the user in; the caller must then
	// go through Login.
	return s.api.Register(ctx, reg.Pseudo, reg.Email, reg.Password)
}

// Validate checks a persisted token at session startup: first the local
// JWT claims (an expired token never reaches upstream), then the who-am-I
// endpoint. On failure the server-side mirror is purged and the caller is
// expected to clear the cookie and redirect to the landing route.
func (s *SessionService) Validate(ctx context.Context, token string) (*domain.User, error) {
	payload, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.purge(payload.UserID)
		}
		return nil, err
	}
	return user, nil
}

// Logout purges the server-side mirror. Clearing the cookie is the HTTP
// layer's half of the teardown.
func (s *SessionService) Logout(ctx context.Context, token string) {
	payload, err := s.tokens.VerifyToken(token)
	if err != nil {
		return
	}
	s.purge(payload.UserID)
	s.logger.Info("User logged out", map[string]interface{}{
		"user_id": payload.UserID,
	})
}

func (s *SessionService) purge(userID int) {
	if err := s.cache.Delete(sessionKey(userID)); err != nil {
		s.logger.Warn("Failed to purge session mirror", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}
