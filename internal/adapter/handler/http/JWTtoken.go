package http

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
)

type JWTTokenService struct {
	secretKey []byte
	logger    ports.LoggerPort
}

func NewJWTTokenService(secretKey string, logger ports.LoggerPort) *JWTTokenService {
	return &JWTTokenService{
		secretKey: []byte(secretKey),
		logger:    logger,
	}
}

// VerifyToken checks the bearer token locally: signature, expiry and the
// identity claims. Upstream stays the authority on revocation; this only
// filters obviously dead tokens before they cost a network call.
func (j *JWTTokenService) VerifyToken(token string) (*domain.TokenPayload, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	})
	if err != nil {
		j.logger.Warn("Failed to parse jwt", map[string]interface{}{
			"error":  err.Error(),
			"method": "VerifyToken",
		})
		return nil, err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		j.logger.Error("Failed claims from token", map[string]interface{}{
			"method": "VerifyToken",
		})
		return nil, errors.New("failed to verify")
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, errors.New("invalid sub claim")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, errors.New("invalid email claim")
	}

	pseudo, ok := claims["pseudo"].(string)
	if !ok {
		return nil, errors.New("invalid pseudo claim")
	}

	payload := &domain.TokenPayload{
		UserID: int(sub),
		Email:  email,
		Pseudo: pseudo,
	}

	return payload, nil
}
