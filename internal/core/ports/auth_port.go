package ports

import "github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"

type TokenService interface {
	VerifyToken(token string) (*domain.TokenPayload, error)
}
