package pelotonapi

import (
	"fmt"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
)

func statusError(status int, message, path string) error {
	switch {
	case status == 401 || status == 403:
		return domain.ErrUnauthorized
	case status == 404:
		return domain.ErrNotFound
	case status == 400 || status == 409 || status == 422:
		return &domain.ValidationError{Message: message}
	default:
		return fmt.Errorf("peloton api: %s returned status %d", path, status)
	}
}
