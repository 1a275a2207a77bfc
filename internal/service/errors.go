package service

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/classroom_bot/internal/api"
)

var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("action is not allowed for this role")
	ErrNotEnrolled        = errors.New("not enrolled in class")
	ErrCancelWindowClosed = errors.New("cancellation window is closed")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNotFound           = errors.New("not found")
)

// backendError помечает отказ токена как ErrSessionExpired, остальное оборачивает как есть
func backendError(op string, err error) error {
	if api.IsUnauthorized(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrSessionExpired, err)
	}
	if api.StatusCode(err) == 0 {
		return fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
