package errors

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// MapStoreError maps session store errors to AppError instances.
// It handles:
// - redis.Nil → NotFound
// - Context timeouts/cancellations → Timeout/Canceled
// - Anything else → Internal
//
// Errors that already carry an AppError are returned unchanged.
func MapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, redis.Nil) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Session not found",
			Cause:   err,
		}
	}

	return &AppError{
		Code:    ErrCodeInternal,
		Message: "A session storage error occurred. Please try again.",
		Cause:   err,
	}
}
