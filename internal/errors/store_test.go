package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestMapStoreError_NilError(t *testing.T) {
	if err := MapStoreError(nil); err != nil {
		t.Errorf("MapStoreError(nil) = %v, want nil", err)
	}
}

func TestMapStoreError_ContextErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapStoreError(tt.err)
			if GetCode(got) != tt.want {
				t.Errorf("code = %v, want %v", GetCode(got), tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("mapped error should wrap the original")
			}
		})
	}
}

func TestMapStoreError_RedisNil(t *testing.T) {
	got := MapStoreError(redis.Nil)
	if !IsNotFound(got) {
		t.Errorf("MapStoreError(redis.Nil) = %v, want NotFound", got)
	}
}

func TestMapStoreError_KeepsAppErrors(t *testing.T) {
	orig := NotFound("session not found")
	if got := MapStoreError(orig); got != orig {
		t.Errorf("MapStoreError should return AppError unchanged, got %v", got)
	}
}

func TestMapStoreError_Unknown(t *testing.T) {
	cause := errors.New("connection reset")
	got := MapStoreError(cause)
	if GetCode(got) != ErrCodeInternal || !errors.Is(got, cause) {
		t.Errorf("MapStoreError(unknown) = %v, want Internal wrapping cause", got)
	}
}
