package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiv1 "movieBrowser/api/v1"
	"movieBrowser/internal/auth"
	"movieBrowser/internal/users"
	"movieBrowser/repository"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"duplicate", fmt.Errorf("create user: %w", repository.ErrDuplicateUsername), codes.AlreadyExists},
		{"protected", repository.ErrProtectedRecord, codes.FailedPrecondition},
		{"self delete", users.ErrSelfDelete, codes.FailedPrecondition},
		{"invalid role", repository.ErrInvalidRole, codes.InvalidArgument},
		{"invalid input", repository.ErrInvalidInput, codes.InvalidArgument},
		{"missing credentials", auth.ErrMissingCredentials, codes.InvalidArgument},
		{"malformed", fmt.Errorf("%w: missing \"id\"", apiv1.ErrMalformed), codes.InvalidArgument},
		{"invalid credentials", auth.ErrInvalidCredentials, codes.Unauthenticated},
		{"storage", fmt.Errorf("list users: %w: %w", repository.ErrStorageUnavailable, errors.New("disk I/O error")), codes.Unavailable},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"status passes through", status.Error(codes.PermissionDenied, "no"), codes.PermissionDenied},
		{"unknown", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(toStatus("op", tt.err)))
		})
	}
	assert.NoError(t, toStatus("op", nil))
}
