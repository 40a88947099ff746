package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiv1 "movieBrowser/api/v1"
	"movieBrowser/internal/auth"
	"movieBrowser/internal/users"
	"movieBrowser/repository"
)

// toStatus maps domain errors to gRPC status codes. Errors that already carry
// a status pass through unchanged.
func toStatus(op string, err error) error {
	if err == nil {
		return nil
	}
	if s, ok := status.FromError(err); ok {
		return s.Err()
	}
	code := codes.Internal
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		code = codes.AlreadyExists
	case errors.Is(err, repository.ErrProtectedRecord), errors.Is(err, users.ErrSelfDelete):
		code = codes.FailedPrecondition
	case errors.Is(err, repository.ErrInvalidRole),
		errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, apiv1.ErrMalformed):
		code = codes.InvalidArgument
	case errors.Is(err, auth.ErrInvalidCredentials):
		code = codes.Unauthenticated
	case errors.Is(err, repository.ErrStorageUnavailable):
		code = codes.Unavailable
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	}
	return status.Errorf(code, "%s: %v", op, err)
}
