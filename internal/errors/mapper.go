// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

// Domain is stamped on every ErrorInfo detail.
const Domain = "skillswap"

// Map converts core/infra errors into gRPC status errors.
// Errors that already carry a status pass through untouched.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, ErrValidation):
		return withCategory(codes.InvalidArgument, err.Error(), CategoryFixInput)

	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return withCategory(codes.NotFound, err.Error(), CategoryNotFound)

	case errors.Is(err, ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return withCategory(codes.AlreadyExists, err.Error(), CategoryTryAgain)

	case errors.Is(err, ErrForbidden):
		return withCategory(codes.PermissionDenied, err.Error(), CategoryNotAllowed)

	case errors.Is(err, ErrInvalidState):
		return withCategory(codes.FailedPrecondition, err.Error(), CategoryInvalidState)

	case errors.Is(err, ErrUnauthenticated):
		return withCategory(codes.Unauthenticated, err.Error(), CategorySignIn)

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		return withCategory(codes.Internal, "internal error", CategoryInternal)
	}
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad request shapes.
func InvalidArgument(msg string) error {
	return withCategory(codes.InvalidArgument, msg, CategoryFixInput)
}

// CategoryFromStatus reads the category back from a status error, if present.
func CategoryFromStatus(err error) Category {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return CategoryInternal
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return Category(info.GetReason())
		}
	}
	return CategoryInternal
}

func withCategory(code codes.Code, msg string, cat Category) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(cat),
		Domain: Domain,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
