package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	svcErr "github.com/oggyb/skillswap/internal/errors"
)

func TestMap(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code codes.Code
		cat  svcErr.Category
	}{
		{"validation", svcErr.Validation("unknown skill %q", "Juggling"), codes.InvalidArgument, svcErr.CategoryFixInput},
		{"not found", svcErr.NotFound("profile %s", "u1"), codes.NotFound, svcErr.CategoryNotFound},
		{"gorm not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), codes.NotFound, svcErr.CategoryNotFound},
		{"conflict", svcErr.Conflict("already requested"), codes.AlreadyExists, svcErr.CategoryTryAgain},
		{"duplicate key", gorm.ErrDuplicatedKey, codes.AlreadyExists, svcErr.CategoryTryAgain},
		{"forbidden", svcErr.Forbidden("requester cannot accept"), codes.PermissionDenied, svcErr.CategoryNotAllowed},
		{"invalid state", svcErr.InvalidState("not pending"), codes.FailedPrecondition, svcErr.CategoryInvalidState},
		{"unauthenticated", svcErr.Unauthenticated("missing token"), codes.Unauthenticated, svcErr.CategorySignIn},
		{"internal", errors.New("boom"), codes.Internal, svcErr.CategoryInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := svcErr.Map(tc.err)
			assert.Equal(t, tc.code, status.Code(mapped))
			assert.Equal(t, tc.cat, svcErr.CategoryFromStatus(mapped))
		})
	}
}

func TestMap_ContextErrors(t *testing.T) {
	assert.Equal(t, codes.DeadlineExceeded, status.Code(svcErr.Map(context.DeadlineExceeded)))
	assert.Equal(t, codes.Canceled, status.Code(svcErr.Map(context.Canceled)))
	assert.Nil(t, svcErr.Map(nil))
}

func TestMap_PassesStatusThrough(t *testing.T) {
	in := status.Error(codes.ResourceExhausted, "slow down")
	assert.Equal(t, in, svcErr.Map(in))
}

func TestMap_InternalHidesCause(t *testing.T) {
	mapped := svcErr.Map(errors.New("dial tcp 10.0.0.1: refused"))
	assert.Equal(t, "internal error", status.Convert(mapped).Message())
}

func TestCategoryOf(t *testing.T) {
	wrapped := fmt.Errorf("upsert: %w", svcErr.Validation("bad slot"))
	assert.True(t, errors.Is(wrapped, svcErr.ErrValidation))
	assert.Equal(t, svcErr.CategoryFixInput, svcErr.CategoryOf(wrapped))
	assert.Equal(t, svcErr.CategoryTryAgain, svcErr.CategoryOf(svcErr.Conflict("dup")))
	assert.Equal(t, svcErr.CategoryInternal, svcErr.CategoryOf(errors.New("x")))
}
