package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapFromGRPCError(t *testing.T) {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, ErrUnauthorized},
		{codes.PermissionDenied, ErrUnauthorized},
		{codes.Unavailable, ErrTransient},
		{codes.DeadlineExceeded, ErrTransient},
		{codes.ResourceExhausted, ErrTransient},
		{codes.Aborted, ErrTransient},
		{codes.FailedPrecondition, ErrRequestRejected},
		{codes.NotFound, ErrRequestRejected},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := MapFromGRPCError(status.Error(tt.code, "boom"))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMapFromGRPCError_Passthrough(t *testing.T) {
	req := require.New(t)
	plain := stderrors.New("plain")

	req.NoError(MapFromGRPCError(nil))
	req.Equal(plain, MapFromGRPCError(plain))

	internal := status.Error(codes.Internal, "oops")
	req.Equal(internal, MapFromGRPCError(internal))
}

func TestIsPermanent(t *testing.T) {
	req := require.New(t)

	req.True(IsPermanent(fmt.Errorf("wrap: %w", ErrUnauthorized)))
	req.True(IsPermanent(ErrVersionMismatch))
	req.True(IsPermanent(ErrNoCredential))
	req.False(IsPermanent(ErrTransient))
	req.False(IsPermanent(stderrors.New("other")))
}
