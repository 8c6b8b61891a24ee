package errors

import (
	stderrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Connection preconditions
	ErrUserNotPresent   = fmt.Errorf("user is not present in the host environment")
	ErrNoAccount        = fmt.Errorf("no local account")
	ErrConnectionPaused = fmt.Errorf("connection is paused")
	ErrNoCredential     = fmt.Errorf("no credential available")

	// Connection failures
	ErrUnauthorized    = fmt.Errorf("credential rejected by the coordination service")
	ErrVersionMismatch = fmt.Errorf("incompatible coordination service version")
	ErrTransient       = fmt.Errorf("transient transport failure")
	ErrNotConnected    = fmt.Errorf("not connected")
	ErrRefreshFailed   = fmt.Errorf("credential refresh failed")

	// Room replica
	ErrRoomNotFound        = fmt.Errorf("room not found")
	ErrParticipantNotFound = fmt.Errorf("participant not found")
	ErrNotHost             = fmt.Errorf("only the room host may perform this action")
	ErrAlreadyInRoom       = fmt.Errorf("already a member of another room")
	ErrInvalidSnapshot     = fmt.Errorf("invalid room snapshot")
	ErrRequestRejected     = fmt.Errorf("request rejected by the coordination service")
	ErrEmptyMessage        = fmt.Errorf("message is empty")
	ErrMessageTooLong      = fmt.Errorf("message is too long")
	ErrUnknownPush         = fmt.Errorf("unknown push kind")
)

// MapFromGRPCError classifies a gRPC status into the session taxonomy.
// Authentication codes become ErrUnauthorized, retryable codes become
// ErrTransient and refused requests ErrRequestRejected. Anything else is
// returned untouched.
func MapFromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrTransient, st.Message())
	case codes.FailedPrecondition, codes.InvalidArgument, codes.AlreadyExists, codes.NotFound:
		return fmt.Errorf("%w: %s", ErrRequestRejected, st.Message())
	default:
		return err
	}
}

// IsPermanent reports whether err must not be retried by the connect loop.
func IsPermanent(err error) bool {
	return stderrors.Is(err, ErrUnauthorized) ||
		stderrors.Is(err, ErrVersionMismatch) ||
		stderrors.Is(err, ErrNoCredential)
}
