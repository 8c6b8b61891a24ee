package projection

import (
	"context"
	"testing"
	"time"

	"sync-lab/domain/event"
	"sync-lab/domain/session"

	"github.com/stretchr/testify/require"
)

func stateChanged(from, to session.State) event.Event {
	return event.New(event.StateChangedType, "", event.StateChanged{From: from, To: to})
}

func TestStatus_RetryingThenConnected(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	status := NewStatus()

	// Given a failed attempt followed by a retry
	req.NoError(status.Consume(ctx, stateChanged(session.Offline, session.Connecting)))
	req.NoError(status.Consume(ctx, stateChanged(session.Connecting, session.Reconnecting)))
	req.NoError(status.Consume(ctx, event.New(event.RetryScheduledType, "",
		event.RetryScheduled{Attempt: 2, Delay: 7 * time.Second, Cause: "unavailable"})))

	// Then the summary is retrying
	current := status.Current()
	req.Equal(SeverityRetrying, current.Severity)
	req.Equal(2, current.Attempt)
	req.Equal(7*time.Second, current.NextRetry)
	req.Contains(current.Message, "attempt 2")
	req.False(status.NeedsAction())

	// When the next attempt succeeds
	req.NoError(status.Consume(ctx, stateChanged(session.Reconnecting, session.Connecting)))
	req.Equal(SeverityRetrying, status.Current().Severity)
	req.NoError(status.Consume(ctx, stateChanged(session.Connecting, session.Connected)))

	// Then the retry info is gone
	current = status.Current()
	req.Equal(SeverityOK, current.Severity)
	req.Equal(session.Connected, current.State)
	req.Zero(current.Attempt)
	req.Equal("connected", current.Message)
}

func TestStatus_TerminalStatesNeedAction(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		want  string
	}{
		{name: "unauthorized", state: session.Unauthorized, want: "credential rejected"},
		{name: "no credential", state: session.NoCredential, want: "no credential"},
		{name: "version mismatch", state: session.VersionMismatch, want: "update required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			status := NewStatus()

			// When the connection lands in a terminal state
			req.NoError(status.Consume(context.Background(), stateChanged(session.Connecting, tt.state)))

			// Then the user must act
			req.True(status.NeedsAction())
			req.Equal(tt.state, status.Current().State)
			req.Contains(status.Current().Message, tt.want)
		})
	}
}

func TestStatus_VersionMismatchNamesBothVersions(t *testing.T) {
	req := require.New(t)
	status := NewStatus()

	// Given a version mismatch notice
	req.NoError(status.Consume(context.Background(), event.New(event.VersionMismatchType, "",
		event.VersionMismatch{Client: "v1.2.0", Server: "v2.0.0"})))

	// Then the message names both versions
	req.True(status.NeedsAction())
	req.Contains(status.Current().Message, "v1.2.0")
	req.Contains(status.Current().Message, "v2.0.0")
}

func TestStatus_IgnoresUnrelatedEvents(t *testing.T) {
	req := require.New(t)
	status := NewStatus()

	// When a room event arrives
	req.NoError(status.Consume(context.Background(), event.New(event.RoomUpsertedType, "alpha", nil)))

	// Then the summary is untouched
	req.Equal(session.Offline, status.Current().State)
	req.Equal(SeverityOK, status.Current().Severity)
}

func TestStatus_RejectsWrongPayload(t *testing.T) {
	req := require.New(t)
	status := NewStatus()

	err := status.Consume(context.Background(), event.New(event.StateChangedType, "", "oops"))

	req.Error(err)
	req.Equal(session.Offline, status.Current().State)
}
