package sink_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"sync-lab/domain/event"
	"sync-lab/domain/room"
	"sync-lab/domain/session"
	"sync-lab/runtime"
	"sync-lab/sink"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *runtime.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := runtime.NewStore(logger, "u-alice", 10, nil)
	require.NoError(t, store.UpsertRoom(room.Snapshot{
		RoomName: "alpha",
		Host:     room.ParticipantInfo{UID: "u-alice", Alias: "alice", Active: true},
		Members: []room.ParticipantInfo{
			{UID: "u-bob", Alias: "bob", Active: true},
			{UID: "u-carol", Alias: "carol"},
		},
		Invites: []string{"u-dan"},
	}))
	return store
}

func TestConsoleSink_StateLines(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	console := sink.NewConsoleSink(&out, nil, false)
	ctx := context.Background()

	// When state and retry events are consumed
	req.NoError(console.Consume(ctx, event.New(event.StateChangedType, "",
		event.StateChanged{From: session.Connecting, To: session.Reconnecting, Cause: "unavailable"})))
	req.NoError(console.Consume(ctx, event.New(event.RetryScheduledType, "",
		event.RetryScheduled{Attempt: 1, Delay: 5 * time.Second, Cause: "unavailable"})))
	req.NoError(console.Consume(ctx, event.New(event.VersionMismatchType, "",
		event.VersionMismatch{Client: "v1.0.0", Server: "v2.0.0"})))
	req.NoError(console.Consume(ctx, event.New(event.WarningType, "alpha",
		event.Warning{Reason: "device_updated rejected", Err: stderrors.New("not host")})))

	// Then each one prints a line
	printed := out.String()
	req.Contains(printed, "state Connecting -> Reconnecting (unavailable)")
	req.Contains(printed, "retry #1 in 5s: unavailable")
	req.Contains(printed, "client v1.0.0 is not compatible with server v2.0.0")
	req.Contains(printed, "warning device_updated rejected: not host")
}

func TestConsoleSink_ChatMessageUsesAlias(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	console := sink.NewConsoleSink(&out, nil, false)

	msg := room.ChatMessage{RoomName: "alpha", SenderUID: "u-bob", Alias: "bob", Content: "hi", CreatedAt: time.Now()}
	req.NoError(console.Consume(context.Background(), event.New(event.ChatMessageType, "alpha",
		event.ChatMessage{Message: msg})))

	req.Contains(out.String(), "[alpha] bob: hi")
}

func TestConsoleSink_RendersRoomTableOnRoomChange(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	console := sink.NewConsoleSink(&out, newStore(t), false)

	// When a room event is consumed
	req.NoError(console.Consume(context.Background(), event.New(event.RoomUpsertedType, "alpha", nil)))

	// Then the table lists the room with its host alias and active members
	printed := out.String()
	req.Contains(printed, "ROOM")
	req.Contains(printed, "alpha")
	req.Contains(printed, "alice")
	req.Contains(printed, "alice,bob")
	req.NotContains(printed, "carol")
}

func TestConsoleSink_RejectsWrongPayload(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	console := sink.NewConsoleSink(&out, nil, false)

	err := console.Consume(context.Background(), event.New(event.RetryScheduledType, "", "nope"))

	req.Error(err)
	req.Empty(out.String())
}

func TestConsoleSink_StopsOnCanceledContext(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	console := sink.NewConsoleSink(&out, nil, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := console.Consume(ctx, event.New(event.StateChangedType, "",
		event.StateChanged{From: session.Offline, To: session.Connecting}))

	req.ErrorIs(err, context.Canceled)
	req.Empty(out.String())
}
