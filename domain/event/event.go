// Package event defines the notifications published on the in-process bus.
// Events are tagged by Type; consumers switch on it and assert the Payload.
package event

import (
	"time"

	"sync-lab/domain/room"
	"sync-lab/domain/session"
)

type Type string

const (
	StateChangedType        Type = "STATE_CHANGED"
	RetryScheduledType      Type = "RETRY_SCHEDULED"
	VersionMismatchType     Type = "VERSION_MISMATCH"
	RoomUpsertedType        Type = "ROOM_UPSERTED"
	RoomRemovedType         Type = "ROOM_REMOVED"
	RoomLeftType            Type = "ROOM_LEFT"
	MemberJoinedType        Type = "MEMBER_JOINED"
	MemberLeftType          Type = "MEMBER_LEFT"
	MemberRemovedType       Type = "MEMBER_REMOVED"
	ParticipantUpdatedType  Type = "PARTICIPANT_UPDATED"
	ChatMessageType         Type = "CHAT_MESSAGE"
	DeviceChangedType       Type = "DEVICE_CHANGED"
	PresenceChangedType     Type = "PRESENCE_CHANGED"
	WarningType             Type = "WARNING"
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
)

type Event struct {
	Type      Type
	Room      string
	CreatedAt time.Time
	Payload   any
}

func New(t Type, roomName string, payload any) Event {
	return Event{
		Type:      t,
		Room:      roomName,
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	}
}

type StateChanged struct {
	From  session.State
	To    session.State
	Cause string
}

type RetryScheduled struct {
	Attempt int
	Delay   time.Duration
	Cause   string
}

// VersionMismatch is the user-facing notice emitted once per failed connect.
type VersionMismatch struct {
	Client string
	Server string
}

type Member struct {
	UID   string
	Alias string
}

type ChatMessage struct {
	Message room.ChatMessage
}

type DeviceChanged struct {
	Update room.DeviceUpdate
}

type PresenceChanged struct {
	UID    string
	Online bool
}

type Warning struct {
	Reason string
	Err    error
}

type WorkerRestartedAfterPanic struct {
	WorkerName string
}
