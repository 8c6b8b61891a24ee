package wire

import (
	"encoding/json"
	"fmt"
	"time"

	"sync-lab/domain/room"
	"sync-lab/errors"
)

type OnlinePairsRequest struct {
	UIDs []string `json:"uids"`
}

type OnlinePairsResponse struct {
	Online []string `json:"online"`
}

type CreateRoomRequest struct {
	Name      string `json:"name"`
	HostAlias string `json:"host_alias"`
}

type InviteRequest struct {
	TargetUID string `json:"target_uid"`
	RoomName  string `json:"room_name"`
}

type SendMessageRequest struct {
	RoomName string `json:"room_name"`
	Text     string `json:"text"`
}

type DeviceRequest struct {
	Ref    room.ParticipantRef `json:"ref"`
	Device room.Device         `json:"device"`
}

// Envelope is one message of the Subscribe stream.
type Envelope struct {
	Kind    room.PushKind   `json:"kind"`
	SentAt  time.Time       `json:"sent_at"`
	Payload json.RawMessage `json:"payload"`
}

// EncodePush wraps a push into its stream envelope.
func EncodePush(p room.Push) (*Envelope, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &Envelope{Kind: p.Kind(), SentAt: time.Now().UTC(), Payload: payload}, nil
}

// DecodePush turns an envelope back into the concrete push type.
func DecodePush(e *Envelope) (room.Push, error) {
	switch e.Kind {
	case room.RoomJoinedKind:
		return decode[room.RoomJoined](e.Payload)
	case room.UserJoinedKind:
		return decode[room.UserJoined](e.Payload)
	case room.UserLeftKind:
		return decode[room.UserLeft](e.Payload)
	case room.UserRemovedKind:
		return decode[room.UserRemoved](e.Payload)
	case room.ParticipantUpdatedKind:
		return decode[room.ParticipantUpdated](e.Payload)
	case room.RoomMessageKind:
		return decode[room.RoomMessage](e.Payload)
	case room.DevicePushedKind:
		return decode[room.DevicePushed](e.Payload)
	case room.DeviceUpdatedKind:
		return decode[room.DeviceUpdated](e.Payload)
	case room.RoomClosedKind:
		return decode[room.RoomClosed](e.Payload)
	case room.PresenceOnlineKind:
		return decode[room.PresenceOnline](e.Payload)
	case room.PresenceOfflineKind:
		return decode[room.PresenceOffline](e.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownPush, e.Kind)
	}
}

func decode[T room.Push](payload json.RawMessage) (room.Push, error) {
	var p T
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode %T: %w", p, err)
	}
	return p, nil
}
