package wire

import (
	"testing"

	"sync-lab/domain/room"
	"sync-lab/errors"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestDecodePush_RoundTripsEveryKind(t *testing.T) {
	pushes := []room.Push{
		room.RoomJoined{Snapshot: room.Snapshot{RoomName: "alpha", Host: room.ParticipantInfo{UID: "u1"}}},
		room.UserJoined{RoomName: "alpha", Participant: room.ParticipantInfo{UID: "u2", Alias: "Bo"}},
		room.UserLeft{RoomName: "alpha", UID: "u2"},
		room.UserRemoved{RoomName: "alpha", UID: "u2"},
		room.ParticipantUpdated{RoomName: "alpha", Participant: room.ParticipantInfo{UID: "u2", Active: true}},
		room.DevicePushed{RoomName: "alpha", Update: room.DeviceUpdate{Sender: "u1", Device: room.Device{ID: "d1"}}},
		room.DeviceUpdated{RoomName: "alpha", Update: room.DeviceUpdate{Sender: "u1", Target: "u2", Device: room.Device{ID: "d1"}}},
		room.RoomClosed{RoomName: "alpha"},
		room.PresenceOnline{UID: "u2"},
		room.PresenceOffline{UID: "u2"},
	}
	for _, p := range pushes {
		t.Run(string(p.Kind()), func(t *testing.T) {
			req := require.New(t)
			envelope, err := EncodePush(p)
			req.NoError(err)
			req.Equal(p.Kind(), envelope.Kind)

			decoded, err := DecodePush(envelope)

			req.NoError(err)
			req.Equal(p, decoded)
		})
	}
}

func TestDecodePush_UnknownKind(t *testing.T) {
	_, err := DecodePush(&Envelope{Kind: "what", Payload: []byte("{}")})
	require.ErrorIs(t, err, errors.ErrUnknownPush)
}

func TestDecodePush_BadPayload(t *testing.T) {
	_, err := DecodePush(&Envelope{Kind: room.RoomClosedKind, Payload: []byte("[")})
	require.Error(t, err)
}

func TestCodec(t *testing.T) {
	req := require.New(t)
	codec := Codec{}

	// Well-known types go through protojson
	data, err := codec.Marshal(wrapperspb.Bool(true))
	req.NoError(err)
	req.JSONEq("true", string(data))
	out := &wrapperspb.BoolValue{}
	req.NoError(codec.Unmarshal(data, out))
	req.True(out.GetValue())

	// Plain structs go through encoding/json
	data, err = codec.Marshal(&SendMessageRequest{RoomName: "alpha", Text: "hi"})
	req.NoError(err)
	req.JSONEq(`{"room_name":"alpha","text":"hi"}`, string(data))
}
