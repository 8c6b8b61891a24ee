package session

import (
	"bytes"
	"log/slog"
	"testing"

	"sync-lab/domain/room"

	"github.com/stretchr/testify/require"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		client string
		server string
		want   bool
	}{
		{"1.4.0", "1.4.2", true},
		{"1.4.0", "1.9.0", true},
		{"1.4.0", "2.0.0", false},
		{"v0.3.1", "0.3.7", true},
		{"0.3.1", "0.4.0", false},
		{"dev", "dev", true},
		{"dev", "1.0.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.client+"/"+tt.server, func(t *testing.T) {
			require.Equal(t, tt.want, Compatible(tt.client, tt.server))
		})
	}
}

func TestVersionPolicy_Compatible(t *testing.T) {
	tests := []struct {
		policy VersionPolicy
		client string
		server string
		want   bool
	}{
		{SameMinor, "1.4.0", "1.4.9", true},
		{SameMinor, "1.4.0", "1.5.0", false},
		{Exact, "1.4.0", "v1.4.0", true},
		{Exact, "1.4.0", "1.4.1", false},
		{Exact, "dev", "dev", true},
		{SameMajor, "1.4.0", "1.9.0", true},
		{"", "1.4.0", "1.9.0", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy)+"/"+tt.client+"/"+tt.server, func(t *testing.T) {
			require.Equal(t, tt.want, tt.policy.Compatible(tt.client, tt.server))
		})
	}
}

func TestParseVersionPolicy(t *testing.T) {
	req := require.New(t)

	p, err := ParseVersionPolicy("")
	req.NoError(err)
	req.Equal(SameMajor, p)

	p, err = ParseVersionPolicy(" Exact ")
	req.NoError(err)
	req.Equal(Exact, p)

	_, err = ParseVersionPolicy("loose")
	req.Error(err)
}

func TestDescriptor_RoomsListsHostedFirst(t *testing.T) {
	req := require.New(t)
	hosted := room.Snapshot{RoomName: "mine", Host: room.ParticipantInfo{UID: "u1"}}
	d := Descriptor{
		Version:     "1.0.0",
		HostedRoom:  &hosted,
		JoinedRooms: []room.Snapshot{{RoomName: "theirs", Host: room.ParticipantInfo{UID: "u2"}}},
	}

	rooms := d.Rooms()

	req.Len(rooms, 2)
	req.Equal("mine", rooms[0].RoomName)
	req.Equal("theirs", rooms[1].RoomName)
}

func TestState_Classification(t *testing.T) {
	req := require.New(t)

	req.True(VersionMismatch.IsTerminal())
	req.True(Unauthorized.IsTerminal())
	req.False(Reconnecting.IsTerminal())
	req.True(Reconnecting.IsLive())
	req.False(Offline.IsLive())
	req.Equal("Connected", Connected.String())
}

func TestState_LoggedByName(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&out, nil))

	// When a transition is logged as structured attributes
	log.Info("State changed", "from", Reconnecting, "to", Connected)

	// Then both states appear by name
	req.Contains(out.String(), `"from":"Reconnecting"`)
	req.Contains(out.String(), `"to":"Connected"`)

	text, err := VersionMismatch.MarshalText()
	req.NoError(err)
	req.Equal("VersionMismatch", string(text))
}
