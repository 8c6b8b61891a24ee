package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"sync-lab/domain/room"
	"sync-lab/domain/session"
	"sync-lab/errors"
	"sync-lab/mocks"
	"sync-lab/projection"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeRooms struct{ views []room.View }

func (f fakeRooms) DerivedView() []room.View { return f.views }

type fakeStatus struct{ summary projection.Summary }

func (f fakeStatus) Current() projection.Summary { return f.summary }

type fakeConnection struct {
	state        session.State
	connects     int
	disconnects  int
	connectError error
}

func (f *fakeConnection) Connect(context.Context) error {
	f.connects++
	return f.connectError
}

func (f *fakeConnection) Disconnect()          { f.disconnects++ }
func (f *fakeConnection) State() session.State { return f.state }

func TestShell_RunsRoomCommands(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	rooms := mocks.NewMockIRoomService(ctrl)
	var out bytes.Buffer
	shell := NewShell(&out, rooms, fakeRooms{}, fakeStatus{}, &fakeConnection{})
	ctx := context.Background()

	// Given the expected service calls
	gomock.InOrder(
		rooms.EXPECT().CreateRoom(ctx, "alpha").Return(nil),
		rooms.EXPECT().InviteUser(ctx, "alpha", "u-bob").Return(nil),
		rooms.EXPECT().SendMessage(ctx, "alpha", "hello there").Return(nil),
		rooms.EXPECT().PushDeviceInfo(ctx, "alpha", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, device room.Device) error {
				req.Equal("d1", device.ID)
				req.Equal("left pad", device.Name)
				return nil
			}),
		rooms.EXPECT().AllowVibes(ctx, "alpha").Return(nil),
		rooms.EXPECT().CloseRoom(ctx, "alpha").Return(nil),
	)

	// When the lines are read
	input := strings.Join([]string{
		"create alpha",
		"invite alpha u-bob",
		"say alpha hello there",
		"device alpha d1 left pad",
		"",
		"allow alpha",
		"close alpha",
		"quit",
		"join never-read",
	}, "\n")
	err := shell.Run(ctx, strings.NewReader(input))

	// Then every command ran and nothing after quit
	req.NoError(err)
	req.Empty(out.String())
}

func TestShell_PrintsErrorsAndContinues(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	rooms := mocks.NewMockIRoomService(ctrl)
	var out bytes.Buffer
	shell := NewShell(&out, rooms, fakeRooms{}, fakeStatus{}, &fakeConnection{})
	ctx := context.Background()

	rooms.EXPECT().JoinRoom(ctx, "beta").Return(errors.ErrAlreadyInRoom)
	rooms.EXPECT().LeaveRoom(ctx, "alpha").Return(nil)

	err := shell.Run(ctx, strings.NewReader("join beta\nsay alpha\nfly away\nleave alpha\n"))

	req.NoError(err)
	printed := out.String()
	req.Contains(printed, "error: "+errors.ErrAlreadyInRoom.Error())
	req.Contains(printed, "say: expected 2 argument(s)")
	req.Contains(printed, `unknown command "fly"`)
}

func TestShell_StatusAndSessionCommands(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	var out bytes.Buffer
	connection := &fakeConnection{state: session.Reconnecting}
	status := fakeStatus{summary: projection.Summary{Severity: projection.SeverityRetrying, Message: "retrying in 5s"}}
	views := []room.View{{Name: "alpha", HostUID: "u-alice"}}
	shell := NewShell(&out, mocks.NewMockIRoomService(ctrl), fakeRooms{views: views}, status, connection)
	ctx := context.Background()

	_, err := shell.Exec(ctx, "status")
	req.NoError(err)
	_, err = shell.Exec(ctx, "rooms")
	req.NoError(err)
	_, err = shell.Exec(ctx, "disconnect")
	req.NoError(err)
	_, err = shell.Exec(ctx, "connect")
	req.NoError(err)

	printed := out.String()
	req.Contains(printed, "Reconnecting [retrying] retrying in 5s")
	req.Contains(printed, "alpha")
	req.Equal(1, connection.disconnects)
	req.Equal(1, connection.connects)
}

func TestShell_ConnectErrorIsReturnedByExec(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	connection := &fakeConnection{connectError: errors.ErrUserNotPresent}
	shell := NewShell(&bytes.Buffer{}, mocks.NewMockIRoomService(ctrl), fakeRooms{}, fakeStatus{}, connection)

	quit, err := shell.Exec(context.Background(), "CONNECT")

	req.False(quit)
	req.ErrorIs(err, errors.ErrUserNotPresent)
}

func TestShell_OpenFailureKeepsShellUsable(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	var out bytes.Buffer
	connection := &fakeConnection{connectError: errors.ErrUserNotPresent}
	shell := NewShell(&out, mocks.NewMockIRoomService(ctrl), fakeRooms{}, fakeStatus{}, connection)

	// Given the first connect fails on a precondition
	req.ErrorIs(shell.Open(context.Background()), errors.ErrUserNotPresent)
	req.Contains(out.String(), "type connect to retry")

	// When the user fixes it and retries from the shell
	connection.connectError = nil
	err := shell.Run(context.Background(), strings.NewReader("connect\nquit\n"))

	// Then the shell ran the command instead of exiting
	req.NoError(err)
	req.Equal(2, connection.connects)
}
