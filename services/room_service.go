//go:generate go run go.uber.org/mock/mockgen -source=room_service.go -destination=../mocks/mock_room_service.go -package=mocks

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"sync-lab/contract"
	"sync-lab/domain/room"
	"sync-lab/errors"
	"sync-lab/runtime"
)

const DefaultMaxMessageLength = 500

type IRoomService interface {
	CreateRoom(ctx context.Context, name string) error
	InviteUser(ctx context.Context, roomName, targetUID string) error
	JoinRoom(ctx context.Context, roomName string) error
	LeaveRoom(ctx context.Context, roomName string) error
	CloseRoom(ctx context.Context, roomName string) error
	SendMessage(ctx context.Context, roomName, text string) error
	PushDeviceInfo(ctx context.Context, roomName string, device room.Device) error
	UpdateDevice(ctx context.Context, roomName, targetUID string, device room.Device) error
	AllowVibes(ctx context.Context, roomName string) error
	DenyVibes(ctx context.Context, roomName string) error
}

var _ IRoomService = (*RoomService)(nil)

// RoomService issues the user-initiated requests. Local guards run before any
// call; the store is updated optimistically where the service will not echo
// the change back as a push.
type RoomService struct {
	log              *slog.Logger
	api              contract.CoordinationAPI
	store            *runtime.Store
	alias            string
	maxMessageLength int
}

func NewRoomService(log *slog.Logger, api contract.CoordinationAPI, store *runtime.Store, alias string, maxMessageLength int) *RoomService {
	if maxMessageLength <= 0 {
		maxMessageLength = DefaultMaxMessageLength
	}
	return &RoomService{log: log, api: api, store: store, alias: alias, maxMessageLength: maxMessageLength}
}

func (s *RoomService) localRef(roomName string) room.ParticipantRef {
	return room.ParticipantRef{RoomName: roomName, UID: s.store.LocalUID(), Alias: s.alias}
}

// ensureFree refuses a second room: a client belongs to one room at a time.
func (s *RoomService) ensureFree(roomName string) error {
	if current, ok := s.store.LocalRoom(); ok && current != roomName {
		return fmt.Errorf("%w: %s", errors.ErrAlreadyInRoom, current)
	}
	return nil
}

func (s *RoomService) ensureHost(roomName string) error {
	replica, ok := s.store.Replica(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	if !replica.IsHost(s.store.LocalUID()) {
		return fmt.Errorf("%w: %s", errors.ErrNotHost, roomName)
	}
	return nil
}

// CreateRoom asks for a new room hosted by the local user and seeds the
// replica right away. The seed goes through the store's join guard since a
// room-joined push may land while the request is in flight.
func (s *RoomService) CreateRoom(ctx context.Context, name string) error {
	if err := s.ensureFree(name); err != nil {
		return err
	}
	created, err := s.api.CreateRoom(ctx, name, s.alias)
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("%w: create %s", errors.ErrRequestRejected, name)
	}
	host := room.ParticipantInfo{UID: s.store.LocalUID(), Alias: s.alias, Active: true}
	return s.store.JoinRoom(room.Snapshot{RoomName: name, Host: host, Members: []room.ParticipantInfo{host}})
}

func (s *RoomService) InviteUser(ctx context.Context, roomName, targetUID string) error {
	if err := s.ensureHost(roomName); err != nil {
		return err
	}
	invited, err := s.api.InviteUser(ctx, targetUID, roomName)
	if err != nil {
		return err
	}
	if !invited {
		return fmt.Errorf("%w: invite %s", errors.ErrRequestRejected, targetUID)
	}
	return s.store.AddInvite(roomName, targetUID)
}

// JoinRoom is fire-and-forget: the room shows up with the room-joined push.
func (s *RoomService) JoinRoom(ctx context.Context, roomName string) error {
	if err := s.ensureFree(roomName); err != nil {
		return err
	}
	return s.api.JoinRoom(ctx, s.localRef(roomName))
}

func (s *RoomService) LeaveRoom(ctx context.Context, roomName string) error {
	if err := s.api.LeaveRoom(ctx, s.localRef(roomName)); err != nil {
		return err
	}
	s.store.LeaveRoom(roomName)
	return nil
}

func (s *RoomService) CloseRoom(ctx context.Context, roomName string) error {
	if err := s.ensureHost(roomName); err != nil {
		return err
	}
	if err := s.api.RemoveRoom(ctx, roomName); err != nil {
		return err
	}
	s.store.RemoveRoom(roomName)
	return nil
}

// SendMessage validates the text locally; the message itself comes back as
// a room-message push.
func (s *RoomService) SendMessage(ctx context.Context, roomName, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > s.maxMessageLength {
		return fmt.Errorf("%w: %d > %d", errors.ErrMessageTooLong, utf8.RuneCountInString(text), s.maxMessageLength)
	}
	if _, ok := s.store.Replica(roomName); !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	return s.api.SendMessage(ctx, roomName, text)
}

func (s *RoomService) PushDeviceInfo(ctx context.Context, roomName string, device room.Device) error {
	if _, ok := s.store.Replica(roomName); !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	return s.api.PushDeviceInfo(ctx, s.localRef(roomName), device)
}

// UpdateDevice changes a member's device as host and applies it locally.
func (s *RoomService) UpdateDevice(ctx context.Context, roomName, targetUID string, device room.Device) error {
	if err := s.ensureHost(roomName); err != nil {
		return err
	}
	target := room.ParticipantRef{RoomName: roomName, UID: targetUID}
	if err := s.api.UpdateDevice(ctx, target, device); err != nil {
		return err
	}
	return s.store.ApplyDeviceUpdate(roomName, room.DeviceUpdate{
		Sender: s.store.LocalUID(),
		Target: targetUID,
		Device: device,
	})
}

func (s *RoomService) AllowVibes(ctx context.Context, roomName string) error {
	return s.setVibes(ctx, roomName, true)
}

func (s *RoomService) DenyVibes(ctx context.Context, roomName string) error {
	return s.setVibes(ctx, roomName, false)
}

func (s *RoomService) setVibes(ctx context.Context, roomName string, granted bool) error {
	if err := s.ensureHost(roomName); err != nil {
		return err
	}
	call := s.api.DenyVibes
	if granted {
		call = s.api.AllowVibes
	}
	if err := call(ctx, roomName); err != nil {
		return err
	}
	s.log.Debug("Device access changed", "room", roomName, "granted", granted)
	return s.store.SetDeviceAccess(roomName, granted)
}
