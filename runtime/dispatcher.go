package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"sync-lab/contract"
	"sync-lab/domain/event"
	"sync-lab/domain/room"
	"sync-lab/domain/session"
	"sync-lab/errors"
)

var _ contract.SessionHandler = (*Dispatcher)(nil)

// Dispatcher routes server pushes into the store.
// Logical errors (unknown room, non-host device push...) are logged and
// published as warnings; they never propagate back to the transport.
type Dispatcher struct {
	log   *slog.Logger
	store *Store
	bus   contract.EventPublisher
}

func NewDispatcher(log *slog.Logger, store *Store, bus contract.EventPublisher) *Dispatcher {
	return &Dispatcher{log: log, store: store, bus: bus}
}

// HandlePush applies one push. It runs on the transport callback goroutine.
func (d *Dispatcher) HandlePush(_ context.Context, push room.Push) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Push handler panicked", "kind", push.Kind(), "panic", r)
		}
	}()

	if err := d.apply(push); err != nil {
		d.log.Warn("Push rejected", "kind", push.Kind(), "error", err)
		if d.bus != nil {
			d.bus.Publish(event.New(event.WarningType, roomOf(push), event.Warning{
				Reason: fmt.Sprintf("%s rejected", push.Kind()),
				Err:    err,
			}))
		}
	}
}

func (d *Dispatcher) apply(push room.Push) error {
	switch p := push.(type) {
	case room.RoomJoined:
		return d.store.JoinRoom(p.Snapshot)
	case room.UserJoined:
		return d.store.AddMember(p.RoomName, p.Participant)
	case room.UserLeft:
		return d.store.MemberLeft(p.RoomName, p.UID)
	case room.UserRemoved:
		return d.store.RemoveMember(p.RoomName, p.UID)
	case room.ParticipantUpdated:
		return d.store.ApplyParticipantUpdate(p.RoomName, p.Participant)
	case room.RoomMessage:
		return d.store.AppendMessage(p.Message)
	case room.DevicePushed:
		return d.store.ApplyDeviceUpdate(p.RoomName, p.Update)
	case room.DeviceUpdated:
		return d.store.ApplyDeviceUpdate(p.RoomName, p.Update)
	case room.RoomClosed:
		d.store.RemoveRoom(p.RoomName)
		return nil
	case room.PresenceOnline:
		d.store.SetPresence(p.UID, true)
		return nil
	case room.PresenceOffline:
		d.store.SetPresence(p.UID, false)
		return nil
	default:
		return fmt.Errorf("%w: %T", errors.ErrUnknownPush, push)
	}
}

// SessionEstablished seeds the store with the rooms listed by the
// connection descriptor.
func (d *Dispatcher) SessionEstablished(_ context.Context, s session.Session) {
	for _, snapshot := range s.Descriptor.Rooms() {
		if err := d.store.UpsertRoom(snapshot); err != nil {
			d.log.Warn("Descriptor room ignored", "room", snapshot.RoomName, "error", err)
		}
	}
	d.log.Debug("Session seeded", "session", s.ID, "rooms", d.store.Len())
}

func (d *Dispatcher) KnownUIDs() []string {
	return d.store.KnownUIDs()
}

func roomOf(push room.Push) string {
	switch p := push.(type) {
	case room.RoomJoined:
		return p.Snapshot.RoomName
	case room.UserJoined:
		return p.RoomName
	case room.UserLeft:
		return p.RoomName
	case room.UserRemoved:
		return p.RoomName
	case room.ParticipantUpdated:
		return p.RoomName
	case room.RoomMessage:
		return p.Message.RoomName
	case room.DevicePushed:
		return p.RoomName
	case room.DeviceUpdated:
		return p.RoomName
	case room.RoomClosed:
		return p.RoomName
	default:
		return ""
	}
}
