package runtime

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"sync-lab/contract"
	"sync-lab/domain/event"
	"sync-lab/domain/room"
	"sync-lab/errors"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
)

// Store owns every room replica the client knows about.
//
// Rooms is a concurrent map so push callbacks, request completions and view
// readers never need an outer lock. Every mutating method marks the derived
// view dirty before it returns; the view is rebuilt on the next read.
type Store struct {
	log         *slog.Logger
	localUID    string
	chatLogSize int
	bus         contract.EventPublisher
	rooms       *xsync.MapOf[string, *room.Replica]

	// joinMu keeps the one-room check and the upsert of JoinRoom together.
	joinMu sync.Mutex

	viewMu sync.Mutex
	dirty  atomic.Bool
	view   atomic.Pointer[[]room.View]
}

func NewStore(log *slog.Logger, localUID string, chatLogSize int, bus contract.EventPublisher) *Store {
	s := &Store{
		log:         log,
		localUID:    localUID,
		chatLogSize: chatLogSize,
		bus:         bus,
		rooms:       xsync.NewMapOf[string, *room.Replica](),
	}
	s.dirty.Store(true)
	return s
}

func (s *Store) LocalUID() string { return s.localUID }

func (s *Store) invalidate() {
	s.dirty.Store(true)
}

func (s *Store) publish(e event.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// UpsertRoom creates the replica for snapshot.RoomName or reconciles the
// existing one. Applying the same snapshot twice is the same as once.
func (s *Store) UpsertRoom(snapshot room.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	created := false
	replica, loaded := s.rooms.LoadOrCompute(snapshot.RoomName, func() *room.Replica {
		created = true
		return room.NewReplica(snapshot, s.chatLogSize)
	})
	if loaded {
		replica.Reconcile(snapshot)
	}
	s.invalidate()

	s.log.Debug("Room upserted", "room", snapshot.RoomName, "created", created,
		"members", replica.MemberCount(), "member_uids", snapshot.MemberUIDs())
	s.publish(event.New(event.RoomUpsertedType, snapshot.RoomName, nil))
	return nil
}

// RemoveRoom evicts a replica. Unknown rooms are a logged no-op.
func (s *Store) RemoveRoom(name string) bool {
	if _, ok := s.rooms.LoadAndDelete(name); !ok {
		s.log.Debug(fmt.Sprintf("Room %s is not tracked, nothing to remove", name))
		return false
	}
	s.invalidate()
	s.publish(event.New(event.RoomRemovedType, name, nil))
	return true
}

// LocalRoom returns the room in which the local participant is active.
func (s *Store) LocalRoom() (string, bool) {
	if s.localUID == "" {
		return "", false
	}
	var found string
	s.rooms.Range(func(name string, r *room.Replica) bool {
		if p, ok := r.Member(s.localUID); ok && p.Active() {
			found = name
			return false
		}
		return true
	})
	return found, found != ""
}

// JoinRoom upserts snapshot unless the local participant is already active
// in a different room: a client belongs to one room at a time.
// Concurrent joins are serialized, so at most one of two different rooms wins.
func (s *Store) JoinRoom(snapshot room.Snapshot) error {
	s.joinMu.Lock()
	defer s.joinMu.Unlock()
	if current, ok := s.LocalRoom(); ok && current != snapshot.RoomName {
		s.log.Warn("Join refused, already in a room", "current", current, "requested", snapshot.RoomName)
		s.publish(event.New(event.WarningType, snapshot.RoomName, event.Warning{
			Reason: fmt.Sprintf("already a member of %s", current),
			Err:    errors.ErrAlreadyInRoom,
		}))
		return fmt.Errorf("%w: %s", errors.ErrAlreadyInRoom, current)
	}
	return s.UpsertRoom(snapshot)
}

// LeaveRoom marks the local participant inactive and clears the chat log.
// An unknown room is logged and left alone.
func (s *Store) LeaveRoom(name string) bool {
	replica, ok := s.rooms.Load(name)
	if !ok {
		s.log.Info(fmt.Sprintf("Cannot leave room %s, room is unknown", name))
		return false
	}
	if p, ok := replica.Member(s.localUID); ok {
		p.MarkOffline()
	}
	replica.Chat().Clear()
	s.invalidate()
	s.publish(event.New(event.RoomLeftType, name, event.Member{UID: s.localUID}))
	return true
}

// ApplyParticipantUpdate overwrites a known participant. It never creates a
// room or a participant.
func (s *Store) ApplyParticipantUpdate(roomName string, info room.ParticipantInfo) error {
	replica, ok := s.rooms.Load(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	p, ok := replica.Member(info.UID)
	if !ok {
		return fmt.Errorf("%w: %s in %s", errors.ErrParticipantNotFound, info.UID, roomName)
	}
	p.ApplyInfo(info)
	s.invalidate()
	s.publish(event.New(event.ParticipantUpdatedType, roomName, event.Member{UID: info.UID, Alias: info.Alias}))
	return nil
}

// ApplyDeviceUpdate applies a device change. Only the room host may push
// device changes; anything else is rejected without touching any device list.
func (s *Store) ApplyDeviceUpdate(roomName string, update room.DeviceUpdate) error {
	if err := room.ValidateDeviceUpdate(update); err != nil {
		return fmt.Errorf("invalid device update: %w", err)
	}
	replica, ok := s.rooms.Load(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	if !replica.IsHost(update.Sender) {
		return fmt.Errorf("%w: %s is not host of %s", errors.ErrNotHost, update.Sender, roomName)
	}
	target, ok := replica.Member(update.TargetUID())
	if !ok {
		return fmt.Errorf("%w: %s in %s", errors.ErrParticipantNotFound, update.TargetUID(), roomName)
	}
	if update.Remove {
		target.RemoveDevice(update.Device.ID)
	} else {
		target.AppendDevice(update.Device)
	}
	s.invalidate()
	s.publish(event.New(event.DeviceChangedType, roomName, event.DeviceChanged{Update: update}))
	return nil
}

// AddMember applies an other-user-joined push.
func (s *Store) AddMember(roomName string, info room.ParticipantInfo) error {
	replica, ok := s.rooms.Load(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	replica.AddMember(info)
	s.invalidate()
	s.publish(event.New(event.MemberJoinedType, roomName, event.Member{UID: info.UID, Alias: info.Alias}))
	return nil
}

// MemberLeft applies an other-user-left push: the member stays known but
// inactive and without devices.
func (s *Store) MemberLeft(roomName, uid string) error {
	replica, ok := s.rooms.Load(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	if !replica.SetPresence(uid, false) {
		return fmt.Errorf("%w: %s in %s", errors.ErrParticipantNotFound, uid, roomName)
	}
	s.invalidate()
	s.publish(event.New(event.MemberLeftType, roomName, event.Member{UID: uid}))
	return nil
}

// RemoveMember evicts a participant. Evicting the host removes the room: a
// replica is never left without its host.
func (s *Store) RemoveMember(roomName, uid string) error {
	replica, ok := s.rooms.Load(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	if replica.IsHost(uid) {
		s.log.Info("Host removed, dropping room", "room", roomName, "host", uid)
		s.RemoveRoom(roomName)
		return nil
	}
	if !replica.RemoveMember(uid) {
		return fmt.Errorf("%w: %s in %s", errors.ErrParticipantNotFound, uid, roomName)
	}
	s.invalidate()
	s.publish(event.New(event.MemberRemovedType, roomName, event.Member{UID: uid}))
	// The local client was kicked: forget the room.
	if uid == s.localUID {
		s.RemoveRoom(roomName)
	}
	return nil
}

func (s *Store) AppendMessage(msg room.ChatMessage) error {
	replica, ok := s.rooms.Load(msg.RoomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, msg.RoomName)
	}
	if msg.Alias == "" {
		if p, ok := replica.Member(msg.SenderUID); ok {
			msg.Alias = p.Alias()
		}
	}
	replica.Chat().Append(msg)
	s.invalidate()
	s.publish(event.New(event.ChatMessageType, msg.RoomName, event.ChatMessage{Message: msg}))
	return nil
}

// SetPresence flips uid's presence in every room it belongs to and returns
// the number of rooms touched.
func (s *Store) SetPresence(uid string, online bool) int {
	touched := 0
	s.rooms.Range(func(_ string, r *room.Replica) bool {
		if r.SetPresence(uid, online) {
			touched++
		}
		return true
	})
	if touched > 0 {
		s.invalidate()
		s.publish(event.New(event.PresenceChangedType, "", event.PresenceChanged{UID: uid, Online: online}))
	}
	return touched
}

func (s *Store) SetDeviceAccess(roomName string, granted bool) error {
	replica, ok := s.rooms.Load(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	replica.SetDeviceAccess(granted)
	s.invalidate()
	s.publish(event.New(event.ParticipantUpdatedType, roomName, nil))
	return nil
}

func (s *Store) AddInvite(roomName, uid string) error {
	replica, ok := s.rooms.Load(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomName)
	}
	replica.AddInvite(uid)
	s.invalidate()
	return nil
}

// Replica gives direct access for collaborators that need live state, such as
// host checks. Iterate DerivedView instead for display.
func (s *Store) Replica(name string) (*room.Replica, bool) {
	return s.rooms.Load(name)
}

func (s *Store) Room(name string) (room.View, bool) {
	replica, ok := s.rooms.Load(name)
	if !ok {
		return room.View{}, false
	}
	return replica.View(), true
}

// KnownUIDs lists every participant UID across rooms, local user excluded.
func (s *Store) KnownUIDs() []string {
	var uids []string
	s.rooms.Range(func(_ string, r *room.Replica) bool {
		uids = append(uids, r.MemberUIDs()...)
		return true
	})
	uids = lo.Uniq(uids)
	uids = lo.Without(uids, s.localUID)
	sort.Strings(uids)
	return uids
}

func (s *Store) Len() int {
	return s.rooms.Size()
}

// Dispose forgets every room.
func (s *Store) Dispose() {
	s.rooms.Clear()
	s.invalidate()
}

// DerivedView returns the memoized list of room views sorted by name,
// rebuilding it first when a mutation marked it dirty. Readers may see a
// slightly stale list, never a partially built one.
func (s *Store) DerivedView() []room.View {
	if !s.dirty.Load() {
		if v := s.view.Load(); v != nil {
			return *v
		}
	}

	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	// Clear the flag before reading the rooms so a concurrent mutation marks
	// the view dirty again instead of being lost.
	if !s.dirty.Swap(false) {
		if v := s.view.Load(); v != nil {
			return *v
		}
	}
	views := make([]room.View, 0, s.rooms.Size())
	s.rooms.Range(func(_ string, r *room.Replica) bool {
		views = append(views, r.View())
		return true
	})
	sort.Slice(views, func(i, j int) bool {
		return views[i].Name < views[j].Name
	})
	s.view.Store(&views)
	return views
}
