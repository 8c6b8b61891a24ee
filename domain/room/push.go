package room

// PushKind names a server-to-client push.
type PushKind string

const (
	RoomJoinedKind         PushKind = "room_joined"
	UserJoinedKind         PushKind = "other_user_joined"
	UserLeftKind           PushKind = "other_user_left"
	UserRemovedKind        PushKind = "user_removed"
	ParticipantUpdatedKind PushKind = "participant_updated"
	RoomMessageKind        PushKind = "room_message"
	DevicePushedKind       PushKind = "device_pushed"
	DeviceUpdatedKind      PushKind = "device_updated"
	RoomClosedKind         PushKind = "room_closed"
	PresenceOnlineKind     PushKind = "presence_online"
	PresenceOfflineKind    PushKind = "presence_offline"
)

// Push is a server-to-client notification. Consumers dispatch on the
// concrete type.
type Push interface {
	Kind() PushKind
}

type RoomJoined struct {
	Snapshot Snapshot `json:"snapshot"`
}

type UserJoined struct {
	RoomName    string          `json:"room_name"`
	Participant ParticipantInfo `json:"participant"`
}

type UserLeft struct {
	RoomName string `json:"room_name"`
	UID      string `json:"uid"`
}

type UserRemoved struct {
	RoomName string `json:"room_name"`
	UID      string `json:"uid"`
}

type ParticipantUpdated struct {
	RoomName    string          `json:"room_name"`
	Participant ParticipantInfo `json:"participant"`
}

type RoomMessage struct {
	Message ChatMessage `json:"message"`
}

type DevicePushed struct {
	RoomName string       `json:"room_name"`
	Update   DeviceUpdate `json:"update"`
}

type DeviceUpdated struct {
	RoomName string       `json:"room_name"`
	Update   DeviceUpdate `json:"update"`
}

type RoomClosed struct {
	RoomName string `json:"room_name"`
}

type PresenceOnline struct {
	UID string `json:"uid"`
}

type PresenceOffline struct {
	UID string `json:"uid"`
}

func (RoomJoined) Kind() PushKind         { return RoomJoinedKind }
func (UserJoined) Kind() PushKind         { return UserJoinedKind }
func (UserLeft) Kind() PushKind           { return UserLeftKind }
func (UserRemoved) Kind() PushKind        { return UserRemovedKind }
func (ParticipantUpdated) Kind() PushKind { return ParticipantUpdatedKind }
func (RoomMessage) Kind() PushKind        { return RoomMessageKind }
func (DevicePushed) Kind() PushKind       { return DevicePushedKind }
func (DeviceUpdated) Kind() PushKind      { return DeviceUpdatedKind }
func (RoomClosed) Kind() PushKind         { return RoomClosedKind }
func (PresenceOnline) Kind() PushKind     { return PresenceOnlineKind }
func (PresenceOffline) Kind() PushKind    { return PresenceOfflineKind }
