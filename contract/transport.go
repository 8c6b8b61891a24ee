//go:generate go run go.uber.org/mock/mockgen -source=transport.go -destination=../mocks/mock_transport.go -package=mocks
package contract

import (
	"context"

	"sync-lab/domain/room"
	"sync-lab/domain/session"
)

// CoordinationAPI lists the requests the client issues to the coordination
// service. Fire-and-forget calls only report transport errors; outcomes come
// back later as pushes.
type CoordinationAPI interface {
	GetConnectionDescriptor(ctx context.Context) (session.Descriptor, error)
	Liveness(ctx context.Context) (bool, error)
	GetOnlinePairs(ctx context.Context, uids []string) ([]string, error)
	CreateRoom(ctx context.Context, name, hostAlias string) (bool, error)
	InviteUser(ctx context.Context, targetUID, roomName string) (bool, error)
	JoinRoom(ctx context.Context, ref room.ParticipantRef) error
	LeaveRoom(ctx context.Context, ref room.ParticipantRef) error
	RemoveRoom(ctx context.Context, name string) error
	SendMessage(ctx context.Context, roomName, text string) error
	PushDeviceInfo(ctx context.Context, ref room.ParticipantRef, device room.Device) error
	UpdateDevice(ctx context.Context, target room.ParticipantRef, device room.Device) error
	AllowVibes(ctx context.Context, roomName string) error
	DenyVibes(ctx context.Context, roomName string) error
}

// Lifecycle carries the transport's own connectivity notifications.
// Reconnecting fires when the channel notices a blip, Reconnected when it
// recovered by itself, Closed when it gave up or was closed by the server.
type Lifecycle struct {
	Reconnecting func(err error)
	Reconnected  func()
	Closed       func(err error)
}

// Transport is the bidirectional channel to the coordination service.
// Push subscriptions do not survive a transport-level reconnect.
type Transport interface {
	CoordinationAPI
	Start(ctx context.Context, token string) error
	Stop() error
	Subscribe(handler func(room.Push)) (unsubscribe func(), err error)
	SetLifecycle(l Lifecycle)
	// SetToken replaces the credential sent with every following call.
	SetToken(token string)
}
