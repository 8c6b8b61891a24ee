//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"sync-lab/domain/event"
	"sync-lab/domain/room"
	"sync-lab/domain/session"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink consumes bus events. Consume must not call back into the bus.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// EventPublisher must not block: it is called while state locks are held.
type EventPublisher interface {
	Publish(e event.Event)
}

type RefreshOutcome int

const (
	RefreshNone RefreshOutcome = iota
	RefreshRenewed
	// RefreshSessionReplaced means the server issued a new session:
	// the current connection must be torn down and rebuilt.
	RefreshSessionReplaced
)

// TokenProvider supplies the opaque auth credential.
// Token returns errors.ErrNoCredential when nothing is stored.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	NeedsRefresh() bool
	Refresh(ctx context.Context) (RefreshOutcome, error)
}

// HostEnvironment answers the "can we even try" questions asked before connecting.
type HostEnvironment interface {
	UserPresent() bool
	AccountUID() (string, bool)
}

type Settings interface {
	ConnectionPaused() bool
}

// SessionHandler receives server pushes and session lifecycle notifications.
// HandlePush runs on the transport's callback goroutine.
type SessionHandler interface {
	HandlePush(ctx context.Context, push room.Push)
	SessionEstablished(ctx context.Context, s session.Session)
	KnownUIDs() []string
}
