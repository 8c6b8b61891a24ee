package e2e

import (
	"context"
	"testing"
	"time"

	"sync-lab/auth"
	"sync-lab/domain/session"
	"sync-lab/infrastructure/grpc/client"
	"sync-lab/infrastructure/host"
	"sync-lab/runtime"
	"sync-lab/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testSessionSuite struct {
	BaseGrpcSuite
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, &testSessionSuite{})
}

func (s *testSessionSuite) TestHandshake() {
	s.Run("Step 1: liveness and descriptor", func() {
		s.WithClient("Liveness and descriptor", func(ctx context.Context, c *client.CoordinationClient) {
			alive, err := c.Liveness(ctx)
			s.Require().NoError(err)
			s.Require().True(alive)

			descriptor, err := c.GetConnectionDescriptor(ctx)
			s.Require().NoError(err)
			s.Require().True(session.Compatible(s.Config.ClientVersion, descriptor.Version),
				"client %s not compatible with server %s", s.Config.ClientVersion, descriptor.Version)
		})
	})
}

func (s *testSessionSuite) TestRoomLifecycle() {
	if s.Config.AccountUID == "" {
		s.T().Skip("E2E_ACCOUNT_UID not set")
	}
	roomName := "e2e-" + uuid.NewString()[:8]

	transport := s.NewClient("Full session against " + s.Config.CoordinatorAddr)
	store := runtime.NewStore(s.Log, s.Config.AccountUID, 50, nil)
	connection := runtime.NewConnection(s.Log, runtime.ConnectionConfig{
		ClientVersion: s.Config.ClientVersion,
		RetryMinDelay: 200 * time.Millisecond,
		RetryMaxDelay: time.Second,
	},
		transport,
		auth.NewTokenSource(s.Config.AuthToken, time.Minute, nil),
		host.NewProcessPresence(s.Log, "", s.Config.AccountUID),
		host.NewStaticSettings(false),
		runtime.NewDispatcher(s.Log, store, nil),
		nil,
	)
	rooms := services.NewRoomService(s.Log, transport, store, s.Config.AccountAlias, 0)
	ctx := context.Background()

	s.Run("Step 1: connect", func() {
		s.Require().NoError(connection.Connect(ctx))
		s.Require().Eventually(func() bool {
			return connection.State() == session.Connected
		}, 15*time.Second, 50*time.Millisecond)
	})

	s.Run("Step 2: create room and talk", func() {
		s.Require().NoError(rooms.CreateRoom(ctx, roomName))
		_, ok := store.Room(roomName)
		s.Require().True(ok)
		s.Require().NoError(rooms.SendMessage(ctx, roomName, "hello from e2e"))
		s.Require().Eventually(func() bool {
			view, ok := store.Room(roomName)
			return ok && len(view.Messages) > 0
		}, 10*time.Second, 50*time.Millisecond)
	})

	s.Run("Step 3: close and disconnect", func() {
		s.Require().NoError(rooms.CloseRoom(ctx, roomName))
		_, ok := store.Room(roomName)
		s.Require().False(ok)

		connection.Disconnect()
		s.Require().Equal(session.Offline, connection.State())
	})
}
