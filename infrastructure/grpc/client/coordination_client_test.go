package client

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sync-lab/auth"
	"sync-lab/contract"
	"sync-lab/domain/room"
	"sync-lab/domain/session"
	"sync-lab/errors"
	"sync-lab/infrastructure/grpc/wire"
	"sync-lab/infrastructure/host"
	"sync-lab/runtime"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var signingKey = []byte("client-test-key")

// fakeCoordinator is an in-memory coordination service.
type fakeCoordinator struct {
	mu       sync.Mutex
	version  string
	messages []wire.SendMessageRequest
	joined   []room.ParticipantRef
	vibes    map[string]bool
	pushes   chan room.Push
	endEarly bool
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{version: "1.2.0", vibes: map[string]bool{}, pushes: make(chan room.Push, 16)}
}

func (f *fakeCoordinator) GetConnectionDescriptor(ctx context.Context, _ *emptypb.Empty) (*session.Descriptor, error) {
	uid, _ := auth.UserIDFromContext(ctx)
	hosted := room.Snapshot{RoomName: "alpha", Host: room.ParticipantInfo{UID: uid, Active: true}}
	return &session.Descriptor{Version: f.version, HostedRoom: &hosted}, nil
}

func (f *fakeCoordinator) Liveness(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(true), nil
}

func (f *fakeCoordinator) GetOnlinePairs(_ context.Context, in *wire.OnlinePairsRequest) (*wire.OnlinePairsResponse, error) {
	var online []string
	for _, uid := range in.UIDs {
		if uid != "ghost" {
			online = append(online, uid)
		}
	}
	return &wire.OnlinePairsResponse{Online: online}, nil
}

func (f *fakeCoordinator) CreateRoom(_ context.Context, in *wire.CreateRoomRequest) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(in.Name != "taken"), nil
}

func (f *fakeCoordinator) InviteUser(context.Context, *wire.InviteRequest) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(true), nil
}

func (f *fakeCoordinator) JoinRoom(_ context.Context, in *room.ParticipantRef) (*emptypb.Empty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joined = append(f.joined, *in)
	return &emptypb.Empty{}, nil
}

func (f *fakeCoordinator) LeaveRoom(context.Context, *room.ParticipantRef) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (f *fakeCoordinator) RemoveRoom(_ context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if in.GetValue() == "ghost" {
		return nil, status.Error(codes.NotFound, "no such room")
	}
	return &emptypb.Empty{}, nil
}

func (f *fakeCoordinator) SendMessage(_ context.Context, in *wire.SendMessageRequest) (*emptypb.Empty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, *in)
	return &emptypb.Empty{}, nil
}

func (f *fakeCoordinator) PushDeviceInfo(context.Context, *wire.DeviceRequest) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (f *fakeCoordinator) UpdateDevice(context.Context, *wire.DeviceRequest) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (f *fakeCoordinator) AllowVibes(_ context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vibes[in.GetValue()] = true
	return &emptypb.Empty{}, nil
}

func (f *fakeCoordinator) DenyVibes(_ context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vibes[in.GetValue()] = false
	return &emptypb.Empty{}, nil
}

func (f *fakeCoordinator) Subscribe(_ *emptypb.Empty, stream wire.PushStream) error {
	for {
		select {
		case <-stream.Context().Done():
			return nil
		case p, ok := <-f.pushes:
			if !ok {
				// Clean end of stream
				return nil
			}
			envelope, err := wire.EncodePush(p)
			if err != nil {
				return err
			}
			if err := stream.Send(envelope); err != nil {
				return err
			}
		}
	}
}

func startServer(t *testing.T, coordinator *fakeCoordinator) *bufconn.Listener {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer(
		grpc.ForceServerCodec(wire.Codec{}),
		grpc.UnaryInterceptor(auth.UnaryAuthInterceptor(signingKey)),
		grpc.StreamInterceptor(auth.StreamAuthInterceptor(signingKey)),
	)
	wire.RegisterCoordinationServer(server, coordinator)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)
	return lis
}

func newTestClient(lis *bufconn.Listener) *CoordinationClient {
	return NewCoordinationClient(
		logs.GetLoggerFromLevel(slog.LevelDebug),
		Config{Addr: "passthrough:///bufnet", Insecure: true, CallTimeout: time.Second},
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
}

func validToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(signingKey, "u1", "s1", time.Hour)
	require.NoError(t, err)
	return token
}

func TestCoordinationClient_StartAndCalls(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	coordinator := newFakeCoordinator()
	c := newTestClient(startServer(t, coordinator))
	defer func() { _ = c.Stop() }()

	// When starting with a valid token
	req.NoError(c.Start(ctx, validToken(t)))

	// Then the descriptor carries the authenticated identity
	descriptor, err := c.GetConnectionDescriptor(ctx)
	req.NoError(err)
	req.Equal("1.2.0", descriptor.Version)
	req.Equal("u1", descriptor.HostedRoom.Host.UID)

	online, err := c.GetOnlinePairs(ctx, []string{"u2", "ghost"})
	req.NoError(err)
	req.Equal([]string{"u2"}, online)

	created, err := c.CreateRoom(ctx, "alpha", "Ana")
	req.NoError(err)
	req.True(created)
	created, err = c.CreateRoom(ctx, "taken", "Ana")
	req.NoError(err)
	req.False(created)

	req.NoError(c.SendMessage(ctx, "alpha", "hello"))
	req.NoError(c.JoinRoom(ctx, room.ParticipantRef{RoomName: "alpha", UID: "u1"}))
	req.NoError(c.AllowVibes(ctx, "alpha"))
	req.ErrorIs(c.RemoveRoom(ctx, "ghost"), errors.ErrRequestRejected)

	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	req.Equal([]wire.SendMessageRequest{{RoomName: "alpha", Text: "hello"}}, coordinator.messages)
	req.Len(coordinator.joined, 1)
	req.True(coordinator.vibes["alpha"])
}

func TestCoordinationClient_RejectsBadToken(t *testing.T) {
	req := require.New(t)
	c := newTestClient(startServer(t, newFakeCoordinator()))

	err := c.Start(context.Background(), "not-a-jwt")

	req.ErrorIs(err, errors.ErrUnauthorized)
	_, err = c.Liveness(context.Background())
	req.ErrorIs(err, errors.ErrNotConnected)
}

func TestCoordinationClient_CallsBeforeStart(t *testing.T) {
	c := newTestClient(bufconn.Listen(1024))

	_, err := c.GetConnectionDescriptor(context.Background())

	require.ErrorIs(t, err, errors.ErrNotConnected)
}

func TestCoordinationClient_SubscribeDeliversPushes(t *testing.T) {
	req := require.New(t)
	coordinator := newFakeCoordinator()
	c := newTestClient(startServer(t, coordinator))
	defer func() { _ = c.Stop() }()
	req.NoError(c.Start(context.Background(), validToken(t)))

	received := make(chan room.Push, 4)
	unsubscribe, err := c.Subscribe(func(p room.Push) { received <- p })
	req.NoError(err)
	defer unsubscribe()

	// When the service pushes a message
	coordinator.pushes <- room.RoomMessage{Message: room.ChatMessage{RoomName: "alpha", SenderUID: "u2", Content: "yo"}}

	// Then it arrives decoded
	select {
	case p := <-received:
		msg, ok := p.(room.RoomMessage)
		req.True(ok)
		req.Equal("yo", msg.Message.Content)
	case <-time.After(2 * time.Second):
		req.Fail("push not delivered")
	}
}

func TestCoordinationClient_StreamEndReportsClosed(t *testing.T) {
	req := require.New(t)
	coordinator := newFakeCoordinator()
	c := newTestClient(startServer(t, coordinator))
	defer func() { _ = c.Stop() }()

	closed := make(chan error, 1)
	c.SetLifecycle(contract.Lifecycle{
		Closed: func(err error) { closed <- err },
	})
	req.NoError(c.Start(context.Background(), validToken(t)))
	_, err := c.Subscribe(func(room.Push) {})
	req.NoError(err)

	// When the service ends the stream cleanly
	close(coordinator.pushes)

	// Then the client reports a clean close
	select {
	case err := <-closed:
		req.NoError(err)
	case <-time.After(2 * time.Second):
		req.Fail("close not reported")
	}
}

func TestCoordinationClient_UnsubscribeIsSilent(t *testing.T) {
	req := require.New(t)
	coordinator := newFakeCoordinator()
	c := newTestClient(startServer(t, coordinator))
	defer func() { _ = c.Stop() }()

	var calls atomic.Int32
	c.SetLifecycle(contract.Lifecycle{
		Closed: func(error) { calls.Add(1) },
	})
	req.NoError(c.Start(context.Background(), validToken(t)))
	unsubscribe, err := c.Subscribe(func(room.Push) {})
	req.NoError(err)

	// When the subscriber leaves
	unsubscribe()
	time.Sleep(100 * time.Millisecond)

	// Then no lifecycle callback fired and Stop is idempotent
	req.Zero(calls.Load())
	req.NoError(c.Stop())
	req.NoError(c.Stop())
}

func TestCoordinationClient_SetTokenAppliesToLaterCalls(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c := newTestClient(startServer(t, newFakeCoordinator()))
	defer func() { _ = c.Stop() }()
	req.NoError(c.Start(ctx, validToken(t)))

	// When the token is swapped for another identity
	next, err := auth.GenerateToken(signingKey, "u9", "s9", time.Hour)
	req.NoError(err)
	c.SetToken(next)

	// Then the next call is authenticated with it
	descriptor, err := c.GetConnectionDescriptor(ctx)
	req.NoError(err)
	req.Equal("u9", descriptor.HostedRoom.Host.UID)
}

func TestCoordinationClient_StaysConnectedAcrossTokenRenewal(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	c := newTestClient(startServer(t, newFakeCoordinator()))

	// Given a token about to expire and a refresh issuing a long one for the same session
	shortLived, err := auth.GenerateToken(signingKey, "u1", "s1", 2*time.Second)
	req.NoError(err)
	tokens := auth.NewTokenSource(shortLived, 30*time.Minute, func(context.Context, string) (string, error) {
		return auth.GenerateToken(signingKey, "u1", "s1", time.Hour)
	})
	store := runtime.NewStore(log, "u1", 10, nil)
	connection := runtime.NewConnection(log,
		runtime.ConnectionConfig{ClientVersion: "1.2.0", HealthInterval: 100 * time.Millisecond},
		c,
		tokens,
		host.NewProcessPresence(log, "", "u1"),
		host.NewStaticSettings(false),
		runtime.NewDispatcher(log, store, nil),
		nil,
	)
	defer connection.Disconnect()

	// When connected past the expiry of the first token
	req.NoError(connection.Connect(context.Background()))
	req.Eventually(func() bool {
		return connection.State() == session.Connected
	}, 2*time.Second, 10*time.Millisecond)

	// Then liveness keeps passing with the renewed token
	req.Never(func() bool {
		return connection.State() != session.Connected
	}, 3*time.Second, 50*time.Millisecond)
	req.False(tokens.NeedsRefresh())
}
