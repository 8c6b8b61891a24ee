package client

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"sync-lab/auth"
	"sync-lab/contract"
	"sync-lab/domain/room"
	"sync-lab/domain/session"
	"sync-lab/errors"
	"sync-lab/infrastructure/grpc/wire"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ contract.Transport = (*CoordinationClient)(nil)

type Config struct {
	Addr        string
	Insecure    bool
	CallTimeout time.Duration
}

// CoordinationClient is the gRPC implementation of contract.Transport.
//
// One ClientConn lives between Start and Stop. A watcher goroutine follows the
// channel connectivity and reports blips through the lifecycle callbacks.
// Stop never waits for the watcher or the push streams: callbacks may call
// Stop themselves.
type CoordinationClient struct {
	log      *slog.Logger
	cfg      Config
	dialOpts []grpc.DialOption
	token    atomic.Value

	mu        sync.Mutex
	conn      *grpc.ClientConn
	lifecycle contract.Lifecycle
	cancel    context.CancelFunc
	baseCtx   context.Context
	streams   map[int]context.CancelFunc
	nextID    int
}

// NewCoordinationClient builds a client. Extra dial options are appended to
// the defaults, tests use them to dial over bufconn.
func NewCoordinationClient(log *slog.Logger, cfg Config, dialOpts ...grpc.DialOption) *CoordinationClient {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	c := &CoordinationClient{
		log:      log,
		cfg:      cfg,
		dialOpts: dialOpts,
		streams:  map[int]context.CancelFunc{},
	}
	c.token.Store("")
	return c
}

func (c *CoordinationClient) SetLifecycle(l contract.Lifecycle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lifecycle = l
}

// Start dials the service and proves the channel with a Liveness call.
func (c *CoordinationClient) Start(ctx context.Context, token string) error {
	c.token.Store(token)

	transportCreds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	if c.cfg.Insecure {
		transportCreds = insecure.NewCredentials()
	}
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(transportCreds),
		grpc.WithPerRPCCredentials(auth.BearerCredentials{Fetch: c.bearer, Secure: !c.cfg.Insecure}),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(wire.Codec{})),
	}, c.dialOpts...)

	conn, err := grpc.NewClient(c.cfg.Addr, opts...)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", errors.ErrTransient, c.cfg.Addr, err)
	}

	c.mu.Lock()
	previous, previousCancel := c.conn, c.cancel
	baseCtx, cancel := context.WithCancel(context.Background())
	c.conn, c.baseCtx, c.cancel = conn, baseCtx, cancel
	c.mu.Unlock()
	if previousCancel != nil {
		previousCancel()
	}
	if previous != nil {
		_ = previous.Close()
	}

	// Handshake
	alive := &wrapperspb.BoolValue{}
	if err := c.invoke(ctx, wire.MethodLiveness, &emptypb.Empty{}, alive); err != nil {
		_ = c.Stop()
		return err
	}
	if !alive.GetValue() {
		_ = c.Stop()
		return fmt.Errorf("%w: service reported not alive", errors.ErrTransient)
	}

	go c.watch(baseCtx, conn)
	c.log.Debug("Coordination channel ready", "addr", c.cfg.Addr)
	return nil
}

func (c *CoordinationClient) Stop() error {
	c.mu.Lock()
	conn, cancel := c.conn, c.cancel
	streams := c.streams
	c.conn, c.cancel, c.baseCtx = nil, nil, nil
	c.streams = map[int]context.CancelFunc{}
	c.mu.Unlock()

	for _, stop := range streams {
		stop()
	}
	if cancel != nil {
		cancel()
	}
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// SetToken swaps the bearer token. The channel stays up: only calls issued
// afterwards carry the new token.
func (c *CoordinationClient) SetToken(token string) {
	c.token.Store(token)
}

func (c *CoordinationClient) bearer(_ context.Context) (string, error) {
	token, _ := c.token.Load().(string)
	if token == "" {
		return "", errors.ErrNoCredential
	}
	return token, nil
}

func (c *CoordinationClient) current() (*grpc.ClientConn, context.Context, contract.Lifecycle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, nil, contract.Lifecycle{}, errors.ErrNotConnected
	}
	return c.conn, c.baseCtx, c.lifecycle, nil
}

// watch translates channel connectivity into lifecycle callbacks.
// Ready → TransientFailure/Connecting/Idle is a blip, back to Ready a recovery.
func (c *CoordinationClient) watch(ctx context.Context, conn *grpc.ClientConn) {
	reconnecting := false
	state := conn.GetState()
	for {
		if state == connectivity.Idle {
			conn.Connect()
		}
		if !conn.WaitForStateChange(ctx, state) {
			return
		}
		next := conn.GetState()
		_, _, lifecycle, err := c.current()
		if err != nil || ctx.Err() != nil {
			return
		}

		switch next {
		case connectivity.Ready:
			if reconnecting {
				reconnecting = false
				c.log.Info("Coordination channel recovered")
				if lifecycle.Reconnected != nil {
					lifecycle.Reconnected()
				}
			}
		case connectivity.TransientFailure, connectivity.Connecting, connectivity.Idle:
			if !reconnecting && state == connectivity.Ready {
				reconnecting = true
				c.log.Warn("Coordination channel lost", "state", next)
				if lifecycle.Reconnecting != nil {
					lifecycle.Reconnecting(fmt.Errorf("%w: channel %s", errors.ErrTransient, next))
				}
			}
		case connectivity.Shutdown:
			if lifecycle.Closed != nil {
				lifecycle.Closed(fmt.Errorf("%w: channel shut down", errors.ErrTransient))
			}
			return
		}
		state = next
	}
}

// Subscribe opens a push stream. Pushes are handed to handler on the stream
// goroutine in arrival order.
func (c *CoordinationClient) Subscribe(handler func(room.Push)) (func(), error) {
	conn, baseCtx, _, err := c.current()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(baseCtx)
	stream, err := conn.NewStream(ctx, wire.SubscribeStreamDesc, wire.MethodSubscribe)
	if err != nil {
		cancel()
		return nil, errors.MapFromGRPCError(err)
	}
	if err := stream.SendMsg(&emptypb.Empty{}); err != nil {
		cancel()
		return nil, errors.MapFromGRPCError(err)
	}
	if err := stream.CloseSend(); err != nil {
		cancel()
		return nil, errors.MapFromGRPCError(err)
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.streams[id] = cancel
	c.mu.Unlock()

	go c.receive(ctx, conn, stream, handler)

	return func() {
		c.mu.Lock()
		delete(c.streams, id)
		c.mu.Unlock()
		cancel()
	}, nil
}

func (c *CoordinationClient) receive(ctx context.Context, conn *grpc.ClientConn, stream grpc.ClientStream, handler func(room.Push)) {
	for {
		envelope := &wire.Envelope{}
		err := stream.RecvMsg(envelope)
		if err == nil {
			push, decodeErr := wire.DecodePush(envelope)
			if decodeErr != nil {
				c.log.Warn("Push dropped", "kind", envelope.Kind, "error", decodeErr)
				continue
			}
			handler(push)
			continue
		}

		if ctx.Err() != nil {
			return
		}
		_, _, lifecycle, _ := c.current()
		switch {
		case stderrors.Is(err, io.EOF):
			c.log.Info("Push stream closed by the service")
			if lifecycle.Closed != nil {
				lifecycle.Closed(nil)
			}
		case errors.IsPermanent(errors.MapFromGRPCError(err)):
			if lifecycle.Closed != nil {
				lifecycle.Closed(errors.MapFromGRPCError(err))
			}
		case conn.GetState() == connectivity.Ready:
			// Channel is fine but the stream died: nothing else will notice.
			if lifecycle.Closed != nil {
				lifecycle.Closed(errors.MapFromGRPCError(err))
			}
		default:
			c.log.Debug("Push stream interrupted, channel watcher takes over", "error", err)
		}
		return
	}
}

func (c *CoordinationClient) invoke(ctx context.Context, method string, in, out any) error {
	conn, _, _, err := c.current()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()
	if err := conn.Invoke(ctx, method, in, out); err != nil {
		return errors.MapFromGRPCError(err)
	}
	return nil
}

func (c *CoordinationClient) GetConnectionDescriptor(ctx context.Context) (session.Descriptor, error) {
	var descriptor session.Descriptor
	err := c.invoke(ctx, wire.MethodGetConnectionDescriptor, &emptypb.Empty{}, &descriptor)
	return descriptor, err
}

func (c *CoordinationClient) Liveness(ctx context.Context) (bool, error) {
	out := &wrapperspb.BoolValue{}
	if err := c.invoke(ctx, wire.MethodLiveness, &emptypb.Empty{}, out); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (c *CoordinationClient) GetOnlinePairs(ctx context.Context, uids []string) ([]string, error) {
	var out wire.OnlinePairsResponse
	if err := c.invoke(ctx, wire.MethodGetOnlinePairs, &wire.OnlinePairsRequest{UIDs: uids}, &out); err != nil {
		return nil, err
	}
	return out.Online, nil
}

func (c *CoordinationClient) CreateRoom(ctx context.Context, name, hostAlias string) (bool, error) {
	out := &wrapperspb.BoolValue{}
	err := c.invoke(ctx, wire.MethodCreateRoom, &wire.CreateRoomRequest{Name: name, HostAlias: hostAlias}, out)
	return out.GetValue(), err
}

func (c *CoordinationClient) InviteUser(ctx context.Context, targetUID, roomName string) (bool, error) {
	out := &wrapperspb.BoolValue{}
	err := c.invoke(ctx, wire.MethodInviteUser, &wire.InviteRequest{TargetUID: targetUID, RoomName: roomName}, out)
	return out.GetValue(), err
}

func (c *CoordinationClient) JoinRoom(ctx context.Context, ref room.ParticipantRef) error {
	return c.invoke(ctx, wire.MethodJoinRoom, &ref, &emptypb.Empty{})
}

func (c *CoordinationClient) LeaveRoom(ctx context.Context, ref room.ParticipantRef) error {
	return c.invoke(ctx, wire.MethodLeaveRoom, &ref, &emptypb.Empty{})
}

func (c *CoordinationClient) RemoveRoom(ctx context.Context, name string) error {
	return c.invoke(ctx, wire.MethodRemoveRoom, wrapperspb.String(name), &emptypb.Empty{})
}

func (c *CoordinationClient) SendMessage(ctx context.Context, roomName, text string) error {
	return c.invoke(ctx, wire.MethodSendMessage, &wire.SendMessageRequest{RoomName: roomName, Text: text}, &emptypb.Empty{})
}

func (c *CoordinationClient) PushDeviceInfo(ctx context.Context, ref room.ParticipantRef, device room.Device) error {
	return c.invoke(ctx, wire.MethodPushDeviceInfo, &wire.DeviceRequest{Ref: ref, Device: device}, &emptypb.Empty{})
}

func (c *CoordinationClient) UpdateDevice(ctx context.Context, target room.ParticipantRef, device room.Device) error {
	return c.invoke(ctx, wire.MethodUpdateDevice, &wire.DeviceRequest{Ref: target, Device: device}, &emptypb.Empty{})
}

func (c *CoordinationClient) AllowVibes(ctx context.Context, roomName string) error {
	return c.invoke(ctx, wire.MethodAllowVibes, wrapperspb.String(roomName), &emptypb.Empty{})
}

func (c *CoordinationClient) DenyVibes(ctx context.Context, roomName string) error {
	return c.invoke(ctx, wire.MethodDenyVibes, wrapperspb.String(roomName), &emptypb.Empty{})
}
