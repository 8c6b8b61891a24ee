package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sync-lab/contract"
	"sync-lab/domain/event"
	"sync-lab/domain/room"
	"sync-lab/domain/session"
	"sync-lab/errors"
	"sync-lab/runtime/workers"

	"github.com/samber/lo"
)

type ConnectionConfig struct {
	ClientVersion   string
	VersionPolicy   session.VersionPolicy
	HealthInterval  time.Duration
	RetryMinDelay   time.Duration
	RetryMaxDelay   time.Duration
	RestartInterval time.Duration
}

// VersionMismatchError carries both versions of a failed compatibility check.
type VersionMismatchError struct {
	Client string
	Server string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: client %q, server %q", errors.ErrVersionMismatch, e.Client, e.Server)
}

func (e *VersionMismatchError) Unwrap() error { return errors.ErrVersionMismatch }

// scope holds everything that lives for one Connect call.
// closed is guarded by Connection.mu.
type scope struct {
	ctx         context.Context
	cancel      context.CancelFunc
	supervisor  *workers.Supervisor
	unsubscribe func()
	stopHealth  context.CancelFunc
	closed      bool
}

// Connection keeps a single logical connection to the coordination service.
//
// Transient failures are retried forever with a jittered delay; credential
// rejection and version drift are terminal and reported once. The connect
// loop and the health loop run under a supervisor owned by the current scope,
// and Disconnect tears the scope down before the state becomes Offline.
type Connection struct {
	log       *slog.Logger
	cfg       ConnectionConfig
	transport contract.Transport
	tokens    contract.TokenProvider
	host      contract.HostEnvironment
	settings  contract.Settings
	handler   contract.SessionHandler
	bus       contract.EventPublisher
	backoff   Backoff
	wait      func(ctx context.Context, d time.Duration) error

	mu      sync.Mutex
	state   session.State
	current *session.Session
	uid     string
	base    context.Context
	scope   *scope
}

func NewConnection(
	log *slog.Logger,
	cfg ConnectionConfig,
	transport contract.Transport,
	tokens contract.TokenProvider,
	host contract.HostEnvironment,
	settings contract.Settings,
	handler contract.SessionHandler,
	bus contract.EventPublisher,
) *Connection {
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = DefaultHealthInterval
	}
	if cfg.RetryMinDelay <= 0 {
		cfg.RetryMinDelay = DefaultRetryMinDelay
	}
	if cfg.RetryMaxDelay <= 0 {
		cfg.RetryMaxDelay = DefaultRetryMaxDelay
	}
	if cfg.RestartInterval <= 0 {
		cfg.RestartInterval = time.Second
	}
	c := &Connection{
		log:       log,
		cfg:       cfg,
		transport: transport,
		tokens:    tokens,
		host:      host,
		settings:  settings,
		handler:   handler,
		bus:       bus,
		backoff:   JitterBackoff{Min: cfg.RetryMinDelay, Max: cfg.RetryMaxDelay},
		wait:      sleepContext,
		state:     session.Offline,
	}
	transport.SetLifecycle(contract.Lifecycle{
		Reconnecting: c.onReconnecting,
		Reconnected:  c.onReconnected,
		Closed:       c.onClosed,
	})
	return c
}

// WithWait replaces the backoff sleep, used to observe or skip retry delays.
func (c *Connection) WithWait(wait func(ctx context.Context, d time.Duration) error) *Connection {
	c.wait = wait
	return c
}

func (c *Connection) WithBackoff(b Backoff) *Connection {
	c.backoff = b
	return c
}

func (c *Connection) State() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns a copy of the active session, if any.
func (c *Connection) Session() (session.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return session.Session{}, false
	}
	return *c.current, true
}

// Connect checks the preconditions and starts the connect loop in a fresh
// cancellation scope. Failed preconditions return an error and leave the
// state alone, except a missing credential which moves to NoCredential.
// Calling Connect while a connection is live is a no-op.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scope != nil && c.state.IsLive() {
		c.log.Debug("Connect ignored, connection already running", "state", c.state)
		return nil
	}

	// 1. Preconditions, cheapest first
	if !c.host.UserPresent() {
		c.log.Debug("Connect skipped, user not present")
		return errors.ErrUserNotPresent
	}
	uid, ok := c.host.AccountUID()
	if !ok {
		c.log.Debug("Connect skipped, no local account")
		return errors.ErrNoAccount
	}
	if c.settings.ConnectionPaused() {
		c.log.Debug("Connect skipped, connection paused by user")
		return errors.ErrConnectionPaused
	}
	if _, err := c.tokens.Token(ctx); err != nil {
		c.setStateLocked(session.NoCredential, err.Error())
		if stderrors.Is(err, errors.ErrNoCredential) {
			return err
		}
		return fmt.Errorf("%w: %v", errors.ErrNoCredential, err)
	}

	// 2. Fresh scope, never reuse a cancelled one
	if c.scope != nil {
		c.scope.closed = true
		c.scope.cancel()
	}
	c.uid = uid
	c.base = context.WithoutCancel(ctx)
	scopeCtx, cancel := context.WithCancel(c.base)
	sc := &scope{
		ctx:        scopeCtx,
		cancel:     cancel,
		supervisor: workers.NewSupervisor(c.log, c.bus, c.cfg.RestartInterval),
	}
	c.scope = sc

	// 3. Connect loop, supervised so a crash outside an attempt restarts it
	sc.supervisor.Start(sc.ctx, &connectWorker{c: c, sc: sc})
	return nil
}

// Disconnect cancels the connect and health loops, waits for them, drops
// push subscriptions, stops the transport and ends in Offline.
// It must not be called from the connect or health loop.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	sc := c.scope
	if sc == nil {
		c.current = nil
		c.setStateLocked(session.Offline, "disconnect requested")
		c.mu.Unlock()
		return
	}
	c.scope = nil
	sc.closed = true
	unsubscribe := sc.unsubscribe
	sc.unsubscribe = nil
	c.setStateLocked(session.Disconnecting, "disconnect requested")
	c.mu.Unlock()

	sc.cancel()
	sc.supervisor.Wait()
	if unsubscribe != nil {
		unsubscribe()
	}
	if err := c.transport.Stop(); err != nil {
		c.log.Warn("Transport stop failed", "error", err)
	}

	c.mu.Lock()
	if c.scope == nil {
		c.current = nil
		c.setStateLocked(session.Offline, "")
	}
	c.mu.Unlock()
}

// setStateLocked must be called with c.mu held.
func (c *Connection) setStateLocked(to session.State, cause string) {
	if c.state == to {
		return
	}
	from := c.state
	c.state = to
	c.log.Info("Connection state changed", "from", from, "to", to, "cause", cause)
	c.publish(event.New(event.StateChangedType, "", event.StateChanged{From: from, To: to, Cause: cause}))
}

// transition moves to `to` only while sc is still the active scope.
func (c *Connection) transition(sc *scope, to session.State, cause string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scope != sc || sc.closed {
		return false
	}
	c.setStateLocked(to, cause)
	return true
}

func (c *Connection) startWorker(sc *scope, w contract.Worker) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scope != sc || sc.closed {
		return false
	}
	if sc.stopHealth != nil {
		sc.stopHealth()
		sc.stopHealth = nil
	}
	sc.supervisor.Start(sc.ctx, w)
	return true
}

func (c *Connection) publish(e event.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

type connectWorker struct {
	c          *Connection
	sc         *scope
	delayFirst bool
}

func (w *connectWorker) Run(ctx context.Context) error {
	return w.c.connectLoop(ctx, w.sc, w.delayFirst)
}

// connectLoop retries attempts until one succeeds, a terminal error shows up
// or the scope is cancelled.
func (c *Connection) connectLoop(ctx context.Context, sc *scope, delayFirst bool) error {
	if delayFirst {
		if err := c.wait(ctx, c.backoff.Next()); err != nil {
			return nil
		}
	}
	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return nil
		}
		if !c.transition(sc, session.Connecting, "") {
			return nil
		}

		err := c.attempt(ctx, sc)
		if err == nil || ctx.Err() != nil {
			return nil
		}
		if errors.IsPermanent(err) {
			c.fail(sc, err)
			return nil
		}

		delay := c.backoff.Next()
		c.log.Warn("Connection attempt failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		if !c.transition(sc, session.Reconnecting, err.Error()) {
			return nil
		}
		c.publish(event.New(event.RetryScheduledType, "", event.RetryScheduled{
			Attempt: attempt,
			Delay:   delay,
			Cause:   err.Error(),
		}))
		if err := c.wait(ctx, delay); err != nil {
			return nil
		}
	}
}

// attempt runs one full connect sequence. Panics are turned into errors so
// the retry loop treats them as transient.
func (c *Connection) attempt(ctx context.Context, sc *scope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Connection attempt panicked", "panic", r)
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
		if err != nil {
			_ = c.transport.Stop()
		}
	}()

	// 1. Credential
	token, err := c.tokens.Token(ctx)
	if err != nil {
		if stderrors.Is(err, errors.ErrNoCredential) {
			return err
		}
		return fmt.Errorf("%w: token: %v", errors.ErrTransient, err)
	}

	// 2. Handshake
	if err := c.transport.Start(ctx, token); err != nil {
		return err
	}

	// 3. Descriptor and version
	descriptor, err := c.fetchDescriptor(ctx)
	if err != nil {
		return err
	}

	// 4. Push handlers
	if err := c.subscribe(sc); err != nil {
		return err
	}

	// 5. Session
	s := session.New(c.uid, descriptor)
	c.handler.SessionEstablished(ctx, s)
	c.mu.Lock()
	if c.scope != sc || sc.closed {
		c.mu.Unlock()
		return ctx.Err()
	}
	c.current = &s
	c.setStateLocked(session.Connected, "")
	c.mu.Unlock()

	c.queryPresence(ctx)
	c.startHealth(sc)
	return nil
}

// startHealth runs a single health loop per scope, replacing any previous one.
func (c *Connection) startHealth(sc *scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scope != sc || sc.closed {
		return
	}
	if sc.stopHealth != nil {
		sc.stopHealth()
	}
	ctx, cancel := context.WithCancel(sc.ctx)
	sc.stopHealth = cancel
	sc.supervisor.Start(ctx, &healthWorker{c: c, sc: sc})
}

func (c *Connection) fetchDescriptor(ctx context.Context) (session.Descriptor, error) {
	descriptor, err := c.transport.GetConnectionDescriptor(ctx)
	if err != nil {
		return session.Descriptor{}, err
	}
	if !c.cfg.VersionPolicy.Compatible(c.cfg.ClientVersion, descriptor.Version) {
		return descriptor, &VersionMismatchError{Client: c.cfg.ClientVersion, Server: descriptor.Version}
	}
	return descriptor, nil
}

// subscribe installs the push handler for sc, replacing any previous one.
func (c *Connection) subscribe(sc *scope) error {
	unsubscribe, err := c.transport.Subscribe(func(p room.Push) {
		c.handler.HandlePush(sc.ctx, p)
	})
	if err != nil {
		return err
	}
	c.mu.Lock()
	previous := sc.unsubscribe
	sc.unsubscribe = unsubscribe
	c.mu.Unlock()
	if previous != nil {
		previous()
	}
	return nil
}

func (c *Connection) dropSubscription(sc *scope) {
	c.mu.Lock()
	unsubscribe := sc.unsubscribe
	sc.unsubscribe = nil
	c.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// queryPresence asks once for the online status of every known participant.
func (c *Connection) queryPresence(ctx context.Context) {
	uids := c.handler.KnownUIDs()
	if len(uids) == 0 {
		return
	}
	online, err := c.transport.GetOnlinePairs(ctx, uids)
	if err != nil {
		c.log.Warn("Presence query failed", "error", err)
		return
	}
	for _, uid := range online {
		c.handler.HandlePush(ctx, room.PresenceOnline{UID: uid})
	}
	for _, uid := range lo.Without(uids, online...) {
		c.handler.HandlePush(ctx, room.PresenceOffline{UID: uid})
	}
}

// fail moves to the terminal state matching err and releases the scope.
// Nothing is retried afterwards until the next Connect.
func (c *Connection) fail(sc *scope, err error) {
	to := session.Unauthorized
	switch {
	case stderrors.Is(err, errors.ErrVersionMismatch):
		to = session.VersionMismatch
	case stderrors.Is(err, errors.ErrNoCredential):
		to = session.NoCredential
	}

	c.mu.Lock()
	if c.scope != sc || sc.closed {
		c.mu.Unlock()
		return
	}
	sc.closed = true
	c.scope = nil
	c.current = nil
	unsubscribe := sc.unsubscribe
	sc.unsubscribe = nil
	c.setStateLocked(to, err.Error())
	var mismatch *VersionMismatchError
	if stderrors.As(err, &mismatch) {
		c.publish(event.New(event.VersionMismatchType, "", event.VersionMismatch{
			Client: mismatch.Client,
			Server: mismatch.Server,
		}))
	}
	c.mu.Unlock()

	c.log.Error("Connection failed permanently", "state", to, "error", err)
	if unsubscribe != nil {
		unsubscribe()
	}
	_ = c.transport.Stop()
	sc.cancel()
}

// restart drops the live connection and re-enters the connect loop after a
// backoff delay, inside the same scope.
func (c *Connection) restart(sc *scope, cause error) {
	c.mu.Lock()
	if c.scope != sc || sc.closed {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.setStateLocked(session.Reconnecting, cause.Error())
	c.mu.Unlock()

	c.dropSubscription(sc)
	_ = c.transport.Stop()
	c.startWorker(sc, &connectWorker{c: c, sc: sc, delayFirst: true})
}

func (c *Connection) onReconnecting(err error) {
	c.mu.Lock()
	sc := c.scope
	if sc == nil || sc.closed || c.state != session.Connected {
		c.mu.Unlock()
		return
	}
	cause := "transport reconnecting"
	if err != nil {
		cause = err.Error()
	}
	c.setStateLocked(session.Reconnecting, cause)
	c.mu.Unlock()

	// Subscriptions do not survive a transport-level reconnect.
	c.dropSubscription(sc)
}

// onReconnected re-validates the descriptor and re-installs push handlers
// exactly as on first connect.
func (c *Connection) onReconnected() {
	c.mu.Lock()
	sc := c.scope
	live := sc != nil && !sc.closed && c.state == session.Reconnecting && c.current != nil
	c.mu.Unlock()
	if !live {
		return
	}

	descriptor, err := c.fetchDescriptor(sc.ctx)
	if err != nil {
		if errors.IsPermanent(err) {
			c.fail(sc, err)
			return
		}
		c.log.Warn("Descriptor refresh after reconnect failed", "error", err)
		c.restart(sc, err)
		return
	}
	if err := c.subscribe(sc); err != nil {
		c.log.Warn("Resubscribe after reconnect failed", "error", err)
		c.restart(sc, err)
		return
	}

	c.mu.Lock()
	if c.scope != sc || sc.closed || c.current == nil {
		c.mu.Unlock()
		return
	}
	c.current.Descriptor = descriptor
	s := *c.current
	c.setStateLocked(session.Connected, "transport reconnected")
	c.mu.Unlock()

	c.handler.SessionEstablished(sc.ctx, s)
}

func (c *Connection) onClosed(err error) {
	c.mu.Lock()
	sc := c.scope
	// A nil session means the connect loop owns the transport.
	live := sc != nil && !sc.closed && c.current != nil &&
		(c.state == session.Connected || c.state == session.Reconnecting)
	c.mu.Unlock()
	if !live {
		return
	}

	switch {
	case err == nil:
		c.log.Info("Transport closed by the server")
		go c.Disconnect()
	case errors.IsPermanent(err):
		c.fail(sc, err)
	default:
		c.log.Warn("Transport closed unexpectedly", "error", err)
		c.restart(sc, err)
	}
}

// replaceSession rebuilds the connection after the server replaced the session.
func (c *Connection) replaceSession() {
	c.mu.Lock()
	base := c.base
	c.mu.Unlock()

	c.Disconnect()
	if err := c.Connect(base); err != nil {
		c.log.Warn("Reconnect after session replacement failed", "error", err)
	}
}

type healthWorker struct {
	c  *Connection
	sc *scope
}

// Run wakes every HealthInterval while the connection is up. It ends as soon
// as the state leaves Connected/Reconnecting.
func (w *healthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.c.cfg.HealthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			switch w.c.State() {
			case session.Connected:
			case session.Reconnecting:
				continue
			default:
				return nil
			}
			if stop := w.c.checkHealth(ctx, w.sc); stop {
				return nil
			}
		}
	}
}

// checkHealth refreshes the credential when it is close to expiry and pings
// the service otherwise. It returns true when the health loop must end.
func (c *Connection) checkHealth(ctx context.Context, sc *scope) bool {
	if c.tokens.NeedsRefresh() {
		outcome, err := c.tokens.Refresh(ctx)
		switch {
		case err != nil && errors.IsPermanent(err):
			c.fail(sc, err)
			return true
		case err != nil:
			c.log.Warn("Credential refresh failed", "error", err)
		case outcome == contract.RefreshSessionReplaced:
			c.log.Info("Session replaced by the server, reconnecting")
			go c.replaceSession()
			return true
		case outcome == contract.RefreshRenewed:
			token, err := c.tokens.Token(ctx)
			if err != nil {
				c.log.Warn("Renewed credential unreadable", "error", err)
				return false
			}
			c.transport.SetToken(token)
			c.log.Debug("Credential refreshed")
		}
		return false
	}

	ok, err := c.transport.Liveness(ctx)
	switch {
	case err != nil && errors.IsPermanent(err):
		c.fail(sc, err)
		return true
	case err != nil:
		c.log.Warn("Liveness call failed", "error", err)
	case !ok:
		c.log.Warn("Liveness call returned false")
	}
	return false
}
