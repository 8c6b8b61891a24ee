package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sync-lab/auth"
	"sync-lab/domain/session"
	"sync-lab/infrastructure/grpc/client"
	"sync-lab/infrastructure/host"
	"sync-lab/internal"
	"sync-lab/projection"
	"sync-lab/runtime"
	"sync-lab/runtime/workers"
	"sync-lab/services"
	"sync-lab/sink"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitConfig  = 2
	exitRuntime = 1
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the session layer and blocks until a signal or the quit command.
// Returning instead of exiting lets the deferred Disconnect run.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Event bus and its consumers
	fanout := workers.NewEventFanout(log, config.BufferSize, config.SinkTimeout)
	store := runtime.NewStore(log, config.AccountUID, config.ChatLogSize, fanout)
	status := projection.NewStatus()
	fanout.Add(status, sink.NewConsoleSink(os.Stdout, store, config.Colours))

	sup := workers.NewSupervisor(log, fanout, config.RestartInterval)
	sup.Add(fanout, workers.NewBacklogWorker(log, fanout, config.MetricInterval, config.LowCapacityThreshold,
		workers.Gauge{Name: "events", Sample: fanout.Backlog}))
	go sup.Run(ctx)
	defer sup.Stop()

	// 3. Transport and session
	policy, err := session.ParseVersionPolicy(config.VersionPolicy)
	if err != nil {
		return exitConfig, err
	}
	transport := client.NewCoordinationClient(log, client.Config{
		Addr:        config.CoordinatorAddr,
		Insecure:    config.CoordinatorInsecure,
		CallTimeout: config.CallTimeout,
	})
	// No refresh endpoint: an expired token ends in Unauthorized.
	tokens := auth.NewTokenSource(config.AuthToken, config.TokenRefreshMargin, nil)
	presence := host.NewProcessPresence(log, config.HostProcessName, config.AccountUID)
	settings := host.NewStaticSettings(config.ConnectionPaused)
	dispatcher := runtime.NewDispatcher(log, store, fanout)

	connection := runtime.NewConnection(log, runtime.ConnectionConfig{
		ClientVersion:   config.ClientVersion,
		VersionPolicy:   policy,
		HealthInterval:  config.HealthInterval,
		RetryMinDelay:   config.RetryMinDelay,
		RetryMaxDelay:   config.RetryMaxDelay,
		RestartInterval: config.RestartInterval,
	}, transport, tokens, presence, settings, dispatcher, fanout)
	defer func() {
		log.Info("Disconnecting...")
		connection.Disconnect()
		store.Dispose()
	}()

	// 4. Commands from stdin
	rooms := services.NewRoomService(log, transport, store, config.AccountAlias, config.MaxMessageLength)
	shell := NewShell(os.Stdout, rooms, store, status, connection)
	if err := shell.Open(ctx); err != nil {
		log.Warn("Not connected, waiting for the connect command", "error", err)
	}
	done := make(chan error, 1)
	go func() { done <- shell.Run(ctx, os.Stdin) }()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err = <-done:
		if err != nil {
			return exitRuntime, err
		}
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}
