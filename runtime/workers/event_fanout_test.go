package workers

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"sync-lab/contract"
	"sync-lab/domain/event"
	"sync-lab/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Fanout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSink := mocks.NewMockEventSink(ctrl)
	mockSink1 := mocks.NewMockEventSink(ctrl)

	fanout := NewEventFanout(log, 10, time.Second, mockSink, mockSink1)

	// Given both sinks consume the event once
	evt := event.New(event.RoomUpsertedType, "alpha", nil)
	mockSink.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)
	mockSink1.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

	// When the event is fanned out
	fanout.Fanout(context.Background(), evt)

	// Then gomock checks both calls on Finish
	req.NotNil(fanout)
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSink := mocks.NewMockEventSink(ctrl)
	mockSink1 := mocks.NewMockEventSink(ctrl)

	sinkTimeout := 20 * time.Millisecond
	fanout := NewEventFanout(log, 10, sinkTimeout, mockSink, mockSink1)

	// Given a first sink blocking until its deadline
	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.Event) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)
	mockSink1.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// When an event is fanned out
	start := time.Now()
	fanout.Fanout(context.Background(), event.New(event.WarningType, "", nil))

	// Then the slow sink was cut at its timeout and the next one still ran
	req.Less(time.Since(start), time.Second)
}

func TestEventFanout_PublishDropsWhenFull(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a buffer of one and nobody running the loop
	fanout := NewEventFanout(log, 1, time.Second)

	done := make(chan struct{})
	go func() {
		fanout.Publish(event.New(event.WarningType, "", nil))
		fanout.Publish(event.New(event.WarningType, "", nil))
		close(done)
	}()

	// Then the second publish is dropped instead of blocking
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		req.Fail("Publish must never block")
	}
	req.Len(fanout.events, 1)
}

type orderSink struct {
	mu    sync.Mutex
	types []event.Type
}

func (s *orderSink) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append(s.types, e.Type)
	return nil
}

func (s *orderSink) seen() []event.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Type(nil), s.types...)
}

func TestEventFanout_RunKeepsPublishOrder(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	sink := &orderSink{}
	var _ contract.EventSink = sink

	fanout := NewEventFanout(log, 10, time.Second, sink)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = fanout.Run(ctx) }()

	// When publishing a burst
	fanout.Publish(event.New(event.RoomUpsertedType, "alpha", nil))
	fanout.Publish(event.New(event.MemberJoinedType, "alpha", nil))
	fanout.Publish(event.New(event.ChatMessageType, "alpha", nil))

	// Then the sink sees them in order
	req.Eventually(func() bool { return len(sink.seen()) == 3 }, time.Second, 5*time.Millisecond)
	req.Equal([]event.Type{event.RoomUpsertedType, event.MemberJoinedType, event.ChatMessageType}, sink.seen())
}
