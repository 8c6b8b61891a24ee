// Package projection folds bus events into read models for the UI layer.
// It never publishes events back.
package projection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sync-lab/contract"
	"sync-lab/domain/event"
	"sync-lab/domain/session"
)

var _ contract.EventSink = (*Status)(nil)

type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityRetrying Severity = "retrying"
	SeverityAction   Severity = "action_required"
)

// Summary is what a status bar shows.
type Summary struct {
	State     session.State
	Severity  Severity
	Message   string
	Attempt   int
	NextRetry time.Duration
	UpdatedAt time.Time
}

// Status keeps the latest connection summary.
type Status struct {
	mu      sync.RWMutex
	summary Summary
}

func NewStatus() *Status {
	return &Status{summary: Summary{State: session.Offline, Severity: SeverityOK, Message: "offline"}}
}

func (s *Status) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Type {
	case event.StateChangedType:
		p, ok := e.Payload.(event.StateChanged)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		s.onState(p, e.CreatedAt)
	case event.RetryScheduledType:
		p, ok := e.Payload.(event.RetryScheduled)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		s.summary.Severity = SeverityRetrying
		s.summary.Attempt = p.Attempt
		s.summary.NextRetry = p.Delay
		s.summary.Message = fmt.Sprintf("retrying in %s (attempt %d): %s", p.Delay.Round(time.Second), p.Attempt, p.Cause)
		s.summary.UpdatedAt = e.CreatedAt
	case event.VersionMismatchType:
		p, ok := e.Payload.(event.VersionMismatch)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		s.summary.Severity = SeverityAction
		s.summary.Message = fmt.Sprintf("update required: client %s, server %s", p.Client, p.Server)
		s.summary.UpdatedAt = e.CreatedAt
	}
	return nil
}

func (s *Status) onState(p event.StateChanged, at time.Time) {
	s.summary.State = p.To
	s.summary.UpdatedAt = at
	switch {
	case p.To.IsTerminal():
		s.summary.Severity = SeverityAction
		s.summary.Message = actionMessage(p.To)
		s.summary.Attempt = 0
		s.summary.NextRetry = 0
	case p.To == session.Reconnecting:
		s.summary.Severity = SeverityRetrying
		s.summary.Message = "reconnecting"
	case p.To == session.Connecting && s.summary.Severity == SeverityRetrying:
		// keep retry attempt visible while the next attempt runs
		s.summary.Message = fmt.Sprintf("connecting (attempt %d)", s.summary.Attempt+1)
	default:
		s.summary.Severity = SeverityOK
		s.summary.Message = lowerState(p.To)
		s.summary.Attempt = 0
		s.summary.NextRetry = 0
	}
}

func actionMessage(state session.State) string {
	switch state {
	case session.Unauthorized:
		return "sign in again: credential rejected"
	case session.NoCredential:
		return "sign in: no credential available"
	case session.VersionMismatch:
		return "update required"
	default:
		return state.String()
	}
}

func lowerState(state session.State) string {
	switch state {
	case session.Connected:
		return "connected"
	case session.Connecting:
		return "connecting"
	case session.Disconnecting:
		return "disconnecting"
	default:
		return "offline"
	}
}

// Current returns the latest summary.
func (s *Status) Current() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// NeedsAction reports whether the connection waits on the user.
func (s *Status) NeedsAction() bool {
	return s.Current().Severity == SeverityAction
}
