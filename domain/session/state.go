// Package session describes the lifecycle of the single logical connection
// to the coordination service.
package session

import "log/slog"

// State is the connection state. Exactly one is active per connection.
type State int

const (
	Offline State = iota
	Connecting
	Connected
	Reconnecting
	Disconnecting
	Unauthorized
	NoCredential
	VersionMismatch
)

func (s State) String() string {
	switch s {
	case Offline:
		return "Offline"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Reconnecting:
		return "Reconnecting"
	case Disconnecting:
		return "Disconnecting"
	case Unauthorized:
		return "Unauthorized"
	case NoCredential:
		return "NoCredential"
	case VersionMismatch:
		return "VersionMismatch"
	default:
		return "Unknown"
	}
}

// MarshalText makes states readable in JSON payloads and structured logs.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s State) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// IsTerminal reports whether no automatic retry happens from s.
// Terminal states need a user action (fix credential, update client).
func (s State) IsTerminal() bool {
	return s == Unauthorized || s == NoCredential || s == VersionMismatch
}

// IsLive reports whether a connection scope is running in s.
func (s State) IsLive() bool {
	return s == Connecting || s == Connected || s == Reconnecting
}
