package host

import (
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestProcessPresence_UserPresent(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		err     error
		present bool
	}{
		{name: "host process running", names: []string{"init", "Desktop"}, present: true},
		{name: "host process missing", names: []string{"init", "sshd"}, present: false},
		{name: "listing fails", err: stderrors.New("denied"), present: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProcessPresence(logs.GetLoggerFromLevel(slog.LevelDebug), "desktop", "u1")
			p.listNames = func() ([]string, error) { return tt.names, tt.err }

			require.Equal(t, tt.present, p.UserPresent())
		})
	}
}

func TestProcessPresence_SelfWhenNoProcessName(t *testing.T) {
	p := NewProcessPresence(logs.GetLoggerFromLevel(slog.LevelDebug), "", "u1")

	require.True(t, p.UserPresent())
}

func TestProcessPresence_Account(t *testing.T) {
	req := require.New(t)
	p := NewProcessPresence(logs.GetLoggerFromLevel(slog.LevelDebug), "", "")

	_, ok := p.AccountUID()
	req.False(ok)

	p.SetAccount("u7")
	uid, ok := p.AccountUID()
	req.True(ok)
	req.Equal("u7", uid)
}

func TestStaticSettings(t *testing.T) {
	req := require.New(t)
	s := NewStaticSettings(true)
	req.True(s.ConnectionPaused())

	s.SetPaused(false)
	req.False(s.ConnectionPaused())
}
