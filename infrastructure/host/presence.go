package host

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"sync-lab/contract"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/process"
)

var (
	_ contract.HostEnvironment = (*ProcessPresence)(nil)
	_ contract.Settings        = (*StaticSettings)(nil)
)

// ProcessPresence decides whether a user is around by looking for a host
// process, typically the desktop session or the app shell.
// An empty process name falls back to "this process is alive".
type ProcessPresence struct {
	log         *slog.Logger
	processName string
	listNames   func() ([]string, error)

	mu         sync.RWMutex
	accountUID string
}

func NewProcessPresence(log *slog.Logger, processName, accountUID string) *ProcessPresence {
	return &ProcessPresence{
		log:         log,
		processName: processName,
		listNames:   runningProcessNames,
		accountUID:  accountUID,
	}
}

func (p *ProcessPresence) UserPresent() bool {
	if p.processName == "" {
		_, err := process.NewProcess(int32(os.Getpid()))
		return err == nil
	}
	names, err := p.listNames()
	if err != nil {
		p.log.Warn("Unable to list processes", "error", err)
		return false
	}
	return lo.ContainsBy(names, func(name string) bool {
		return strings.EqualFold(name, p.processName)
	})
}

func (p *ProcessPresence) AccountUID() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.accountUID, p.accountUID != ""
}

// SetAccount switches the local account, an empty uid signs out.
func (p *ProcessPresence) SetAccount(uid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accountUID = uid
}

func runningProcessNames() ([]string, error) {
	processes, err := process.Processes()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(processes))
	for _, proc := range processes {
		// Processes may exit while we iterate
		name, err := proc.Name()
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// StaticSettings holds the user's "pause connection" switch.
type StaticSettings struct {
	paused atomic.Bool
}

func NewStaticSettings(paused bool) *StaticSettings {
	s := &StaticSettings{}
	s.paused.Store(paused)
	return s
}

func (s *StaticSettings) ConnectionPaused() bool { return s.paused.Load() }

func (s *StaticSettings) SetPaused(paused bool) { s.paused.Store(paused) }
