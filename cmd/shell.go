package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"sync-lab/domain/room"
	"sync-lab/domain/session"
	"sync-lab/projection"
	"sync-lab/services"
	"sync-lab/sink"
)

type sessionControl interface {
	Connect(ctx context.Context) error
	Disconnect()
	State() session.State
}

type statusReader interface {
	Current() projection.Summary
}

const usage = `commands:
  create <room>              invite <room> <uid>
  join <room>                leave <room>
  close <room>               say <room> <text>
  device <room> <id> [name]  allow <room> | deny <room>
  rooms                      status
  connect                    disconnect
  quit`

// Shell reads one command per line and runs it against the room service.
// Command errors are printed, never returned.
type Shell struct {
	out        io.Writer
	rooms      services.IRoomService
	store      sink.RoomLister
	status     statusReader
	connection sessionControl
}

func NewShell(out io.Writer, rooms services.IRoomService, store sink.RoomLister, status statusReader, connection sessionControl) *Shell {
	return &Shell{out: out, rooms: rooms, store: store, status: status, connection: connection}
}

// Open makes the first connect attempt. A failure is printed and returned,
// the shell stays usable and the connect command retries.
func (s *Shell) Open(ctx context.Context) error {
	err := s.connection.Connect(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "not connected: %v, type connect to retry\n", err)
	}
	return err
}

// Run returns nil on quit or end of input.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s: expected %d argument(s)", cmd, n)
		}
		return nil
	}

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, usage)
		return false, nil
	case "rooms":
		sink.RenderRooms(s.out, s.store.DerivedView())
		return false, nil
	case "status":
		summary := s.status.Current()
		fmt.Fprintf(s.out, "%s [%s] %s\n", s.connection.State(), summary.Severity, summary.Message)
		return false, nil
	case "connect":
		return false, s.connection.Connect(ctx)
	case "disconnect":
		s.connection.Disconnect()
		return false, nil
	case "create":
		if err := need(1); err != nil {
			return false, err
		}
		return false, s.rooms.CreateRoom(ctx, args[0])
	case "invite":
		if err := need(2); err != nil {
			return false, err
		}
		return false, s.rooms.InviteUser(ctx, args[0], args[1])
	case "join":
		if err := need(1); err != nil {
			return false, err
		}
		return false, s.rooms.JoinRoom(ctx, args[0])
	case "leave":
		if err := need(1); err != nil {
			return false, err
		}
		return false, s.rooms.LeaveRoom(ctx, args[0])
	case "close":
		if err := need(1); err != nil {
			return false, err
		}
		return false, s.rooms.CloseRoom(ctx, args[0])
	case "say":
		if err := need(2); err != nil {
			return false, err
		}
		return false, s.rooms.SendMessage(ctx, args[0], strings.Join(args[1:], " "))
	case "device":
		if err := need(2); err != nil {
			return false, err
		}
		device := room.Device{ID: args[1], Name: strings.Join(args[2:], " "), UpdatedAt: time.Now().UTC()}
		return false, s.rooms.PushDeviceInfo(ctx, args[0], device)
	case "allow":
		if err := need(1); err != nil {
			return false, err
		}
		return false, s.rooms.AllowVibes(ctx, args[0])
	case "deny":
		if err := need(1); err != nil {
			return false, err
		}
		return false, s.rooms.DenyVibes(ctx, args[0])
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}
}
