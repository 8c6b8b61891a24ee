package sink

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"sync-lab/contract"
	"sync-lab/domain/event"
	"sync-lab/domain/room"
	"sync-lab/domain/session"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var _ contract.EventSink = (*ConsoleSink)(nil)

// RoomLister is the read side of the replica store.
type RoomLister interface {
	DerivedView() []room.View
}

// ConsoleSink prints connection state lines and, after room changes,
// the table of known rooms.
type ConsoleSink struct {
	mu      sync.Mutex
	out     io.Writer
	rooms   RoomLister
	colours bool
}

func NewConsoleSink(out io.Writer, rooms RoomLister, colours bool) *ConsoleSink {
	return &ConsoleSink{out: out, rooms: rooms, colours: colours}
}

func (c *ConsoleSink) Consume(ctx context.Context, e event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Type {
	case event.StateChangedType:
		p, ok := e.Payload.(event.StateChanged)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		line := fmt.Sprintf("state %s -> %s", p.From, p.To)
		if p.Cause != "" {
			line += " (" + p.Cause + ")"
		}
		return c.println(e.CreatedAt, stateStyle(p.To), line)
	case event.RetryScheduledType:
		p, ok := e.Payload.(event.RetryScheduled)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		return c.println(e.CreatedAt, color.New(color.FgYellow),
			fmt.Sprintf("retry #%d in %s: %s", p.Attempt, p.Delay.Round(time.Millisecond), p.Cause))
	case event.VersionMismatchType:
		p, ok := e.Payload.(event.VersionMismatch)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		return c.println(e.CreatedAt, color.New(color.FgRed, color.OpBold),
			fmt.Sprintf("client %s is not compatible with server %s, please update", p.Client, p.Server))
	case event.WarningType:
		p, ok := e.Payload.(event.Warning)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		line := p.Reason
		if p.Err != nil {
			line += ": " + p.Err.Error()
		}
		return c.println(e.CreatedAt, color.New(color.FgYellow), "warning "+line)
	case event.ChatMessageType:
		p, ok := e.Payload.(event.ChatMessage)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		sender := lo.Ternary(p.Message.Alias != "", p.Message.Alias, p.Message.SenderUID)
		return c.println(p.Message.CreatedAt, color.New(color.FgCyan),
			fmt.Sprintf("[%s] %s: %s", p.Message.RoomName, sender, p.Message.Content))
	case event.RoomUpsertedType, event.RoomRemovedType, event.RoomLeftType,
		event.MemberJoinedType, event.MemberLeftType, event.MemberRemovedType:
		if c.rooms == nil {
			return nil
		}
		RenderRooms(c.out, c.rooms.DerivedView())
	}
	return nil
}

func (c *ConsoleSink) println(at time.Time, style color.Style, line string) error {
	if c.colours {
		line = style.Render(line)
	}
	_, err := fmt.Fprintf(c.out, "%s %s\n", at.Format("15:04:05"), line)
	return err
}

func stateStyle(state session.State) color.Style {
	switch {
	case state == session.Connected:
		return color.New(color.FgGreen)
	case state.IsTerminal():
		return color.New(color.FgRed, color.OpBold)
	case state == session.Reconnecting:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}

// RenderRooms writes one row per room: host, member count, active members,
// pending invites and message count.
func RenderRooms(out io.Writer, views []room.View) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Room", "Host", "Members", "Active", "Invites", "Messages"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, v := range views {
		active := lo.FilterMap(v.Members, func(m room.ParticipantView, _ int) (string, bool) {
			return lo.Ternary(m.Alias != "", m.Alias, m.UID), m.Active
		})
		host := v.HostUID
		if h, ok := v.Member(v.HostUID); ok && h.Alias != "" {
			host = h.Alias
		}
		table.Append([]string{
			v.Name,
			host,
			strconv.Itoa(len(v.Members)),
			strings.Join(active, ","),
			strconv.Itoa(len(v.Invites)),
			strconv.Itoa(len(v.Messages)),
		})
	}
	table.Render()
}
