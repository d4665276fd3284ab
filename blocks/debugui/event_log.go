package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/blocks"
)

// EventLog keeps the most recent engine events in a ring buffer and
// renders them as a table. Wire its Observer into the game's config.
type EventLog struct {
	entries []blocks.Event
	next    int
	filled  bool
}

func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = 64
	}
	return &EventLog{entries: make([]blocks.Event, capacity)}
}

// Observer returns the callback to register with a game config.
func (l *EventLog) Observer() blocks.Observer {
	return func(e blocks.Event) {
		l.entries[l.next] = e
		l.next = (l.next + 1) % len(l.entries)
		if l.next == 0 {
			l.filled = true
		}
	}
}

// Clear drops all recorded events.
func (l *EventLog) Clear() {
	l.next = 0
	l.filled = false
}

// events returns the recorded events oldest first.
func (l *EventLog) events() []blocks.Event {
	if !l.filled {
		return l.entries[:l.next]
	}
	out := make([]blocks.Event, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	out = append(out, l.entries[:l.next]...)
	return out
}

func (l *EventLog) Render() {
	if !imgui.BeginV("Event Log", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.Button("Clear") {
		l.Clear()
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Events", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Detail")
		imgui.TableHeadersRow()

		for _, e := range l.events() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(e.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(eventDetail(e))
		}

		imgui.EndTable()
	}

	imgui.End()
}

func eventDetail(e blocks.Event) string {
	switch e.Kind {
	case blocks.EventPieceChosen, blocks.EventSpawned:
		return e.ShapeID
	case blocks.EventLocked, blocks.EventPiecePlaced:
		return fmt.Sprintf("%s at (%d,%d)", e.ShapeID, e.At.Row, e.At.Col)
	case blocks.EventLinesCleared:
		return fmt.Sprintf("%d lines, score %d", e.Lines, e.Score)
	case blocks.EventRoundStarted:
		return fmt.Sprintf("round %d", e.Round)
	case blocks.EventGameOver:
		return fmt.Sprintf("score %d", e.Score)
	}
	return ""
}
