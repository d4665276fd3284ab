package blocks

// EventKind enumerates the state transitions engines report.
type EventKind int

const (
	// EventPieceChosen fires when the selector picks a piece, either as
	// the classic next piece or as part of a puzzle round.
	EventPieceChosen EventKind = iota
	// EventSpawned fires when a piece becomes active on the board.
	EventSpawned
	// EventLocked fires when a classic piece is stamped onto the board.
	EventLocked
	// EventPiecePlaced fires when a puzzle piece is committed.
	EventPiecePlaced
	// EventLinesCleared fires after one or more full rows clear.
	EventLinesCleared
	// EventRoundStarted fires when a puzzle round is replenished.
	EventRoundStarted
	// EventGameOver fires once, when the game reaches its terminal state.
	EventGameOver
)

var eventKindNames = [...]string{
	"piece_chosen",
	"spawned",
	"locked",
	"piece_placed",
	"lines_cleared",
	"round_started",
	"game_over",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is a structured transition result. Engines emit events through
// the configured Observer instead of logging; fields beyond Kind are
// populated when they apply.
type Event struct {
	Kind    EventKind
	ShapeID string
	At      Anchor
	Lines   int
	Score   int
	Round   int
}

// Observer receives engine events. Observers must not call back into the
// engine that emitted the event.
type Observer func(Event)

// notify is a nil-safe observer dispatch shared by both engines.
func notify(o Observer, e Event) {
	if o != nil {
		o(e)
	}
}
