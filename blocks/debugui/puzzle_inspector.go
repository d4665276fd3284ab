package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/blocks"
)

// PuzzleInspector renders a window with the live state of a puzzle
// game: score, the current round's pieces with their slot ids, and a
// text view of the board. The selection buttons call back into the
// game, everything else is read-only.
type PuzzleInspector struct {
	showBoard bool
}

func NewPuzzleInspector() PuzzleInspector {
	return PuzzleInspector{showBoard: true}
}

func (pi *PuzzleInspector) Render(g *blocks.PuzzleGame) {
	if !imgui.BeginV("Puzzle Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := g.Snapshot()

	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Lines: %d", snap.LinesCleared))
	imgui.Text(fmt.Sprintf("Placed: %d", snap.PiecesPlaced))
	imgui.Text(fmt.Sprintf("Round: %d", snap.Round))
	if snap.GameOver {
		imgui.Text("State: game over")
	} else {
		imgui.Text("State: running")
	}

	imgui.Separator()

	if imgui.Button("Prev") {
		g.SelectPreviousPiece()
	}
	imgui.SameLine()
	if imgui.Button("Next") {
		g.SelectNextPiece()
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("RoundPieces", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Shape")
		imgui.TableSetupColumn("Active")
		imgui.TableHeadersRow()

		for _, rp := range snap.RoundPieces {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", rp.Slot))
			imgui.TableNextColumn()
			imgui.Text(rp.ShapeID)
			imgui.TableNextColumn()
			if rp.Slot == snap.ActiveSlot {
				imgui.Text(fmt.Sprintf("at (%d,%d)", snap.ActiveAt.Row, snap.ActiveAt.Col))
			} else {
				imgui.Text("")
			}
		}

		imgui.EndTable()
	}

	if ghost, ok := g.GhostAnchor(); ok {
		imgui.Text(fmt.Sprintf("Ghost: (%d,%d)", ghost.Row, ghost.Col))
	}

	imgui.Separator()

	imgui.Checkbox("Show board", &pi.showBoard)
	if pi.showBoard {
		if imgui.TreeNodeStr("Board") {
			renderBoard(snap.Board)
			imgui.TreePop()
		}
	}

	imgui.End()
}
