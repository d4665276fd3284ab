package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/blocks"
)

// ClassicInspector renders a window with the live state of a classic
// game: score, active and next piece, and a text view of the board.
type ClassicInspector struct {
	showBoard bool
}

func NewClassicInspector() ClassicInspector {
	return ClassicInspector{showBoard: true}
}

func (ci *ClassicInspector) Render(g *blocks.Game) {
	if !imgui.BeginV("Game Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := g.Snapshot()

	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Lines: %d", snap.LinesCleared))
	if snap.GameOver {
		imgui.Text("State: game over")
	} else {
		imgui.Text("State: running")
	}

	imgui.Separator()

	if snap.ActiveID != "" {
		imgui.Text(fmt.Sprintf("Active: %s at (%d,%d)", snap.ActiveID, snap.ActiveAt.Row, snap.ActiveAt.Col))
	} else {
		imgui.Text("Active: none")
	}
	imgui.Text(fmt.Sprintf("Next: %s", snap.NextID))

	imgui.Separator()

	imgui.Checkbox("Show board", &ci.showBoard)
	if ci.showBoard {
		if imgui.TreeNodeStr("Board") {
			renderBoard(snap.Board)
			imgui.TreePop()
		}
	}

	imgui.End()
}
