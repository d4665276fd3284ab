// Package debugui provides immediate-mode inspector windows for
// blockfall games using Dear ImGui. Each inspector renders one window
// per frame from an engine snapshot; none of them mutate game state
// except where a widget explicitly wires a game operation.
package debugui

import (
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
)

// InputState tracks Dear ImGui's input capture state for the current
// frame. Use this to decide whether keyboard or mouse events belong to
// the overlay or to the game.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// CaptureState reads the current capture state from the ImGui context.
func CaptureState() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// renderBoard draws a board grid as one text line per row, "." for
// empty cells and the first rune of the occupying shape id otherwise.
func renderBoard(rows [][]string) {
	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		for _, cell := range row {
			if cell == "" {
				sb.WriteByte('.')
				continue
			}
			for _, r := range cell {
				sb.WriteRune(r)
				break
			}
		}
		imgui.Text(sb.String())
	}
}
