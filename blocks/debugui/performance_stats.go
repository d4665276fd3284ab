package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

func NewFrameStats(historyFrames int) FrameStats {
	return FrameStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

// FrameStats renders a window with a rolling frame-time graph.
type FrameStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func (fs *FrameStats) Render(deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	fs.frameHistory[fs.frameIndex] = deltaTime * 1000.0
	fs.frameIndex = (fs.frameIndex + 1) % fs.historyFrames

	var avgFrameTime float32
	for _, ft := range fs.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(fs.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &fs.frameHistory[0], int32(len(fs.frameHistory)))

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
