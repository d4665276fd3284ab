package main

import (
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Mode     string
	Games    int
	Pieces   int
	MaxSteps int
	Seed     uint64

	// Results
	Classic       ModeStats
	Puzzle        ModeStats
	TotalTime     time.Duration
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// GameResult is the outcome of one simulated game. Placed and Rounds
// only apply to puzzle games.
type GameResult struct {
	Score     int
	Lines     int
	Steps     int
	Placed    int
	Rounds    int
	Completed bool
}

// ModeStats aggregates results over all games of one mode.
type ModeStats struct {
	Played    int
	Completed int
	Score     Stats
	Lines     Stats
	Steps     Stats
	Placed    Stats
	Rounds    Stats
}

func (m *ModeStats) Add(r GameResult) {
	m.Played++
	if r.Completed {
		m.Completed++
	}
	m.Score.Samples = append(m.Score.Samples, r.Score)
	m.Lines.Samples = append(m.Lines.Samples, r.Lines)
	m.Steps.Samples = append(m.Steps.Samples, r.Steps)
	m.Placed.Samples = append(m.Placed.Samples, r.Placed)
	m.Rounds.Samples = append(m.Rounds.Samples, r.Rounds)
}

func (m *ModeStats) Finalize() {
	m.Score.Finalize()
	m.Lines.Finalize()
	m.Steps.Finalize()
	m.Placed.Finalize()
	m.Rounds.Finalize()
}

type Stats struct {
	Min     int
	Max     int
	Avg     int
	Samples []int
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	total := 0
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / len(s.Samples)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Simulation Report

## Configuration
- **Mode:** {{.Mode}}
- **Games per Mode:** {{.Games}}
- **Catalog Size:** {{.Pieces}}
- **Step Cap:** {{.MaxSteps}}
- **Base Seed:** {{if .Seed}}{{.Seed}}{{else}}entropy{{end}}

{{if .Classic.Played}}## Classic Mode
- **Games:** {{.Classic.Played}} ({{.Classic.Completed}} reached game over)
- **Score:** avg {{.Classic.Score.Avg}}, min {{.Classic.Score.Min}}, max {{.Classic.Score.Max}}
- **Lines:** avg {{.Classic.Lines.Avg}}, min {{.Classic.Lines.Min}}, max {{.Classic.Lines.Max}}
- **Steps:** avg {{.Classic.Steps.Avg}}, min {{.Classic.Steps.Min}}, max {{.Classic.Steps.Max}}
{{end}}
{{if .Puzzle.Played}}## Puzzle Mode
- **Games:** {{.Puzzle.Played}} ({{.Puzzle.Completed}} reached game over)
- **Score:** avg {{.Puzzle.Score.Avg}}, min {{.Puzzle.Score.Min}}, max {{.Puzzle.Score.Max}}
- **Lines:** avg {{.Puzzle.Lines.Avg}}, min {{.Puzzle.Lines.Min}}, max {{.Puzzle.Lines.Max}}
- **Steps:** avg {{.Puzzle.Steps.Avg}}, min {{.Puzzle.Steps.Min}}, max {{.Puzzle.Steps.Max}}
- **Pieces Placed:** avg {{.Puzzle.Placed.Avg}}, min {{.Puzzle.Placed.Min}}, max {{.Puzzle.Placed.Max}}
- **Rounds Reached:** avg {{.Puzzle.Rounds.Avg}}, min {{.Puzzle.Rounds.Min}}, max {{.Puzzle.Rounds.Max}}
{{end}}
## Totals
- **Total Time:** {{.TotalTime}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
