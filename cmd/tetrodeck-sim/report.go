package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tetrodeck/loop"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Sessions int
	Seed     uint64

	// Results
	Results        []SessionResult
	TotalTime      time.Duration
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats accumulates durations without keeping every sample.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int64
	Total time.Duration
}

func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Count++
	s.Total += d
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.Total / time.Duration(s.Count)
}

// Totals sums the per-session counters.
func (r *Report) Totals() SessionResult {
	var t SessionResult
	for _, res := range r.Results {
		t.Games += res.Games
		t.Pieces += res.Pieces
		t.Lines += res.Lines
		t.Rounds += res.Rounds
		t.Purchases += res.Purchases
		t.Frames += res.Frames
		t.BestRound = max(t.BestRound, res.BestRound)
		t.BestScore = max(t.BestScore, res.BestScore)
		if res.FrameTime.Count > 0 {
			if t.FrameTime.Count == 0 || res.FrameTime.Min < t.FrameTime.Min {
				t.FrameTime.Min = res.FrameTime.Min
			}
			t.FrameTime.Max = max(t.FrameTime.Max, res.FrameTime.Max)
			t.FrameTime.Count += res.FrameTime.Count
			t.FrameTime.Total += res.FrameTime.Total
		}
	}
	t.FrameTime.Finalize()
	t.Systems = r.Systems()
	return t
}

// Systems merges per-system timings across sessions by system name.
func (r *Report) Systems() []loop.SystemStats {
	var merged []loop.SystemStats
	index := map[string]int{}
	for _, res := range r.Results {
		for _, st := range res.Systems {
			i, ok := index[st.Name]
			if !ok {
				index[st.Name] = len(merged)
				merged = append(merged, st)
				continue
			}
			m := &merged[i]
			m.MinDuration = min(m.MinDuration, st.MinDuration)
			m.MaxDuration = max(m.MaxDuration, st.MaxDuration)
			m.ExecutionCount += st.ExecutionCount
			m.TotalDuration += st.TotalDuration
		}
	}
	for i := range merged {
		if merged[i].ExecutionCount > 0 {
			merged[i].AvgDuration = merged[i].TotalDuration / time.Duration(merged[i].ExecutionCount)
		}
	}
	return merged
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tetrodeck Bot Simulation Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Sessions:** {{.Sessions}}
- **Seed:** {{.Seed}}
{{with .Totals}}
## Totals
- **Frames:** {{.Frames}}
- **Pieces Placed:** {{.Pieces}}
- **Lines Cleared:** {{.Lines}}
- **Rounds Completed:** {{.Rounds}}
- **Games Over:** {{.Games}}
- **Purchases:** {{.Purchases}}
- **Best Round:** {{.BestRound}}
- **Best Score:** {{.BestScore}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Systems
| System | Executions | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Sessions
| Session | Seed | Games | Best Round | Best Score | Lines | Frames |
|---|---|---|---|---|---|---|
{{range .Results}}| {{short .ID}} | {{.Seed}} | {{.Games}} | {{.BestRound}} | {{.BestScore}} | {{.Lines}} | {{.Frames}} |
{{end}}
## Memory Usage
- Heap Alloc:     {{.MemStatsStart.HeapAlloc | mb}} MB (start) -> {{.MemStatsEnd.HeapAlloc | mb}} MB (end)
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"short": func(id string) string {
			if len(id) > 8 {
				return id[:8]
			}
			return id
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
