package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/zonefall/ecs"
	"github.com/plus3/zonefall/game"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Players  int
	Mode     string
	Cols     int
	Seed     uint64

	// Results
	Runs          int
	Ticks         int64
	TotalTime     time.Duration
	SimulatedTime time.Duration
	UpdateTime    Stats
	Endings       map[string]int
	BestScore     int
	BestLevel     int
	TotalLines    int
	MaxBombs      int
	Violations    int
	Systems       map[string]*SystemTotals

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats

	lastRun string
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Add(d time.Duration) {
	s.Samples = append(s.Samples, d)
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
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
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[len(sorted)*99/100]
}

// SystemTotals accumulates one system's cost across every run; the
// scheduler is rebuilt on restart.
type SystemTotals struct {
	Name       string
	Executions int64
	Total      time.Duration
	Max        time.Duration
}

func (t *SystemTotals) Avg() time.Duration {
	if t.Executions == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Executions)
}

// Observe checks one tick's snapshot: every live piece must sit inside its
// owner's zone and on the board.
func (r *Report) Observe(snap *game.Snapshot) {
	r.Ticks++
	r.MaxBombs = max(r.MaxBombs, len(snap.Bombs))
	for _, p := range snap.Players {
		if p.Piece == nil {
			continue
		}
		for _, pos := range p.Piece.Cells() {
			if !p.Zone.Contains(pos.Col) || pos.Row >= snap.Board.Rows() {
				r.Violations++
			}
		}
	}
}

// EndRun folds a finished run into the totals. Calling it twice for the
// same run is harmless.
func (r *Report) EndRun(snap *game.Snapshot, stats *ecs.SchedulerStats) {
	id := snap.RunID.String()
	if id == r.lastRun {
		return
	}
	r.lastRun = id
	r.Runs++

	ending := "unfinished"
	if snap.Status == game.StatusGameOver {
		ending = snap.Reason.String()
	}
	r.Endings[ending]++
	r.BestScore = max(r.BestScore, snap.TotalScore)
	r.BestLevel = max(r.BestLevel, snap.Level)
	r.TotalLines += snap.TotalLines

	for _, s := range stats.Systems {
		t := r.Systems[s.Name]
		if t == nil {
			t = &SystemTotals{Name: s.Name}
			r.Systems[s.Name] = t
		}
		t.Executions += s.ExecutionCount
		t.Total += s.TotalDuration
		t.Max = max(t.Max, s.MaxDuration)
	}
}

// Finish records the run still in progress when the soak stops. A run that
// ended on the final tick was already recorded when it ended.
func (r *Report) Finish(snap *game.Snapshot, stats *ecs.SchedulerStats) {
	if snap.Status == game.StatusGameOver {
		return
	}
	r.EndRun(snap, stats)
}

// SortedSystems orders systems by total cost, highest first.
func (r *Report) SortedSystems() []*SystemTotals {
	out := make([]*SystemTotals, 0, len(r.Systems))
	for _, t := range r.Systems {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *SystemTotals) int {
		return cmp.Compare(b.Total, a.Total)
	})
	return out
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Zonefall Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Players:** {{.Players}} ({{.Mode}}, {{.Cols}} columns)
- **Seed:** {{.Seed}}

## Play
- **Runs:** {{.Runs}}
- **Ticks:** {{.Ticks}} ({{.SimulatedTime}} simulated)
- **Best Score:** {{.BestScore}} (level {{.BestLevel}})
- **Lines Cleared:** {{.TotalLines}}
- **Most Bombs Pending:** {{.MaxBombs}}
- **Zone Violations:** {{.Violations}}
{{range $reason, $n := .Endings}}- Ended by {{$reason}}: {{$n}}
{{end}}
## Tick Time
- **Total Test Time:** {{.TotalTime}}
- **Avg:** {{.UpdateTime.Avg}}
- **Min:** {{.UpdateTime.Min}}
- **Max:** {{.UpdateTime.Max}}
- **P99:** {{.UpdateTime.P99}}

## Systems
| System | Executions | Avg | Max | Total |
|---|---|---|---|---|
{{range .SortedSystems}}| {{.Name}} | {{.Executions}} | {{.Avg}} | {{.Max}} | {{.Total}} |
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc:    {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB during the soak
- Num GC:         {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (sub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"sub64": func(a, b uint64) uint64 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
