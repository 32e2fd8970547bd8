package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Games    int
	Workers  int
	MaxTicks int
	Width    int
	Height   int
	Seed     uint64

	// Results
	Played         int
	GameOvers      int
	TotalFrames    int
	TotalTicks     int
	TotalLocks     int
	TotalRows      int
	TotalTime      time.Duration
	GameTime       Stats[time.Duration]
	Score          Stats[int]
	BestSeed       uint64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats[T int | time.Duration] struct {
	Min     T
	Max     T
	Avg     T
	Samples []T
}

func (s *Stats[T]) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total T
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
	s.Avg = total / T(len(s.Samples))
}

// Add folds game results into the report and finalizes the statistics.
func (r *Report) Add(results []Result) {
	best := -1
	for _, res := range results {
		r.Played++
		if res.GameOver {
			r.GameOvers++
		}
		r.TotalFrames += res.Frames
		r.TotalTicks += res.Ticks
		r.TotalLocks += res.Locks
		r.TotalRows += res.Rows
		r.GameTime.Samples = append(r.GameTime.Samples, res.Elapsed)
		r.Score.Samples = append(r.Score.Samples, res.Score)

		if res.Score > best {
			best = res.Score
			r.BestSeed = res.Seed
		}
	}
	r.GameTime.Finalize()
	r.Score.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Bricks Soak Test Report

## Test Configuration
- **Games:** {{.Games}}
- **Workers:** {{.Workers}}
- **Frame Limit:** {{.MaxTicks}}
- **Stage:** {{.Width}}x{{.Height}}
- **Base Seed:** {{.Seed}}

## Results
- **Played:** {{.Played}} ({{.GameOvers}} ended in game over)
- **Total Test Time:** {{.TotalTime}}
- **Frames / Gravity Ticks:** {{.TotalFrames}} / {{.TotalTicks}}
- **Bricks Locked:** {{.TotalLocks}}
- **Rows Cleared:** {{.TotalRows}}
- **Score:**
  - **Avg:** {{.Score.Avg}}
  - **Min:** {{.Score.Min}}
  - **Max:** {{.Score.Max}} (seed {{.BestSeed}})
- **Game Time (wall):**
  - **Avg:** {{.GameTime.Avg}}
  - **Min:** {{.GameTime.Min}}
  - **Max:** {{.GameTime.Max}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
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
