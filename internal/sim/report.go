package sim

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/internal/drop"
)

type Report struct {
	// Configuration
	Seed     uint64
	Frames   int
	Duration time.Duration
	TPS      int

	// Results
	TotalTime     time.Duration
	FrameTime     Stats
	Snapshot      drop.Snapshot
	Systems       []ecs.SystemStats
	Caught        int
	StoneHits     int
	StoneSplashes int
	BucketMinX    float64
	BucketMaxX    float64
	PeakWater     int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min, s.Max = s.Samples[0], s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Drop Simulation Report

## Run
- **Seed:** {{.Seed}}
{{- if .Frames}}
- **Frames requested:** {{.Frames}} (fixed step at {{.TPS}} TPS)
{{- else}}
- **Duration requested:** {{.Duration}} (real time at {{.TPS}} TPS)
{{- end}}
- **Frames run:** {{.Snapshot.Frame}}
- **Wall time:** {{.TotalTime}}

## Session
- **Score:** {{.Snapshot.Score}}
- **Raindrops caught:** {{.Caught}}
- **Stone hits:** {{.StoneHits}}
- **Stones missed:** {{.StoneSplashes}}
- **Bucket range:** {{printf "%.1f" .BucketMinX}} .. {{printf "%.1f" .BucketMaxX}}
- **Peak water:** {{.PeakWater}}
- **Pools:**{{range .Snapshot.Pools}} {{.}}{{end}}
- **Still falling:**{{range $kind, $n := .Snapshot.Falling}} {{$kind}}={{$n}}{{end}}
- **Entities / archetypes:** {{.Snapshot.Entities}} / {{.Snapshot.Archetypes}}

## Frame Time
- **Avg:** {{.FrameTime.Avg}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}

## Systems
{{- range .Systems}}
- {{printf "%-22s" .Name}} avg {{.AvgDuration}}  max {{.MaxDuration}}  runs {{.ExecutionCount}}
{{- end}}

## Memory
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB -> {{mb .MemStatsEnd.HeapAlloc}} MB
- Total Alloc: delta {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB
- Num GC:      delta {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

var reportFuncs = template.FuncMap{
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
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
