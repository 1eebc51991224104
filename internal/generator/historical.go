package generator

import (
	"time"

	"signalgen-go/internal/signal"
)

// Historical produces a backdated series for [start, end), one sample per
// interval step chosen from the span.
func (g *Generator) Historical(id string, start, end time.Time) []signal.Sample {
	if !end.After(start) {
		return nil
	}

	step := IntervalFor(end.Sub(start)).Duration()
	out := make([]signal.Sample, 0, int(end.Sub(start)/step)+1)
	for ts := start; ts.Before(end); ts = ts.Add(step) {
		out = append(out, g.Sample(id, ts))
	}
	return out
}
