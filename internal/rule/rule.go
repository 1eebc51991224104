// Package rule contains alerting logic wired into the live sample stream.
package rule

import (
	"strings"

	sig "signalgen-go/internal/signal"
)

// Rule defines behaviour shared by rule implementations evaluated per sample.
type Rule interface {
	OnSample(s sig.Sample) *sig.Alert
	Name() string
}

// Params expresses tunable knobs required by rule constructors.
type Params struct {
	HighStreak      int
	SpikeThreshold  float64
	SpikeWindowSecs int
}

// Build returns a rule implementation matching the configured mode.
func Build(mode string, params Params) Rule {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "threshold":
		return NewThreshold(params.HighStreak)
	case "spike":
		return NewSpike(params.SpikeThreshold, params.SpikeWindowSecs)
	default:
		return NewThreshold(params.HighStreak)
	}
}
