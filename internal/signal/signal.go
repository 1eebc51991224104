// Package signal standardizes payloads shared between sample generation and rule layers.
package signal

import "time"

// Status buckets a sample value by severity.
type Status string

const (
	// StatusNormal covers values up to and including 60.
	StatusNormal Status = "normal"
	// StatusHigh covers values above 60 up to and including 90.
	StatusHigh Status = "high"
	// StatusCritical covers values above 90.
	StatusCritical Status = "critical"
)

const (
	// CriticalThreshold is the exclusive lower bound for critical samples.
	CriticalThreshold = 90.0
	// HighThreshold is the exclusive lower bound for high samples.
	HighThreshold = 60.0
)

// ClassifyValue maps a value onto its severity status.
func ClassifyValue(v float64) Status {
	switch {
	case v > CriticalThreshold:
		return StatusCritical
	case v > HighThreshold:
		return StatusHigh
	default:
		return StatusNormal
	}
}

// Sample models one reading of a named signal.
type Sample struct {
	ID     string    `json:"id"`
	Ts     time.Time `json:"timestamp"`
	Value  float64   `json:"value"`
	Status Status    `json:"status"`
}

// Alert expresses a rule firing against the live sample stream.
type Alert struct {
	ID     string    `json:"id"`
	Signal string    `json:"signal"`
	Rule   string    `json:"rule"`
	Reason string    `json:"reason"`
	Value  float64   `json:"value"`
	Ts     time.Time `json:"timestamp"`
}
