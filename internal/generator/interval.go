package generator

import "time"

// Interval names a historical sampling step.
type Interval string

const (
	Interval1m = Interval("1m")
	Interval1h = Interval("1h")
	Interval1d = Interval("1d")
	Interval1w = Interval("1w")
)

var intervalDurations = map[Interval]time.Duration{
	Interval1m: time.Minute,
	Interval1h: time.Hour,
	Interval1d: 24 * time.Hour,
	Interval1w: 7 * 24 * time.Hour,
}

// Duration returns the wall-clock step the interval represents.
func (i Interval) Duration() time.Duration {
	return intervalDurations[i]
}

func (i Interval) String() string {
	return string(i)
}

// IntervalFor picks the sampling step for a historical span: spans over a
// year resolve weekly, over a week daily, over a day hourly, else minutely.
// The span is compared on whole days.
func IntervalFor(span time.Duration) Interval {
	days := int(span.Hours() / 24)
	switch {
	case days > 365:
		return Interval1w
	case days > 7:
		return Interval1d
	case days > 1:
		return Interval1h
	default:
		return Interval1m
	}
}
