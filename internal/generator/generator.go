// Package generator hosts sample producers for tracked signals.
package generator

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"signalgen-go/internal/metrics"
	"signalgen-go/internal/signal"
)

const (
	// ProviderRandom emits uniformly distributed values inside the configured range.
	ProviderRandom = "random"
	// ProviderWave emits a deterministic sinusoid with seeded jitter (useful for tests/offline work).
	ProviderWave = "wave"
)

// Generator produces samples for a set of tracked signal ids.
type Generator struct {
	provider     string
	signals      []string
	log          zerolog.Logger
	emitInterval time.Duration
	minValue     float64
	maxValue     float64
	rng          *rand.Rand
	mu           sync.RWMutex
}

// Option configures Generator construction parameters.
type Option func(*Generator)

const (
	defaultEmitInterval = time.Second
	defaultMinValue     = 0.0
	defaultMaxValue     = 100.0
	wavePeriod          = 60 * time.Second
	waveJitterFraction  = 0.05
)

// WithEmitInterval overrides the default one-second live cadence.
func WithEmitInterval(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.emitInterval = d
		}
	}
}

// WithValueRange overrides the default [0, 100] value range.
func WithValueRange(min, max float64) Option {
	return func(g *Generator) {
		if max > min {
			g.minValue = min
			g.maxValue = max
		}
	}
}

// WithSeed makes sample values reproducible across runs.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// New constructs a generator backed by the requested provider.
func New(provider string, signals []string, log zerolog.Logger, opts ...Option) *Generator {
	if provider == "" {
		provider = ProviderRandom
	}
	g := &Generator{
		provider:     strings.ToLower(provider),
		log:          log,
		emitInterval: defaultEmitInterval,
		minValue:     defaultMinValue,
		maxValue:     defaultMaxValue,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.setSignals(signals)
	for _, opt := range opts {
		opt(g)
	}
	if g.emitInterval <= 0 {
		g.emitInterval = defaultEmitInterval
	}
	return g
}

// SetSignals replaces the tracked signal list (deduplicated, sorted for determinism).
func (g *Generator) SetSignals(signals []string) {
	g.setSignals(signals)
}

func (g *Generator) setSignals(signals []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	unique := make(map[string]struct{}, len(signals))
	for _, id := range signals {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		unique[id] = struct{}{}
	}
	g.signals = g.signals[:0]
	for id := range unique {
		g.signals = append(g.signals, id)
	}
	sort.Strings(g.signals)
}

// Signals returns a copy of the tracked signal ids.
func (g *Generator) Signals() []string {
	return g.snapshotSignals()
}

func (g *Generator) snapshotSignals() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.signals))
	copy(out, g.signals)
	return out
}

// Run pushes samples onto the provided channel until the context is canceled.
func (g *Generator) Run(ctx context.Context, out chan<- signal.Sample) error {
	ticker := time.NewTicker(g.emitInterval)
	defer ticker.Stop()

	g.log.Info().Str("provider", g.provider).Strs("signals", g.snapshotSignals()).Msg("sample generation started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts := <-ticker.C:
			for _, id := range g.snapshotSignals() {
				sample := g.Sample(id, ts)
				select {
				case out <- sample:
					metrics.SamplesTotal.WithLabelValues(sample.ID, string(sample.Status)).Inc()
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// Sample produces one reading for the given signal id at the given instant.
func (g *Generator) Sample(id string, ts time.Time) signal.Sample {
	value := g.value(id, ts)
	value = round2(value)
	return signal.Sample{
		ID:     id,
		Ts:     ts,
		Value:  value,
		Status: signal.ClassifyValue(value),
	}
}

func (g *Generator) value(id string, ts time.Time) float64 {
	switch g.provider {
	case ProviderWave:
		return g.waveValue(id, ts)
	default:
		return g.randomValue()
	}
}

func (g *Generator) randomValue() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.minValue + g.rng.Float64()*(g.maxValue-g.minValue)
}

// waveValue centers a sinusoid inside the configured range; jitter keeps
// consecutive readings from being perfectly smooth while staying seeded.
func (g *Generator) waveValue(id string, ts time.Time) float64 {
	mid := (g.minValue + g.maxValue) / 2
	amp := (g.maxValue - g.minValue) / 2

	phase := float64(phaseOffset(id))
	angle := 2*math.Pi*float64(ts.UnixNano())/float64(wavePeriod.Nanoseconds()) + phase
	value := mid + amp*math.Sin(angle)

	g.mu.Lock()
	jitter := (g.rng.Float64()*2 - 1) * amp * waveJitterFraction
	g.mu.Unlock()

	return clamp(value+jitter, g.minValue, g.maxValue)
}

// phaseOffset keeps distinct signal ids from emitting identical waves.
func phaseOffset(id string) int {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}
	return sum % 7
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
