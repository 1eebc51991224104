package integration

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"signalgen-go/internal/generator"
	"signalgen-go/internal/history"
	"signalgen-go/internal/notify"
	"signalgen-go/internal/rule"
	sig "signalgen-go/internal/signal"
)

func TestPipelineProducesAlert(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The value range sits entirely above the critical threshold so the
	// threshold rule must fire on the first sample.
	gen := generator.New(generator.ProviderRandom, []string{"temperature"}, zerolog.Nop(),
		generator.WithEmitInterval(10*time.Millisecond),
		generator.WithValueRange(95, 100),
		generator.WithSeed(3))
	samples := make(chan sig.Sample, 8)
	go func() {
		_ = gen.Run(ctx, samples)
	}()

	r := rule.Build("threshold", rule.Params{HighStreak: 3})
	limits := rule.Limits{MaxAlertsPerWindow: 10, Window: time.Minute}

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	notifier := notify.NewNotifier(logger)
	store := history.NewStore(64)
	stats := history.NewStats()

	for {
		select {
		case s := <-samples:
			store.Append(s)
			stats.Observe(s)

			alert := r.OnSample(s)
			if alert == nil {
				continue
			}
			if !limits.Allow(alert.Signal, alert.Ts) {
				t.Fatalf("expected alert budget to allow first alert")
			}
			if err := notifier.Send(alert); err != nil {
				t.Fatalf("Send returned error: %v", err)
			}
			if alert.ID == "" {
				t.Fatalf("expected alert id assigned")
			}
			if !strings.Contains(buf.String(), "alert") {
				t.Fatalf("expected log output to include alert, got %s", buf.String())
			}
			if _, ok := store.Latest("temperature"); !ok {
				t.Fatalf("expected sample retained in store")
			}
			snap := stats.Snapshot()["temperature"]
			if snap.Count == 0 || snap.Min < 95 {
				t.Fatalf("unexpected stats snapshot: %+v", snap)
			}
			return
		case <-ctx.Done():
			t.Fatalf("timed out waiting for integration flow")
		}
	}
}
