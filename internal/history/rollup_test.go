package history

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"signalgen-go/internal/signal"
)

func TestRollupRunOnceCompacts(t *testing.T) {
	store := NewStore(100)
	old := time.Now().Add(-2 * time.Hour)
	store.Append(signal.Sample{ID: "t", Ts: old, Value: 10})
	store.Append(signal.Sample{ID: "t", Ts: old.Add(10 * time.Second), Value: 30})

	rollup := NewRollup(store, zerolog.Nop(), time.Hour, time.Minute)
	rollup.runOnce()

	all := store.Range("t", old.Add(-time.Hour), time.Now())
	if len(all) != 1 {
		t.Fatalf("expected one averaged bucket, got %d", len(all))
	}
	if all[0].Value != 20 {
		t.Fatalf("expected bucket mean 20, got %.2f", all[0].Value)
	}
}

func TestRollupStartRejectsBadSpec(t *testing.T) {
	rollup := NewRollup(NewStore(10), zerolog.Nop(), time.Hour, time.Minute)
	if err := rollup.Start("not a cron spec"); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}
}

func TestRollupStartAndStop(t *testing.T) {
	rollup := NewRollup(NewStore(10), zerolog.Nop(), time.Hour, time.Minute)
	if err := rollup.Start("@every 1h"); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	rollup.Stop()
}
