package history

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Rollup periodically compacts raw samples older than the retention window
// into averaged buckets.
type Rollup struct {
	store     *Store
	log       zerolog.Logger
	retention time.Duration
	step      time.Duration
	cron      *cron.Cron
}

// NewRollup wires a compaction job against the store. Retention bounds how
// long raw samples are kept; step sizes the averaged buckets.
func NewRollup(store *Store, log zerolog.Logger, retention, step time.Duration) *Rollup {
	if retention <= 0 {
		retention = time.Hour
	}
	if step <= 0 {
		step = time.Minute
	}
	return &Rollup{
		store:     store,
		log:       log,
		retention: retention,
		step:      step,
		cron:      cron.New(),
	}
}

// Start schedules the compaction job; spec uses cron syntax (e.g. "@every 1m").
func (r *Rollup) Start(spec string) error {
	if spec == "" {
		spec = "@every 1m"
	}
	if _, err := r.cron.AddFunc(spec, r.runOnce); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for a running job to finish.
func (r *Rollup) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Rollup) runOnce() {
	cutoff := time.Now().Add(-r.retention)
	r.store.Compact(cutoff, r.step)
	r.log.Debug().Time("cutoff", cutoff).Dur("step", r.step).Msg("history compacted")
}
