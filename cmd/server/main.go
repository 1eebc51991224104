// Binary server runs the full pipeline: generation, retention, rules,
// alert delivery, and the HTTP/GraphQL API.
package main

import (
	"context"
	"flag"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"signalgen-go/internal/config"
	"signalgen-go/internal/generator"
	"signalgen-go/internal/history"
	"signalgen-go/internal/metrics"
	"signalgen-go/internal/notify"
	"signalgen-go/internal/rule"
	"signalgen-go/internal/server"
	sig "signalgen-go/internal/signal"
	"signalgen-go/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to YAML config")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := util.NewLogger("info")
		boot.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel)

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := []generator.Option{
		generator.WithSeed(cfg.Generator.Seed),
		generator.WithValueRange(cfg.Generator.MinValue, cfg.Generator.MaxValue),
	}
	if cfg.Generator.EmitInterval > 0 {
		opts = append(opts, generator.WithEmitInterval(time.Duration(cfg.Generator.EmitInterval)*time.Millisecond))
	}
	gen := generator.New(cfg.Generator.Provider, cfg.Generator.Signals, log, opts...)
	samples := make(chan sig.Sample, 1024)

	go func() {
		if err := gen.Run(ctx, samples); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("generator stopped")
			cancel()
		}
	}()

	store := history.NewStore(cfg.History.Capacity)
	stats := history.NewStats()
	hub := server.NewHub()

	var recorder *history.JSONLRecorder
	if cfg.History.JSONLPath != "" {
		recorder, err = history.NewJSONLRecorder(cfg.History.JSONLPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open sample recorder")
		}
		defer recorder.Close()
	}

	rollup := history.NewRollup(store, log,
		time.Duration(cfg.History.RawRetentionSecs)*time.Second, time.Minute)
	if err := rollup.Start(cfg.History.RollupSchedule); err != nil {
		log.Fatal().Err(err).Msg("start history rollup")
	}
	defer rollup.Stop()

	activeRule := rule.Build(cfg.Rules.Mode, rule.Params{
		HighStreak:      cfg.Rules.Params.HighStreak,
		SpikeThreshold:  cfg.Rules.Params.SpikeThreshold,
		SpikeWindowSecs: cfg.Rules.Params.SpikeWindowSecs,
	})
	limits := rule.Limits{
		MaxAlertsPerWindow: cfg.Rules.MaxAlertsPerWindow,
		Window:             time.Duration(cfg.Rules.AlertWindowSecs) * time.Second,
	}
	notifier := notify.NewNotifier(log)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sample := <-samples:
				store.Append(sample)
				stats.Observe(sample)
				if recorder != nil {
					recorder.Record(sample)
				}
				hub.Publish(sample)

				alert := activeRule.OnSample(sample)
				if alert == nil {
					continue
				}
				if !limits.Allow(alert.Signal, alert.Ts) {
					log.Debug().Str("signal", alert.Signal).Msg("alert suppressed by budget")
					continue
				}
				if err := notifier.Send(alert); err != nil {
					log.Error().Err(err).Msg("alert delivery failed")
				}
			}
		}
	}()

	api := server.New(log, cfg.Server, gen, store, stats, hub)
	log.Info().Str("rule", activeRule.Name()).Msg("pipeline started")
	if err := api.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("api server")
	}
	log.Info().Msg("shutting down")
}
