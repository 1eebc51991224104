// Binary backfill seeds the JSONL sample log with a generated historical range.
package main

import (
	"flag"
	"time"

	"signalgen-go/internal/config"
	"signalgen-go/internal/generator"
	"signalgen-go/internal/history"
	"signalgen-go/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to YAML config")
	signalID := flag.String("signal", "", "signal id to backfill (default: first configured)")
	startRaw := flag.String("start", "", "range start (RFC 3339, default end minus 7 days)")
	endRaw := flag.String("end", "", "range end (RFC 3339, default now)")
	out := flag.String("out", "", "output JSONL path (default: history.jsonl_path from config)")
	flag.Parse()

	log := util.NewLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	id := *signalID
	if id == "" {
		if len(cfg.Generator.Signals) == 0 {
			log.Fatal().Msg("no signal id given and none configured")
		}
		id = cfg.Generator.Signals[0]
	}

	end := time.Now()
	if *endRaw != "" {
		end, err = time.Parse(time.RFC3339, *endRaw)
		if err != nil {
			log.Fatal().Err(err).Msg("parse end")
		}
	}
	start := end.Add(-7 * 24 * time.Hour)
	if *startRaw != "" {
		start, err = time.Parse(time.RFC3339, *startRaw)
		if err != nil {
			log.Fatal().Err(err).Msg("parse start")
		}
	}

	path := *out
	if path == "" {
		path = cfg.History.JSONLPath
	}
	if path == "" {
		log.Fatal().Msg("no output path given and none configured")
	}

	gen := generator.New(cfg.Generator.Provider, nil, log,
		generator.WithSeed(cfg.Generator.Seed),
		generator.WithValueRange(cfg.Generator.MinValue, cfg.Generator.MaxValue))

	recorder, err := history.NewJSONLRecorder(path)
	if err != nil {
		log.Fatal().Err(err).Msg("open recorder")
	}
	defer recorder.Close()

	series := gen.Historical(id, start, end)
	for _, sample := range series {
		recorder.Record(sample)
	}
	log.Info().Str("signal", id).Int("samples", len(series)).Str("path", path).Msg("backfill complete")
}
