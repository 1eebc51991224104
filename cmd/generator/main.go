// Binary generator prints live or historical samples as JSON, mirroring the
// original command-line signal generator.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"signalgen-go/internal/config"
	"signalgen-go/internal/generator"
	sig "signalgen-go/internal/signal"
	"signalgen-go/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to YAML config")
	historical := flag.Bool("historical", false, "print a historical series instead of streaming")
	startRaw := flag.String("start", "", "historical range start (RFC 3339, default end minus 48h)")
	endRaw := flag.String("end", "", "historical range end (RFC 3339, default now)")
	flag.Parse()

	log := util.NewLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	opts := []generator.Option{
		generator.WithSeed(cfg.Generator.Seed),
		generator.WithValueRange(cfg.Generator.MinValue, cfg.Generator.MaxValue),
	}
	if cfg.Generator.EmitInterval > 0 {
		opts = append(opts, generator.WithEmitInterval(time.Duration(cfg.Generator.EmitInterval)*time.Millisecond))
	}
	signals := cfg.Generator.Signals
	if len(signals) == 0 {
		signals = []string{"temperature"}
	}
	gen := generator.New(cfg.Generator.Provider, signals, log, opts...)

	if *historical {
		if err := printHistorical(gen, signals[0], *startRaw, *endRaw); err != nil {
			log.Fatal().Err(err).Msg("historical generation")
		}
		return
	}

	streamLive(gen)
}

func streamLive(gen *generator.Generator) {
	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Println("Generating sample signal...")
	samples := make(chan sig.Sample, 64)
	go func() {
		_ = gen.Run(ctx, samples)
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("Signal generation stopped.")
			return
		case sample := <-samples:
			data, err := json.MarshalIndent(sample, "", "  ")
			if err != nil {
				continue
			}
			fmt.Println(string(data))
		}
	}
}

func printHistorical(gen *generator.Generator, id, startRaw, endRaw string) error {
	end := time.Now()
	if endRaw != "" {
		parsed, err := time.Parse(time.RFC3339, endRaw)
		if err != nil {
			return fmt.Errorf("parse end: %w", err)
		}
		end = parsed
	}
	start := end.Add(-48 * time.Hour)
	if startRaw != "" {
		parsed, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			return fmt.Errorf("parse start: %w", err)
		}
		start = parsed
	}

	series := gen.Historical(id, start, end)
	fmt.Printf("Historical samples: %d\n", len(series))
	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
