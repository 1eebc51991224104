package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"signalgen-go/internal/config"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	reader := bufio.NewReader(os.Stdin)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	for {
		fmt.Println("\n=== Signalgen Control ===")
		fmt.Println("1) Show configuration summary")
		fmt.Println("2) Edit generator knobs")
		fmt.Println("3) Edit rule knobs")
		fmt.Println("4) Save config")
		fmt.Println("5) Launch server")
		fmt.Println("6) Reload config from disk")
		fmt.Println("0) Exit")
		fmt.Print("Select option: ")

		input, _ := reader.ReadString('\n')
		choice := strings.TrimSpace(input)

		switch choice {
		case "1":
			printSummary(cfg)
		case "2":
			editGenerator(reader, cfg)
		case "3":
			editRules(reader, cfg)
		case "4":
			if err := saveConfig(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			} else {
				fmt.Println("config saved")
			}
		case "5":
			launchServer(reader)
		case "6":
			reloaded, err := loadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			} else {
				cfg = reloaded
				fmt.Println("config reloaded")
			}
		case "0":
			return
		default:
			fmt.Println("unknown option")
		}
	}
}

func printSummary(cfg *config.Config) {
	fmt.Println("\n--- Configuration Summary ---")
	fmt.Printf("Provider: %s\n", cfg.Generator.Provider)
	fmt.Println("Signals:", strings.Join(cfg.Generator.Signals, ", "))
	fmt.Printf("Emit interval: %dms | value range: [%.2f, %.2f] | seed: %d\n",
		cfg.Generator.EmitInterval, cfg.Generator.MinValue, cfg.Generator.MaxValue, cfg.Generator.Seed)
	fmt.Printf("Rule mode: %s (high streak %d, spike %.2f over %ds)\n",
		cfg.Rules.Mode, cfg.Rules.Params.HighStreak, cfg.Rules.Params.SpikeThreshold, cfg.Rules.Params.SpikeWindowSecs)
	fmt.Printf("Alert budget: %d per %ds\n", cfg.Rules.MaxAlertsPerWindow, cfg.Rules.AlertWindowSecs)
	fmt.Printf("History capacity: %d | raw retention: %ds | jsonl: %s\n",
		cfg.History.Capacity, cfg.History.RawRetentionSecs, cfg.History.JSONLPath)
	fmt.Printf("API addr: %s | metrics addr: %s\n", cfg.Server.Addr, cfg.App.MetricsAddr)
}

func editGenerator(reader *bufio.Reader, cfg *config.Config) {
	fmt.Println("\n--- Edit Generator ---")
	fmt.Printf("Current signals: %s\n", strings.Join(cfg.Generator.Signals, ", "))
	fmt.Print("Enter signal ids comma-separated (blank to keep): ")
	if line, _ := reader.ReadString('\n'); strings.TrimSpace(line) != "" {
		parts := strings.Split(strings.TrimSpace(line), ",")
		cfg.Generator.Signals = nil
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Generator.Signals = append(cfg.Generator.Signals, trimmed)
			}
		}
	}
	cfg.Generator.EmitInterval = int(promptFloat(reader, "Emit interval (ms)", float64(cfg.Generator.EmitInterval)))
	cfg.Generator.MinValue = promptFloat(reader, "Min value", cfg.Generator.MinValue)
	cfg.Generator.MaxValue = promptFloat(reader, "Max value", cfg.Generator.MaxValue)
	cfg.Generator.Seed = int64(promptFloat(reader, "Seed (0 = time-based)", float64(cfg.Generator.Seed)))
}

func editRules(reader *bufio.Reader, cfg *config.Config) {
	fmt.Println("\n--- Edit Rules ---")
	fmt.Printf("Current mode: %s\n", cfg.Rules.Mode)
	fmt.Print("Rule mode (threshold/spike, blank to keep): ")
	if line, _ := reader.ReadString('\n'); strings.TrimSpace(line) != "" {
		cfg.Rules.Mode = strings.TrimSpace(line)
	}
	cfg.Rules.Params.HighStreak = int(promptFloat(reader, "High streak", float64(cfg.Rules.Params.HighStreak)))
	cfg.Rules.Params.SpikeThreshold = promptFloat(reader, "Spike threshold (%)", cfg.Rules.Params.SpikeThreshold)
	cfg.Rules.Params.SpikeWindowSecs = int(promptFloat(reader, "Spike window (secs)", float64(cfg.Rules.Params.SpikeWindowSecs)))
	cfg.Rules.MaxAlertsPerWindow = int(promptFloat(reader, "Max alerts per window", float64(cfg.Rules.MaxAlertsPerWindow)))
	cfg.Rules.AlertWindowSecs = int(promptFloat(reader, "Alert window (secs)", float64(cfg.Rules.AlertWindowSecs)))
}

func launchServer(reader *bufio.Reader) {
	fmt.Println("Launching server (Ctrl+C to stop)...")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", "run", "./cmd/server")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		return
	}

	go func() {
		_ = cmd.Wait()
		cancel()
	}()

	fmt.Print("\nPress ENTER to stop the server and return to menu...")
	_, _ = reader.ReadString('\n')
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func promptFloat(reader *bufio.Reader, label string, current float64) float64 {
	fmt.Printf("%s [%.2f]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	val, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Printf("invalid number, keeping %.2f\n", current)
		return current
	}
	return val
}

func loadConfig() (*config.Config, error) {
	return config.Load(locateConfig())
}

func saveConfig(cfg *config.Config) error {
	return config.Save(locateConfig(), cfg)
}

func locateConfig() string {
	if filepath.IsAbs(defaultConfigPath) {
		return defaultConfigPath
	}
	return filepath.Clean(defaultConfigPath)
}
