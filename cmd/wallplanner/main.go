// Command wallplanner runs the WallPlanner solver against a case-list JSON
// file and a YAML config file, and writes the resulting placements, wall
// sections, and diagnostics as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/fsnotify/fsnotify"
	flag "github.com/spf13/pflag"

	"github.com/flightcase/wallplanner/internal/wpconfig"
	"github.com/flightcase/wallplanner/internal/wpcore"
	"github.com/flightcase/wallplanner/internal/wpingest"
	"github.com/flightcase/wallplanner/internal/wplog"
	"github.com/flightcase/wallplanner/internal/wpplanner"
)

func main() {
	var (
		casesPath  string
		configPath string
		outPath    string
		watch      bool
		verbose    bool
	)
	flag.StringVar(&casesPath, "cases", "", "path to a case-list JSON file")
	flag.StringVar(&configPath, "config", "", "path to a truck/config YAML file")
	flag.StringVar(&outPath, "out", "-", "path to write the solve result JSON (default stdout)")
	flag.BoolVar(&watch, "watch", false, "re-solve whenever the case file changes on disk")
	flag.BoolVar(&verbose, "verbose", false, "emit phase-by-phase diagnostic logging")
	flag.Parse()

	if casesPath == "" {
		fmt.Fprintln(os.Stderr, "wallplanner: --cases is required")
		os.Exit(2)
	}

	var lg *wplog.Logger
	if verbose {
		lg = wplog.New(slog.Make(sloghuman.Sink(os.Stderr)))
	}

	ctx := context.Background()

	run := func() error {
		return solveAndWrite(casesPath, configPath, outPath, lg)
	}

	if !watch {
		if err := run(); err != nil {
			fmt.Fprintln(os.Stderr, "wallplanner:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "wallplanner:", err)
	}
	watchAndRerun(ctx, casesPath, run)
}

func watchAndRerun(ctx context.Context, casesPath string, run func() error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, "wallplanner: watch setup failed:", err)
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watcher.Add(casesPath); err != nil {
		fmt.Fprintln(os.Stderr, "wallplanner: watch setup failed:", err)
		os.Exit(1)
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := run(); err != nil {
				fmt.Fprintln(os.Stderr, "wallplanner:", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintln(os.Stderr, "wallplanner: watch error:", err)
		case <-ctx.Done():
			return
		}
	}
}

func solveAndWrite(casesPath, configPath, outPath string, lg *wplog.Logger) error {
	caseBytes, err := os.ReadFile(casesPath)
	if err != nil {
		return fmt.Errorf("reading cases file: %w", err)
	}
	cases, err := wpingest.DecodeCases(caseBytes)
	if err != nil {
		return err
	}

	cfg := wpconfig.Default()
	if configPath != "" {
		cfg, err = wpconfig.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if cfg.TruckLength <= 0 {
		return fmt.Errorf("config must set a positive truckLength")
	}

	result, err := solveWithConfig(cases, cfg, lg)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if outPath == "-" || outPath == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(outPath, out, 0o644)
}

func solveWithConfig(cases []wpcore.Case, cfg wpconfig.Config, lg *wplog.Logger) (wpplanner.Result, error) {
	return wpplanner.Solve(cases, cfg.Envelope(), cfg.DeptPriority, cfg.KBPatterns(), lg)
}
