// Command viterbiber measures the bit and frame error rate of the K=7
// rate 1/3 Viterbi decoder over a simulated AWGN channel.
//
// Usage:
//
//	viterbiber [flags]
//
// Settings come from flags, an optional YAML file (--config) and
// ALGOFEC_* environment variables, in that order of precedence.
//
// Examples:
//
//	viterbiber --ebn0 0:0.5:4 --frames 2000
//	viterbiber --tail-biting --frame-len 40 --backend generic
//	viterbiber --db runs.db --report sweep-%Y%m%d.yaml
//	viterbiber --db runs.db --history 10
//	viterbiber --list-backends
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-fec/fec/viterbi"
	"github.com/cwbudde/algo-fec/internal/store"
	"github.com/cwbudde/algo-fec/measure/ber"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := log.NewWithOptions(stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "viterbiber",
	})

	if list, _ := fs.GetBool("list-backends"); list {
		if err := printBackends(stdout); err != nil {
			logger.Error("write backends", "err", err)
			return 1
		}
		return 0
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		logger.Error("load config", "err", err)
		return 2
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Error("parse log level", "level", cfg.LogLevel, "err", err)
		return 2
	}
	logger.SetLevel(level)

	if cfg.History > 0 {
		if err := showHistory(cfg, logger, stdout); err != nil {
			logger.Error("show history", "err", err)
			return 1
		}
		return 0
	}

	if err := sweep(ctx, cfg, logger, stdout); err != nil {
		logger.Error("sweep failed", "err", err)
		return 1
	}

	return 0
}

func sweep(ctx context.Context, cfg *Config, logger *log.Logger, stdout io.Writer) error {
	runCfg, err := cfg.berConfig()
	if err != nil {
		return err
	}

	backend := cfg.Backend
	if backend == "" {
		backend = viterbi.DefaultBackend()
	}

	logger.Info("starting sweep",
		"backend", backend,
		"frame_len", runCfg.FrameLen,
		"frames", runCfg.Frames,
		"points", len(runCfg.EbN0dB),
		"tail_biting", runCfg.TailBiting,
	)

	started := time.Now()
	points, err := ber.Run(ctx, runCfg)
	elapsed := time.Since(started)
	if err != nil {
		if len(points) > 0 {
			logger.Warn("sweep interrupted", "completed", len(points))
			_ = printPoints(stdout, points)
		}
		return err
	}

	logger.Info("sweep done", "elapsed", elapsed.Round(time.Millisecond))

	if err := printPoints(stdout, points); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	rep := newReport(cfg, backend, started, elapsed, points)

	if cfg.Report != "" {
		path, err := writeReport(cfg.Report, started, rep)
		if err != nil {
			return err
		}
		logger.Info("report written", "path", path)
	}

	if cfg.DB != "" {
		db, err := store.Open(cfg.DB, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		run := rep.toRun()
		if err := db.Runs().Create(run); err != nil {
			return fmt.Errorf("store run: %w", err)
		}
		logger.Info("run stored", "id", run.ID, "db", cfg.DB)
	}

	return nil
}

func showHistory(cfg *Config, logger *log.Logger, stdout io.Writer) error {
	if cfg.DB == "" {
		return errors.New("--history needs --db")
	}

	db, err := store.Open(cfg.DB, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := db.Runs()
	runs, err := repo.Recent(cfg.History)
	if err != nil {
		return fmt.Errorf("load runs: %w", err)
	}

	for i := range runs {
		ms, err := repo.Measurements(runs[i].ID)
		if err != nil {
			return fmt.Errorf("load measurements of run %d: %w", runs[i].ID, err)
		}
		runs[i].Measurements = ms
	}

	return printHistory(stdout, runs)
}
