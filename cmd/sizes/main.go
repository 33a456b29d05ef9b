package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aluiziolira/go-scrape-sizes/config"
	"github.com/aluiziolira/go-scrape-sizes/models"
	"github.com/aluiziolira/go-scrape-sizes/pipeline"
	"github.com/aluiziolira/go-scrape-sizes/scraper"
)

func main() {
	defaultCfg := config.DefaultConfig()
	dirDefault := defaultCfg.Dir
	if value, ok := config.EnvString("SIZES_DIR"); ok {
		dirDefault = value
	}
	metricsDefault := defaultCfg.MetricsFile
	if value, ok := config.EnvString("SIZES_METRICS_FILE"); ok {
		metricsDefault = value
	}
	verifyDefault := defaultCfg.VerifyCategory
	if value, ok, err := config.EnvBool("SIZES_VERIFY_CATEGORY"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid SIZES_VERIFY_CATEGORY: %v\n", err)
		os.Exit(1)
	} else if ok {
		verifyDefault = value
	}

	dir := flag.String("dir", dirDefault, "Directory holding the saved catalog pages")
	verifyCategory := flag.Bool("verify-category", verifyDefault, "Fail when a page's category label does not match its file")
	metricsFile := flag.String("metrics-file", metricsDefault, "Write Prometheus metrics to this textfile after the run")
	outputFile := flag.String("output", "", "Write size lines to this file instead of stdout")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.Dir = *dir
	cfg.VerifyCategory = *verifyCategory
	cfg.MetricsFile = *metricsFile
	cfg.Verbose = *verbose
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	s, err := scraper.NewScraper(cfg)
	if err != nil {
		slog.Error("initialising scraper", slog.Any("error", err))
		os.Exit(1)
	}

	writer, err := createWriter(*outputFile)
	if err != nil {
		slog.Error("creating writer", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs := cfg.ResolvedInputs()
	slog.Debug("starting extraction",
		slog.String("dir", cfg.Dir),
		slog.Int("files", len(inputs)),
		slog.Bool("verify_category", cfg.VerifyCategory),
	)

	result, runErr := s.Run(ctx, inputs, writer)

	if err := writer.Close(); err != nil {
		slog.Error("close writer", slog.Any("error", err))
	}
	if cfg.MetricsFile != "" {
		if err := s.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Error("write metrics textfile", slog.String("file", cfg.MetricsFile), slog.Any("error", err))
		}
	}

	if runErr != nil {
		slog.Error("extraction failed",
			slog.String("error_type", scraper.ErrorType(runErr)),
			slog.Int("completed_files", result.FileCount),
			slog.Any("error", runErr),
		)
		os.Exit(1)
	}

	logSummary(result)
}

func createWriter(filename string) (*pipeline.TextWriter, error) {
	if filename == "" {
		return pipeline.NewTextWriter(os.Stdout), nil
	}
	return pipeline.NewTextFileWriter(filename)
}

func logSummary(result *models.BatchResult) {
	duration := result.EndTime.Sub(result.StartTime)
	slog.Debug("extraction complete",
		slog.Int("files", result.FileCount),
		slog.Int("entries", result.EntryCount),
		slog.Duration("duration", duration.Round(time.Millisecond)),
	)
}

// newLogger logs to stderr; stdout carries the size lines.
func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stderr) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
