package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Fybex/naukma-schedule-parser/internal/config"
	"github.com/Fybex/naukma-schedule-parser/internal/loader"
	"github.com/Fybex/naukma-schedule-parser/internal/logger"
	"github.com/Fybex/naukma-schedule-parser/internal/models"
	"github.com/Fybex/naukma-schedule-parser/internal/parser"
	"github.com/Fybex/naukma-schedule-parser/internal/storage"
	"github.com/Fybex/naukma-schedule-parser/internal/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	once := flag.Bool("once", false, "run a single pass and exit even when polling is configured")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	ld := loader.New(cfg.DownloadsDir, log)

	var opts []parser.Option
	if cfg.SkipBadRows {
		opts = append(opts, parser.WithSkipBadRows())
	}
	svc := parser.New(log, opts...)

	sink := storage.NewFileSink(cfg.OutputDir)
	var fb *storage.FirebaseSink
	if cfg.Firebase.Enabled() {
		fb, err = storage.NewFirebase(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.DatabaseURL)
		if err != nil {
			log.Fatal("firebase connection failed", "error", err)
		}
		log.Info("firebase connected", "database_url", cfg.Firebase.DatabaseURL)
	}

	if cfg.PollIntervalSeconds <= 0 || *once {
		if err := runOnce(ctx, cfg, log, ld, svc, sink, fb); err != nil {
			log.Fatal("run failed", "error", err)
		}
		return
	}
	runWorkerLoop(ctx, cfg, log, ld, svc, sink, fb)
}

// runOnce downloads every configured document, parses it and persists the
// merged result. A single failing document is logged and skipped; the run
// fails only when nothing could be parsed.
func runOnce(ctx context.Context, cfg config.Config, log *logger.Logger, ld *loader.Loader, svc *parser.Service, sink *storage.FileSink, fb *storage.FirebaseSink) error {
	start := time.Now()
	if err := sink.Reset(); err != nil {
		return fmt.Errorf("reset output dir: %w", err)
	}

	all := make(models.FacultySchedules)
	for _, url := range cfg.ScheduleURLs {
		sh, err := ld.FetchSheet(ctx, url)
		if err != nil {
			if errors.Is(err, loader.ErrUnsupportedFormat) {
				log.Warn("document format not supported", "url", url, "error", err)
			} else {
				log.Error("document load failed", "url", url, "error", err)
			}
			continue
		}

		schedules, err := svc.Assemble(sh)
		if err != nil {
			log.Error("schedule parse failed", "url", url, "error", err)
			continue
		}
		all.Merge(schedules)
	}
	if len(all) == 0 {
		return fmt.Errorf("no schedules parsed from %d documents", len(cfg.ScheduleURLs))
	}

	teachers := utils.BuildTeacherIndex(all)
	if err := sink.Save(cfg.OutputName, all); err != nil {
		return fmt.Errorf("save schedules: %w", err)
	}
	if err := sink.Save("teachers", teachers); err != nil {
		return fmt.Errorf("save teacher index: %w", err)
	}
	if fb != nil {
		if err := fb.SaveFullUpdate(ctx, all, teachers); err != nil {
			return fmt.Errorf("publish to firebase: %w", err)
		}
	}

	log.Info("schedules saved",
		"faculties", len(all), "teachers", len(teachers), "elapsed", time.Since(start))
	return nil
}

// runWorkerLoop re-runs the pipeline whenever any source document's
// Last-Modified header changes.
func runWorkerLoop(ctx context.Context, cfg config.Config, log *logger.Logger, ld *loader.Loader, svc *parser.Service, sink *storage.FileSink, fb *storage.FirebaseSink) {
	interval := time.Duration(cfg.PollIntervalSeconds) * time.Second
	log.Info("polling for schedule changes", "interval", interval)

	lastModified := make(map[string]string)
	for {
		needUpdate := false
		for _, url := range cfg.ScheduleURLs {
			current, changed := ld.CheckModified(ctx, url, lastModified[url])
			if changed {
				lastModified[url] = current
				needUpdate = true
				ld.Invalidate(url)
			}
		}

		if needUpdate {
			if err := runOnce(ctx, cfg, log, ld, svc, sink, fb); err != nil {
				log.Error("update failed", "error", err)
			}
		}
		time.Sleep(interval)
	}
}
