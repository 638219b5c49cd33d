package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lifeops/lifeops/internal/config"
	"github.com/lifeops/lifeops/internal/importer"
	"github.com/lifeops/lifeops/internal/ingest/alpha"
	"github.com/lifeops/lifeops/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("path", "", "directory of Alpha Progression CSV exports (required)")
	dryRun := flag.Bool("dry-run", false, "list files that would be imported without writing to the database")
	watch := flag.Bool("watch", false, "keep running and import new exports as they appear")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: lifeops-import -config config.yaml -path /path/to/exports [-dry-run] [-watch]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*exportPath)
	if err != nil || !info.IsDir() {
		log.Error("export path does not exist or is not a directory", "path", *exportPath)
		os.Exit(1)
	}

	// Load config
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn("ignoring .env", "error", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	state, err := importer.OpenStateDB(cfg.Import.StateDir)
	if err != nil {
		log.Error("failed to open import state", "dir", cfg.Import.StateDir, "error", err)
		os.Exit(1)
	}
	defer state.Close()

	imp := importer.New(alpha.NewProvider(db, log), state, db, log, *dryRun)

	if *watch {
		if err := imp.Watch(ctx, *exportPath, cfg.Import.Debounce, func(s *importer.Stats) { printStats(log, s) }); err != nil {
			log.Error("watch failed", "error", err)
			os.Exit(1)
		}
		log.Info("watch stopped")
		return
	}

	stats, err := imp.Import(ctx, *exportPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"workouts_inserted", stats.WorkoutsInserted,
		"workouts_updated", stats.WorkoutsUpdated,
		"sets_inserted", stats.SetsInserted,
	)
	if len(stats.RejectedNames) > 0 {
		log.Info("rejected exercises (no matching exercise type)", "names", stats.RejectedNames)
	}
}
