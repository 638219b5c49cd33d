// Package importer loads Alpha Progression exports from a directory into the
// database, remembering which files it has already seen.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lifeops/lifeops/internal/ingest"
	"github.com/lifeops/lifeops/internal/storage"
)

// Ingester turns one export into stored workouts. *alpha.Provider satisfies it.
type Ingester interface {
	Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error)
}

// LogStore persists an audit row per imported file. *storage.DB satisfies it.
type LogStore interface {
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	UpdateImportLog(ctx context.Context, id int64, log storage.ImportLog) error
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	WorkoutsInserted int
	WorkoutsUpdated  int
	SetsInserted     int

	RejectedNames []string
}

// Importer reads .csv exports from a directory tree.
type Importer struct {
	ingester Ingester
	state    *StateDB
	logs     LogStore
	log      *slog.Logger
	dryRun   bool
}

// New creates a new Importer. logs may be nil.
func New(ingester Ingester, state *StateDB, logs LogStore, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{ingester: ingester, state: state, logs: logs, log: log, dryRun: dryRun}
}

// Import processes every new or changed .csv file under dir. A file that fails
// to import is counted and logged; the walk continues.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	stats := &Stats{}
	rejected := map[string]bool{}

	files, err := findExports(dir)
	if err != nil {
		return stats, err
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := imp.importFile(ctx, dir, path, stats, rejected); err != nil {
			imp.log.Warn("import failed", "file", path, "error", err)
			stats.FilesErrored++
		}
	}

	for name := range rejected {
		stats.RejectedNames = append(stats.RejectedNames, name)
	}
	sort.Strings(stats.RejectedNames)
	return stats, nil
}

func (imp *Importer) importFile(ctx context.Context, dir, path string, stats *Stats, rejected map[string]bool) error {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	done, err := imp.state.IsImported(rel, info.Size(), hash)
	if err != nil {
		return err
	}
	if done {
		stats.FilesSkipped++
		return nil
	}

	if imp.dryRun {
		imp.log.Info("would import", "file", rel, "size", info.Size())
		stats.FilesProcessed++
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	start := time.Now()
	logID := imp.startLog(ctx, rel)

	result, err := imp.ingester.Ingest(ctx, f)
	imp.finishLog(ctx, logID, rel, start, result, err)
	if err != nil {
		return err
	}

	stats.FilesProcessed++
	stats.WorkoutsInserted += result.WorkoutsInserted
	stats.WorkoutsUpdated += result.WorkoutsUpdated
	stats.SetsInserted += result.SetsInserted
	for _, name := range result.RejectedNames {
		rejected[name] = true
	}

	imp.log.Info("imported", "file", rel,
		"workouts_inserted", result.WorkoutsInserted,
		"workouts_updated", result.WorkoutsUpdated,
		"sets", result.SetsInserted)

	return imp.state.MarkImported(rel, info.Size(), hash, result.WorkoutsInserted+result.WorkoutsUpdated)
}

func (imp *Importer) startLog(ctx context.Context, rel string) int64 {
	if imp.logs == nil {
		return 0
	}
	id, err := imp.logs.InsertImportLog(ctx, storage.ImportLog{Source: "alpha_csv", Status: "running"})
	if err != nil {
		imp.log.Warn("import log insert failed", "file", rel, "error", err)
		return 0
	}
	return id
}

func (imp *Importer) finishLog(ctx context.Context, id int64, rel string, start time.Time, result *ingest.Result, ingestErr error) {
	if imp.logs == nil || id == 0 {
		return
	}
	ms := int(time.Since(start).Milliseconds())
	entry := storage.ImportLog{Status: "success", DurationMs: &ms}
	if result != nil {
		entry.WorkoutsReceived = result.WorkoutsReceived
		entry.WorkoutsInserted = result.WorkoutsInserted + result.WorkoutsUpdated
		entry.SetsInserted = result.SetsInserted
	}
	if ingestErr != nil {
		entry.Status = "error"
		msg := ingestErr.Error()
		entry.ErrorMessage = &msg
	}
	meta := map[string]any{"file": rel}
	if result != nil && len(result.RejectedNames) > 0 {
		meta["rejected_names"] = result.RejectedNames
	}
	if raw, err := json.Marshal(meta); err == nil {
		msg := json.RawMessage(raw)
		entry.Metadata = &msg
	}
	if err := imp.logs.UpdateImportLog(ctx, id, entry); err != nil {
		imp.log.Warn("import log update failed", "file", rel, "error", err)
	}
}

// findExports returns the .csv files under dir in lexical order, skipping
// hidden directories.
func findExports(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(dir, path, d) {
				return filepath.SkipDir
			}
			return nil
		}
		if isExport(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

// skipDir reports whether a directory below root is hidden.
func skipDir(root, path string, d fs.DirEntry) bool {
	return path != root && strings.HasPrefix(d.Name(), ".")
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isExport(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv") && !isHidden(path)
}
