package drive

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/stockcast/backend-go/pkg/logger"
)

// Watcher polls a Drive folder and ingests any CSV file it has not
// seen before. A file that changes its modified time is ingested
// again, so operators can fix and re-upload an export in place.
type Watcher struct {
	service *Service
	ingest  *IngestService
	folder  string
	every   time.Duration

	seen map[string]string // file ID -> last ingested modified time
}

func NewWatcher(service *Service, ingest *IngestService, folderPath string, every time.Duration) *Watcher {
	return &Watcher{
		service: service,
		ingest:  ingest,
		folder:  folderPath,
		every:   every,
		seen:    make(map[string]string),
	}
}

// Run blocks until ctx is cancelled, scanning the folder on every tick.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.With("drive-watcher")

	folderID, err := w.service.FindFolderByPath(w.folder)
	if err != nil {
		return err
	}
	log.Info().Str("folder", w.folder).Dur("interval", w.every).Msg("watching Drive folder")

	ticker := time.NewTicker(w.every)
	defer ticker.Stop()

	// Scan once immediately so a restart picks up pending files.
	w.scan(ctx, folderID)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.scan(ctx, folderID)
		}
	}
}

func (w *Watcher) scan(ctx context.Context, folderID string) {
	log := logger.With("drive-watcher")

	files, err := w.service.ListFiles(folderID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list Drive folder")
		return
	}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if strings.ToLower(filepath.Ext(f.Name)) != ".csv" {
			continue
		}
		if w.seen[f.ID] == f.ModifiedTime {
			continue
		}

		result, err := w.ingest.IngestFile(ctx, f.ID)
		if err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("failed to ingest file")
			continue
		}

		w.seen[f.ID] = f.ModifiedTime
		log.Info().Str("file", f.Name).Int("inserted", result.Inserted).Msg("ingested new export")
	}
}
