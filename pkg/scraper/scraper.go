// Package scraper drives the scrape loop: list games, filter, then
// fetch, convert and write each one sequentially.
package scraper

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gamewiki/gamescrape/models"
	"github.com/gamewiki/gamescrape/pkg/catalog"
	"github.com/gamewiki/gamescrape/pkg/classify"
	"github.com/gamewiki/gamescrape/pkg/convert"
	"github.com/gamewiki/gamescrape/pkg/fetcher"
	"github.com/gamewiki/gamescrape/pkg/storage"
)

// Summary is the end-of-run accounting reported to the user.
type Summary struct {
	Saved   int
	Skipped int
	Failed  int
	// Failures carries title and URL detail for each failed entry.
	Failures []models.EntryResult
}

// Scraper owns one run. Execution is strictly sequential: the
// politeness delay exists to throttle the request rate, so nothing
// fetches in parallel.
type Scraper struct {
	Fetcher   *fetcher.Fetcher
	Lister    *catalog.Lister
	Converter *convert.Converter
	Store     *storage.Storage
	Throttle  *fetcher.Throttle
	Config    *models.ScrapeConfig
	Logger    *slog.Logger
}

// Run executes the scrape and returns the summary. The returned error
// is non-nil only for run-fatal conditions: an unreachable index or
// an output root that cannot be created. Per-entry failures are
// counted and logged, never fatal.
func (s *Scraper) Run() (*Summary, error) {
	entries, err := s.Lister.List()
	if err != nil {
		return nil, err
	}
	s.Logger.Info("catalog listed", "entries", len(entries))

	entries = Filter(entries, s.Config.Letter)
	if s.Config.Letter != "" {
		s.Logger.Info("letter filter applied", "bucket", s.Config.Letter, "entries", len(entries))
	}

	// The limit counts visited entries, skipped included: it
	// truncates the work list, it does not meter fetches.
	if s.Config.Limit > 0 && len(entries) > s.Config.Limit {
		entries = entries[:s.Config.Limit]
		s.Logger.Info("limit applied", "limit", s.Config.Limit)
	}

	if err := s.Store.EnsureDir(s.Config.OutputDir); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}

	summary := &Summary{}
	for i, entry := range entries {
		path := filepath.Join(s.Config.OutputDir, classify.Bucket(entry.Title), classify.Filename(entry.Title))

		if s.Store.HasFile(path) {
			s.Logger.Info("skipping, already saved", "title", entry.Title, "path", path)
			summary.Skipped++
			continue
		}

		err := s.processEntry(entry, path)
		if err != nil {
			s.Logger.Error("entry failed", "title", entry.Title, "url", entry.URL, "error", err)
			summary.Failed++
			summary.Failures = append(summary.Failures, models.EntryResult{
				Entry:    entry,
				Status:   models.StatusFailed,
				FilePath: path,
				Err:      err,
			})
		} else {
			s.Logger.Info("saved", "title", entry.Title, "path", path)
			summary.Saved++
		}

		// Delay only between real requests; skipped entries cost
		// nothing and the final entry needs no trailing wait.
		if i < len(entries)-1 {
			s.Throttle.Wait()
		}
	}

	return summary, nil
}

// processEntry runs fetch → convert → write for one entry. Any error
// marks the entry Failed; the caller keeps going.
func (s *Scraper) processEntry(entry models.GameEntry, path string) error {
	doc, err := s.Fetcher.GetHTML(entry.URL)
	if err != nil {
		return err
	}

	mdoc, err := s.Converter.Convert(entry.URL, doc)
	if err != nil {
		return err
	}
	if mdoc.Title != "" && mdoc.Title != entry.Title {
		// The index anchor text still names the file, so reruns
		// find it again; the page heading is informational.
		s.Logger.Debug("page title differs from index title",
			"index_title", entry.Title, "page_title", mdoc.Title)
	}
	mdoc.Path = path

	return s.Store.SaveFile(mdoc.Path, []byte(mdoc.Markdown))
}

// Filter keeps the entries whose classified bucket matches the
// requested one. An empty bucket keeps everything.
func Filter(entries []models.GameEntry, bucket string) []models.GameEntry {
	if bucket == "" {
		return entries
	}
	var kept []models.GameEntry
	for _, e := range entries {
		if classify.Bucket(e.Title) == bucket {
			kept = append(kept, e)
		}
	}
	return kept
}
