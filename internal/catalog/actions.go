// Package catalog implements the catalog subcommand: a dry-run
// listing of every entry the scraper would visit.
package catalog

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/gamewiki/gamescrape/internal/common"
	"github.com/gamewiki/gamescrape/models"
	catalogpkg "github.com/gamewiki/gamescrape/pkg/catalog"
	"github.com/gamewiki/gamescrape/pkg/classify"
	"github.com/gamewiki/gamescrape/pkg/fetcher"
	"github.com/gamewiki/gamescrape/pkg/scraper"
)

func CatalogAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	profile := models.DefaultSiteProfile()
	if c.IsSet("site") {
		var err error
		profile, err = models.LoadSiteProfile(c.String("site"))
		if err != nil {
			logger.Error("failed to load site profile", "error", err)
			os.Exit(2)
		}
	}

	f := fetcher.NewFetcher(&http.Client{Timeout: c.Duration("timeout")}, profile.UserAgent)
	lister := catalogpkg.NewLister(f, profile, logger)
	lister.MaxPages = c.Int("max-index-pages")

	entries, err := lister.List()
	if err != nil {
		logger.Error("failed to list catalog", "error", err)
		os.Exit(2)
	}

	if raw := c.String("letter"); raw != "" {
		bucket, ok := common.NormalizeLetter(raw)
		if !ok {
			logger.Warn("invalid letter, listing all buckets", "letter", raw)
		} else {
			entries = scraper.Filter(entries, bucket)
		}
	}
	if limit := c.Int("limit"); limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", classify.Bucket(e.Title), e.Title, e.URL)
	}
	w.Flush()

	fmt.Fprintf(os.Stderr, "%d entries\n", len(entries))
	return nil
}
