// Package scrape wires the scrape command to the scraper pipeline.
package scrape

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gamewiki/gamescrape/internal/common"
	"github.com/gamewiki/gamescrape/models"
	"github.com/gamewiki/gamescrape/pkg/catalog"
	"github.com/gamewiki/gamescrape/pkg/convert"
	"github.com/gamewiki/gamescrape/pkg/fetcher"
	"github.com/gamewiki/gamescrape/pkg/scraper"
	"github.com/gamewiki/gamescrape/pkg/storage"
)

func ScrapeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	profile, err := loadProfile(c)
	if err != nil {
		logger.Error("failed to load site profile", "error", err)
		os.Exit(2)
	}

	config := &models.ScrapeConfig{
		Limit:          c.Int("limit"),
		OutputDir:      c.String("output-dir"),
		Delay:          time.Duration(c.Float64("delay") * float64(time.Second)),
		RandomizeDelay: c.Bool("randomize-delay"),
	}

	if raw := c.String("letter"); raw != "" {
		bucket, ok := common.NormalizeLetter(raw)
		if !ok {
			logger.Warn("invalid letter, processing all buckets", "letter", raw)
		} else {
			config.Letter = bucket
		}
	}

	f := fetcher.NewFetcher(&http.Client{Timeout: c.Duration("timeout")}, profile.UserAgent)
	lister := catalog.NewLister(f, profile, logger)
	lister.MaxPages = c.Int("max-index-pages")

	s := &scraper.Scraper{
		Fetcher:   f,
		Lister:    lister,
		Converter: convert.NewConverter(profile),
		Store:     &storage.Storage{},
		Throttle:  fetcher.NewThrottle(config.Delay, config.RandomizeDelay),
		Config:    config,
		Logger:    logger,
	}

	logger.Info("starting scrape",
		"index", profile.IndexURL,
		"output_dir", config.OutputDir,
		"limit", config.Limit,
		"delay", config.Delay.String(),
		"letter", config.Letter)

	summary, err := s.Run()
	if err != nil {
		logger.Error("scrape aborted", "error", err)
		os.Exit(2)
	}

	PrintSummary(os.Stdout, config.OutputDir, summary)
	return nil
}

// loadProfile returns the built-in beforeiplay.com profile, or the
// YAML profile named by --site, with --user-agent applied on top.
func loadProfile(c *cli.Context) (*models.SiteProfile, error) {
	profile := models.DefaultSiteProfile()
	if c.IsSet("site") {
		var err error
		profile, err = models.LoadSiteProfile(c.String("site"))
		if err != nil {
			return nil, err
		}
	}
	if c.IsSet("user-agent") {
		profile.UserAgent = c.String("user-agent")
	}
	return profile, nil
}
