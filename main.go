package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gamewiki/gamescrape/internal/catalog"
	"github.com/gamewiki/gamescrape/internal/scrape"
)

func main() {
	app := &cli.App{
		Name:  "gamescrape",
		Usage: "archive game advice pages as a Markdown file tree",
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "fetch game pages and save them as Markdown, skipping ones already on disk",
				Action: scrape.ScrapeAction,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "output-dir",
						Value: "scraped_games",
						Usage: "root of the output tree",
					},
					&cli.Float64Flag{
						Name:  "delay",
						Value: 1.0,
						Usage: "base delay in seconds between fetches",
					},
					&cli.BoolFlag{
						Name:  "randomize-delay",
						Usage: "jitter each delay uniformly within [0.5x, 1.5x] of --delay",
					},
					&cli.StringFlag{
						Name:  "user-agent",
						Usage: "override the User-Agent header",
					},
				),
			},
			{
				Name:   "catalog",
				Usage:  "list catalog entries (bucket, title, URL) without fetching any game page",
				Action: catalog.CatalogAction,
				Flags:  commonFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags are shared by scrape and catalog.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "cap on entries visited this run, skipped entries included (0 = no cap)",
		},
		&cli.StringFlag{
			Name:    "letter",
			Aliases: []string{"l"},
			Usage:   "restrict to one bucket: a letter, a digit for 0-9, or any symbol for _",
		},
		&cli.StringFlag{
			Name:  "site",
			Usage: "YAML site profile path (default: built-in beforeiplay.com profile)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: 30 * time.Second,
			Usage: "HTTP request timeout",
		},
		&cli.IntFlag{
			Name:  "max-index-pages",
			Usage: "cap on index pagination pages to walk (0 = no cap)",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "log errors only",
		},
	}
}
