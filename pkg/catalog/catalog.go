// Package catalog lists every game page reachable from the site's
// category index.
package catalog

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gamewiki/gamescrape/models"
	"github.com/gamewiki/gamescrape/pkg/fetcher"
)

// IndexError reports that the category index itself could not be
// read. With no entry list there is nothing to scrape, so the caller
// treats this as fatal.
type IndexError struct {
	URL string
	Err error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("failed to read index %s: %v", e.URL, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// Lister walks the category index and its pagination links.
type Lister struct {
	fetcher *fetcher.Fetcher
	profile *models.SiteProfile
	logger  *slog.Logger

	// MaxPages caps the pagination walk; zero means no cap.
	MaxPages int
}

func NewLister(f *fetcher.Fetcher, profile *models.SiteProfile, logger *slog.Logger) *Lister {
	return &Lister{
		fetcher: f,
		profile: profile,
		logger:  logger,
	}
}

// List returns every entry of the category listing in source order.
// The order is stable across runs for unchanged source data, which is
// what makes --limit and --letter deterministic.
//
// Failure on the first index page is an *IndexError. Failure on a
// later pagination page is partial: entries collected so far are
// returned and a warning is logged, since pages beyond the broken one
// are unreachable in a linear next-page chain.
func (l *Lister) List() ([]models.GameEntry, error) {
	var entries []models.GameEntry
	seen := make(map[string]struct{})
	visited := make(map[string]struct{})

	pageURL := l.profile.IndexURL
	for page := 1; pageURL != ""; page++ {
		if l.MaxPages > 0 && page > l.MaxPages {
			break
		}
		if _, dup := visited[pageURL]; dup {
			l.logger.Warn("pagination cycle detected, stopping walk", "url", pageURL)
			break
		}
		visited[pageURL] = struct{}{}

		doc, err := l.fetcher.GetHTML(pageURL)
		if err != nil {
			if page == 1 {
				return nil, &IndexError{URL: pageURL, Err: err}
			}
			l.logger.Warn("failed to read index page, keeping entries collected so far",
				"url", pageURL, "page", page, "error", err)
			break
		}

		count := 0
		doc.Find(l.profile.EntrySelector).Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok || href == "" {
				return
			}
			title := strings.TrimSpace(s.Text())
			full := l.resolve(pageURL, href)
			if _, dup := seen[full]; dup {
				return
			}
			seen[full] = struct{}{}
			entries = append(entries, models.GameEntry{Title: title, URL: full})
			count++
		})
		l.logger.Debug("parsed index page", "url", pageURL, "entries", count)

		pageURL = l.nextPage(doc, pageURL)
	}

	return entries, nil
}

// resolve turns a page-relative href into an absolute URL.
func (l *Lister) resolve(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return l.profile.BaseURL + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return l.profile.BaseURL + href
	}
	return base.ResolveReference(ref).String()
}

// nextPage finds the pagination link by its anchor text. MediaWiki
// renders the link twice (above and below the listing); the first
// match wins. Returns "" when the walk is done.
func (l *Lister) nextPage(doc *goquery.Document, current string) string {
	if l.profile.NextPageText == "" {
		return ""
	}

	next := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(s.Text()), l.profile.NextPageText) {
			return true
		}
		href, _ := s.Attr("href")
		resolved := l.resolve(current, href)
		if resolved == current {
			return true
		}
		next = resolved
		return false
	})
	return next
}
