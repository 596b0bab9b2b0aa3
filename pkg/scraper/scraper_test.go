package scraper

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gamewiki/gamescrape/models"
	"github.com/gamewiki/gamescrape/pkg/catalog"
	"github.com/gamewiki/gamescrape/pkg/convert"
	"github.com/gamewiki/gamescrape/pkg/fetcher"
	"github.com/gamewiki/gamescrape/pkg/storage"
)

// testSite serves a category index plus one wiki-shaped page per game.
type testSite struct {
	srv    *httptest.Server
	games  []string
	hits   map[string]int
	broken map[string]int // title -> HTTP status to return
	empty  map[string]bool
}

func newTestSite(t *testing.T, games ...string) *testSite {
	t.Helper()
	site := &testSite{
		games:  games,
		hits:   map[string]int{},
		broken: map[string]int{},
		empty:  map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/index", func(w http.ResponseWriter, r *http.Request) {
		site.hits["/index"]++
		var sb strings.Builder
		sb.WriteString(`<html><body><div class="mw-category-group"><ul>`)
		for _, g := range site.games {
			fmt.Fprintf(&sb, `<li><a href="/game/%s">%s</a></li>`, url.PathEscape(g), g)
		}
		sb.WriteString(`</ul></div></body></html>`)
		io.WriteString(w, sb.String())
	})
	mux.HandleFunc("/game/", func(w http.ResponseWriter, r *http.Request) {
		title, _ := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/game/"))
		site.hits[title]++
		if status, ok := site.broken[title]; ok {
			http.Error(w, "nope", status)
			return
		}
		if site.empty[title] {
			fmt.Fprintf(w, `<html><body><h1 id="firstHeading">%s</h1><p>wrong layout</p></body></html>`, title)
			return
		}
		fmt.Fprintf(w, `<html><body><h1 id="firstHeading">%s</h1>
<div id="mw-content-text"><div class="mw-parser-output">
<p>Advice for <b>%s</b>.</p>
</div></div></body></html>`, title, title)
	})

	site.srv = httptest.NewServer(mux)
	t.Cleanup(site.srv.Close)
	return site
}

func newTestScraper(t *testing.T, site *testSite, config *models.ScrapeConfig) *Scraper {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	profile := models.DefaultSiteProfile()
	profile.BaseURL = site.srv.URL
	profile.IndexURL = site.srv.URL + "/index"

	f := fetcher.NewFetcher(site.srv.Client(), "")
	return &Scraper{
		Fetcher:   f,
		Lister:    catalog.NewLister(f, profile, logger),
		Converter: convert.NewConverter(profile),
		Store:     &storage.Storage{},
		Throttle:  fetcher.NewThrottle(0, false),
		Config:    config,
		Logger:    logger,
	}
}

func TestRunSavesAllEntries(t *testing.T) {
	site := newTestSite(t, "Anachronox", "Braid", "7 Days to Die")
	out := t.TempDir()

	s := newTestScraper(t, site, &models.ScrapeConfig{OutputDir: out})
	summary, err := s.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Saved != 3 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 3 saved", summary)
	}

	checks := map[string]string{
		filepath.Join(out, "A", "Anachronox.md"):      "Advice for **Anachronox**",
		filepath.Join(out, "B", "Braid.md"):           "Advice for **Braid**",
		filepath.Join(out, "0-9", "7 Days to Die.md"): "Advice for **7 Days to Die**",
	}
	for path, want := range checks {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("expected file missing: %v", err)
			continue
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s does not contain %q:\n%s", path, want, data)
		}
	}
}

func TestRunLetterAndLimit(t *testing.T) {
	site := newTestSite(t,
		"Alpha Protocol", "Anachronox", "Arx Fatalis", "Axiom Verge", "Alan Wake",
		"Braid", "Celeste")
	out := t.TempDir()

	s := newTestScraper(t, site, &models.ScrapeConfig{
		OutputDir: out,
		Letter:    "A",
		Limit:     3,
	})
	summary, err := s.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Saved != 3 {
		t.Fatalf("saved = %d, want 3", summary.Saved)
	}

	files, err := os.ReadDir(filepath.Join(out, "A"))
	if err != nil {
		t.Fatalf("bucket A missing: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("bucket A holds %d files, want 3", len(files))
	}

	// Order is the catalog order, so the first three A titles win.
	for _, fetched := range []string{"Alpha Protocol", "Anachronox", "Arx Fatalis"} {
		if site.hits[fetched] != 1 {
			t.Errorf("%s fetched %d times, want 1", fetched, site.hits[fetched])
		}
	}
	// The rest stay unfetched: limit cut Axiom Verge and Alan Wake,
	// the letter filter cut Braid and Celeste.
	for _, unfetched := range []string{"Axiom Verge", "Alan Wake", "Braid", "Celeste"} {
		if site.hits[unfetched] != 0 {
			t.Errorf("%s fetched %d times, want 0", unfetched, site.hits[unfetched])
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	site := newTestSite(t, "Anachronox", "Braid")
	out := t.TempDir()
	config := &models.ScrapeConfig{OutputDir: out}

	first, err := newTestScraper(t, site, config).Run()
	if err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if first.Saved != 2 {
		t.Fatalf("first run saved = %d, want 2", first.Saved)
	}

	second, err := newTestScraper(t, site, config).Run()
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if second.Saved != 0 || second.Skipped != 2 {
		t.Errorf("second run = %+v, want all skipped", second)
	}

	for _, g := range site.games {
		if site.hits[g] != 1 {
			t.Errorf("%s fetched %d times across both runs, want 1", g, site.hits[g])
		}
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	site := newTestSite(t, "Anachronox", "Braid", "Celeste")
	site.broken["Braid"] = http.StatusNotFound
	out := t.TempDir()

	summary, err := newTestScraper(t, site, &models.ScrapeConfig{OutputDir: out}).Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Saved != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want 2 saved 1 failed", summary)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Entry.Title != "Braid" {
		t.Errorf("failures = %+v, want Braid", summary.Failures)
	}
	// The entry after the failure was still processed.
	if _, err := os.Stat(filepath.Join(out, "C", "Celeste.md")); err != nil {
		t.Errorf("Celeste.md missing after earlier failure: %v", err)
	}
	// No file was written for the failed entry.
	if _, err := os.Stat(filepath.Join(out, "B", "Braid.md")); !os.IsNotExist(err) {
		t.Error("a file was written for the failed entry")
	}
}

func TestRunExtractionFailure(t *testing.T) {
	site := newTestSite(t, "Anachronox", "Braid")
	site.empty["Anachronox"] = true
	out := t.TempDir()

	summary, err := newTestScraper(t, site, &models.ScrapeConfig{OutputDir: out}).Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Saved != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 saved 1 failed", summary)
	}
	if _, err := os.Stat(filepath.Join(out, "A", "Anachronox.md")); !os.IsNotExist(err) {
		t.Error("a file was written despite extraction failure")
	}
}

func TestRunIndexUnreachableIsFatal(t *testing.T) {
	site := newTestSite(t, "Anachronox")
	config := &models.ScrapeConfig{OutputDir: t.TempDir()}
	s := newTestScraper(t, site, config)
	site.srv.Close()

	if _, err := s.Run(); err == nil {
		t.Fatal("expected fatal error when the index is unreachable")
	}
}

func TestFilter(t *testing.T) {
	entries := []models.GameEntry{
		{Title: "Anachronox"},
		{Title: "arx fatalis"},
		{Title: "Braid"},
		{Title: "7 Days to Die"},
		{Title: "'Splosion Man"},
	}

	tests := []struct {
		bucket string
		want   int
	}{
		{"", 5},
		{"A", 2},
		{"B", 1},
		{"0-9", 1},
		{"_", 1},
		{"Z", 0},
	}
	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			if got := Filter(entries, tt.bucket); len(got) != tt.want {
				t.Errorf("Filter(%q) kept %d entries, want %d", tt.bucket, len(got), tt.want)
			}
		})
	}
}
