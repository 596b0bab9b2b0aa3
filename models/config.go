// Package models defines data structures for configuration and scraping.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ScrapeConfig holds runtime configuration for one scrape run.
// All values come from CLI flags; constructed once and read-only after.
type ScrapeConfig struct {
	// Limit caps the number of entries visited this run, skipped
	// entries included. Zero means no cap.
	Limit int
	// OutputDir is the root of the output tree.
	OutputDir string
	// Delay is the base politeness delay between fetches.
	Delay time.Duration
	// RandomizeDelay draws each delay uniformly from
	// [0.5*Delay, 1.5*Delay] instead of using the fixed value.
	RandomizeDelay bool
	// Letter restricts the run to a single bucket ("A".."Z", "0-9"
	// or "_"). Empty means all buckets.
	Letter string
}

// SiteProfile describes the markup contract with the target site.
// Changes to the site's markup land here, not in code.
type SiteProfile struct {
	BaseURL  string `yaml:"base_url"`
	IndexURL string `yaml:"index_url"`

	// EntrySelector matches the anchor elements of the category
	// listing; each match yields one GameEntry.
	EntrySelector string `yaml:"entry_selector"`
	// NextPageText identifies the pagination link by its anchor text.
	NextPageText string `yaml:"next_page_text"`

	// TitleSelector locates the page heading on a game page.
	TitleSelector string `yaml:"title_selector"`
	// ContentSelectors are tried in order; the first match is the
	// content region. None matching is an extraction failure.
	ContentSelectors []string `yaml:"content_selectors"`
	// StripSelectors are removed from the region before conversion.
	StripSelectors []string `yaml:"strip_selectors"`

	// UseReadability falls back to readability article extraction
	// when no content selector matches.
	UseReadability bool `yaml:"use_readability"`

	UserAgent string `yaml:"user_agent"`
}

// DefaultSiteProfile returns the built-in profile for beforeiplay.com.
func DefaultSiteProfile() *SiteProfile {
	return &SiteProfile{
		BaseURL:       "https://beforeiplay.com",
		IndexURL:      "https://beforeiplay.com/index.php?title=Category:Games",
		EntrySelector: "div.mw-category-group li a",
		NextPageText:  "next page",
		TitleSelector: "h1#firstHeading",
		ContentSelectors: []string{
			"div#mw-content-text div.mw-parser-output",
			"div#mw-content-text",
		},
		StripSelectors: []string{
			"span.mw-editsection",
			"div.printfooter",
			"div#catlinks",
		},
		UseReadability: false,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	}
}

// LoadSiteProfile reads a YAML profile file. Fields missing from the
// file keep their default values.
func LoadSiteProfile(path string) (*SiteProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site profile: %w", err)
	}

	profile := DefaultSiteProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse site profile: %w", err)
	}

	if profile.IndexURL == "" {
		return nil, fmt.Errorf("site profile %s has no index_url", path)
	}
	if profile.EntrySelector == "" {
		return nil, fmt.Errorf("site profile %s has no entry_selector", path)
	}

	return profile, nil
}
