package scrape

import (
	"fmt"
	"io"

	"github.com/gamewiki/gamescrape/pkg/scraper"
)

// PrintSummary writes the human-facing end-of-run report to w.
// Failures include title and URL so the user can investigate or
// simply re-run: saved files are skipped next time, so a new run
// retries exactly the failed entries.
func PrintSummary(w io.Writer, outputDir string, s *scraper.Summary) {
	fmt.Fprintln(w, "--- Scrape complete ---")
	fmt.Fprintf(w, "Saved:   %d\n", s.Saved)
	fmt.Fprintf(w, "Skipped: %d (already on disk)\n", s.Skipped)
	fmt.Fprintf(w, "Failed:  %d\n", s.Failed)

	if len(s.Failures) > 0 {
		fmt.Fprintln(w, "\nFailed entries:")
		for _, f := range s.Failures {
			fmt.Fprintf(w, "  %s (%s): %v\n", f.Entry.Title, f.Entry.URL, f.Err)
		}
	}

	fmt.Fprintf(w, "\nMarkdown files are under %s\n", outputDir)
}
