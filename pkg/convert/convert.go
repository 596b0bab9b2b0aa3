// Package convert isolates the content region of a fetched page and
// converts it to Markdown.
package convert

import (
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/gamewiki/gamescrape/models"
)

// NoContentError reports that none of the profile's content selectors
// matched the fetched page. This usually means the site changed its
// markup; the entry is skipped rather than written mis-converted.
type NoContentError struct {
	URL string
}

func (e *NoContentError) Error() string {
	return fmt.Sprintf("no content region found in %s", e.URL)
}

// Converter turns a fetched page into a MarkdownDocument according to
// a site profile. Conversion is deterministic: identical input HTML
// yields identical Markdown.
type Converter struct {
	profile *models.SiteProfile
	md      *md.Converter
}

func NewConverter(profile *models.SiteProfile) *Converter {
	return &Converter{
		profile: profile,
		md:      md.NewConverter("", true, nil),
	}
}

// Convert extracts the content region of doc and renders it as
// Markdown. The document's title heading is prepended when the body
// does not already start with one.
func (c *Converter) Convert(pageURL string, doc *goquery.Document) (*models.MarkdownDocument, error) {
	title := strings.TrimSpace(doc.Find(c.profile.TitleSelector).First().Text())

	region := c.findRegion(doc)
	var body string
	if region != nil {
		for _, sel := range c.profile.StripSelectors {
			region.Find(sel).Remove()
		}

		html, err := goquery.OuterHtml(region)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize content region of %s: %w", pageURL, err)
		}

		body, err = c.md.ConvertString(html)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s to markdown: %w", pageURL, err)
		}
	} else if c.profile.UseReadability {
		var err error
		body, title, err = c.convertReadability(pageURL, doc, title)
		if err != nil {
			return nil, err
		}
	} else {
		return nil, &NoContentError{URL: pageURL}
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, &NoContentError{URL: pageURL}
	}

	if title != "" && !strings.HasPrefix(body, "# ") {
		body = "# " + title + "\n\n" + body
	}

	return &models.MarkdownDocument{
		Title:    title,
		Markdown: body + "\n",
	}, nil
}

// findRegion returns the first match of the profile's content
// selectors, in order, or nil when the page has none.
func (c *Converter) findRegion(doc *goquery.Document) *goquery.Selection {
	for _, sel := range c.profile.ContentSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

// convertReadability is the fallback path for profiles without a
// stable content selector: let readability find the article, then
// convert its cleaned HTML.
func (c *Converter) convertReadability(pageURL string, doc *goquery.Document, title string) (string, string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid page URL %s: %w", pageURL, err)
	}

	html, err := doc.Html()
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize page %s: %w", pageURL, err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return "", "", &NoContentError{URL: pageURL}
	}

	body, err := c.md.ConvertString(article.Content)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert %s to markdown: %w", pageURL, err)
	}

	if title == "" {
		title = strings.TrimSpace(article.Title)
	}
	return body, title, nil
}
