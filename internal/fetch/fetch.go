// Package fetch retrieves job postings from public URLs and turns the page
// content into catalog offers.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/mathieu/applyassist/internal/offers"
	"github.com/mathieu/applyassist/internal/types"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies fetches made by the CLI and server.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ApplyAssist/1.0)"

// Error reports a failed page fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures page fetching.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the defaults used by the CLI commands.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Page holds the raw HTML retrieved from a posting URL.
type Page struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// URL retrieves the HTML content of a single page.
func URL(ctx context.Context, rawURL string, opts *Options) (*Page, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	page := &Page{
		URL:         rawURL,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return page, nil
}

// Offer fetches a job posting page and converts it into a catalog offer.
// The originating platform is detected from the URL so that extraction can
// use selectors tuned for the major applicant tracking systems.
func Offer(ctx context.Context, rawURL string, opts *Options) (types.RawOffer, error) {
	page, err := URL(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(rawURL)
	title, description, err := extractPosting(page.HTML, platform)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to parse posting", Cause: err}
	}
	if strings.TrimSpace(description) == "" {
		return nil, &Error{URL: rawURL, Message: "no posting content found"}
	}

	offer := types.RawOffer{
		offers.FieldID:          uuid.NewString(),
		offers.FieldTitle:       title,
		offers.FieldDescription: description,
		"source_url":            rawURL,
	}
	if org := organizationFromURL(rawURL, platform); org != "" {
		offer[offers.FieldOrganization] = org
	}
	return offer, nil
}

// extractPosting pulls the posting title and description text out of the
// page HTML. Noise elements are stripped before selecting the main content,
// falling back to the document body when no selector matches.
func extractPosting(html string, platform Platform) (title, description string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if noise := PlatformNoiseSelectors(platform); len(noise) > 0 {
		doc.Find(strings.Join(noise, ", ")).Remove()
	}

	title = strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	var content *goquery.Selection
	for _, selector := range PlatformContentSelectors(platform) {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return title, cleanWhitespace(content.Text()), nil
}

// organizationFromURL guesses the hiring organization from the URL shape of
// hosted ATS boards, where the board slug is the company name.
func organizationFromURL(rawURL string, platform Platform) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.FieldsFunc(parsed.Path, func(r rune) bool { return r == '/' })
	switch platform {
	case PlatformGreenhouse, PlatformLever:
		if len(segments) > 0 {
			return segments[0]
		}
	case PlatformWorkday:
		host := strings.ToLower(parsed.Host)
		if name, _, found := strings.Cut(host, "."); found {
			return name
		}
	}
	return ""
}

// cleanWhitespace trims each line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
