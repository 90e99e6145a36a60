package offers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the plain-text content of a possibly-HTML description.
// Offer catalogs exported from job boards frequently carry HTML markup in
// their description fields. Plain-text input is returned with collapsed
// whitespace; parse failures fall back to the input unchanged.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return collapseWhitespace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseWhitespace(s)
	}

	// Block-level tags would otherwise glue adjacent words together
	doc.Find("br, p, li, div, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})

	return collapseWhitespace(doc.Text())
}

// collapseWhitespace replaces runs of whitespace with a single space
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
