// Package extract provides the HTML extraction collaborator for the crawl
// engine: outbound links plus the page fields the CSV report carries.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/grrrrrrh/web-crawler-bd/internal/crawler"
)

// GoqueryExtractor implements crawler.Extractor with goquery.
type GoqueryExtractor struct{}

// New returns a GoqueryExtractor.
func New() *GoqueryExtractor {
	return &GoqueryExtractor{}
}

// Extract parses body and returns outbound anchor links resolved against
// baseURL, the first <h1> text, the first paragraph (preferring one inside
// <main>), and image URLs. Anchors without an href are skipped; hrefs that
// do not parse relative to the base are returned as-is for the caller to
// reject.
func (x *GoqueryExtractor) Extract(baseURL string, body []byte) (crawler.PageData, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return crawler.PageData{}, fmt.Errorf("parse base url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return crawler.PageData{}, fmt.Errorf("parse html: %w", err)
	}

	data := crawler.PageData{
		H1:             firstText(doc.Find("h1")),
		FirstParagraph: firstParagraph(doc),
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.TrimSpace(href) == "" {
			return
		}
		data.Links = append(data.Links, resolve(base, href))
	})

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if strings.TrimSpace(src) == "" {
			return
		}
		data.ImageURLs = append(data.ImageURLs, resolve(base, src))
	})

	return data, nil
}

// firstParagraph prefers the first <p> inside <main> and falls back to the
// first <p> anywhere in the document.
func firstParagraph(doc *goquery.Document) string {
	if text := firstText(doc.Find("main p")); text != "" {
		return text
	}
	return firstText(doc.Find("p"))
}

func firstText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(sel.First().Text()), " ")
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
