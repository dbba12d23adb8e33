// Package report renders a completed crawl into its two artifacts: the
// per-page CSV table and the Graphviz DOT link graph.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/grrrrrrh/web-crawler-bd/internal/crawler"
)

// csvHeader is the stable column order of the page report.
var csvHeader = []string{
	"page_url",
	"internal_links",
	"external_links",
	"h1",
	"first_paragraph",
	"image_urls",
}

// WriteCSV writes one header row plus one row per page record, sorted by
// canonical URL so output is deterministic across runs.
func WriteCSV(w io.Writer, pages []crawler.PageRecord) error {
	sorted := make([]crawler.PageRecord, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].URL < sorted[j].URL })

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, page := range sorted {
		row := []string{
			page.URL,
			strconv.Itoa(page.InternalLinks),
			strconv.Itoa(page.ExternalLinks),
			page.H1,
			page.FirstParagraph,
			strings.Join(page.ImageURLs, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", page.URL, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the CSV report to path.
func WriteCSVFile(path string, pages []crawler.PageRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv report: %w", err)
	}
	if err := WriteCSV(f, pages); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv report: %w", err)
	}
	return nil
}
