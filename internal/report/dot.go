package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grrrrrrh/web-crawler-bd/internal/crawler"
)

// WriteDOT writes the internal link graph as a Graphviz digraph, one edge
// statement per recorded edge. Node identifiers are the quoted canonical
// URLs.
func WriteDOT(w io.Writer, edges []crawler.Edge) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "digraph site {"); err != nil {
		return fmt.Errorf("write dot header: %w", err)
	}
	if _, err := fmt.Fprintln(bw, "  rankdir=LR;"); err != nil {
		return fmt.Errorf("write dot header: %w", err)
	}
	for _, edge := range edges {
		if _, err := fmt.Fprintf(bw, "  %s -> %s;\n", quote(edge.From), quote(edge.To)); err != nil {
			return fmt.Errorf("write dot edge: %w", err)
		}
	}
	if _, err := fmt.Fprintln(bw, "}"); err != nil {
		return fmt.Errorf("write dot footer: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush dot: %w", err)
	}
	return nil
}

// WriteDOTFile writes the DOT graph to path.
func WriteDOTFile(path string, edges []crawler.Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dot report: %w", err)
	}
	if err := WriteDOT(f, edges); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close dot report: %w", err)
	}
	return nil
}

// quote escapes a URL for use as a DOT node identifier.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
