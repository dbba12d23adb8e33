// Package crawler implements the single-domain crawl engine: URL
// canonicalization, robots policy, the claim-based frontier, and the
// concurrency-bounded coordinator.
package crawler

import (
	"errors"
	"net/http"
)

// PageState is the lifecycle state of a canonical URL within one crawl run.
type PageState int

// Page states. A URL starts Unvisited when first discovered, moves to
// InFlight exactly once when a worker claims it, and ends Visited or Failed.
const (
	StateUnvisited PageState = iota
	StateInFlight
	StateVisited
	StateFailed
)

// String returns the lowercase state name used in logs and metrics labels.
func (s PageState) String() string {
	switch s {
	case StateUnvisited:
		return "unvisited"
	case StateInFlight:
		return "in_flight"
	case StateVisited:
		return "visited"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunState is the lifecycle state of a whole crawl run.
type RunState int

// Run states.
const (
	RunIdle RunState = iota
	RunRunning
	RunCompleted
	RunAborted
)

// String returns the lowercase run-state name.
func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunRunning:
		return "running"
	case RunCompleted:
		return "completed"
	case RunAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// PageRecord holds everything reported about one visited page. Records are
// immutable once stored.
type PageRecord struct {
	// URL is the page's canonical URL, the deduplication key.
	URL string
	// Content is the raw page body, nil when the response was not text.
	Content []byte
	// H1 is the text of the page's first <h1>, empty if absent.
	H1 string
	// FirstParagraph is the text of the first <p> inside <main>, falling
	// back to the first <p> anywhere.
	FirstParagraph string
	// ImageURLs lists absolute <img src> URLs found on the page.
	ImageURLs []string
	// InternalLinks counts outbound links to the seed's registrable domain.
	InternalLinks int
	// ExternalLinks counts outbound links to other domains.
	ExternalLinks int
}

// Edge is a directed internal link between two canonical URLs. The link
// graph is a multigraph: the same edge may appear once per occurrence.
type Edge struct {
	From string
	To   string
}

// FetchResult is what the transport collaborator returns for one URL.
type FetchResult struct {
	StatusCode  int
	Headers     http.Header
	Body        []byte
	ContentType string
}

// PageData is what the extraction collaborator pulls out of an HTML body.
type PageData struct {
	Links          []string
	H1             string
	FirstParagraph string
	ImageURLs      []string
}

// Sentinel errors for the crawl taxonomy. Per-page errors (malformed URLs,
// transport failures) never halt a run; only setup errors are fatal.
var (
	// ErrMalformedURL marks URLs the canonicalizer rejects.
	ErrMalformedURL = errors.New("malformed url")
	// ErrSetup marks fatal pre-traversal failures (bad seed, bad budget).
	ErrSetup = errors.New("crawl setup")
)
