package crawler

import "context"

// Fetcher retrieves a single URL. Implementations must honor the context
// and apply their own request timeout.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (FetchResult, error)
}

// Extractor pulls links and page data out of an HTML body. Returned link
// URLs are absolute, resolved against baseURL.
type Extractor interface {
	Extract(baseURL string, body []byte) (PageData, error)
}

// RobotsPolicy answers whether a path may be fetched by this crawler's
// user agent. Implementations are read-only after construction and safe
// for concurrent use.
type RobotsPolicy interface {
	Allowed(path string) bool
}
