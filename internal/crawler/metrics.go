package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesVisited tracks pages fetched and recorded successfully.
	PagesVisited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_pages_visited_total",
		Help: "The total number of pages fetched and recorded.",
	})
	// PagesFailed tracks pages whose fetch failed unrecoverably.
	PagesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_pages_failed_total",
		Help: "The total number of pages whose fetch failed.",
	})
	// InternalLinks tracks discovered links inside the seed's domain.
	InternalLinks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_links_internal_total",
		Help: "The total number of in-domain links discovered.",
	})
	// ExternalLinks tracks discovered links outside the seed's domain.
	ExternalLinks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_links_external_total",
		Help: "The total number of external links discovered.",
	})
	// RobotsDenied tracks URLs skipped because robots.txt disallows them.
	RobotsDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_robots_denied_total",
		Help: "The total number of URLs skipped due to robots.txt rules.",
	})
	// MalformedURLs tracks discovered URLs the canonicalizer rejected.
	MalformedURLs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_malformed_urls_total",
		Help: "The total number of discovered URLs dropped as malformed.",
	})
)
