package crawler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grrrrrrh/web-crawler-bd/internal/crawler"
	"github.com/grrrrrrh/web-crawler-bd/internal/extract"
	"github.com/grrrrrrh/web-crawler-bd/internal/fetcher"
)

// TestCrawl_EndToEnd runs the real fetcher, extractor, and robots loader
// against a local site: four pages, one robots-disallowed, one dead link,
// one external link.
func TestCrawl_EndToEnd(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, body)
		}
	}
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/missing", http.NotFound)
	mux.Handle("/", page(`<html><body>
		<h1>Home</h1>
		<main><p>Welcome to the test site.</p></main>
		<a href="/about">About</a>
		<a href="/private">Secret</a>
		<a href="/missing">Dead</a>
		<a href="https://other.invalid/elsewhere">Out</a>
	</body></html>`))
	mux.Handle("/about", page(`<html><body>
		<h1>About</h1>
		<a href="/">Home</a>
		<img src="/team.png">
	</body></html>`))
	mux.Handle("/private", page(`<html><body><h1>Secret</h1></body></html>`))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := crawler.Config{
		SeedURL:        srv.URL + "/",
		UserAgent:      "webgraph-test",
		MaxConcurrency: 3,
		MaxPages:       10,
		RequestTimeout: 2 * time.Second,
		RobotsTimeout:  2 * time.Second,
	}
	collyFetcher, err := fetcher.NewCollyFetcher(fetcher.Config{
		UserAgent:      cfg.UserAgent,
		Concurrency:    cfg.MaxConcurrency,
		RequestTimeout: cfg.RequestTimeout,
	}, zap.NewNop())
	require.NoError(t, err)

	engine := crawler.NewEngine(cfg, collyFetcher, extract.New(), nil, zap.NewNop())
	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, crawler.RunCompleted, engine.State())

	// "/" and "/about" are visited; "/private" is robots-denied and
	// "/missing" 404s (Failed, no record).
	byURL := make(map[string]crawler.PageRecord, len(result.Pages))
	for _, p := range result.Pages {
		byURL[p.URL] = p
	}
	require.Len(t, byURL, 2)

	root, ok := byURL[srv.URL+"/"]
	require.True(t, ok)
	require.Equal(t, "Home", root.H1)
	require.Equal(t, "Welcome to the test site.", root.FirstParagraph)
	require.Equal(t, 3, root.InternalLinks)
	require.Equal(t, 1, root.ExternalLinks)

	about, ok := byURL[srv.URL+"/about"]
	require.True(t, ok)
	require.Equal(t, "About", about.H1)
	require.Equal(t, []string{srv.URL + "/team.png"}, about.ImageURLs)
	require.Equal(t, 1, about.InternalLinks)

	// Edges cover all internal link occurrences, including the ones whose
	// destinations were never fetched.
	require.ElementsMatch(t, []crawler.Edge{
		{From: srv.URL + "/", To: srv.URL + "/about"},
		{From: srv.URL + "/", To: srv.URL + "/private"},
		{From: srv.URL + "/", To: srv.URL + "/missing"},
		{From: srv.URL + "/about", To: srv.URL + "/"},
	}, result.Edges)
}

// TestCrawl_EndToEnd_BudgetOne checks that a one-page budget visits only
// the seed even when it links further.
func TestCrawl_EndToEnd_BudgetOne(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>
			<a href="/p1">1</a><a href="/p2">2</a><a href="/p3">3</a>
			<a href="/p4">4</a><a href="/p5">5</a>
		</body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := crawler.Config{
		SeedURL:        srv.URL,
		UserAgent:      "webgraph-test",
		MaxConcurrency: 2,
		MaxPages:       1,
		RequestTimeout: 2 * time.Second,
		RobotsTimeout:  2 * time.Second,
	}
	collyFetcher, err := fetcher.NewCollyFetcher(fetcher.Config{
		UserAgent:      cfg.UserAgent,
		Concurrency:    cfg.MaxConcurrency,
		RequestTimeout: cfg.RequestTimeout,
	}, zap.NewNop())
	require.NoError(t, err)

	engine := crawler.NewEngine(cfg, collyFetcher, extract.New(), nil, zap.NewNop())
	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, crawler.RunCompleted, engine.State())
	require.Len(t, result.Pages, 1)
	require.Equal(t, 5, result.Pages[0].InternalLinks)
}
