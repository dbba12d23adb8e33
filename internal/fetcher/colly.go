// Package fetcher provides the HTTP transport collaborator for the crawl
// engine, built on the Colly collector.
package fetcher

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/grrrrrrh/web-crawler-bd/internal/crawler"
)

// Config controls the Colly transport.
type Config struct {
	UserAgent      string
	Concurrency    int
	RequestTimeout time.Duration
}

// CollyFetcher implements crawler.Fetcher using a shared Colly collector.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based fetcher.
func NewCollyFetcher(cfg Config, logger *zap.Logger) (*CollyFetcher, error) {
	base := colly.NewCollector(
		colly.Async(true),
		colly.UserAgent(cfg.UserAgent),
	)
	// Revisit control belongs to the frontier, not the transport.
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          128,
		MaxIdleConnsPerHost:   32,
		MaxConnsPerHost:       cfg.Concurrency * 2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.RequestTimeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.RequestTimeout)

	if err := base.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Concurrency,
	}); err != nil {
		return nil, err
	}

	return &CollyFetcher{
		baseCollector: base,
		logger:        logger,
	}, nil
}

// Fetch retrieves one page via the configured collector. Non-2xx responses
// are returned as results, not errors; the engine decides what to do with
// them.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (crawler.FetchResult, error) {
	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchOutcome, 1)
	var once sync.Once
	send := func(out fetchOutcome) {
		once.Do(func() {
			resultCh <- out
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		headers := http.Header{}
		if r.Headers != nil {
			for k, v := range *r.Headers {
				cp := make([]string, len(v))
				copy(cp, v)
				headers[k] = cp
			}
		}
		send(fetchOutcome{result: crawler.FetchResult{
			StatusCode:  r.StatusCode,
			Headers:     headers,
			Body:        append([]byte{}, r.Body...),
			ContentType: headers.Get("Content-Type"),
		}})
	})

	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		// Colly reports HTTP error statuses through OnError; surface the
		// status so the engine can distinguish them from transport faults.
		if r != nil && r.StatusCode != 0 {
			send(fetchOutcome{result: crawler.FetchResult{StatusCode: r.StatusCode}})
			return
		}
		send(fetchOutcome{err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		return crawler.FetchResult{}, err
	}
	collector.Wait()

	select {
	case out := <-resultCh:
		if err := ctx.Err(); err != nil {
			return crawler.FetchResult{}, err
		}
		return out.result, out.err
	default:
		return crawler.FetchResult{}, errors.New("colly fetch produced no result")
	}
}

type fetchOutcome struct {
	result crawler.FetchResult
	err    error
}
