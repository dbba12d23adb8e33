package crawler

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine coordinates one crawl run: it pulls URLs from the Frontier, fans
// fetch-and-extract work out to a bounded worker pool, and accumulates page
// records and link-graph edges. All state lives on the Engine value, so
// independent runs can coexist in one process.
type Engine struct {
	cfg       Config
	fetcher   Fetcher
	extractor Extractor
	logger    *zap.Logger

	seedDomain string
	robots     RobotsPolicy
	frontier   *Frontier
	pages      *PageStore
	graph      *LinkGraph

	mu    sync.Mutex
	state RunState
}

// Result is handed to the exporters once a run completes.
type Result struct {
	RunID string
	State RunState
	Pages []PageRecord
	Edges []Edge
}

// NewEngine constructs an Engine. A nil robots policy means Run loads
// robots.txt from the seed's host before traversal begins. The
// configuration is validated at the start of Run, not here.
func NewEngine(cfg Config, fetcher Fetcher, extractor Extractor, robots RobotsPolicy, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		robots:    robots,
		logger:    logger,
		pages:     NewPageStore(),
		graph:     NewLinkGraph(),
		state:     RunIdle,
	}
}

// State returns the run's current lifecycle state.
func (e *Engine) State() RunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(s RunState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
}

// Run executes the crawl until the frontier drains or the page budget is
// exhausted, then returns the accumulated result. Setup failures (invalid
// config, malformed seed) abort the run before any fetch and return a
// wrapped ErrSetup. Context cancellation also aborts the run; per-page
// fetch failures never do.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := e.logger.With(zap.String("run_id", runID))

	seed, err := e.setup(ctx, logger)
	if err != nil {
		e.setState(RunAborted)
		return nil, err
	}
	e.setState(RunRunning)
	logger.Info("starting crawl",
		zap.String("seed", seed),
		zap.String("domain", e.seedDomain),
		zap.Int("max_concurrency", e.cfg.MaxConcurrency),
		zap.Int("max_pages", e.cfg.MaxPages),
	)

	e.submit(seed, logger)

	var group errgroup.Group
	for i := 0; i < e.cfg.MaxConcurrency; i++ {
		group.Go(func() error {
			for {
				// Stop claiming new work once the run is canceled;
				// already-claimed pages finish naturally.
				if ctx.Err() != nil {
					return nil
				}
				canonical, ok := e.frontier.Next()
				if !ok {
					return nil
				}
				e.process(ctx, canonical, logger)
			}
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		e.setState(RunAborted)
		return nil, fmt.Errorf("crawl canceled: %w", err)
	}

	e.setState(RunCompleted)
	result := &Result{
		RunID: runID,
		State: RunCompleted,
		Pages: e.pages.Records(),
		Edges: e.graph.Edges(),
	}
	logger.Info("crawl completed",
		zap.Int("pages", len(result.Pages)),
		zap.Int("edges", len(result.Edges)),
	)
	return result, nil
}

// setup validates the configuration, canonicalizes the seed, and loads the
// robots policy. It runs before any URL enters the frontier.
func (e *Engine) setup(ctx context.Context, logger *zap.Logger) (string, error) {
	if err := e.cfg.Validate(); err != nil {
		return "", err
	}
	seed, err := Canonicalize(nil, e.cfg.SeedURL)
	if err != nil {
		return "", fmt.Errorf("%w: seed URL: %v", ErrSetup, err)
	}
	seedURL, err := url.Parse(seed)
	if err != nil {
		return "", fmt.Errorf("%w: parse canonical seed: %v", ErrSetup, err)
	}
	e.seedDomain = registrableDomain(seedURL.Hostname())
	e.frontier = NewFrontier(e.cfg.MaxPages)
	if e.robots == nil {
		e.robots = LoadRobots(ctx, seedURL, e.cfg.UserAgent, e.cfg.RobotsTimeout, logger)
	}
	return seed, nil
}

// submit offers a canonical in-domain URL to the frontier if robots allow
// it and page budget remains. The frontier's claim is the only gate between
// discovery and processing, so a URL is processed at most once no matter
// how many pages link to it or how many workers race on it.
func (e *Engine) submit(canonical string, logger *zap.Logger) {
	u, err := url.Parse(canonical)
	if err != nil {
		return
	}
	if !e.robots.Allowed(u.Path) {
		RobotsDenied.Inc()
		logger.Debug("skipping robots-disallowed url", zap.String("url", canonical))
		return
	}
	if e.frontier.RemainingBudget() <= 0 {
		return
	}
	e.frontier.Discover(canonical)
}

// process fetches one claimed URL end-to-end: fetch, extract, classify,
// record. Errors are local to the page.
func (e *Engine) process(ctx context.Context, canonical string, logger *zap.Logger) {
	if ctx.Err() != nil {
		e.frontier.MarkFailed(canonical)
		return
	}
	logger = logger.With(zap.String("url", canonical))

	res, err := e.fetcher.Fetch(ctx, canonical)
	if err != nil {
		logger.Warn("fetch failed", zap.Error(err))
		PagesFailed.Inc()
		e.frontier.MarkFailed(canonical)
		return
	}
	if res.StatusCode >= 400 {
		logger.Warn("fetch returned error status", zap.Int("status_code", res.StatusCode))
		PagesFailed.Inc()
		e.frontier.MarkFailed(canonical)
		return
	}

	record := e.buildRecord(canonical, res, logger)
	e.pages.Add(record)
	e.frontier.MarkVisited(canonical)
	PagesVisited.Inc()
	logger.Debug("page visited",
		zap.Int("internal_links", record.InternalLinks),
		zap.Int("external_links", record.ExternalLinks),
	)
}

// buildRecord classifies the response body and, for HTML pages, extracts
// links, records edges, and submits newly discovered in-domain URLs.
func (e *Engine) buildRecord(canonical string, res FetchResult, logger *zap.Logger) PageRecord {
	record := PageRecord{URL: canonical}

	mediaType := mediaTypeOf(res.ContentType)
	if !strings.HasPrefix(mediaType, "text/") {
		return record
	}
	record.Content = res.Body
	if mediaType != "text/html" {
		return record
	}

	data, err := e.extractor.Extract(canonical, res.Body)
	if err != nil {
		logger.Warn("link extraction failed", zap.Error(err))
		return record
	}
	record.H1 = data.H1
	record.FirstParagraph = data.FirstParagraph
	record.ImageURLs = data.ImageURLs

	base, err := url.Parse(canonical)
	if err != nil {
		return record
	}
	for _, link := range data.Links {
		target, err := Canonicalize(base, link)
		if err != nil {
			MalformedURLs.Inc()
			logger.Debug("dropping malformed link", zap.String("link", link))
			continue
		}
		if !sameDomain(e.seedDomain, target) {
			record.ExternalLinks++
			ExternalLinks.Inc()
			continue
		}
		record.InternalLinks++
		InternalLinks.Inc()
		e.graph.AddEdge(canonical, target)
		e.submit(target, logger)
	}
	return record
}

func mediaTypeOf(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mediaType
}
