package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

const robotsMaxBytes = 1 << 20

// robotsRules answers Allowed for one host's robots.txt, loaded once before
// traversal and never mutated afterwards. A nil group allows everything.
type robotsRules struct {
	group *robotstxt.Group
}

// Allowed implements RobotsPolicy. Longest-matching-prefix wins between
// conflicting Allow and Disallow rules; on equal length Allow wins.
func (r *robotsRules) Allowed(path string) bool {
	if r == nil || r.group == nil {
		return true
	}
	if path == "" {
		path = "/"
	}
	return r.group.Test(path)
}

// LoadRobots fetches and parses robots.txt for the seed URL's host. It is
// best-effort and never fails: an unreachable, non-200, or unparseable
// robots.txt yields an allow-all policy. Rules for userAgent are preferred,
// falling back to the "*" group.
func LoadRobots(ctx context.Context, seed *url.URL, userAgent string, timeout time.Duration, logger *zap.Logger) RobotsPolicy {
	robotsURL := &url.URL{Scheme: seed.Scheme, Host: seed.Host, Path: "/robots.txt"}

	body, status, err := fetchRobots(ctx, robotsURL.String(), userAgent, timeout)
	if err != nil {
		logger.Warn("robots.txt fetch failed; allowing all paths",
			zap.String("url", robotsURL.String()), zap.Error(err))
		return &robotsRules{}
	}
	if status != http.StatusOK {
		logger.Info("robots.txt not available; allowing all paths",
			zap.String("url", robotsURL.String()), zap.Int("status_code", status))
		return &robotsRules{}
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		logger.Warn("robots.txt parse failed; allowing all paths",
			zap.String("url", robotsURL.String()), zap.Error(err))
		return &robotsRules{}
	}
	return &robotsRules{group: data.FindGroup(userAgent)}
}

func fetchRobots(ctx context.Context, robotsURL, userAgent string, timeout time.Duration) ([]byte, int, error) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("new robots request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch robots: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, robotsMaxBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("read robots body: %w", err)
	}
	return body, resp.StatusCode, nil
}
