package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// Canonicalize resolves rawURL against base (nil when rawURL must already be
// absolute, e.g. the seed) and normalizes it into the deduplication key:
// scheme and host are lowercased, default ports and the fragment are
// stripped, one trailing slash is removed (an empty path becomes "/"),
// query keys are sorted, and query parameters with only empty values are
// dropped. Canonicalization is deterministic and idempotent.
//
// It fails with ErrMalformedURL when the resolved URL has no host or a
// scheme other than http(s); callers drop such URLs instead of enqueuing.
func Canonicalize(base *url.URL, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: parse %q: %v", ErrMalformedURL, rawURL, err)
	}
	if base != nil {
		u = base.ResolveReference(u)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q in %q", ErrMalformedURL, u.Scheme, rawURL)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: missing host in %q", ErrMalformedURL, rawURL)
	}

	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.User = nil

	u.Path = canonicalPath(u.Path)
	u.RawPath = ""
	u.RawQuery = canonicalQuery(u.Query())

	return u.String(), nil
}

// canonicalPath strips one trailing slash so that "/about" and "/about/"
// collapse to the same key; an empty path becomes "/" so the bare host and
// "host/" do too.
func canonicalPath(p string) string {
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

// canonicalQuery drops parameters whose every value is empty and re-encodes
// the rest with sorted keys.
func canonicalQuery(q url.Values) string {
	for key, vals := range q {
		empty := true
		for _, v := range vals {
			if v != "" {
				empty = false
				break
			}
		}
		if empty {
			delete(q, key)
		}
	}
	return q.Encode()
}
