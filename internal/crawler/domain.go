package crawler

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// registrableDomain returns the eTLD+1 for a hostname. Hosts without a
// public suffix (IP literals, localhost, single-label test hosts) fall back
// to the lowercased hostname itself so that same-host comparison still
// works against local servers.
func registrableDomain(hostname string) string {
	host := strings.ToLower(strings.TrimSuffix(hostname, "."))
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// sameDomain reports whether rawURL shares the seed's registrable domain.
// Unparseable URLs are treated as external.
func sameDomain(seedDomain, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return false
	}
	return registrableDomain(u.Hostname()) == seedDomain
}
