package siteask

import (
	"net/url"
	"strings"
)

// NormalizeURL resolves href against base and returns the canonical form
// used for frontier deduplication: fragment stripped, scheme and host
// lowercased, default ports removed. An empty base requires href to be
// absolute.
//
// Returns EINVALID for unparseable URLs and non-http(s) schemes.
func NormalizeURL(href string, base string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q", href)
	}

	if base != "" {
		b, err := url.Parse(base)
		if err != nil {
			return "", Errorf(EINVALID, "invalid base URL %q", base)
		}
		u = b.ResolveReference(u)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", href)
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	return u.String(), nil
}

// ScopePolicy controls which URLs count as part of the crawled site.
type ScopePolicy string

// Scope policies for SiteScope.
const (
	// ScopeHost restricts the crawl to the seed's exact host.
	ScopeHost ScopePolicy = "host"

	// ScopeDomain additionally admits subdomains of the seed's domain
	// (the seed host with a leading "www." stripped).
	ScopeDomain ScopePolicy = "domain"
)

// SiteScope decides same-site membership for crawl candidate URLs.
type SiteScope struct {
	policy ScopePolicy
	host   string
	domain string
}

// NewSiteScope builds a scope from the crawl seed URL.
// An empty policy defaults to ScopeHost.
func NewSiteScope(seedURL string, policy ScopePolicy) (*SiteScope, error) {
	if policy == "" {
		policy = ScopeHost
	}
	if policy != ScopeHost && policy != ScopeDomain {
		return nil, Errorf(EINVALID, "unknown scope policy %q", policy)
	}

	u, err := url.Parse(seedURL)
	if err != nil || u.Host == "" {
		return nil, Errorf(EINVALID, "invalid seed URL %q", seedURL)
	}

	host := strings.ToLower(u.Host)
	return &SiteScope{
		policy: policy,
		host:   host,
		domain: strings.TrimPrefix(host, "www."),
	}, nil
}

// Contains reports whether rawURL belongs to the crawled site.
func (s *SiteScope) Contains(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	host := strings.ToLower(u.Host)
	if host == s.host || host == s.domain {
		return true
	}
	if s.policy == ScopeDomain {
		return strings.HasSuffix(host, "."+s.domain)
	}
	// ScopeHost still treats "www.example.com" and "example.com" as the
	// same site.
	return host == "www."+s.domain
}

// CollectionNameForURL derives the stable, identifier-safe collection name
// for a site: the lowercased host with a leading "www." stripped and every
// non-alphanumeric character replaced with an underscore.
func CollectionNameForURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL %q", rawURL)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	var sb strings.Builder
	for _, r := range host {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}

	name := sb.String()
	if strings.Trim(name, "_") == "" {
		return "", Errorf(EINVALID, "cannot derive collection name from %q", rawURL)
	}
	return name, nil
}
