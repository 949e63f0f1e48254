// internal/directory/match.go
//
// Request matching: resolve hostname + path to a directory.
//
// Context
// -------
// Two independent matchers share the route resolver.  The subdirectory
// matcher walks the path under the configured base prefix and picks the
// directory with the longest matching slug—required because one
// directory's slug (“jobs”) may be a prefix of another's
// (“jobs/new-york-city”).  The subdomain matcher compares the normalized
// Host header against each directory's resolved subdomain host; hosts are
// unique by construction, so the first hit wins.
//
// A nil return is the one caller-visible miss in this package: the HTTP
// layer treats it as a routing miss and falls through to a 404.
//
// Notes
// -----
//   - Base-prefix comparison is case-insensitive and trailing-slash
//     tolerant because both sides pass through path normalization first.
//   - Subdomain requests may still carry the base prefix for
//     compatibility; it is stripped before the subcategory segment is
//     read.
//   - Oxford commas, two spaces after periods.
package directory

import "strings"

// Match is a resolved routing target.
type Match struct {
	Directory       *Directory
	Subpath         string // normalized tail after the directory slug
	SubcategorySlug string // first Subpath segment, or empty
}

// ResponseTargets carries the directory's identifiers with the request's
// sub-path appended, ready for canonical-link headers and redirects.
type ResponseTargets struct {
	Path         string
	CanonicalURL string
	SubdomainURL string
}

// MatchSubdirectory resolves pathname against every directory's
// subdirectory slug.  Returns nil when the path is outside the base
// prefix, normalizes to nothing, or matches no directory.
func MatchSubdirectory(dirs []*Directory, pathname string, cfg RoutingConfig) *Match {
	remainder, ok := stripBase(pathname, cfg)
	if !ok || remainder == "" {
		return nil
	}

	var best *Match
	bestLen := -1
	for _, d := range dirs {
		if d == nil {
			continue
		}
		slug := cfg.ResolveSubdirectorySlug(d)
		if remainder == slug {
			return &Match{Directory: d}
		}
		if strings.HasPrefix(remainder, slug+"/") && len(slug) > bestLen {
			best = &Match{Directory: d, Subpath: remainder[len(slug)+1:]}
			bestLen = len(slug)
		}
	}
	if best != nil {
		best.SubcategorySlug = firstSegment(best.Subpath)
	}
	return best
}

// MatchSubdomain resolves the Host header against every directory's
// subdomain host.  Returns nil when subdomains are not configured, the
// host is the bare root, or no directory claims the host.
func MatchSubdomain(dirs []*Directory, hostname, pathname string, cfg RoutingConfig) *Match {
	root := NormalizeHostname(cfg.SubdomainRoot)
	if root == "" || len(dirs) == 0 {
		return nil
	}
	host := NormalizeHostname(hostname)
	if host == root || !strings.HasSuffix(host, "."+root) {
		return nil
	}

	for _, d := range dirs {
		if d == nil {
			continue
		}
		candidate, ok := cfg.SubdomainHost(d)
		if !ok || candidate != host {
			continue
		}

		subpath := NormalizePath(pathname, "")
		if stripped, ok := stripBase(pathname, cfg); ok {
			subpath = stripped
		}
		return &Match{
			Directory:       d,
			Subpath:         subpath,
			SubcategorySlug: firstSegment(subpath),
		}
	}
	return nil
}

// BuildResponseTargets appends subpath to each of the directory's resolved
// identifiers.  Nil-safe; a nil directory yields the zero value.
func BuildResponseTargets(d *Directory, subpath string, cfg RoutingConfig) ResponseTargets {
	if d == nil {
		return ResponseTargets{}
	}
	routes := cfg.ResolveRoutes(d)

	tail := NormalizePath(subpath, "")
	suffix := ""
	if tail != "" {
		suffix = "/" + tail
	}

	t := ResponseTargets{
		Path:         routes.SubdirectoryPath + suffix,
		CanonicalURL: routes.CanonicalURL + suffix,
	}
	if routes.SubdomainURL != "" {
		t.SubdomainURL = routes.SubdomainURL + suffix
	}
	return t
}

//
// helpers
//

// stripBase normalizes pathname and removes the configured base prefix.
// ok is false when a base is configured and the path sits outside it.
func stripBase(pathname string, cfg RoutingConfig) (string, bool) {
	p := NormalizePath(pathname, "")
	base := cfg.normalizedBase()
	if base == "" {
		return p, true
	}
	if p == base {
		return "", true
	}
	if strings.HasPrefix(p, base+"/") {
		return p[len(base)+1:], true
	}
	return "", false
}

func firstSegment(path string) string {
	if path == "" {
		return ""
	}
	if i := strings.IndexByte(path, '/'); i != -1 {
		return path[:i]
	}
	return path
}
