// internal/directory/routes.go
//
// Canonical route resolution for a single directory.
//
// Context
// -------
// Every directory is addressable two ways: a subdirectory path under the
// site's base prefix (“/directories/professional-services/new-york-city”),
// and, when the row declares one, a subdomain host under the configured
// root (“pros-nyc.example.com”).  RoutingConfig decides which of the two
// forms is the canonical external URL.
//
// The configuration is threaded explicitly through every call—there is no
// package-level routing state—so one test run can exercise both primary
// modes side by side, and upstream caches can rely on resolution being a
// pure function of (directory, config).
//
// Notes
// -----
//   - Resolution never fails: the slug chain bottoms out at the literal
//     “directory”, so the subdirectory path is always non-empty.
//   - Oxford commas, two spaces after periods.
package directory

import "strings"

// Primary addressing modes.
const (
	ModeSubdirectory = "subdirectory"
	ModeSubdomain    = "subdomain"
)

// FallbackSlug terminates the routing-slug fallback chain.
const FallbackSlug = "directory"

// RoutingConfig carries the site-wide addressing scheme.  Construct once
// from site configuration and pass it into every resolver and matcher.
type RoutingConfig struct {
	PrimaryMode      string // ModeSubdirectory or ModeSubdomain
	SubdirectoryBase string // e.g. “/directories”
	SubdomainRoot    string // e.g. “example.com”; empty disables subdomains
	Protocol         string // e.g. “https”; defaults to https when empty
	CanonicalBaseURL string // e.g. “https://www.example.com”
}

// Routes bundles the resolved identifiers for one directory.
type Routes struct {
	SubdirectoryPath string
	SubdomainHost    string // empty when the directory has no subdomain form
	SubdomainURL     string
	CanonicalURL     string
}

// ResolveSubdirectorySlug walks the slug fallback chain: explicit
// subdirectory, explicit slug, category/location pair, name, and finally
// the literal FallbackSlug.  The result is always non-empty.
func (cfg RoutingConfig) ResolveSubdirectorySlug(d *Directory) string {
	if d == nil {
		return FallbackSlug
	}
	if s := NormalizePath(d.Subdirectory, ""); s != "" {
		return s
	}
	if s := NormalizeSlug(d.Slug, ""); s != "" {
		return s
	}
	if d.Category != nil && d.Location != nil {
		cat := NormalizeSlug(d.Category.Slug, "")
		loc := NormalizeSlug(d.Location.Slug, "")
		if cat != "" && loc != "" {
			return cat + "/" + loc
		}
	}
	if s := NormalizeSlug(d.Name, ""); s != "" {
		return s
	}
	return FallbackSlug
}

// SubdirectoryPath joins the configured base with the resolved slug.  The
// result always starts with “/” and never contains duplicate separators.
func (cfg RoutingConfig) SubdirectoryPath(d *Directory) string {
	return cfg.joinBase(cfg.ResolveSubdirectorySlug(d))
}

// BuildDirectoryPath is the category/location convenience form used by
// navigation builders that have slugs but no Directory record in hand.
func (cfg RoutingConfig) BuildDirectoryPath(categorySlug, locationSlug string) string {
	cat := NormalizeSlug(categorySlug, "")
	loc := NormalizeSlug(locationSlug, "")
	switch {
	case cat != "" && loc != "":
		return cfg.joinBase(cat + "/" + loc)
	case cat != "":
		return cfg.joinBase(cat)
	case loc != "":
		return cfg.joinBase(loc)
	}
	return cfg.joinBase(FallbackSlug)
}

// SubdomainHost returns “<subdomain>.<root>” or false when either side of
// the join is missing.
func (cfg RoutingConfig) SubdomainHost(d *Directory) (string, bool) {
	if d == nil {
		return "", false
	}
	root := NormalizeHostname(cfg.SubdomainRoot)
	sub := NormalizeHostname(d.Subdomain)
	if root == "" || sub == "" {
		return "", false
	}
	return sub + "." + root, true
}

// ResolveRoutes computes all canonical identifiers for one directory.
// Deterministic and side-effect free; safe to call repeatedly.
func (cfg RoutingConfig) ResolveRoutes(d *Directory) Routes {
	r := Routes{SubdirectoryPath: cfg.SubdirectoryPath(d)}

	if host, ok := cfg.SubdomainHost(d); ok {
		r.SubdomainHost = host
		r.SubdomainURL = cfg.protocol() + "://" + host
	}

	if cfg.PrimaryMode == ModeSubdomain && r.SubdomainURL != "" {
		r.CanonicalURL = r.SubdomainURL
	} else {
		r.CanonicalURL = strings.TrimRight(cfg.CanonicalBaseURL, "/") + r.SubdirectoryPath
	}
	return r
}

//
// helpers
//

// normalizedBase returns the base prefix as a slash-free segment path, or
// the empty string when no base is configured.
func (cfg RoutingConfig) normalizedBase() string {
	return NormalizePath(cfg.SubdirectoryBase, "")
}

// joinBase prefixes slug with the configured base and a single leading “/”.
func (cfg RoutingConfig) joinBase(slug string) string {
	base := cfg.normalizedBase()
	slug = strings.Trim(slug, "/")
	switch {
	case base == "" && slug == "":
		return "/"
	case base == "":
		return "/" + slug
	case slug == "":
		return "/" + base
	default:
		return "/" + base + "/" + slug
	}
}

func (cfg RoutingConfig) protocol() string {
	if cfg.Protocol == "" {
		return "https"
	}
	return strings.TrimSuffix(strings.ToLower(cfg.Protocol), "://")
}
