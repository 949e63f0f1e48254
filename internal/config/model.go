// internal/config/model.go
//
// Typed configuration model for Compass.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `COMPASS_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "github.com/openlocal/compass/internal/directory"

//
// HTTP section
//

// HTTP holds web-server tunables.  Zero timeouts fall back to the
// defaults in internal/server.
type HTTP struct {
	ListenAddr          string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS          bool   `koanf:"force_https"`
	ReadTimeoutSeconds  int    `koanf:"read_timeout_seconds"  validate:"gte=0"`
	WriteTimeoutSeconds int    `koanf:"write_timeout_seconds" validate:"gte=0"`
	IdleTimeoutSeconds  int    `koanf:"idle_timeout_seconds"  validate:"gte=0"`
}

//
// Database section
//

// Database holds the directory-store DSN and pool sizing.  The DSN may
// arrive as a `vault:` reference and is resolved before unmarshalling;
// zero pool values fall back to the defaults in internal/database.
type Database struct {
	DSN                string `koanf:"dsn" validate:"required"`
	MaxOpenConns       int    `koanf:"max_open_conns"       validate:"gte=0"`
	MaxIdleConns       int    `koanf:"max_idle_conns"       validate:"gte=0"`
	ConnMaxLifetimeMin int    `koanf:"conn_max_lifetime_minutes" validate:"gte=0"`
}

//
// Routing section
//

// Routing selects the dual addressing scheme: which of the subdirectory
// and subdomain forms is canonical, and the constants both forms build on.
type Routing struct {
	PrimaryMode      string `koanf:"primary_mode"       validate:"required,oneof=subdirectory subdomain"`
	SubdirectoryBase string `koanf:"subdirectory_base"`
	SubdomainRoot    string `koanf:"subdomain_root"`
	Protocol         string `koanf:"protocol"`
	CanonicalBaseURL string `koanf:"canonical_base_url" validate:"required,url"`
}

//
// Site section
//

// Site carries the display defaults the SEO resolvers bottom out on.
type Site struct {
	Name               string `koanf:"name" validate:"required"`
	DefaultDescription string `koanf:"default_description"`
	DefaultOGImage     string `koanf:"default_og_image"`
}

//
// Snapshot section
//

// Snapshot tunes the directory-snapshot cache.  Zero TTL means “reload on
// every request”, which is only sensible in development.
type Snapshot struct {
	TTLSeconds int `koanf:"ttl_seconds" validate:"gte=0"`
}

//
// GeoIP section
//

// GeoIP points at an optional MaxMind database for access-log enrichment.
// An empty path disables geo lookups entirely.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or COMPASS_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // COMPASS_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Routing  Routing  `koanf:"routing"`
	Site     Site     `koanf:"site"`
	Snapshot Snapshot `koanf:"snapshot"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}

//
// Engine views
//

// RoutingConfig converts the routing section into the engine's value type,
// which is threaded explicitly into every resolver and matcher call.
func (c *Config) RoutingConfig() directory.RoutingConfig {
	return directory.RoutingConfig{
		PrimaryMode:      c.Routing.PrimaryMode,
		SubdirectoryBase: c.Routing.SubdirectoryBase,
		SubdomainRoot:    c.Routing.SubdomainRoot,
		Protocol:         c.Routing.Protocol,
		CanonicalBaseURL: c.Routing.CanonicalBaseURL,
	}
}

// SiteConfig converts the site section into the engine's value type.
func (c *Config) SiteConfig() directory.SiteConfig {
	return directory.SiteConfig{
		Name:               c.Site.Name,
		DefaultDescription: c.Site.DefaultDescription,
		DefaultOGImage:     c.Site.DefaultOGImage,
	}
}
