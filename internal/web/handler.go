// internal/web/handler.go
//
// HTTP surface of the directory engine.
//
/*
Context
--------
One Handler serves every directory request from the current snapshot.
Three kinds of request exist:

  1. Browse index    – GET on the subdirectory base path exactly;
     answers with the grouped category → location → directory tree.
  2. Subdirectory    – GET below the base path; the longest-slug
     matcher resolves the directory and an optional subcategory tail.
  3. Subdomain       – any GET whose Host is a claimed subdomain of the
     configured root; the path tail selects the subcategory filter.

Subdomain matching is attempted first so a directory host never falls
through to the subdirectory tree.  A miss in both matchers is a plain
404.  Every matcher outcome increments compass_route_match_total.

Workflow
--------
  • main.go builds the Handler and mounts Router() behind the
    middleware chain (ForceHTTPS → Security → Enrich).
  • Handlers read one snapshot per request; the snapshot is immutable,
    so no locks are taken after Get.

Notes
-----
  • Only GET and HEAD are served; everything else is 405.
  • A snapshot failure (first load only) answers 503 so load balancers
    retry elsewhere.
  • Oxford commas, two spaces after periods.
*/
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/openlocal/compass/internal/directory"
	"github.com/openlocal/compass/internal/metrics"
	"github.com/openlocal/compass/internal/snapshot"
)

// Handler answers directory requests from snapshots.
type Handler struct {
	snapshots *snapshot.Cache
	routing   directory.RoutingConfig
	site      directory.SiteConfig
}

// NewHandler wires the snapshot cache and resolved configuration.
func NewHandler(snapshots *snapshot.Cache, routing directory.RoutingConfig, site directory.SiteConfig) *Handler {
	return &Handler{snapshots: snapshots, routing: routing, site: site}
}

// Router mounts the handler on a chi router with health and recovery
// plumbing.  /metrics is mounted by main so tests stay registry-free.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	r.Handle("/*", http.HandlerFunc(h.serve))
	return r
}

//
// Dispatch
//

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, err := h.snapshots.Get(r.Context())
	if err != nil {
		zap.L().Error("snapshot unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "directory data unavailable")
		return
	}

	// Subdomain hosts win over the path tree.
	if m := directory.MatchSubdomain(snap.Directories, r.Host, r.URL.Path, h.routing); m != nil {
		metrics.RouteMatchTotal.WithLabelValues(directory.ModeSubdomain, "hit").Inc()
		h.renderPage(w, r, m)
		return
	}

	remainder, inBase := h.stripBase(r.URL.Path)
	if inBase && remainder == "" {
		h.renderBrowse(w, snap)
		return
	}
	if inBase {
		if m := directory.MatchSubdirectory(snap.Directories, r.URL.Path, h.routing); m != nil {
			metrics.RouteMatchTotal.WithLabelValues(directory.ModeSubdirectory, "hit").Inc()
			h.renderPage(w, r, m)
			return
		}
		metrics.RouteMatchTotal.WithLabelValues(directory.ModeSubdirectory, "miss").Inc()
		writeError(w, http.StatusNotFound, "directory not found")
		return
	}

	metrics.RouteMatchTotal.WithLabelValues(h.routing.PrimaryMode, "miss").Inc()
	writeError(w, http.StatusNotFound, "not found")
}

// stripBase mirrors the matcher's base handling so the browse index and
// the 404 branch agree on what lives under the base prefix.
func (h *Handler) stripBase(pathname string) (remainder string, inBase bool) {
	p := directory.NormalizePath(pathname, "")
	base := directory.NormalizePath(h.routing.SubdirectoryBase, "")
	if base == "" {
		return p, true
	}
	if p == base {
		return "", true
	}
	if len(p) > len(base) && p[:len(base)] == base && p[len(base)] == '/' {
		return p[len(base)+1:], true
	}
	return "", false
}

//
// Browse index
//

func (h *Handler) renderBrowse(w http.ResponseWriter, snap *snapshot.Snapshot) {
	writeJSON(w, http.StatusOK, buildBrowseView(snap.Groups, len(snap.Skipped), h.site))
}

//
// Directory page
//

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, m *directory.Match) {
	d := m.Directory

	// The path tail wins; ?subcategory= is the compatibility spelling.
	active := m.SubcategorySlug
	if active == "" {
		active = directory.NormalizeSlug(r.URL.Query().Get("subcategory"), "")
	}

	page := pageView{
		Slug:              d.Slug,
		Name:              d.Name,
		HeroSubtitle:      d.HeroSubtitle,
		SEO:               toSEOView(directory.ResolveDirectorySEO(d, h.site)),
		Targets:           toTargetsView(directory.BuildResponseTargets(d, m.Subpath, h.routing)),
		Facets:            toFacetViews(directory.BuildSubcategories(d)),
		Nav:               toNavViews(directory.BuildSubcategoryNav(d, active, h.routing)),
		ActiveSubcategory: active,
		TotalListings:     len(d.Listings),
	}
	if d.Category != nil {
		page.Category = d.Category.Name
	}
	if d.Location != nil {
		page.Location = d.Location.Name
	}

	var pins []directory.Pin
	if active == "" {
		seg := directory.SegmentFeaturedListings(d)
		page.Featured = toFeaturedView(seg)
		page.Listings = toListingViews(seg.Remaining)
		pins = directory.BuildMapPins(d, nil)
	} else {
		filtered := directory.FilterListingsBySubcategory(d.Listings, active)
		page.Listings = toListingViews(filtered)
		pins = directory.BuildMapPins(d, filtered)
	}
	page.Pins = toPinViews(pins)
	page.RenderMap = directory.ShouldRenderMap(d, pins)

	writeJSON(w, http.StatusOK, page)
}

func toSEOView(s directory.DirectorySEO) seoView {
	return seoView{
		Title:       s.Title,
		Description: s.Description,
		Keywords:    s.Keywords,
		Image:       s.Image,
	}
}

func toTargetsView(t directory.ResponseTargets) targetsView {
	return targetsView{
		Path:         t.Path,
		CanonicalURL: t.CanonicalURL,
		SubdomainURL: t.SubdomainURL,
	}
}
