// internal/web/render.go
//
// JSON view models for the directory endpoints.
//
// Context
// -------
// The engine types in internal/directory are transport-agnostic and
// carry no serialization tags; this file owns the wire shapes.  Every
// view struct is a plain projection—handlers build them, writeJSON
// emits them, and nothing here mutates engine data.
//
// Notes
// -----
//   - Optional values use pointers or omitempty so absent data never
//     serializes as a misleading zero.
//   - Oxford commas, two spaces after periods.
package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/openlocal/compass/internal/directory"
)

//
// Browse (grouped index) views
//

type siteView struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type entryView struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	CanonicalURL string   `json:"canonical_url"`
	SubdomainURL string   `json:"subdomain_url,omitempty"`
	ListingCount int      `json:"listing_count"`
	AverageScore float64  `json:"average_score"`
	TopScore     *float64 `json:"top_score,omitempty"`
}

type locationGroupView struct {
	Slug          string      `json:"slug"`
	Name          string      `json:"name"`
	Region        string      `json:"region,omitempty"`
	TotalListings int         `json:"total_listings"`
	Directories   []entryView `json:"directories"`
}

type categoryGroupView struct {
	Slug            string              `json:"slug"`
	Name            string              `json:"name"`
	MetaTitle       string              `json:"meta_title"`
	MetaDescription string              `json:"meta_description"`
	TotalListings   int                 `json:"total_listings"`
	Locations       []locationGroupView `json:"locations"`
}

type browseView struct {
	Site       siteView            `json:"site"`
	Categories []categoryGroupView `json:"categories"`
	Skipped    int                 `json:"skipped_directories,omitempty"`
}

func buildBrowseView(groups []*directory.CategoryGroup, skipped int, site directory.SiteConfig) browseView {
	out := browseView{
		Site:       siteView{Name: site.Name, Description: site.DefaultDescription},
		Categories: make([]categoryGroupView, 0, len(groups)),
		Skipped:    skipped,
	}
	for _, g := range groups {
		cv := categoryGroupView{
			Slug:            g.Slug,
			Name:            g.Category.Name,
			MetaTitle:       g.SEO.MetaTitle,
			MetaDescription: g.SEO.MetaDescription,
			TotalListings:   g.TotalListings,
			Locations:       make([]locationGroupView, 0, len(g.Locations)),
		}
		for _, loc := range g.Locations {
			lv := locationGroupView{
				Slug:          loc.Slug,
				Name:          loc.Location.Name,
				Region:        loc.Location.Region,
				TotalListings: loc.TotalListings,
				Directories:   make([]entryView, 0, len(loc.Directories)),
			}
			for _, e := range loc.Directories {
				lv.Directories = append(lv.Directories, entryView{
					Slug:         e.Directory.Slug,
					Name:         e.Directory.Name,
					Path:         e.Path,
					CanonicalURL: e.Routes.CanonicalURL,
					SubdomainURL: e.Routes.SubdomainURL,
					ListingCount: e.ListingCount,
					AverageScore: e.AverageScore,
					TopScore:     e.TopScore,
				})
			}
			cv.Locations = append(cv.Locations, lv)
		}
		out.Categories = append(out.Categories, cv)
	}
	return out
}

//
// Directory-page views
//

type listingView struct {
	Slug          string   `json:"slug,omitempty"`
	Name          string   `json:"name"`
	Score         *float64 `json:"score,omitempty"`
	Subcategories []string `json:"subcategories,omitempty"`
	LocationLabel string   `json:"location_label,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	URL           string   `json:"url,omitempty"`
}

type slotView struct {
	Tier     string      `json:"tier"`
	Position int         `json:"position"`
	Label    string      `json:"label"`
	Curated  bool        `json:"curated"`
	Listing  listingView `json:"listing"`
}

type featuredView struct {
	Hero    *slotView  `json:"hero,omitempty"`
	TierTwo []slotView `json:"tier_two"`
}

type facetView struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ListingCount int    `json:"listing_count"`
}

type navView struct {
	Slug   string `json:"slug,omitempty"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

type pinView struct {
	Slug          string   `json:"slug,omitempty"`
	Name          string   `json:"name"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	LocationLabel string   `json:"location_label,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	URL           string   `json:"url,omitempty"`
	Rank          int      `json:"rank"`
	Score         *float64 `json:"score,omitempty"`
}

type seoView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords,omitempty"`
	Image       string `json:"image,omitempty"`
}

type targetsView struct {
	Path         string `json:"path"`
	CanonicalURL string `json:"canonical_url"`
	SubdomainURL string `json:"subdomain_url,omitempty"`
}

type pageView struct {
	Slug              string        `json:"slug"`
	Name              string        `json:"name"`
	HeroSubtitle      string        `json:"hero_subtitle,omitempty"`
	Category          string        `json:"category,omitempty"`
	Location          string        `json:"location,omitempty"`
	SEO               seoView       `json:"seo"`
	Targets           targetsView   `json:"targets"`
	Featured          *featuredView `json:"featured,omitempty"`
	Facets            []facetView   `json:"facets"`
	Nav               []navView     `json:"nav"`
	Pins              []pinView     `json:"pins"`
	RenderMap         bool          `json:"render_map"`
	ActiveSubcategory string        `json:"active_subcategory,omitempty"`
	Listings          []listingView `json:"listings"`
	TotalListings     int           `json:"total_listings"`
}

func toListingView(l directory.Listing) listingView {
	v := listingView{
		Slug:          l.SlugOrDerived(),
		Name:          l.Name,
		LocationLabel: l.LocationLabel,
		Summary:       l.Summary,
		URL:           l.URL,
	}
	if score, ok := l.ScoreValue(); ok {
		s := score
		v.Score = &s
	}
	for _, sc := range l.Subcategories {
		if slug := directory.NormalizeSlug(sc.Slug, directory.NormalizeSlug(sc.Name, "")); slug != "" {
			v.Subcategories = append(v.Subcategories, slug)
		}
	}
	return v
}

func toListingViews(listings []directory.Listing) []listingView {
	out := make([]listingView, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingView(l))
	}
	return out
}

func toSlotView(a directory.SlotAssignment) slotView {
	return slotView{
		Tier:     a.Tier,
		Position: a.Position,
		Label:    a.Label,
		Curated:  a.Curated,
		Listing:  toListingView(a.Listing),
	}
}

func toFeaturedView(seg directory.FeaturedSegment) *featuredView {
	fv := &featuredView{TierTwo: make([]slotView, 0, len(seg.TierTwo))}
	if seg.Hero != nil {
		hv := toSlotView(*seg.Hero)
		fv.Hero = &hv
	}
	for _, a := range seg.TierTwo {
		fv.TierTwo = append(fv.TierTwo, toSlotView(a))
	}
	if fv.Hero == nil && len(fv.TierTwo) == 0 {
		return nil
	}
	return fv
}

func toFacetViews(facets []directory.Facet) []facetView {
	out := make([]facetView, 0, len(facets))
	for _, f := range facets {
		out = append(out, facetView{
			Slug:         f.Slug,
			Name:         f.Name,
			Description:  f.Description,
			ListingCount: f.ListingCount,
		})
	}
	return out
}

func toNavViews(entries []directory.NavEntry) []navView {
	out := make([]navView, 0, len(entries))
	for _, e := range entries {
		out = append(out, navView{
			Slug:   e.Slug,
			Name:   e.Name,
			Count:  e.Count,
			Href:   e.Href,
			Active: e.Active,
		})
	}
	return out
}

func toPinViews(pins []directory.Pin) []pinView {
	out := make([]pinView, 0, len(pins))
	for _, p := range pins {
		out = append(out, pinView{
			Slug:          p.Slug,
			Name:          p.Name,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			LocationLabel: p.LocationLabel,
			Summary:       p.Summary,
			URL:           p.URL,
			Rank:          p.Rank,
			Score:         p.Score,
		})
	}
	return out
}

//
// JSON writer
//

// writeJSON emits v with the given status.  Encode failures after the
// header is committed can only be logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

type errorView struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorView{Error: msg})
}
