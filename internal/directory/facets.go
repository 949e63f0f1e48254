// internal/directory/facets.go
//
// Subcategory facet aggregation and listing filters.
//
// Context
// -------
// Listings carry free-form subcategory tags; admins may also declare facet
// metadata on the directory itself.  The aggregator merges both into one
// deduplicated, count-sorted facet list.  Declared facets that match no
// listing are dropped—counts only ever come from listings.
//
// Notes
// -----
//   - Tags are deduplicated per listing by normalized slug, so one listing
//     never counts twice toward the same facet.
//   - Facets created from tags alone take a humanized form of the slug as
//     their display name.
//   - Oxford commas, two spaces after periods.
package directory

import (
	"sort"
	"strings"
)

// Facet is one derived filter option.
type Facet struct {
	Slug         string
	Name         string
	Description  string
	ListingCount int
}

// NavEntry is one row of the subcategory filter navigation.
type NavEntry struct {
	Slug   string // empty for the “all” entry
	Name   string
	Count  int
	Href   string
	Active bool
}

// BuildSubcategories merges declared facet metadata with the tags found on
// the directory's listings.  Result is sorted by count descending, ties
// alphabetically case-insensitive by name.
func BuildSubcategories(d *Directory) []Facet {
	if d == nil {
		return []Facet{}
	}

	byRank := make(map[string]*Facet)
	order := make([]string, 0, len(d.Subcategories))

	upsert := func(slug string) *Facet {
		if f, ok := byRank[slug]; ok {
			return f
		}
		f := &Facet{Slug: slug, Name: HumanizeSlug(slug)}
		byRank[slug] = f
		order = append(order, slug)
		return f
	}

	for _, sc := range d.Subcategories {
		slug := NormalizeSlug(sc.Slug, "")
		if slug == "" {
			slug = NormalizeSlug(sc.Name, "")
		}
		if slug == "" {
			continue
		}
		f := upsert(slug)
		if sc.Name != "" {
			f.Name = sc.Name
		}
		if sc.Description != "" {
			f.Description = sc.Description
		}
	}

	for i := range d.Listings {
		for _, slug := range listingSubcategorySlugs(&d.Listings[i]) {
			upsert(slug).ListingCount++
		}
	}

	out := make([]Facet, 0, len(order))
	for _, slug := range order {
		if f := byRank[slug]; f.ListingCount > 0 {
			out = append(out, *f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ListingCount != out[j].ListingCount {
			return out[i].ListingCount > out[j].ListingCount
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// FilterListingsBySubcategory returns the score-sorted listings that carry
// slug.  An empty slug means no filter; a slug that normalizes to nothing
// matches nothing.
func FilterListingsBySubcategory(listings []Listing, slug string) []Listing {
	sorted := SortListingsByScore(listings)
	if slug == "" {
		return sorted
	}
	want := NormalizeSlug(slug, "")
	if want == "" {
		return []Listing{}
	}

	out := make([]Listing, 0, len(sorted))
	for i := range sorted {
		for _, s := range listingSubcategorySlugs(&sorted[i]) {
			if s == want {
				out = append(out, sorted[i])
				break
			}
		}
	}
	return out
}

// BuildSubcategoryNav prepends an “all subcategories” entry to the facet
// list, each with its href and active flag resolved.  Directories without
// a category, location, or listings array produce no navigation.
func BuildSubcategoryNav(d *Directory, activeSlug string, cfg RoutingConfig) []NavEntry {
	if d == nil || d.Category == nil || d.Location == nil || d.Listings == nil {
		return []NavEntry{}
	}

	base := cfg.SubdirectoryPath(d)
	active := NormalizeSlug(activeSlug, "")

	nav := make([]NavEntry, 0, 1)
	nav = append(nav, NavEntry{
		Name:   "All subcategories",
		Count:  len(d.Listings),
		Href:   base,
		Active: active == "",
	})
	for _, f := range BuildSubcategories(d) {
		nav = append(nav, NavEntry{
			Slug:   f.Slug,
			Name:   f.Name,
			Count:  f.ListingCount,
			Href:   base + "/" + f.Slug,
			Active: active == f.Slug,
		})
	}
	return nav
}

//
// helpers
//

// listingSubcategorySlugs normalizes a listing's tags, deriving slugs from
// names when needed and deduplicating within the listing.
func listingSubcategorySlugs(l *Listing) []string {
	if len(l.Subcategories) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(l.Subcategories))
	out := make([]string, 0, len(l.Subcategories))
	for _, sc := range l.Subcategories {
		slug := NormalizeSlug(sc.Slug, "")
		if slug == "" {
			slug = NormalizeSlug(sc.Name, "")
		}
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}
