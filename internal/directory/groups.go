// internal/directory/groups.go
//
// Two-level grouping of the directory list for navigation views.
//
// Context
// -------
// Browse pages need the flat directory list folded into category →
// location → directory buckets, each annotated with listing stats.  The
// buckets are built in keyed maps during a single pass, then materialized
// into plain sorted slices—callers never see the maps.
//
// Workflow
// --------
//  1. Directories without a resolvable category or location slug are
//     skipped; each skip is returned as a diagnostic and logged at WARN,
//     never silently dropped.
//  2. Category metadata merges per field across the directories that
//     share the slug—the last non-empty value wins, so an absent column
//     never clears an earlier one.  SEO metadata is derived once from
//     the merged row during materialization.
//  3. TotalListings sums accumulate in the same pass as the upserts.
//
// Ordering
// --------
// Listings by score (stable, unscored last), directories by average score
// descending, locations and categories alphabetically with the collator's
// numeric and case-insensitive options.
//
// Notes
// -----
//   - Stats are recomputed from the current listing set on every call;
//     nothing is cached between calls.
//   - Oxford commas, two spaces after periods.
package directory

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

//
// Result types
//

// DirectoryEntry is one directory inside a location bucket.
type DirectoryEntry struct {
	Directory    *Directory
	Listings     []Listing // score-sorted; raw input order is never exposed
	ListingCount int
	AverageScore float64
	TopScore     *float64
	Path         string
	Routes       Routes
}

// LocationGroup is one location bucket inside a category.
type LocationGroup struct {
	Slug          string
	Location      Location
	TotalListings int
	Directories   []*DirectoryEntry
}

// CategoryGroup is one top-level bucket.
type CategoryGroup struct {
	Slug          string
	Category      Category
	SEO           CategorySEO
	TotalListings int
	Locations     []*LocationGroup
}

// SkippedDirectory reports one directory the grouping pass could not
// place.  Returned alongside the groups so malformed rows stay visible.
type SkippedDirectory struct {
	Slug   string
	Name   string
	Reason string
}

//
// Grouping engine
//

// BuildDirectoryGroups folds directories into sorted category buckets.
// Malformed directories are skipped, reported, and logged—the groups
// themselves are always well-formed.
func BuildDirectoryGroups(dirs []*Directory, cfg RoutingConfig, site SiteConfig) ([]*CategoryGroup, []SkippedDirectory) {
	type catBucket struct {
		group *CategoryGroup
		locs  map[string]*LocationGroup
	}

	cats := make(map[string]*catBucket)
	order := make([]string, 0, len(cats))
	var skipped []SkippedDirectory

	skip := func(d *Directory, reason string) {
		skipped = append(skipped, SkippedDirectory{Slug: d.Slug, Name: d.Name, Reason: reason})
		zap.L().Warn("directory skipped during grouping",
			zap.String("slug", d.Slug),
			zap.String("name", d.Name),
			zap.String("reason", reason))
	}

	for _, d := range dirs {
		if d == nil {
			continue
		}
		if d.Category == nil || NormalizeSlug(d.Category.Slug, "") == "" {
			skip(d, "missing category slug")
			continue
		}
		if d.Location == nil || NormalizeSlug(d.Location.Slug, "") == "" {
			skip(d, "missing location slug")
			continue
		}

		catSlug := NormalizeSlug(d.Category.Slug, "")
		locSlug := NormalizeSlug(d.Location.Slug, "")

		cb, ok := cats[catSlug]
		if !ok {
			cb = &catBucket{
				group: &CategoryGroup{Slug: catSlug, Category: Category{Slug: catSlug}},
				locs:  make(map[string]*LocationGroup),
			}
			cats[catSlug] = cb
			order = append(order, catSlug)
		}
		mergeCategory(&cb.group.Category, d.Category)

		lg, ok := cb.locs[locSlug]
		if !ok {
			lg = &LocationGroup{Slug: locSlug, Location: *d.Location}
			lg.Location.Slug = locSlug
			cb.locs[locSlug] = lg
			cb.group.Locations = append(cb.group.Locations, lg)
		} else {
			mergeLocation(&lg.Location, d.Location)
		}

		entry := buildEntry(d, cfg)
		lg.Directories = append(lg.Directories, entry)
		lg.TotalListings += entry.ListingCount
		cb.group.TotalListings += entry.ListingCount
	}

	// Materialize: derive SEO from the merged category rows, then sort
	// every level.  The collator is per-call; it is not safe to share.
	col := collate.New(language.English, collate.Numeric, collate.IgnoreCase)

	groups := make([]*CategoryGroup, 0, len(order))
	for _, slug := range order {
		cb := cats[slug]
		cb.group.SEO = ResolveCategorySEO(&cb.group.Category, site)

		for _, lg := range cb.group.Locations {
			sort.SliceStable(lg.Directories, func(i, j int) bool {
				return lg.Directories[i].AverageScore > lg.Directories[j].AverageScore
			})
		}
		sort.SliceStable(cb.group.Locations, func(i, j int) bool {
			return col.CompareString(cb.group.Locations[i].Location.Name,
				cb.group.Locations[j].Location.Name) < 0
		})
		groups = append(groups, cb.group)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return col.CompareString(groups[i].Category.Name, groups[j].Category.Name) < 0
	})

	return groups, skipped
}

//
// helpers
//

// buildEntry sorts the directory's listings and computes its stats.
func buildEntry(d *Directory, cfg RoutingConfig) *DirectoryEntry {
	listings := SortListingsByScore(d.Listings)

	var sum float64
	for i := range listings {
		if v, ok := listings[i].ScoreValue(); ok {
			sum += math.Max(v, 0)
		}
	}
	avg := 0.0
	if len(listings) > 0 {
		avg = math.Round(sum/float64(len(listings))*10) / 10
	}

	var top *float64
	if len(listings) > 0 {
		if v, ok := listings[0].ScoreValue(); ok {
			top = &v
		}
	}

	routes := cfg.ResolveRoutes(d)
	return &DirectoryEntry{
		Directory:    d,
		Listings:     listings,
		ListingCount: len(listings),
		AverageScore: avg,
		TopScore:     top,
		Path:         routes.SubdirectoryPath,
		Routes:       routes,
	}
}

// mergeCategory overwrites dst fields with non-empty src values.  Slug is
// fixed at bucket creation and never overwritten.
func mergeCategory(dst, src *Category) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.MetaTitle != "" {
		dst.MetaTitle = src.MetaTitle
	}
	if src.MetaDescription != "" {
		dst.MetaDescription = src.MetaDescription
	}
	if src.OGImageURL != "" {
		dst.OGImageURL = src.OGImageURL
	}
}

func mergeLocation(dst, src *Location) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Region != "" {
		dst.Region = src.Region
	}
}
