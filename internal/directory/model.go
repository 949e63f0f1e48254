// internal/directory/model.go
//
// Immutable record types for the presentation engine.
//
// Context
// -------
// The store layer hands this package fully-materialized snapshots of the
// directory graph: Category and Location reference rows, Listing rows with
// their free-form subcategory tags and optional coordinates, plus the
// admin-curated FeaturedSlot declarations.  Records are read-only for the
// duration of a request; every function in this package returns freshly
// allocated view structures and never mutates its inputs.
//
// Loosely-shaped upstream fields (numeric-string coordinates, string-or-
// object subcategory tags) are decoded into these explicit types at the
// store boundary—nothing deeper in the pipeline shape-sniffs.
//
// Notes
// -----
//   - Optional numerics are pointers; nil means “absent”.  Absent or
//     non-finite scores are never excluded, only sorted last.
//   - A listing with no derivable slug stays in plain listing sequences
//     but is invisible to slug-keyed operations (pins, slot dedup).
//   - Oxford commas, two spaces after periods.
package directory

import (
	"math"
	"sort"
)

//
// Reference rows
//

// Category is a shared reference row; several directories may point at the
// same category.  Identity is the normalized slug.
type Category struct {
	Slug            string
	Name            string
	Description     string
	MetaTitle       string
	MetaDescription string
	OGImageURL      string
}

// Location is a shared reference row.  Identity is the normalized slug.
type Location struct {
	Slug   string
	Name   string
	Region string
}

// Subcategory carries declared facet metadata, or a normalized listing tag.
type Subcategory struct {
	Slug        string
	Name        string
	Description string
}

//
// Listing
//

// Coordinates is the nested coordinate shape some listings carry.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Listing is one ranked entry on a directory page.
type Listing struct {
	Slug          string
	Name          string
	Score         *float64
	Subcategories []Subcategory
	Coordinates   *Coordinates
	Latitude      *float64 // flat variant; Coordinates wins when both set
	Longitude     *float64
	LocationLabel string
	Summary       string
	URL           string
}

// SlugOrDerived returns the listing's normalized slug, deriving one from
// the name when the explicit slug is empty.  An empty result means the
// listing has no derivable slug.
func (l *Listing) SlugOrDerived() string {
	if s := NormalizeSlug(l.Slug, ""); s != "" {
		return s
	}
	return NormalizeSlug(l.Name, "")
}

// ScoreValue reports the listing score and whether it is usable.  Absent
// and non-finite scores are both “unscored”.
func (l *Listing) ScoreValue() (float64, bool) {
	if l.Score == nil {
		return 0, false
	}
	v := *l.Score
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

//
// Featured-slot declaration
//

// Slot tiers.  Anything else in a declaration is discarded.
const (
	TierHero    = "HERO"
	TierPremium = "PREMIUM"
)

// FeaturedSlot is one admin-curated placement declaration.  Tier and
// ListingSlug arrive raw; validation happens in SegmentFeaturedListings.
type FeaturedSlot struct {
	Tier        string
	Position    int
	Label       string
	ListingSlug string
}

//
// Directory
//

// DefaultFeaturedLimit caps hero + tier-two slots when a directory does
// not set its own limit.
const DefaultFeaturedLimit = 3

// Directory is one published listing-aggregation page.
type Directory struct {
	Slug             string
	Subdomain        string
	Subdirectory     string
	Name             string
	Category         *Category
	Location         *Location
	LocationAgnostic bool
	FeaturedLimit    *int
	FeaturedSlots    []FeaturedSlot
	Subcategories    []Subcategory
	Listings         []Listing
	HeroSubtitle     string
	MetaTitle        string
	MetaDescription  string
	MetaKeywords     string
	OGImageURL       string
	OGImage          string
}

// EffectiveFeaturedLimit applies the default when no limit is declared.
// A declared zero or negative limit disables featured slots entirely.
func (d *Directory) EffectiveFeaturedLimit() int {
	if d.FeaturedLimit == nil {
		return DefaultFeaturedLimit
	}
	return *d.FeaturedLimit
}

//
// Score ordering
//

// SortListingsByScore returns a new slice ordered by score descending.
// Unscored listings sort last; the sort is stable, so equal keys keep
// their input order.  The input slice is never reordered in place.
func SortListingsByScore(listings []Listing) []Listing {
	out := make([]Listing, len(listings))
	copy(out, listings)
	sort.SliceStable(out, func(i, j int) bool {
		si, iOK := out[i].ScoreValue()
		sj, jOK := out[j].ScoreValue()
		if iOK != jOK {
			return iOK // scored before unscored
		}
		if !iOK {
			return false
		}
		return si > sj
	})
	return out
}
