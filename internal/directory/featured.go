// internal/directory/featured.go
//
// Featured-slot placement: one hero, up to capacity-1 tier-two slots.
//
// Context
// -------
// Admins may curate placements per directory with tiered declarations
// (HERO outranks PREMIUM, then position ascending).  Curation is honored
// first; score order fills whatever the curation leaves open.  The two
// fallbacks are deliberately asymmetric: the hero always falls back to the
// best unclaimed listing, while tier-two falls back only when curation
// produced no tier-two entries at all—a partially curated tier-two list is
// never topped up.
//
// Failure semantics
// -----------------
// Total function, no errors.  Invalid declarations (unknown tier, slug not
// resolvable, slug absent from the listing set, or slug already claimed by
// an earlier declaration in input order) are discarded, and a directory
// with no usable curation degrades to pure score-based selection.
//
// Notes
// -----
//   - Capacity: 1 hero (when any) + tier-two ≤ EffectiveFeaturedLimit; a
//     non-positive limit produces no slots at all.
//   - A listing slug is consumed by at most one slot.
//   - Oxford commas, two spaces after periods.
package directory

import "sort"

// Fallback slot labels.
const (
	heroFallbackLabel    = "Top pick"
	tierTwoFallbackLabel = "Tier-two highlight"
)

// SlotAssignment binds one listing to one resolved slot.
type SlotAssignment struct {
	Tier     string
	Position int
	Label    string
	Listing  Listing
	Curated  bool
}

// FeaturedSegment is the three-way partition of a directory's listings.
type FeaturedSegment struct {
	Hero      *SlotAssignment
	TierTwo   []SlotAssignment
	Remaining []Listing
}

// SegmentFeaturedListings computes the hero, tier-two, and remaining
// partitions for one directory.  Listings are consumed in score-sorted
// order throughout; listings without a derivable slug are ineligible for
// slots and always land in Remaining.
func SegmentFeaturedListings(d *Directory) FeaturedSegment {
	seg := FeaturedSegment{TierTwo: []SlotAssignment{}, Remaining: []Listing{}}
	if d == nil || len(d.Listings) == 0 {
		return seg
	}

	sorted := SortListingsByScore(d.Listings)

	limit := d.EffectiveFeaturedLimit()
	if limit <= 0 {
		seg.Remaining = sorted
		return seg
	}

	// Slug → listing index over the score-sorted order; first occurrence
	// per slug wins.
	bySlug := make(map[string]int, len(sorted))
	for i := range sorted {
		slug := sorted[i].SlugOrDerived()
		if slug == "" {
			continue
		}
		if _, dup := bySlug[slug]; !dup {
			bySlug[slug] = i
		}
	}

	decls := normalizeSlots(d.FeaturedSlots, sorted, bySlug)

	consumed := make(map[string]struct{}, limit)

	// Hero: first declaration after the tier/position sort when it is
	// HERO-tier, otherwise the best unclaimed listing.
	if len(decls) > 0 && decls[0].Tier == TierHero {
		hero := decls[0]
		hero.Curated = true
		seg.Hero = &hero
		consumed[hero.Listing.SlugOrDerived()] = struct{}{}
		decls = decls[1:]
	} else {
		for i := range sorted {
			slug := sorted[i].SlugOrDerived()
			if slug == "" {
				continue
			}
			if _, taken := consumed[slug]; taken {
				continue
			}
			seg.Hero = &SlotAssignment{
				Tier:     TierHero,
				Position: 1,
				Label:    heroFallbackLabel,
				Listing:  sorted[i],
			}
			consumed[slug] = struct{}{}
			break
		}
	}

	capacity := limit
	if seg.Hero != nil {
		capacity--
	}

	// Curated tier-two, in sorted order, until capacity runs out.
	for _, decl := range decls {
		if capacity <= 0 {
			break
		}
		if decl.Tier != TierPremium {
			continue // surplus HERO declarations are ignored
		}
		slug := decl.Listing.SlugOrDerived()
		if _, taken := consumed[slug]; taken {
			continue
		}
		decl.Curated = true
		seg.TierTwo = append(seg.TierTwo, decl)
		consumed[slug] = struct{}{}
		capacity--
	}

	// Aggregate-only fallback: fill from score order when curation gave
	// tier-two nothing at all.
	if capacity > 0 && len(seg.TierTwo) == 0 {
		position := 1
		for i := range sorted {
			if capacity <= 0 {
				break
			}
			slug := sorted[i].SlugOrDerived()
			if slug == "" {
				continue
			}
			if _, taken := consumed[slug]; taken {
				continue
			}
			seg.TierTwo = append(seg.TierTwo, SlotAssignment{
				Tier:     TierPremium,
				Position: position,
				Label:    tierTwoFallbackLabel,
				Listing:  sorted[i],
			})
			consumed[slug] = struct{}{}
			capacity--
			position++
		}
	}

	for i := range sorted {
		slug := sorted[i].SlugOrDerived()
		if slug == "" {
			seg.Remaining = append(seg.Remaining, sorted[i])
			continue
		}
		if _, taken := consumed[slug]; !taken {
			seg.Remaining = append(seg.Remaining, sorted[i])
		}
	}
	return seg
}

//
// helpers
//

// normalizeSlots validates and deduplicates raw declarations, resolves
// their listings, and sorts by tier rank then position.  Deduplication
// runs in input order before the sort, so the first declaration to claim
// a slug wins.
func normalizeSlots(raw []FeaturedSlot, sorted []Listing, bySlug map[string]int) []SlotAssignment {
	claimed := make(map[string]struct{}, len(raw))
	out := make([]SlotAssignment, 0, len(raw))

	for _, s := range raw {
		if s.Tier != TierHero && s.Tier != TierPremium {
			continue
		}
		slug := NormalizeSlug(s.ListingSlug, "")
		if slug == "" {
			continue
		}
		idx, ok := bySlug[slug]
		if !ok {
			continue
		}
		if _, dup := claimed[slug]; dup {
			continue
		}
		claimed[slug] = struct{}{}

		pos := s.Position
		if pos < 1 {
			pos = 1
		}
		out = append(out, SlotAssignment{
			Tier:     s.Tier,
			Position: pos,
			Label:    s.Label,
			Listing:  sorted[idx],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := tierRank(out[i].Tier), tierRank(out[j].Tier)
		if ri != rj {
			return ri < rj
		}
		return out[i].Position < out[j].Position
	})
	return out
}

func tierRank(tier string) int {
	if tier == TierHero {
		return 0
	}
	return 1
}
