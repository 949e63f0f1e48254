// internal/directory/pins.go
//
// Map-pin extraction with coordinate validation.
//
// Context
// -------
// Directory pages render a map when at least one listing carries usable
// coordinates.  Pins keep the input listing order—display rank on the map
// is curation order, not score order—and listings with missing or
// non-finite coordinates, or no derivable slug, are dropped without
// comment.
//
// Notes
// -----
//   - Numeric-string coordinates are coerced at the store boundary; by the
//     time listings reach this file a coordinate is either a finite float
//     or absent.
//   - Score is passed through only when finite—never coerced to zero.
//   - Oxford commas, two spaces after periods.
package directory

import "math"

// Pin is one plotted listing.
type Pin struct {
	Slug          string
	Name          string
	Latitude      float64
	Longitude     float64
	LocationLabel string
	Summary       string
	URL           string
	Rank          int
	Score         *float64
}

// BuildMapPins extracts valid pins from override, or from the directory's
// own listings when override is nil.  Rank is 1-based in processing order.
func BuildMapPins(d *Directory, override []Listing) []Pin {
	var listings []Listing
	switch {
	case override != nil:
		listings = override
	case d != nil:
		listings = d.Listings
	}

	pins := make([]Pin, 0, len(listings))
	for i := range listings {
		l := &listings[i]

		slug := l.SlugOrDerived()
		if slug == "" {
			continue
		}
		lat, lng, ok := listingCoordinates(l)
		if !ok {
			continue
		}

		label := l.LocationLabel
		if label == "" && d != nil && d.Location != nil {
			label = d.Location.Name
		}

		var score *float64
		if v, ok := l.ScoreValue(); ok {
			score = &v
		}

		pins = append(pins, Pin{
			Slug:          slug,
			Name:          l.Name,
			Latitude:      lat,
			Longitude:     lng,
			LocationLabel: label,
			Summary:       l.Summary,
			URL:           l.URL,
			Rank:          len(pins) + 1,
			Score:         score,
		})
	}
	return pins
}

// ShouldRenderMap reports whether a directory page shows its map.  A nil
// or location-agnostic directory never renders one; otherwise the decision
// is simply “are there pins”.  Pass pins to reuse an already-built list,
// or nil to have it computed here.
func ShouldRenderMap(d *Directory, pins []Pin) bool {
	if d == nil || d.LocationAgnostic {
		return false
	}
	if pins == nil {
		pins = BuildMapPins(d, nil)
	}
	return len(pins) > 0
}

//
// helpers
//

// listingCoordinates prefers the nested shape over flat fields and rejects
// anything non-finite.
func listingCoordinates(l *Listing) (lat, lng float64, ok bool) {
	if l.Coordinates != nil {
		lat, lng = l.Coordinates.Latitude, l.Coordinates.Longitude
	} else if l.Latitude != nil && l.Longitude != nil {
		lat, lng = *l.Latitude, *l.Longitude
	} else {
		return 0, 0, false
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0, 0, false
	}
	return lat, lng, true
}
