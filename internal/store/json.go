// internal/store/json.go
//
// Flexible JSON decoding for loosely-shaped listing columns.
//
// Context
// -------
// Listing rows were imported from crawler output, so two columns carry
// duck-typed JSON: `subcategories` is an array mixing bare strings with
// `{slug, name, description}` objects, and `geo` stores coordinates that
// may arrive as numbers or numeric strings.  These decoders absorb every
// observed shape at the store boundary so the engine only ever sees the
// explicit types in internal/directory.
//
// Failure semantics
// -----------------
// Defensive, not strict: an unparseable value decodes to “absent” rather
// than failing the whole snapshot.  Malformed data disappears from maps
// and facets exactly as the engine's own fallback rules dictate.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package store

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

//
// flexFloat
//

// flexFloat accepts a JSON number, a numeric string, or null.  Anything
// else—including non-finite values—decodes as invalid.
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	f.Valid = false
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
		s = strings.TrimSpace(raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

//
// geoPayload
//

// geoPayload is the `geo` column shape.
type geoPayload struct {
	Latitude  flexFloat `json:"latitude"`
	Longitude flexFloat `json:"longitude"`
}

//
// subcategoryTag
//

// subcategoryTag accepts either a bare string or an object form.
type subcategoryTag struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (t *subcategoryTag) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
		*t = subcategoryTag{Name: raw}
		return nil
	}

	type plain subcategoryTag // avoid recursive UnmarshalJSON
	var obj plain
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	*t = subcategoryTag(obj)
	return nil
}
