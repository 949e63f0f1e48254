// internal/directory/slug.go
//
// Slug, path, and hostname normalizers.
//
// Context
// -------
// Every identifier this engine compares—directory slugs, subcategory facets,
// subdomain hosts, inbound request paths—passes through one of these three
// normalizers first, so the rest of the package never has to reason about
// case, punctuation, or stray separators.
//
// Rules (NormalizeSlug)
// ---------------------
//  1. Lower-case everything.
//  2. Convert any run of non-[a-z0-9] characters to one “-”.  That strips
//     spaces, punctuation, emoji, and non-ASCII.
//  3. Trim leading / trailing “-”.
//  4. If the result is empty, return the caller's fallback.
//
// Notes
// -----
//   - All functions are pure and total: no input errors, no panics.  Bad
//     input degrades to the fallback (or the empty string for hostnames).
//   - No Unicode transliteration; the directory network is English-only.
//   - Oxford commas, two spaces after periods.
package directory

import "strings"

// NormalizeSlug converts raw text to lower-kebab ASCII.  Returns fallback
// when nothing survives.
func NormalizeSlug(raw, fallback string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastWasDash := false
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return fallback
	}
	return slug
}

// NormalizePath normalizes a subdirectory path segment by segment.  Empty
// segments are dropped, the rest pass through NormalizeSlug.  Returns
// fallback when no segment survives.  The result never carries a leading
// or trailing slash.
func NormalizePath(raw, fallback string) string {
	segs := strings.Split(raw, "/")
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		if s := NormalizeSlug(seg, ""); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return strings.Join(out, "/")
}

// NormalizeHostname lowers the input, strips an optional scheme prefix and
// anything from the first “/” onward, then removes every character outside
// [a-z0-9.-].  May return the empty string.
func NormalizeHostname(raw string) string {
	h := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(h, "://"); i != -1 {
		h = h[i+3:]
	}
	if i := strings.IndexByte(h, '/'); i != -1 {
		h = h[:i]
	}

	var b strings.Builder
	b.Grow(len(h))
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HumanizeSlug turns “hvac-repair” into “Hvac Repair” for facets created
// from free-form listing tags that carry no display name of their own.
func HumanizeSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
