// internal/directory/seo.go
//
// SEO metadata resolution for categories and directories.
//
// Context
// -------
// Page metadata resolves through ordered override-then-fallback chains:
// explicit meta fields first, then display fields, then category-level
// metadata, then site defaults.  Each chain is expressed as an explicit
// candidate list fed through firstNonEmpty, so the fallback order reads
// top to bottom and tests can probe every rung.
//
// Notes
// -----
//   - All candidates are trimmed before the emptiness check; whitespace-
//     only overrides do not shadow their fallbacks.
//   - Oxford commas, two spaces after periods.
package directory

import "strings"

// SiteConfig carries the site-wide defaults the resolvers bottom out on.
type SiteConfig struct {
	Name               string
	DefaultDescription string
	DefaultOGImage     string
}

// CategorySEO is the resolved metadata for a category bucket.
type CategorySEO struct {
	MetaTitle       string
	MetaDescription string
}

// DirectorySEO is the resolved metadata for one directory page.
type DirectorySEO struct {
	Title       string
	Description string
	Keywords    string // comma-joined; empty when none declared
	Image       string // empty when no image resolves
}

// ResolveCategorySEO resolves a category's title and description.
func ResolveCategorySEO(c *Category, site SiteConfig) CategorySEO {
	if c == nil {
		c = &Category{}
	}
	name := firstNonEmpty(c.MetaTitle, c.Name, site.Name)
	return CategorySEO{
		MetaTitle: name,
		MetaDescription: firstNonEmpty(
			c.MetaDescription,
			c.Description,
			"Browse curated "+name+" listings, rankings, and local highlights.",
		),
	}
}

// ResolveDirectorySEO resolves a directory page's title, description,
// keywords, and social image.
func ResolveDirectorySEO(d *Directory, site SiteConfig) DirectorySEO {
	if d == nil {
		d = &Directory{}
	}

	// The category rungs only exist when the directory has a category;
	// ResolveCategorySEO is total, so computing it unconditionally would
	// shadow the site defaults with its templated fallback.
	var categoryTitle, categoryDescription, catImage string
	if d.Category != nil {
		catSEO := ResolveCategorySEO(d.Category, site)
		categoryTitle = catSEO.MetaTitle
		categoryDescription = catSEO.MetaDescription
		catImage = d.Category.OGImageURL

		if d.Location != nil {
			if locName := strings.TrimSpace(d.Location.Name); locName != "" && categoryTitle != "" {
				categoryTitle = categoryTitle + " · " + locName
			}
		}
	}

	return DirectorySEO{
		Title: firstNonEmpty(
			d.MetaTitle,
			d.Name,
			categoryTitle,
			site.Name,
		),
		Description: firstNonEmpty(
			d.MetaDescription,
			d.HeroSubtitle,
			categoryDescription,
			site.DefaultDescription,
			"Discover top-rated local listings on "+firstNonEmpty(site.Name, "our directory")+".",
		),
		Keywords: joinKeywords(d.MetaKeywords),
		Image: firstNonEmpty(
			d.OGImageURL,
			d.OGImage,
			catImage,
			site.DefaultOGImage,
		),
	}
}

//
// helpers
//

// firstNonEmpty returns the first candidate with non-whitespace content.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if t := strings.TrimSpace(c); t != "" {
			return t
		}
	}
	return ""
}

// joinKeywords splits on commas, trims, drops empties, and deduplicates
// while preserving first-seen order.
func joinKeywords(raw string) string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return strings.Join(out, ", ")
}
