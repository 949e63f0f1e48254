// internal/directory/seo_test.go
//
// Unit-tests for the SEO metadata fallback chains.

package directory

import "testing"

func TestResolveCategorySEO(t *testing.T) {
	site := testSite()

	full := ResolveCategorySEO(&Category{
		Name:            "Professional Services",
		MetaTitle:       "  Top Pros  ",
		MetaDescription: "Hand-picked pros.",
	}, site)
	if full.MetaTitle != "Top Pros" || full.MetaDescription != "Hand-picked pros." {
		t.Errorf("full = %+v", full)
	}

	named := ResolveCategorySEO(&Category{Name: "Plumbing"}, site)
	if named.MetaTitle != "Plumbing" {
		t.Errorf("name fallback = %q", named.MetaTitle)
	}
	if named.MetaDescription != "Browse curated Plumbing listings, rankings, and local highlights." {
		t.Errorf("templated description = %q", named.MetaDescription)
	}

	bare := ResolveCategorySEO(nil, site)
	if bare.MetaTitle != "OpenLocal" {
		t.Errorf("site fallback = %q", bare.MetaTitle)
	}
}

func TestResolveDirectorySEO_Chain(t *testing.T) {
	site := testSite()
	d := &Directory{
		Category: &Category{Slug: "plumbing", Name: "Plumbing", OGImageURL: "https://cdn.example.com/plumbing.png"},
		Location: &Location{Slug: "austin", Name: "Austin"},
	}

	seo := ResolveDirectorySEO(d, site)
	if seo.Title != "Plumbing · Austin" {
		t.Errorf("title = %q", seo.Title)
	}
	if seo.Image != "https://cdn.example.com/plumbing.png" {
		t.Errorf("image = %q", seo.Image)
	}

	d.MetaTitle = "Austin Plumbers, Ranked"
	d.HeroSubtitle = "The pipes are calling."
	seo = ResolveDirectorySEO(d, site)
	if seo.Title != "Austin Plumbers, Ranked" {
		t.Errorf("meta title override lost: %q", seo.Title)
	}
	if seo.Description != "The pipes are calling." {
		t.Errorf("hero subtitle fallback = %q", seo.Description)
	}

	d.OGImage = "https://cdn.example.com/legacy.png"
	d.OGImageURL = "https://cdn.example.com/current.png"
	if got := ResolveDirectorySEO(d, site).Image; got != "https://cdn.example.com/current.png" {
		t.Errorf("image override order: %q", got)
	}
}

func TestResolveDirectorySEO_Keywords(t *testing.T) {
	d := &Directory{MetaKeywords: " plumbing, austin ,, Plumbing , drains "}
	seo := ResolveDirectorySEO(d, testSite())
	if seo.Keywords != "plumbing, austin, drains" {
		t.Errorf("keywords = %q", seo.Keywords)
	}

	if got := ResolveDirectorySEO(&Directory{}, testSite()).Keywords; got != "" {
		t.Errorf("empty keywords = %q", got)
	}
}

func TestResolveDirectorySEO_SiteDefaults(t *testing.T) {
	seo := ResolveDirectorySEO(&Directory{}, testSite())
	if seo.Title != "OpenLocal" {
		t.Errorf("title = %q", seo.Title)
	}
	if seo.Description != "Local directories, ranked." {
		t.Errorf("description = %q", seo.Description)
	}
	if seo.Image != "https://cdn.example.com/default-og.png" {
		t.Errorf("image = %q", seo.Image)
	}
}
