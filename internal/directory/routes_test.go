// internal/directory/routes_test.go
//
// Unit-tests for the route resolver.
//
// Context
// -------
// The resolver must be deterministic per (directory, config) and honor the
// slug fallback chain, the base-path join, and the primary-mode choice of
// canonical URL.

package directory

import (
	"reflect"
	"testing"
)

func testConfig(mode string) RoutingConfig {
	return RoutingConfig{
		PrimaryMode:      mode,
		SubdirectoryBase: "/directories",
		SubdomainRoot:    "example.com",
		Protocol:         "https",
		CanonicalBaseURL: "https://www.example.com",
	}
}

func TestResolveSubdirectorySlugChain(t *testing.T) {
	cfg := testConfig(ModeSubdirectory)

	cases := []struct {
		name string
		dir  Directory
		want string
	}{
		{"explicit subdirectory wins", Directory{
			Subdirectory: "/Jobs/New-York-City/",
			Slug:         "ignored",
		}, "jobs/new-york-city"},
		{"slug next", Directory{Slug: "Pro Services"}, "pro-services"},
		{"category plus location", Directory{
			Category: &Category{Slug: "professional-services"},
			Location: &Location{Slug: "new-york-city"},
		}, "professional-services/new-york-city"},
		{"name fallback", Directory{Name: "Harbor HVAC Pros"}, "harbor-hvac-pros"},
		{"literal fallback", Directory{}, FallbackSlug},
	}
	for _, c := range cases {
		if got := cfg.ResolveSubdirectorySlug(&c.dir); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestBuildDirectoryPath(t *testing.T) {
	cfg := testConfig(ModeSubdirectory)
	got := cfg.BuildDirectoryPath("professional-services", "new-york-city")
	if got != "/directories/professional-services/new-york-city" {
		t.Fatalf("BuildDirectoryPath = %q", got)
	}
}

func TestResolveRoutesCanonicalByMode(t *testing.T) {
	d := &Directory{Slug: "pros-nyc", Subdomain: "pros-nyc"}

	sub := testConfig(ModeSubdirectory).ResolveRoutes(d)
	if sub.CanonicalURL != "https://www.example.com/directories/pros-nyc" {
		t.Errorf("subdirectory canonical = %q", sub.CanonicalURL)
	}
	if sub.SubdomainURL != "https://pros-nyc.example.com" {
		t.Errorf("subdomain url = %q", sub.SubdomainURL)
	}

	dom := testConfig(ModeSubdomain).ResolveRoutes(d)
	if dom.CanonicalURL != "https://pros-nyc.example.com" {
		t.Errorf("subdomain canonical = %q", dom.CanonicalURL)
	}
}

func TestResolveRoutesSubdomainFallsBackWithoutHost(t *testing.T) {
	// Subdomain-primary mode still canonicalizes on the subdirectory form
	// when the directory has no subdomain.
	d := &Directory{Slug: "jobs"}
	r := testConfig(ModeSubdomain).ResolveRoutes(d)
	if r.SubdomainHost != "" || r.SubdomainURL != "" {
		t.Fatalf("unexpected subdomain form: %+v", r)
	}
	if r.CanonicalURL != "https://www.example.com/directories/jobs" {
		t.Errorf("canonical = %q", r.CanonicalURL)
	}
}

func TestResolveRoutesDeterministic(t *testing.T) {
	cfg := testConfig(ModeSubdomain)
	d := &Directory{
		Slug:      "pros-nyc",
		Subdomain: "Pros-NYC",
		Category:  &Category{Slug: "professional-services"},
		Location:  &Location{Slug: "new-york-city"},
	}
	a := cfg.ResolveRoutes(d)
	b := cfg.ResolveRoutes(d)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("resolution not deterministic: %+v vs %+v", a, b)
	}
}

func TestSubdomainHostMissingPieces(t *testing.T) {
	cfg := testConfig(ModeSubdomain)
	if _, ok := cfg.SubdomainHost(&Directory{}); ok {
		t.Error("host resolved without a subdomain")
	}
	noRoot := cfg
	noRoot.SubdomainRoot = ""
	if _, ok := noRoot.SubdomainHost(&Directory{Subdomain: "pros"}); ok {
		t.Error("host resolved without a configured root")
	}
}
