// internal/directory/match_test.go
//
// Unit-tests for the subdirectory and subdomain request matchers.
//
// Context
// -------
// The critical behaviors: longest-prefix disambiguation when one slug is a
// prefix of another, base-prefix tolerance on subdomain requests, and the
// null result on every miss path.

package directory

import "testing"

func matchFixture() []*Directory {
	return []*Directory{
		{Slug: "jobs", Name: "Jobs"},
		{Subdirectory: "jobs/new-york-city", Name: "NYC Jobs", Subdomain: "jobs-nyc"},
		{Slug: "pros-nyc", Name: "NYC Pros", Subdomain: "pros-nyc"},
	}
}

func TestMatchSubdirectory_Exact(t *testing.T) {
	cfg := testConfig(ModeSubdirectory)
	m := MatchSubdirectory(matchFixture(), "/directories/pros-nyc", cfg)
	if m == nil || m.Directory.Slug != "pros-nyc" {
		t.Fatalf("match = %+v", m)
	}
	if m.Subpath != "" || m.SubcategorySlug != "" {
		t.Errorf("exact match carries subpath: %+v", m)
	}
}

func TestMatchSubdirectory_LongestPrefixWins(t *testing.T) {
	cfg := testConfig(ModeSubdirectory)
	m := MatchSubdirectory(matchFixture(), "/directories/jobs/new-york-city/tech", cfg)
	if m == nil || m.Directory.Name != "NYC Jobs" {
		t.Fatalf("match = %+v", m)
	}
	if m.Subpath != "tech" || m.SubcategorySlug != "tech" {
		t.Errorf("subpath = %q, subcategory = %q", m.Subpath, m.SubcategorySlug)
	}

	// The shorter slug still matches when the longer one cannot.
	m = MatchSubdirectory(matchFixture(), "/directories/jobs/chicago", cfg)
	if m == nil || m.Directory.Slug != "jobs" || m.SubcategorySlug != "chicago" {
		t.Fatalf("match = %+v", m)
	}
}

func TestMatchSubdirectory_Misses(t *testing.T) {
	cfg := testConfig(ModeSubdirectory)
	dirs := matchFixture()

	if m := MatchSubdirectory(dirs, "/elsewhere/jobs", cfg); m != nil {
		t.Errorf("matched outside base: %+v", m)
	}
	if m := MatchSubdirectory(dirs, "/directories", cfg); m != nil {
		t.Errorf("matched empty remainder: %+v", m)
	}
	if m := MatchSubdirectory(dirs, "/directories/unknown", cfg); m != nil {
		t.Errorf("matched unknown slug: %+v", m)
	}
}

func TestMatchSubdirectory_CaseAndSlashTolerant(t *testing.T) {
	cfg := testConfig(ModeSubdirectory)
	m := MatchSubdirectory(matchFixture(), "/Directories/Pros-NYC/", cfg)
	if m == nil || m.Directory.Slug != "pros-nyc" {
		t.Fatalf("match = %+v", m)
	}
}

func TestMatchSubdomain(t *testing.T) {
	cfg := testConfig(ModeSubdomain)
	m := MatchSubdomain(matchFixture(), "pros-nyc.example.com", "/HVAC", cfg)
	if m == nil || m.Directory.Slug != "pros-nyc" {
		t.Fatalf("match = %+v", m)
	}
	if m.SubcategorySlug != "hvac" {
		t.Errorf("subcategory = %q", m.SubcategorySlug)
	}
}

func TestMatchSubdomain_BasePrefixCompat(t *testing.T) {
	cfg := testConfig(ModeSubdomain)
	m := MatchSubdomain(matchFixture(), "jobs-nyc.example.com", "/directories/jobs/new-york-city/tech", cfg)
	if m == nil || m.Directory.Name != "NYC Jobs" {
		t.Fatalf("match = %+v", m)
	}
	if m.Subpath != "jobs/new-york-city/tech" || m.SubcategorySlug != "jobs" {
		t.Errorf("subpath = %q, subcategory = %q", m.Subpath, m.SubcategorySlug)
	}
}

func TestMatchSubdomain_Misses(t *testing.T) {
	cfg := testConfig(ModeSubdomain)
	dirs := matchFixture()

	if m := MatchSubdomain(dirs, "example.com", "/", cfg); m != nil {
		t.Errorf("bare root matched: %+v", m)
	}
	if m := MatchSubdomain(dirs, "ghost.example.com", "/", cfg); m != nil {
		t.Errorf("unknown subdomain matched: %+v", m)
	}
	if m := MatchSubdomain(dirs, "pros-nyc.other.com", "/", cfg); m != nil {
		t.Errorf("foreign root matched: %+v", m)
	}

	noRoot := cfg
	noRoot.SubdomainRoot = ""
	if m := MatchSubdomain(dirs, "pros-nyc.example.com", "/", noRoot); m != nil {
		t.Errorf("matched without a configured root: %+v", m)
	}
	if m := MatchSubdomain(nil, "pros-nyc.example.com", "/", cfg); m != nil {
		t.Errorf("matched against empty directory list: %+v", m)
	}
}

func TestBuildResponseTargets(t *testing.T) {
	cfg := testConfig(ModeSubdomain)
	d := &Directory{Slug: "pros-nyc", Subdomain: "pros-nyc"}

	tg := BuildResponseTargets(d, "hvac", cfg)
	if tg.Path != "/directories/pros-nyc/hvac" {
		t.Errorf("path = %q", tg.Path)
	}
	if tg.CanonicalURL != "https://pros-nyc.example.com/hvac" {
		t.Errorf("canonical = %q", tg.CanonicalURL)
	}
	if tg.SubdomainURL != "https://pros-nyc.example.com/hvac" {
		t.Errorf("subdomain = %q", tg.SubdomainURL)
	}

	plain := BuildResponseTargets(d, "", cfg)
	if plain.Path != "/directories/pros-nyc" || plain.CanonicalURL != "https://pros-nyc.example.com" {
		t.Errorf("empty subpath targets = %+v", plain)
	}

	if zero := BuildResponseTargets(nil, "x", cfg); zero != (ResponseTargets{}) {
		t.Errorf("nil directory targets = %+v", zero)
	}
}
