// internal/directory/slug_test.go
//
// Unit-tests for the slug, path, and hostname normalizers.
//
// Run: go test ./internal/directory -v

package directory

import "testing"

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		in, fallback, want string
	}{
		{"Professional Services", "", "professional-services"},
		{"  HVAC // Repair!! ", "", "hvac-repair"},
		{"--already-kebab--", "", "already-kebab"},
		{"ÉMOJI 🎉 only", "", "moji-only"},
		{"!!!", "fallback", "fallback"},
		{"", "directory", "directory"},
		{"New York City", "", "new-york-city"},
	}
	for _, c := range cases {
		if got := NormalizeSlug(c.in, c.fallback); got != c.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in, fallback, want string
	}{
		{"/Directories/Jobs/", "", "directories/jobs"},
		{"//double//slashes//", "", "double/slashes"},
		{"jobs/New York City", "", "jobs/new-york-city"},
		{"///", "x", "x"},
		{"", "", ""},
	}
	for _, c := range cases {
		if got := NormalizePath(c.in, c.fallback); got != c.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeHostname(t *testing.T) {
	cases := []struct{ in, want string }{
		{"HTTPS://Pros-NYC.Example.com/path?q=1", "pros-nyc.example.com"},
		{"example.com", "example.com"},
		{"  weird_host!.com  ", "weirdhost.com"},
		{"http://", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeHostname(c.in); got != c.want {
			t.Errorf("NormalizeHostname(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHumanizeSlug(t *testing.T) {
	if got := HumanizeSlug("hvac-repair"); got != "Hvac Repair" {
		t.Errorf("HumanizeSlug = %q", got)
	}
	if got := HumanizeSlug("solo"); got != "Solo" {
		t.Errorf("HumanizeSlug = %q", got)
	}
}
