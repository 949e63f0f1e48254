// internal/requestinfo/requestinfo_test.go
//
// Unit-tests for UA parsing, client-IP extraction, and the Enrich
// middleware.  GeoIP lookups are exercised only in their degraded
// (no database) form so the tests need no MaxMind fixture.
//
// Run: go test ./internal/requestinfo -v

package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const chromeMacUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

func TestParseUA(t *testing.T) {
	ua := parseUA(chromeMacUA, "en-US,en;q=0.9")

	if ua.Browser != "Chrome" {
		t.Errorf("Browser = %q", ua.Browser)
	}
	if ua.OS != "macOS" {
		t.Errorf("OS = %q", ua.OS)
	}
	if ua.Device != "Computer" {
		t.Errorf("Device = %q", ua.Device)
	}
	if ua.IsBot {
		t.Error("Chrome flagged as bot")
	}
	if ua.PrimaryLang != "en-us" {
		t.Errorf("PrimaryLang = %q", ua.PrimaryLang)
	}
}

func TestPrimaryLang(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"en":                 "en",
		"fr-CA,fr;q=0.8":     "fr-ca",
		" es ;q=0.5, en ":    "es",
		"de-DE;q=0.9,en;q=1": "de-de",
	}
	for in, want := range cases {
		if got := primaryLang(in); got != want {
			t.Errorf("primaryLang(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:54321"
	if got := clientIP(r); got.String() != "10.0.0.7" {
		t.Errorf("RemoteAddr fallback = %v", got)
	}

	r.Header.Set("X-Real-Ip", "198.51.100.4")
	if got := clientIP(r); got.String() != "198.51.100.4" {
		t.Errorf("X-Real-Ip = %v", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(r); got.String() != "203.0.113.9" {
		t.Errorf("X-Forwarded-For = %v", got)
	}
}

func TestEnrichStoresRequestInfo(t *testing.T) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/directories/plumbers?page=2", nil)
	r.Header.Set("User-Agent", chromeMacUA)
	r.RemoteAddr = "192.0.2.10:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got == nil {
		t.Fatal("RequestInfo missing from context")
	}
	if got.UA.Browser != "Chrome" {
		t.Errorf("Browser = %q", got.UA.Browser)
	}
	if got.Geo.IP.String() != "192.0.2.10" {
		t.Errorf("Geo.IP = %v", got.Geo.IP)
	}
	if got.URL.Path != "/directories/plumbers" {
		t.Errorf("URL = %v", got.URL)
	}
}
