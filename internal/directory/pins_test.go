// internal/directory/pins_test.go
//
// Unit-tests for map-pin extraction and the render decision.

package directory

import (
	"math"
	"testing"
)

func TestBuildMapPins(t *testing.T) {
	d := &Directory{
		Location: &Location{Slug: "denver", Name: "Denver"},
		Listings: []Listing{
			{Slug: "alpine-air", Latitude: fptr(39.75), Longitude: fptr(-104.99), Score: fptr(88)},
			{Slug: "no-coords"},
			{Slug: "nested", Coordinates: &Coordinates{Latitude: 39.7, Longitude: -105.0},
				LocationLabel: "LoDo"},
			{Name: "", Latitude: fptr(39.6), Longitude: fptr(-104.9)}, // no derivable slug
			{Slug: "half", Latitude: fptr(39.5)},                     // missing longitude
			{Slug: "bad", Latitude: fptr(math.NaN()), Longitude: fptr(-104.9)},
		},
	}

	pins := BuildMapPins(d, nil)
	if len(pins) != 2 {
		t.Fatalf("pin count = %d, want 2", len(pins))
	}
	if pins[0].Slug != "alpine-air" || pins[0].Rank != 1 {
		t.Errorf("pins[0] = %+v", pins[0])
	}
	if pins[0].Latitude != 39.75 || pins[0].Longitude != -104.99 {
		t.Errorf("pins[0] coords = %v, %v", pins[0].Latitude, pins[0].Longitude)
	}
	if pins[0].LocationLabel != "Denver" {
		t.Errorf("label fallback = %q", pins[0].LocationLabel)
	}
	if pins[0].Score == nil || *pins[0].Score != 88 {
		t.Errorf("score = %v", pins[0].Score)
	}
	if pins[1].Slug != "nested" || pins[1].Rank != 2 || pins[1].LocationLabel != "LoDo" {
		t.Errorf("pins[1] = %+v", pins[1])
	}
	if pins[1].Score != nil {
		t.Errorf("unscored pin got score %v", *pins[1].Score)
	}
}

func TestBuildMapPins_InputOrderNotScoreOrder(t *testing.T) {
	d := &Directory{Listings: []Listing{
		{Slug: "low", Score: fptr(10), Latitude: fptr(1), Longitude: fptr(1)},
		{Slug: "high", Score: fptr(99), Latitude: fptr(2), Longitude: fptr(2)},
	}}
	pins := BuildMapPins(d, nil)
	if pins[0].Slug != "low" || pins[1].Slug != "high" {
		t.Fatalf("pins re-sorted by score: %+v", pins)
	}
}

func TestBuildMapPins_Override(t *testing.T) {
	d := &Directory{Listings: []Listing{
		{Slug: "own", Latitude: fptr(1), Longitude: fptr(1)},
	}}
	override := []Listing{{Slug: "other", Latitude: fptr(3), Longitude: fptr(4)}}
	pins := BuildMapPins(d, override)
	if len(pins) != 1 || pins[0].Slug != "other" {
		t.Fatalf("override ignored: %+v", pins)
	}
}

func TestShouldRenderMap(t *testing.T) {
	withPins := &Directory{Listings: []Listing{
		{Slug: "a", Latitude: fptr(1), Longitude: fptr(2)},
	}}
	if !ShouldRenderMap(withPins, nil) {
		t.Error("expected map for directory with pins")
	}

	agnostic := &Directory{LocationAgnostic: true, Listings: withPins.Listings}
	if ShouldRenderMap(agnostic, nil) {
		t.Error("location-agnostic directory rendered a map")
	}

	if ShouldRenderMap(nil, nil) {
		t.Error("nil directory rendered a map")
	}

	noPins := &Directory{Listings: []Listing{{Slug: "dry"}}}
	if ShouldRenderMap(noPins, nil) {
		t.Error("directory without pins rendered a map")
	}

	if ShouldRenderMap(noPins, []Pin{{Slug: "supplied"}}) != true {
		t.Error("supplied pin list ignored")
	}
}
