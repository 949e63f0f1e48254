// internal/store/repository_test.go
//
// Unit-tests for snapshot assembly using sqlmock.
//
// Context
// -------
// Verifies that the three SELECTs fold into Directory records with the
// flexible JSON columns decoded: string-coerced coordinates survive as
// numbers, null coordinates disappear, and mixed subcategory tags keep
// their metadata.
//
// Run: go test ./internal/store -v

package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func dirColumns() []string {
	return []string{
		"id", "slug", "subdomain", "subdirectory", "title",
		"location_agnostic", "featured_limit", "subcategories",
		"hero_subtitle", "meta_title", "meta_description",
		"meta_keywords", "og_image_url",
		"cat_slug", "cat_name", "cat_description",
		"cat_meta_title", "cat_meta_description", "cat_og_image_url",
		"loc_slug", "loc_name", "loc_region",
	}
}

func listingColumns() []string {
	return []string{
		"directory_id", "slug", "name", "score", "subcategories",
		"geo", "location_label", "summary", "url",
	}
}

func slotColumns() []string {
	return []string{"directory_id", "tier", "position", "label", "listing_slug"}
}

func TestLoadSnapshot(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT d.id, d.slug").WillReturnRows(
		sqlmock.NewRows(dirColumns()).AddRow(
			1, "pros-nyc", "pros-nyc", nil, "NYC Pros",
			false, 3, `[{"slug":"hvac","name":"HVAC"}]`,
			"Top pros in town.", nil, nil, "pros, nyc", nil,
			"professional-services", "Professional Services", nil,
			nil, nil, nil,
			"new-york-city", "New York City", "NY",
		))

	mock.ExpectQuery("SELECT li.directory_id").WillReturnRows(
		sqlmock.NewRows(listingColumns()).
			AddRow(1, "alpine-air", "Alpine Air", 88.5,
				`["Deep Cleaning",{"slug":"hvac"}]`,
				`{"latitude":"39.75","longitude":-104.99}`,
				nil, nil, nil).
			AddRow(1, "no-geo", "No Geo", nil, nil,
				`{"latitude":null,"longitude":-104.99}`,
				"Downtown", nil, nil))

	mock.ExpectQuery("SELECT fs.directory_id").WillReturnRows(
		sqlmock.NewRows(slotColumns()).
			AddRow(1, "HERO", 1, "Editor's choice", "alpine-air"))

	dirs, err := repo.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(dirs) != 1 {
		t.Fatalf("directories = %d, want 1", len(dirs))
	}

	d := dirs[0]
	if d.Slug != "pros-nyc" || d.Name != "NYC Pros" {
		t.Errorf("directory = %+v", d)
	}
	if d.Category == nil || d.Category.Slug != "professional-services" {
		t.Errorf("category = %+v", d.Category)
	}
	if d.Location == nil || d.Location.Region != "NY" {
		t.Errorf("location = %+v", d.Location)
	}
	if d.FeaturedLimit == nil || *d.FeaturedLimit != 3 {
		t.Errorf("featured limit = %v", d.FeaturedLimit)
	}
	if len(d.Subcategories) != 1 || d.Subcategories[0].Name != "HVAC" {
		t.Errorf("declared subcategories = %+v", d.Subcategories)
	}

	if len(d.Listings) != 2 {
		t.Fatalf("listings = %d, want 2", len(d.Listings))
	}
	first := d.Listings[0]
	if first.Latitude == nil || *first.Latitude != 39.75 {
		t.Errorf("string latitude not coerced: %v", first.Latitude)
	}
	if first.Longitude == nil || *first.Longitude != -104.99 {
		t.Errorf("longitude = %v", first.Longitude)
	}
	if first.Score == nil || *first.Score != 88.5 {
		t.Errorf("score = %v", first.Score)
	}
	if len(first.Subcategories) != 2 || first.Subcategories[0].Name != "Deep Cleaning" {
		t.Errorf("listing tags = %+v", first.Subcategories)
	}

	second := d.Listings[1]
	if second.Latitude != nil || second.Longitude != nil {
		t.Errorf("null latitude kept coordinates: %v, %v", second.Latitude, second.Longitude)
	}
	if second.Score != nil {
		t.Errorf("null score = %v", second.Score)
	}

	if len(d.FeaturedSlots) != 1 || d.FeaturedSlots[0].Tier != "HERO" ||
		d.FeaturedSlots[0].Position != 1 {
		t.Errorf("slots = %+v", d.FeaturedSlots)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestLoadSnapshot_MalformedJSONDegrades(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT d.id, d.slug").WillReturnRows(
		sqlmock.NewRows(dirColumns()).AddRow(
			7, "solo", nil, nil, "Solo",
			false, nil, `{not json`,
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil,
			nil, nil, nil,
		))
	mock.ExpectQuery("SELECT li.directory_id").WillReturnRows(
		sqlmock.NewRows(listingColumns()).
			AddRow(7, "busted", "Busted", nil, `"also-not-an-array"`, `[1,2]`, nil, nil, nil))
	mock.ExpectQuery("SELECT fs.directory_id").WillReturnRows(sqlmock.NewRows(slotColumns()))

	dirs, err := repo.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	d := dirs[0]
	if d.Category != nil || d.Location != nil {
		t.Errorf("null joins produced refs: %+v", d)
	}
	if d.Subcategories != nil {
		t.Errorf("malformed declared tags = %+v", d.Subcategories)
	}
	l := d.Listings[0]
	if l.Subcategories != nil || l.Latitude != nil {
		t.Errorf("malformed listing columns survived: %+v", l)
	}
}
