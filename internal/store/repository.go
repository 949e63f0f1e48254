// internal/store/repository.go
//
// Directory-snapshot repository.
//
// Context
// -------
// The engine consumes fully-materialized, immutable snapshots of the
// directory graph; this repository is the one place that builds them.
// Three parameterised SELECTs (directories joined to their category and
// location rows, listings, featured slots) are scanned into row structs
// and assembled into `[]*directory.Directory` in primary-key order.
//
// Workflow
// --------
//  1. Callers supply a *sqlx.DB connected to the directory database.
//  2. LoadSnapshot runs the three queries under the request context.
//  3. Rows are folded into Directory records; JSON columns pass through
//     the flexible decoders in json.go.
//  4. Errors are returned verbatim so the caller can wrap or log them
//     using the project logger.
//
// Notes
// -----
//   - Soft-deleted and unpublished directories are excluded at SQL level
//     to keep callers simple.
//   - Column lists match the row structs; update both together.
//   - Oxford commas, two spaces after periods.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/openlocal/compass/internal/directory"
)

// Repository provides read-only access to the directory tables.
type Repository struct {
	db *sqlx.DB
}

// New wraps an open connection pool.
func New(db *sqlx.DB) *Repository { return &Repository{db: db} }

//
// Row models
//

type directoryRow struct {
	ID               uint64          `db:"id"`
	Slug             string          `db:"slug"`
	Subdomain        sql.NullString  `db:"subdomain"`
	Subdirectory     sql.NullString  `db:"subdirectory"`
	Title            string          `db:"title"`
	LocationAgnostic bool            `db:"location_agnostic"`
	FeaturedLimit    sql.NullInt64   `db:"featured_limit"`
	Subcategories    json.RawMessage `db:"subcategories"`
	HeroSubtitle     sql.NullString  `db:"hero_subtitle"`
	MetaTitle        sql.NullString  `db:"meta_title"`
	MetaDescription  sql.NullString  `db:"meta_description"`
	MetaKeywords     sql.NullString  `db:"meta_keywords"`
	OGImageURL       sql.NullString  `db:"og_image_url"`

	CatSlug        sql.NullString `db:"cat_slug"`
	CatName        sql.NullString `db:"cat_name"`
	CatDescription sql.NullString `db:"cat_description"`
	CatMetaTitle   sql.NullString `db:"cat_meta_title"`
	CatMetaDesc    sql.NullString `db:"cat_meta_description"`
	CatOGImageURL  sql.NullString `db:"cat_og_image_url"`

	LocSlug   sql.NullString `db:"loc_slug"`
	LocName   sql.NullString `db:"loc_name"`
	LocRegion sql.NullString `db:"loc_region"`
}

type listingRow struct {
	DirectoryID   uint64          `db:"directory_id"`
	Slug          sql.NullString  `db:"slug"`
	Name          string          `db:"name"`
	Score         sql.NullFloat64 `db:"score"`
	Subcategories json.RawMessage `db:"subcategories"`
	Geo           json.RawMessage `db:"geo"`
	LocationLabel sql.NullString  `db:"location_label"`
	Summary       sql.NullString  `db:"summary"`
	URL           sql.NullString  `db:"url"`
}

type slotRow struct {
	DirectoryID uint64         `db:"directory_id"`
	Tier        string         `db:"tier"`
	Position    sql.NullInt64  `db:"position"`
	Label       sql.NullString `db:"label"`
	ListingSlug string         `db:"listing_slug"`
}

//
// Snapshot loader
//

// LoadSnapshot materializes every published directory with its listings
// and featured-slot declarations.
func (r *Repository) LoadSnapshot(ctx context.Context) ([]*directory.Directory, error) {
	const dirQuery = `
        SELECT d.id, d.slug, d.subdomain, d.subdirectory, d.title,
               d.location_agnostic, d.featured_limit, d.subcategories,
               d.hero_subtitle, d.meta_title, d.meta_description,
               d.meta_keywords, d.og_image_url,
               c.slug AS cat_slug, c.name AS cat_name,
               c.description AS cat_description,
               c.meta_title AS cat_meta_title,
               c.meta_description AS cat_meta_description,
               c.og_image_url AS cat_og_image_url,
               l.slug AS loc_slug, l.name AS loc_name, l.region AS loc_region
        FROM   directory d
        LEFT JOIN category c ON c.id = d.category_id
        LEFT JOIN location l ON l.id = d.location_id
        WHERE  d.published = 1
          AND  d.deleted_at IS NULL
        ORDER BY d.id`

	var dirRows []directoryRow
	if err := r.db.SelectContext(ctx, &dirRows, dirQuery); err != nil {
		return nil, err
	}

	const listingQuery = `
        SELECT li.directory_id, li.slug, li.name, li.score, li.subcategories,
               li.geo, li.location_label, li.summary, li.url
        FROM   listing li
        JOIN   directory d ON d.id = li.directory_id
        WHERE  d.published = 1
          AND  d.deleted_at IS NULL
        ORDER BY li.directory_id, li.position, li.id`

	var listingRows []listingRow
	if err := r.db.SelectContext(ctx, &listingRows, listingQuery); err != nil {
		return nil, err
	}

	const slotQuery = `
        SELECT fs.directory_id, fs.tier, fs.position, fs.label, fs.listing_slug
        FROM   featured_slot fs
        JOIN   directory d ON d.id = fs.directory_id
        WHERE  d.published = 1
          AND  d.deleted_at IS NULL
        ORDER BY fs.directory_id, fs.id`

	var slotRows []slotRow
	if err := r.db.SelectContext(ctx, &slotRows, slotQuery); err != nil {
		return nil, err
	}

	return assemble(dirRows, listingRows, slotRows), nil
}

//
// Assembly
//

func assemble(dirRows []directoryRow, listingRows []listingRow, slotRows []slotRow) []*directory.Directory {
	byID := make(map[uint64]*directory.Directory, len(dirRows))
	out := make([]*directory.Directory, 0, len(dirRows))

	for _, row := range dirRows {
		d := &directory.Directory{
			Slug:             row.Slug,
			Subdomain:        row.Subdomain.String,
			Subdirectory:     row.Subdirectory.String,
			Name:             row.Title,
			LocationAgnostic: row.LocationAgnostic,
			Subcategories:    decodeSubcategories(row.Subcategories, row.Slug),
			HeroSubtitle:     row.HeroSubtitle.String,
			MetaTitle:        row.MetaTitle.String,
			MetaDescription:  row.MetaDescription.String,
			MetaKeywords:     row.MetaKeywords.String,
			OGImageURL:       row.OGImageURL.String,
		}
		if row.FeaturedLimit.Valid {
			limit := int(row.FeaturedLimit.Int64)
			d.FeaturedLimit = &limit
		}
		if row.CatSlug.Valid {
			d.Category = &directory.Category{
				Slug:            row.CatSlug.String,
				Name:            row.CatName.String,
				Description:     row.CatDescription.String,
				MetaTitle:       row.CatMetaTitle.String,
				MetaDescription: row.CatMetaDesc.String,
				OGImageURL:      row.CatOGImageURL.String,
			}
		}
		if row.LocSlug.Valid {
			d.Location = &directory.Location{
				Slug:   row.LocSlug.String,
				Name:   row.LocName.String,
				Region: row.LocRegion.String,
			}
		}
		byID[row.ID] = d
		out = append(out, d)
	}

	for _, row := range listingRows {
		d, ok := byID[row.DirectoryID]
		if !ok {
			continue
		}
		l := directory.Listing{
			Slug:          row.Slug.String,
			Name:          row.Name,
			Subcategories: decodeSubcategories(row.Subcategories, row.Slug.String),
			LocationLabel: row.LocationLabel.String,
			Summary:       row.Summary.String,
			URL:           row.URL.String,
		}
		if row.Score.Valid {
			score := row.Score.Float64
			l.Score = &score
		}
		if lat, lng, ok := decodeGeo(row.Geo, row.Slug.String); ok {
			l.Latitude = &lat
			l.Longitude = &lng
		}
		d.Listings = append(d.Listings, l)
	}

	for _, row := range slotRows {
		d, ok := byID[row.DirectoryID]
		if !ok {
			continue
		}
		slot := directory.FeaturedSlot{
			Tier:        row.Tier,
			Label:       row.Label.String,
			ListingSlug: row.ListingSlug,
		}
		if row.Position.Valid {
			slot.Position = int(row.Position.Int64)
		}
		d.FeaturedSlots = append(d.FeaturedSlots, slot)
	}

	return out
}

// decodeSubcategories absorbs the mixed string/object tag array.  A
// malformed column logs once and decodes to nil.
func decodeSubcategories(raw json.RawMessage, owner string) []directory.Subcategory {
	if len(raw) == 0 {
		return nil
	}
	var tags []subcategoryTag
	if err := json.Unmarshal(raw, &tags); err != nil {
		zap.L().Warn("subcategories column malformed",
			zap.String("owner", owner), zap.Error(err))
		return nil
	}
	out := make([]directory.Subcategory, 0, len(tags))
	for _, t := range tags {
		if t.Slug == "" && t.Name == "" {
			continue
		}
		out = append(out, directory.Subcategory{
			Slug:        t.Slug,
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return out
}

// decodeGeo extracts a finite coordinate pair, coercing numeric strings.
func decodeGeo(raw json.RawMessage, owner string) (lat, lng float64, ok bool) {
	if len(raw) == 0 {
		return 0, 0, false
	}
	var g geoPayload
	if err := json.Unmarshal(raw, &g); err != nil {
		zap.L().Warn("geo column malformed",
			zap.String("owner", owner), zap.Error(err))
		return 0, 0, false
	}
	if !g.Latitude.Valid || !g.Longitude.Valid {
		return 0, 0, false
	}
	return g.Latitude.Value, g.Longitude.Value, true
}
