// internal/database/database.go
//
// Connection pool for the directory store.
//
// Context
// -------
// Compass opens exactly one MySQL/MariaDB pool at boot and hands it to
// the snapshot repository.  The snapshot workload is bursty—three bulk
// SELECTs per refresh, nothing between refreshes—so pool sizing comes
// from the config `database` section with modest defaults rather than
// per-call tuning.
//
// The ping runs under the caller's context so a hung database cannot
// stall boot beyond the startup deadline, and a failed ping closes the
// half-open pool before returning.
//
// Notes
// -----
//   • go-sql-driver/mysql also speaks to MariaDB over the MySQL wire
//     protocol.
//   • Oxford commas, two spaces after periods.
package database

import (
	"context"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Pool defaults, applied wherever Pool carries a zero.
const (
	DefaultMaxOpen     = 15
	DefaultMaxIdle     = 5
	DefaultMaxLifetime = 30 * time.Minute
)

// Pool carries the connection-pool tunables from the config `database`
// section.  The zero value means "use the defaults".
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// withDefaults fills zero and negative fields.
func (p Pool) withDefaults() Pool {
	if p.MaxOpen <= 0 {
		p.MaxOpen = DefaultMaxOpen
	}
	if p.MaxIdle <= 0 {
		p.MaxIdle = DefaultMaxIdle
	}
	if p.MaxLifetime <= 0 {
		p.MaxLifetime = DefaultMaxLifetime
	}
	return p
}

// Open returns a verified *sqlx.DB with the resolved pool settings
// applied.  Callers should Close() it when no longer needed.
func Open(ctx context.Context, dsn string, pool Pool) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	p := pool.withDefaults()
	db.SetMaxOpenConns(p.MaxOpen)
	db.SetMaxIdleConns(p.MaxIdle)
	db.SetConnMaxLifetime(p.MaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
