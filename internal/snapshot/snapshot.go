// internal/snapshot/snapshot.go
//
// TTL-cached directory snapshots.
//
// Context
// -------
// Every request is answered from an immutable Snapshot: the directory
// records plus the grouped browse tree derived from them.  The cache
// refreshes a snapshot after its TTL expires, collapses concurrent
// refreshes through singleflight, and keeps serving the previous
// snapshot when a refresh fails so transient database trouble never
// takes the site down.
//
// Workflow
// --------
//  1. main.go constructs a Cache around a Provider (the store repo).
//  2. Handlers call Get(ctx); a fresh snapshot is returned immediately
//     when the cached one is within TTL.
//  3. On expiry, exactly one goroutine reloads; the rest share the
//     result.  Reload failures log a warning and fall back to stale.
//
// Notes
// -----
//   - Snapshots are never mutated after publication; handlers may read
//     them without locks.
//   - Oxford commas, two spaces after periods.
package snapshot

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/openlocal/compass/internal/directory"
	"github.com/openlocal/compass/internal/metrics"
)

// DefaultTTL applies when the config omits snapshot.ttl_seconds.
const DefaultTTL = 5 * time.Minute

// Provider materializes the full directory graph.  Implemented by
// store.Repository; tests substitute fakes.
type Provider interface {
	LoadSnapshot(ctx context.Context) ([]*directory.Directory, error)
}

// Snapshot is one immutable view of the directory graph with its
// derived browse tree.
type Snapshot struct {
	Directories []*directory.Directory
	Groups      []*directory.CategoryGroup
	Skipped     []directory.SkippedDirectory
	LoadedAt    time.Time
}

// Cache serves Snapshots, reloading them after TTL.
type Cache struct {
	provider Provider
	routing  directory.RoutingConfig
	site     directory.SiteConfig
	ttl      time.Duration

	sfg     singleflight.Group
	current atomic.Pointer[Snapshot]
}

// New constructs a Cache.  A non-positive ttl falls back to DefaultTTL.
func New(p Provider, routing directory.RoutingConfig, site directory.SiteConfig, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{provider: p, routing: routing, site: site, ttl: ttl}
}

// Get returns the current snapshot, refreshing it when stale.  The
// first call must succeed; later calls tolerate refresh failures by
// serving the previous snapshot.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if snap := c.current.Load(); snap != nil && time.Since(snap.LoadedAt) < c.ttl {
		return snap, nil
	}

	v, err, _ := c.sfg.Do("snapshot", func() (interface{}, error) {
		// Double-check after the singleflight barrier.
		if snap := c.current.Load(); snap != nil && time.Since(snap.LoadedAt) < c.ttl {
			return snap, nil
		}
		snap, err := c.load(ctx)
		if err != nil {
			metrics.SnapshotLoadErrorsTotal.Inc()
			if stale := c.current.Load(); stale != nil {
				zap.L().Warn("snapshot refresh failed, serving stale",
					zap.Time("loaded_at", stale.LoadedAt), zap.Error(err))
				return stale, nil
			}
			return nil, err
		}
		c.current.Store(snap)
		metrics.SnapshotLoadTotal.Inc()
		metrics.SnapshotDirectories.Set(float64(len(snap.Directories)))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Invalidate drops the cached snapshot so the next Get reloads.
func (c *Cache) Invalidate() { c.current.Store(nil) }

func (c *Cache) load(ctx context.Context) (*Snapshot, error) {
	dirs, err := c.provider.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	groups, skipped := directory.BuildDirectoryGroups(dirs, c.routing, c.site)
	return &Snapshot{
		Directories: dirs,
		Groups:      groups,
		Skipped:     skipped,
		LoadedAt:    time.Now(),
	}, nil
}
