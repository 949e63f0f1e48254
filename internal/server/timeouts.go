// internal/server/timeouts.go
//
// Hardened http.Server construction.
//
// Context
// -------
// Directory pages are cheap snapshot reads, so the server's exposure is
// slow clients, not slow handlers.  Every instance therefore runs with
// read, write, and idle deadlines; the config `http` section may tune
// them, and zero values fall back to the defaults below.
//
// Defaults
// --------
//   • Read  10 s – abort slow-loris header dribble.
//   • Write 15 s – cap total response time; snapshots render in well
//     under that.
//   • Idle  60 s – close keep-alives on idle clients.
//
// Notes
// -----
//   • TLSConfig may be injected by callers (e.g., autocert).
//   • Oxford commas, two spaces after periods.

package server

import (
	"net/http"
	"time"
)

// Default deadlines, applied wherever Timeouts carries a zero.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// Timeouts carries the per-connection deadlines.  The zero value means
// "use the defaults"; fields are overridden individually.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// withDefaults fills zero fields.  Negative values are treated as zero,
// so a misconfigured section cannot disable a deadline.
func (t Timeouts) withDefaults() Timeouts {
	if t.Read <= 0 {
		t.Read = DefaultReadTimeout
	}
	if t.Write <= 0 {
		t.Write = DefaultWriteTimeout
	}
	if t.Idle <= 0 {
		t.Idle = DefaultIdleTimeout
	}
	return t
}

// New constructs an *http.Server with the resolved deadlines applied.
func New(addr string, handler http.Handler, t Timeouts) *http.Server {
	t = t.withDefaults()
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  t.Read,
		WriteTimeout: t.Write,
		IdleTimeout:  t.Idle,
	}
}
