// internal/server/timeouts_test.go
//
// Unit-tests for deadline resolution.
//
// Run: go test ./internal/server -v

package server

import (
	"net/http"
	"testing"
	"time"
)

func TestNewAppliesDefaults(t *testing.T) {
	srv := New(":8080", http.NewServeMux(), Timeouts{})

	if srv.Addr != ":8080" {
		t.Errorf("addr = %q", srv.Addr)
	}
	if srv.ReadTimeout != DefaultReadTimeout {
		t.Errorf("read = %v", srv.ReadTimeout)
	}
	if srv.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("write = %v", srv.WriteTimeout)
	}
	if srv.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("idle = %v", srv.IdleTimeout)
	}
}

func TestNewHonorsOverrides(t *testing.T) {
	srv := New(":9090", http.NewServeMux(), Timeouts{
		Read:  2 * time.Second,
		Write: 3 * time.Second,
	})

	if srv.ReadTimeout != 2*time.Second || srv.WriteTimeout != 3*time.Second {
		t.Errorf("overrides lost: read %v, write %v", srv.ReadTimeout, srv.WriteTimeout)
	}
	// Unset fields still fall back.
	if srv.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("idle = %v", srv.IdleTimeout)
	}
}

func TestNegativeTimeoutsFallBack(t *testing.T) {
	srv := New(":8080", http.NewServeMux(), Timeouts{Read: -1, Write: -1, Idle: -1})

	if srv.ReadTimeout != DefaultReadTimeout ||
		srv.WriteTimeout != DefaultWriteTimeout ||
		srv.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("negative values survived: %+v", srv)
	}
}
