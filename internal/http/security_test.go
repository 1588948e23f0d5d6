package http

import (
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"direct", "203.0.113.7:4312", "", "", "203.0.113.7"},
		{"trusted proxy honors xff", "127.0.0.1:80", "203.0.113.9, 10.0.0.1", "", "203.0.113.9"},
		{"trusted proxy honors xri", "10.1.2.3:80", "", "203.0.113.4", "203.0.113.4"},
		{"untrusted source ignores xff", "203.0.113.7:80", "198.51.100.1", "", "203.0.113.7"},
		{"trusted proxy with bad xff falls through", "127.0.0.1:80", "not-an-ip", "", "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := extractClientIP(r, nil); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractClientIPCountsUnparseableAddr(t *testing.T) {
	metrics := &securityMetrics{}
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "garbage"

	if got := extractClientIP(r, metrics); got != "garbage" {
		t.Fatalf("extractClientIP() = %q, want raw value back", got)
	}
	if n := atomic.LoadInt64(&metrics.invalidIPAttempts); n != 1 {
		t.Fatalf("invalidIPAttempts = %d, want 1", n)
	}
}
