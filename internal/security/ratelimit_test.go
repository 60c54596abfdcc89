package security

import (
	"fmt"
	"net"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request within the window should be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other visitors have their own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Error("bucket should refill after the window")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(90 * time.Second)
	rl.Allow("new")
	now = now.Add(45 * time.Second)

	if removed := rl.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() removed %d, want 1", removed)
	}
	if rl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rl.Len())
	}
}

func TestGetClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"192.0.2.1", "172.16.0.0/12"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies() error = %v", err)
	}

	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		trusted    []*net.IPNet
		want       string
	}{
		{name: "untrusted peer ignores forwarded", forwarded: "10.0.0.1", remoteAddr: "198.51.100.7:1234", trusted: trusted, want: "198.51.100.7"},
		{name: "untrusted peer ignores real ip", realIP: "10.0.0.2", remoteAddr: "198.51.100.7:1234", trusted: trusted, want: "198.51.100.7"},
		{name: "no proxies configured", forwarded: "10.0.0.1", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "trusted peer rightmost untrusted hop", forwarded: "6.6.6.6, 10.0.0.1, 172.16.0.1", remoteAddr: "192.0.2.1:1234", trusted: trusted, want: "10.0.0.1"},
		{name: "trusted peer real ip", realIP: "10.0.0.2", remoteAddr: "192.0.2.1:1234", trusted: trusted, want: "10.0.0.2"},
		{name: "remote addr", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := GetClientIP(r, tt.trusted); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTrustedProxiesRejectsGarbage(t *testing.T) {
	if _, err := ParseTrustedProxies([]string{"not-an-ip"}); err == nil {
		t.Error("expected error for bad address")
	}
	if _, err := ParseTrustedProxies([]string{"10.0.0.0/99"}); err == nil {
		t.Error("expected error for bad CIDR")
	}
	nets, err := ParseTrustedProxies([]string{" ", "::1"})
	if err != nil || len(nets) != 1 {
		t.Errorf("ParseTrustedProxies() = %v, %v", nets, err)
	}
}

func TestRateLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest("POST", "/api/user", nil)
		r.RemoteAddr = "198.51.100.7:4000"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		allowed := rl.Allow(rl.ClientIP(r))
		if i == 0 && !allowed {
			t.Fatal("first request should be allowed")
		}
		if i > 0 && allowed {
			t.Fatalf("request %d with spoofed header should be limited", i)
		}
	}
}
