package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"sync/atomic"
	"testing"

	errs "github.com/matzehuels/chordsheet/pkg/errors"
)

func TestIsPublicAddr(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"93.184.216.34", true},
		{"2606:4700::6810:85e5", true},
		{"127.0.0.1", false},
		{"::1", false},
		{"10.1.2.3", false},
		{"172.16.0.1", false},
		{"192.168.1.1", false},
		{"169.254.169.254", false},
		{"fe80::1", false},
		{"fd00::1", false},
		{"0.0.0.0", false},
		{"::", false},
		{"100.64.0.1", false},
		{"224.0.0.1", false},
		{"::ffff:127.0.0.1", false},
		{"::ffff:10.0.0.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := IsPublicAddr(netip.MustParseAddr(tt.addr)); got != tt.want {
				t.Errorf("IsPublicAddr(%s) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestCheckHost(t *testing.T) {
	for _, h := range []string{"localhost", "LOCALHOST.", "api.localhost", "127.0.0.1", "[::1]", "::1", "169.254.169.254"} {
		if err := checkHost(h); !errors.As(err, new(*BlockedAddressError)) {
			t.Errorf("checkHost(%q) = %v, want BlockedAddressError", h, err)
		}
	}
	for _, h := range []string{"tabs.ultimate-guitar.com", "93.184.216.34"} {
		if err := checkHost(h); err != nil {
			t.Errorf("checkHost(%q) = %v", h, err)
		}
	}
}

func TestPublicOnlyRefusesLoopback(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("secret"))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv, WithPublicOnly())
	if !c.PublicOnly() {
		t.Fatal("PublicOnly() = false")
	}

	if _, _, err := c.Page(context.Background(), srv.URL, false); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Page err = %v, want INVALID_INPUT", err)
	}
	// GetText skips the host check, so the dialer must refuse on its own.
	_, err := c.GetText(context.Background(), srv.URL)
	if !errs.Is(err, errs.ErrCodeInvalidInput) || !errors.As(err, new(*BlockedAddressError)) {
		t.Errorf("GetText err = %v, want a refused dial", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server calls = %d, want 0", n)
	}
}

func TestWithKeepsOriginal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	guarded := c.With(WithPublicOnly(), WithHeader("Accept-Language", "en"))
	if !guarded.PublicOnly() || c.PublicOnly() {
		t.Fatalf("PublicOnly original=%v copy=%v", c.PublicOnly(), guarded.PublicOnly())
	}
	if _, ok := c.headers["Accept-Language"]; ok {
		t.Error("With should not change the original headers")
	}

	if body, _, err := c.Page(context.Background(), srv.URL, true); err != nil || body != "ok" {
		t.Errorf("original Page = %q, %v", body, err)
	}
	_, _, err := guarded.Page(context.Background(), srv.URL, true)
	if err == nil || !strings.Contains(err.Error(), "not a public address") {
		t.Errorf("guarded Page err = %v", err)
	}
}
