package fetch

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"syscall"
	"time"
)

// BlockedAddressError is returned when a public-only client is asked to
// reach a host that is not publicly routable.
type BlockedAddressError struct {
	Host string
}

func (e *BlockedAddressError) Error() string {
	return e.Host + " is not a public address"
}

// Ranges IsPrivate and friends do not cover.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("240.0.0.0/4"),
	netip.MustParsePrefix("64:ff9b::/96"),
}

// IsPublicAddr reports whether a is a globally routable unicast address.
func IsPublicAddr(a netip.Addr) bool {
	a = a.Unmap()
	if !a.IsValid() || !a.IsGlobalUnicast() || a.IsPrivate() {
		return false
	}
	for _, p := range reservedPrefixes {
		if p.Contains(a) {
			return false
		}
	}
	return true
}

// checkHost rejects hosts that name a non-public address before any
// lookup. Names are resolved at dial time and checked there.
func checkHost(host string) error {
	h := strings.TrimSuffix(strings.ToLower(host), ".")
	if h == "localhost" || strings.HasSuffix(h, ".localhost") {
		return &BlockedAddressError{Host: host}
	}
	if a, err := netip.ParseAddr(strings.Trim(h, "[]")); err == nil && !IsPublicAddr(a) {
		return &BlockedAddressError{Host: host}
	}
	return nil
}

// dialControl runs after DNS resolution, so redirects and rebinding are
// covered.
func dialControl(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return &BlockedAddressError{Host: address}
	}
	a, err := netip.ParseAddr(host)
	if err != nil || !IsPublicAddr(a) {
		return &BlockedAddressError{Host: host}
	}
	return nil
}

// publicOnly returns a copy of hc whose transport dials public addresses
// only. Proxies are disabled since the proxy would do the dialing.
func publicOnly(hc *http.Client) *http.Client {
	base, ok := hc.Transport.(*http.Transport)
	if !ok || base == nil {
		base = http.DefaultTransport.(*http.Transport)
	}
	t := base.Clone()
	t.Proxy = nil
	t.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   dialControl,
	}).DialContext

	out := *hc
	out.Transport = t
	return &out
}
