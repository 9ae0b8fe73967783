package validators

import (
	"errors"
	"net"
	"testing"
)

func stubLookups(t *testing.T, mx []*net.MX, ips []net.IP) {
	t.Helper()
	origMX, origIP := lookupMX, lookupIP
	t.Cleanup(func() { lookupMX, lookupIP = origMX, origIP })

	lookupMX = func(string) ([]*net.MX, error) {
		if mx == nil {
			return nil, errors.New("no mx")
		}
		return mx, nil
	}
	lookupIP = func(string) ([]net.IP, error) {
		if ips == nil {
			return nil, errors.New("no host")
		}
		return ips, nil
	}
}

func TestIsEmailDomainValid(t *testing.T) {
	stubLookups(t, []*net.MX{{Host: "mx.example.com."}}, nil)
	if !IsEmailDomainValid("a@example.com") {
		t.Fatal("mx record should validate")
	}

	stubLookups(t, nil, []net.IP{net.ParseIP("192.0.2.1")})
	if !IsEmailDomainValid("a@example.com") {
		t.Fatal("A record should validate")
	}

	stubLookups(t, nil, nil)
	if IsEmailDomainValid("a@nowhere.invalid") {
		t.Fatal("unresolvable domain should fail")
	}
	if IsEmailDomainValid("no-at-sign") || IsEmailDomainValid("trailing@") {
		t.Fatal("malformed address should fail")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Fatalf("got %q", got)
	}
}
