package geo

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryFromRequestHeaderPrecedence(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Vercel-IP-Country", "de")
	r.Header.Set("CF-IPCountry", "FR")
	assert.Equal(t, "FR", CountryFromRequest(r), "Cloudflare header wins")

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("CloudFront-Viewer-Country", "us")
	assert.Equal(t, "US", CountryFromRequest(r))

	r = httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "", CountryFromRequest(r))

	// Cloudflare uses XX for unknown; fall through to the next header.
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("CF-IPCountry", "XX")
	r.Header.Set("X-Country-Code", "NO")
	assert.Equal(t, "NO", CountryFromRequest(r))
}

func TestIsEU(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"FR", true},
		{"fr", true},
		{"DE", true},
		{"GB", true}, // UK GDPR
		{"NO", true}, // EEA
		{"US", false},
		{"CH", false}, // Switzerland is neither EU nor EEA
		{"", false},
		{"XX", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsEU(tt.code), "code %q", tt.code)
	}
}
