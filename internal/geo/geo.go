package geo

import (
	"net/http"
	"strings"
)

// euEEACountries are the countries whose visitors must see the cookie
// consent banner before any analytics loads: EU27, the EEA three, and
// the UK (UK GDPR).
var euEEACountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true,
	"CZ": true, "DK": true, "EE": true, "FI": true, "FR": true,
	"DE": true, "GR": true, "HU": true, "IE": true, "IT": true,
	"LV": true, "LT": true, "LU": true, "MT": true, "NL": true,
	"PL": true, "PT": true, "RO": true, "SK": true, "SI": true,
	"ES": true, "SE": true,
	// EEA (non-EU)
	"IS": true, "LI": true, "NO": true,
	// UK GDPR
	"GB": true,
}

// countryHeaders, in precedence order. Which one is present depends on
// the CDN in front of the service.
var countryHeaders = []string{
	"CF-IPCountry",
	"X-Vercel-IP-Country",
	"CloudFront-Viewer-Country",
	"X-Country-Code",
}

// CountryFromRequest returns the uppercase ISO 3166-1 alpha-2 country
// code the edge attached to the request, or "" when none is present.
func CountryFromRequest(r *http.Request) string {
	for _, h := range countryHeaders {
		if v := strings.ToUpper(strings.TrimSpace(r.Header.Get(h))); v != "" && v != "XX" {
			return v
		}
	}
	return ""
}

// IsEU reports whether the country code requires GDPR consent. Unknown
// or missing codes default to false: visitors we cannot place are not
// shown the banner, and analytics stays off for them anyway until they
// consent.
func IsEU(countryCode string) bool {
	return euEEACountries[strings.ToUpper(countryCode)]
}
