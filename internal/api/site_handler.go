package api

import (
	"encoding/json"
	"net/http"

	"havreaixois/internal/config"
	"havreaixois/internal/geo"
)

type SiteHandler struct {
	Site config.Site
}

func NewSiteHandler(site config.Site) *SiteHandler {
	return &SiteHandler{Site: site}
}

type siteResponse struct {
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	AirbnbURL        string   `json:"airbnb_url,omitempty"`
	VrboURL          string   `json:"vrbo_url,omitempty"`
	ContactEmail     string   `json:"contact_email"`
	HeroImage        string   `json:"hero_image,omitempty"`
	Gallery          []string `json:"gallery,omitempty"`
	Locales          []string `json:"locales"`
	MinNights        int      `json:"min_nights"`
	MaxAdvanceMonths int      `json:"max_advance_months"`
	MonthsToShow     int      `json:"months_to_show"`
}

// GetSite exposes the publishable site settings to the host page.
func (h *SiteHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(siteResponse{
		Title:            h.Site.Title,
		Subtitle:         h.Site.Subtitle,
		AirbnbURL:        h.Site.AirbnbURL,
		VrboURL:          h.Site.VrboURL,
		ContactEmail:     h.Site.ContactEmail,
		HeroImage:        h.Site.HeroImage,
		Gallery:          h.Site.Gallery,
		Locales:          h.Site.Locales,
		MinNights:        h.Site.MinNights,
		MaxAdvanceMonths: h.Site.MaxAdvanceMonths,
		MonthsToShow:     h.Site.MonthsToShow,
	})
}

type geoResponse struct {
	Country string `json:"country"`
	IsEU    bool   `json:"is_eu"`
}

// GetGeo tells the page whether the visitor needs the consent banner.
// The country comes from whatever CDN edge header is present; unknown
// visitors are treated as non-EU and analytics stays off for them until
// they consent anyway.
func (h *SiteHandler) GetGeo(w http.ResponseWriter, r *http.Request) {
	country := geo.CountryFromRequest(r)
	json.NewEncoder(w).Encode(geoResponse{
		Country: country,
		IsEU:    geo.IsEU(country),
	})
}
