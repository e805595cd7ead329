package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Site holds the per-property settings the host page and the booking
// widgets are driven by. Secrets (API keys, the live feed URL) stay in
// the environment; everything here is publishable.
type Site struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	AirbnbURL    string `yaml:"airbnb_url"`
	VrboURL      string `yaml:"vrbo_url"`
	ContactEmail string `yaml:"contact_email"`
	// OwnerPhone is the E.164 number that receives SMS alerts for new
	// inquiries. Optional; empty disables SMS.
	OwnerPhone string   `yaml:"owner_phone"`
	HeroImage  string   `yaml:"hero_image"`
	Gallery    []string `yaml:"gallery"`
	// Locales lists the languages the inquiry flow can answer in.
	Locales []string `yaml:"locales"`

	// Stay rules consumed by the booking core.
	MinNights        int `yaml:"min_nights"`
	MaxAdvanceMonths int `yaml:"max_advance_months"`
	MonthsToShow     int `yaml:"months_to_show"`

	// FeedURL is the default calendar export URL; the ICAL_URL env var
	// overrides it so the real Airbnb URL never lands in the repo.
	FeedURL string `yaml:"feed_url"`
}

func Default() Site {
	return Site{
		Title:            "Le Havre Aixois",
		Subtitle:         "A serene hideaway in the heart of Aix-en-Provence",
		ContactEmail:     "stay@example.com",
		Locales:          []string{"en", "fr"},
		MinNights:        3,
		MaxAdvanceMonths: 12,
		MonthsToShow:     3,
	}
}

// Load reads the site config from path, applying defaults for anything
// unset. A missing file is not an error: the defaults stand alone.
func Load(path string) (Site, error) {
	site := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return site, nil
		}
		return site, fmt.Errorf("read site config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &site); err != nil {
		return Default(), fmt.Errorf("parse site config %s: %w", path, err)
	}
	if err := site.Validate(); err != nil {
		return Default(), fmt.Errorf("site config %s: %w", path, err)
	}
	return site, nil
}

func (s Site) Validate() error {
	if s.MinNights < 0 {
		return fmt.Errorf("min_nights must not be negative, got %d", s.MinNights)
	}
	if s.MonthsToShow < 1 {
		return fmt.Errorf("months_to_show must be at least 1, got %d", s.MonthsToShow)
	}
	if s.MaxAdvanceMonths < s.MonthsToShow {
		return fmt.Errorf("max_advance_months (%d) must not be smaller than months_to_show (%d)",
			s.MaxAdvanceMonths, s.MonthsToShow)
	}
	return nil
}
