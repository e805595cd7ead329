package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"havreaixois/internal/analytics"
	"havreaixois/internal/api"
	"havreaixois/internal/config"
	"havreaixois/internal/feed"
	"havreaixois/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()

	cfgPath := os.Getenv("SITE_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/site.yaml"
	}
	site, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load site config: %v", err)
	}

	feedURL := os.Getenv("ICAL_URL")
	if feedURL == "" {
		feedURL = site.FeedURL
	}
	if feedURL == "" {
		log.Fatal("No calendar feed configured: set ICAL_URL or feed_url in the site config")
	}

	fetcher := feed.NewFetcher(feedURL)
	availability := service.NewAvailabilityService(fetcher, time.Hour)
	ga := analytics.NewFromEnv()
	inquiry := service.NewInquiryService(site, ga)
	jobs := service.NewJobService(availability)

	availabilityHandler := api.NewAvailabilityHandler(availability, site)
	inquiryHandler := api.NewInquiryHandler(inquiry)
	siteHandler := api.NewSiteHandler(site)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/availability", availabilityHandler.GetAvailability).Methods("GET")
	r.HandleFunc("/api/calendar", availabilityHandler.GetCalendar).Methods("GET")
	r.HandleFunc("/api/inquiry", inquiryHandler.SubmitInquiry).Methods("POST")
	r.HandleFunc("/api/geo", siteHandler.GetGeo).Methods("GET")
	r.HandleFunc("/api/site", siteHandler.GetSite).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	// Warm the availability cache so the first page load is instant.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := availability.Refresh(ctx); err != nil {
			log.Printf("Initial availability refresh failed: %v", err)
		}
	}()

	// Revalidate the feed every hour regardless of traffic.
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if err := jobs.RefreshAvailability(); err != nil {
			log.Printf("%v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule feed refresh: %v", err)
	}
	c.Start()

	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "*"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{corsOrigins}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
