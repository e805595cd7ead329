package service

import (
	"context"
	"fmt"
	"log"
	"time"
)

// JobService hosts the scheduled maintenance work. Today that is one
// job: keeping the availability cache warm so page loads inside the
// cache window never pay for an upstream fetch.
type JobService struct {
	Availability *AvailabilityService
}

func NewJobService(availability *AvailabilityService) *JobService {
	return &JobService{Availability: availability}
}

// RefreshAvailability re-fetches the calendar feed.
func (s *JobService) RefreshAvailability() error {
	log.Println("Cron Job: refreshing availability from the calendar feed...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Availability.Refresh(ctx); err != nil {
		return fmt.Errorf("cron job: refresh availability: %w", err)
	}

	log.Println("Cron Job: availability refreshed.")
	return nil
}
