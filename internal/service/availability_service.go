package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"havreaixois/internal/booking"
	"havreaixois/internal/feed"
)

// FeedFetcher retrieves the raw calendar text. *feed.Fetcher satisfies
// it; tests substitute stubs.
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// AvailabilityService owns the cached booked-range set derived from the
// external calendar feed.
//
// The cache window is time-based: within it every caller gets the
// cached copy and the network is never touched. A failed refresh also
// occupies the window (bookings rarely change minute to minute, and a
// flapping upstream must not be hammered). The last successful range
// set survives later failures, so a transient outage degrades to
// slightly stale data rather than an empty calendar.
//
// Refreshes are sequence-gated: each one takes a monotonic number when
// it starts, and its result is discarded if a newer refresh started in
// the meantime. A slow response can therefore never clobber data from a
// faster, newer fetch.
type AvailabilityService struct {
	fetcher FeedFetcher
	ttl     time.Duration
	now     func() time.Time

	mu          sync.Mutex
	ranges      []booking.Range
	lastUpdated time.Time
	attemptedAt time.Time
	haveData    bool
	seq         uint64
}

func NewAvailabilityService(fetcher FeedFetcher, ttl time.Duration) *AvailabilityService {
	return &AvailabilityService{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Snapshot returns the current booked ranges, when they were last
// successfully updated, and whether any successful fetch has happened
// yet. It refreshes first if the cache window has lapsed; refresh
// failures are absorbed here and only logged.
//
// The returned slice is shared and must be treated as read-only; it is
// replaced wholesale on refresh, never mutated.
func (s *AvailabilityService) Snapshot(ctx context.Context) ([]booking.Range, time.Time, bool) {
	s.mu.Lock()
	fresh := !s.attemptedAt.IsZero() && s.now().Sub(s.attemptedAt) < s.ttl
	if fresh {
		defer s.mu.Unlock()
		return s.ranges, s.lastUpdated, s.haveData
	}
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		log.Printf("availability: refresh failed, serving cached data: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ranges, s.lastUpdated, s.haveData
}

// Refresh fetches and re-parses the feed, replacing the cached range
// set wholesale on success.
func (s *AvailabilityService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.attemptedAt = s.now()
	s.mu.Unlock()

	body, err := s.fetcher.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		// A newer refresh started while this one was in flight; its
		// result wins regardless of which response arrived first.
		log.Printf("availability: refresh %d superseded by %d, discarding response", seq, s.seq)
		return nil
	}
	if err != nil {
		return fmt.Errorf("refresh availability: %w", err)
	}

	s.ranges = toRanges(feed.Parse(string(body)))
	s.lastUpdated = s.now()
	s.haveData = true
	return nil
}

// toRanges converts syntactic feed ranges into validated booking
// ranges. Entries whose dates are not real calendar dates, or whose
// start does not precede their end, are dropped with a log line: a
// poisoned feed entry costs one booking's visibility, never the page.
func toRanges(raw []feed.RawRange) []booking.Range {
	ranges := make([]booking.Range, 0, len(raw))
	for _, rr := range raw {
		start, err := booking.ParseDate(rr.Start)
		if err != nil {
			log.Printf("availability: dropping range with bad start %q: %v", rr.Start, err)
			continue
		}
		end, err := booking.ParseDate(rr.End)
		if err != nil {
			log.Printf("availability: dropping range with bad end %q: %v", rr.End, err)
			continue
		}
		r := booking.Range{Start: start, End: end}
		if !r.Valid() {
			log.Printf("availability: dropping inverted range %s..%s", rr.Start, rr.End)
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges
}
