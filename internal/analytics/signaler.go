package analytics

import "havreaixois/internal/booking"

// Event names shared with the host page's tag configuration. Keep in
// sync with the GA4 property; renaming one orphans its history.
const (
	EventCalendarView       = "calendar_view"
	EventCalendarNavigation = "calendar_navigation"
	EventDateSelection      = "date_selection"
	EventBlockedDateClick   = "blocked_date_click"
	EventInquirySubmit      = "submit_inquiry"
	EventBookingLinkClick   = "click_booking_link"
)

// CalendarSignaler forwards booking-widget signals to GA4. One per
// widget instance; location distinguishes the hero calendar from the
// contact-form picker.
type CalendarSignaler struct {
	client    *Client
	location  string
	consented func() bool
}

var _ booking.Signaler = (*CalendarSignaler)(nil)

// NewCalendarSignaler wires a widget to the analytics client. consented
// is read per event so a mid-session consent change takes effect
// immediately; nil means never consented.
func NewCalendarSignaler(client *Client, location string, consented func() bool) *CalendarSignaler {
	if consented == nil {
		consented = func() bool { return false }
	}
	return &CalendarSignaler{client: client, location: location, consented: consented}
}

func (s *CalendarSignaler) CalendarViewed() {
	s.client.Emit(s.consented(), EventCalendarView, map[string]any{"location": s.location})
}

func (s *CalendarSignaler) CalendarNavigated(direction string) {
	s.client.Emit(s.consented(), EventCalendarNavigation, map[string]any{
		"location":  s.location,
		"direction": direction,
	})
}

func (s *CalendarSignaler) SelectionCompleted(start, end booking.Date) {
	s.client.Emit(s.consented(), EventDateSelection, map[string]any{
		"location":   s.location,
		"start_date": start.String(),
		"end_date":   end.String(),
		"nights":     booking.NightsBetween(start, end),
	})
}

func (s *CalendarSignaler) BlockedDateClicked(d booking.Date) {
	s.client.Emit(s.consented(), EventBlockedDateClick, map[string]any{
		"location": s.location,
		"date":     d.String(),
	})
}
