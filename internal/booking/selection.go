package booking

import "errors"

// Mode is the derived phase of a selection. It is never stored; it is
// recomputed from which endpoints are present so it cannot drift out of
// sync with them.
type Mode int

const (
	// AwaitingStart means the next click begins a fresh range.
	AwaitingStart Mode = iota
	// AwaitingEnd means an anchor is set and the next click closes the range.
	AwaitingEnd
)

func (m Mode) String() string {
	if m == AwaitingEnd {
		return "awaiting_end"
	}
	return "awaiting_start"
}

var (
	// ErrDateBooked is returned when the clicked date is inside a booked range.
	ErrDateBooked = errors.New("date is booked")
	// ErrDatePast is returned when the clicked date is before today.
	ErrDatePast = errors.New("date is in the past")
	// ErrRangeUnavailable is returned when the picked range spans a booked
	// date. The clicked date becomes the new anchor.
	ErrRangeUnavailable = errors.New("selected range spans a booked date")
)

// Selection is the two-click date-range picker state. Each calendar
// widget instance owns one; there is no shared state between instances.
type Selection struct {
	anchor *Date
	cursor *Date
	signal Signaler
}

func NewSelection(sig Signaler) *Selection {
	if sig == nil {
		sig = NopSignaler{}
	}
	return &Selection{signal: sig}
}

func (s *Selection) Anchor() (Date, bool) {
	if s.anchor == nil {
		return Date{}, false
	}
	return *s.anchor, true
}

func (s *Selection) Cursor() (Date, bool) {
	if s.cursor == nil {
		return Date{}, false
	}
	return *s.cursor, true
}

// Complete reports whether both endpoints are committed.
func (s *Selection) Complete() bool {
	return s.anchor != nil && s.cursor != nil
}

// Mode derives the current phase: AwaitingStart when no anchor is set,
// or when a full pair was just committed (the next click re-arms).
func (s *Selection) Mode() Mode {
	if s.anchor == nil || s.cursor != nil {
		return AwaitingStart
	}
	return AwaitingEnd
}

// Click applies a user click on date d against the given booked ranges.
//
// Booked and past dates are rejected outright; a booked rejection also
// emits a blocked-date signal. Otherwise the machine either arms a new
// anchor, swap-commits when d precedes the anchor, restarts on a range
// that spans a booked date, or commits [anchor, d].
func (s *Selection) Click(d Date, ranges []Range, today Date) error {
	if IsBooked(ranges, d) {
		s.signal.BlockedDateClicked(d)
		return ErrDateBooked
	}
	if IsPast(d, today) {
		return ErrDatePast
	}

	if s.Mode() == AwaitingStart {
		s.anchor, s.cursor = &d, nil
		return nil
	}

	a := *s.anchor
	switch {
	case d.Before(a):
		// Out-of-order pick: commit the swapped pair as-is.
		s.anchor, s.cursor = &d, &a
		s.signal.SelectionCompleted(d, a)
	case RangeHasBookedDate(ranges, a, d):
		// The old anchor is unusable; start over from the new click.
		s.anchor, s.cursor = &d, nil
		return ErrRangeUnavailable
	default:
		s.cursor = &d
		s.signal.SelectionCompleted(a, d)
	}
	return nil
}

// SetValue overwrites both endpoints without validation. This is the
// controlled-value path for a host that pre-fills or externally clears
// the dates; the host is responsible for passing valid values.
func (s *Selection) SetValue(start, end *Date) {
	s.anchor = copyDate(start)
	s.cursor = copyDate(end)
}

// Clear resets the selection to empty.
func (s *Selection) Clear() {
	s.anchor, s.cursor = nil, nil
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
