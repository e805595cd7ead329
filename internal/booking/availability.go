package booking

// Range is a booked interval in the hospitality sense: Start is the
// check-in day, End is the checkout day. The night before End is the
// last booked night, so End itself is open for a new arrival.
type Range struct {
	Start Date
	End   Date
}

func (r Range) Valid() bool {
	return r.Start.Before(r.End)
}

// Contains reports whether d falls inside the half-open interval
// [Start, End).
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// IsBooked reports whether d is blocked by any of the given ranges.
// The end date of a range is NOT booked (checkout day is bookable as
// the next guest's arrival day).
func IsBooked(ranges []Range, d Date) bool {
	for _, r := range ranges {
		if r.Contains(d) {
			return true
		}
	}
	return false
}

// IsPast reports whether d is strictly before today. Today itself is
// never past.
func IsPast(d, today Date) bool {
	return d.Before(today)
}

// InSelectedRange reports whether d lies within the user's current
// selection, endpoints included. Unlike booked ranges the selection is
// closed on both ends: the selected checkout date is still part of the
// stay being inquired about.
func InSelectedRange(d Date, anchor, cursor *Date) bool {
	if anchor == nil || cursor == nil {
		return false
	}
	return !d.Before(*anchor) && !d.After(*cursor)
}

// RangeHasBookedDate scans every calendar day from start to end
// inclusive and reports whether any of them is booked. Used to vet a
// candidate end-date pick before committing it.
func RangeHasBookedDate(ranges []Range, start, end Date) bool {
	for d := start; !d.After(end); d = d.AddDays(1) {
		if IsBooked(ranges, d) {
			return true
		}
	}
	return false
}
