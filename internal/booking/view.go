package booking

import (
	"encoding/json"
	"time"
)

// CellState is the single visual classification of a day cell.
// Priority when several apply: past > booked > selected endpoint >
// in-range > today > available.
type CellState int

const (
	CellPast CellState = iota
	CellBooked
	CellSelected
	CellInRange
	CellToday
	CellAvailable
)

func (s CellState) String() string {
	switch s {
	case CellPast:
		return "past"
	case CellBooked:
		return "booked"
	case CellSelected:
		return "selected"
	case CellInRange:
		return "in_range"
	case CellToday:
		return "today"
	default:
		return "available"
	}
}

func (s CellState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type Cell struct {
	Date      Date      `json:"date"`
	Day       int       `json:"day"`
	State     CellState `json:"state"`
	Clickable bool      `json:"clickable"`
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

type Month struct {
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Name          string `json:"name"`
	LeadingBlanks int    `json:"leading_blanks"`
	Cells         []Cell `json:"cells"`
}

type Grid struct {
	Months []Month `json:"months"`
}

// Window is the bounded look-ahead viewport over the calendar: which
// month the visible page starts at and how many months are shown.
type Window struct {
	MonthOffset      int
	MonthsVisible    int
	MaxAdvanceMonths int

	viewed bool
	signal Signaler
}

func NewWindow(monthsVisible, maxAdvanceMonths int, sig Signaler) *Window {
	if monthsVisible < 1 {
		monthsVisible = 1
	}
	if sig == nil {
		sig = NopSignaler{}
	}
	return &Window{
		MonthsVisible:    monthsVisible,
		MaxAdvanceMonths: maxAdvanceMonths,
		signal:           sig,
	}
}

// MaxOffset is the furthest page start that keeps the whole visible
// span inside the advance-booking horizon.
func (w *Window) MaxOffset() int {
	m := w.MaxAdvanceMonths - w.MonthsVisible
	if m < 0 {
		return 0
	}
	return m
}

// Prev pages one month back, clamped at the current month.
func (w *Window) Prev() {
	if w.MonthOffset > 0 {
		w.MonthOffset--
	}
	w.signal.CalendarNavigated("prev")
}

// Next pages one month forward, clamped at MaxOffset.
func (w *Window) Next() {
	if w.MonthOffset < w.MaxOffset() {
		w.MonthOffset++
	}
	w.signal.CalendarNavigated("next")
}

// JumpTo moves the window so the month containing d is visible, if that
// month lies within the navigable horizon. Used when a host pre-fills a
// selection that starts outside the current page.
func (w *Window) JumpTo(d, today Date) {
	diff := (d.Year()-today.Year())*12 + int(d.Month()) - int(today.Month())
	if diff >= 0 && diff <= w.MaxOffset() {
		w.MonthOffset = diff
	}
}

// Render produces the month-paged grid for the current window. It is a
// pure function of (window position, ranges, selection, today): calling
// it twice with the same inputs yields identical classifications.
//
// The first render emits a one-time viewed signal; re-renders do not.
func (w *Window) Render(ranges []Range, sel *Selection, today Date) Grid {
	if !w.viewed {
		w.viewed = true
		w.signal.CalendarViewed()
	}

	grid := Grid{Months: make([]Month, 0, w.MonthsVisible)}
	for i := 0; i < w.MonthsVisible; i++ {
		grid.Months = append(grid.Months, w.renderMonth(w.MonthOffset+i, ranges, sel, today))
	}
	return grid
}

func (w *Window) renderMonth(offset int, ranges []Range, sel *Selection, today Date) Month {
	first := NewDate(today.Year(), today.Month()+time.Month(offset), 1)
	// Year and month normalized by the offset arithmetic above.
	year, month := first.Year(), first.Month()
	// Day zero of the following month is the last day of this one.
	daysInMonth := NewDate(year, month+1, 0).Day()

	m := Month{
		Year:          year,
		Month:         int(month),
		Name:          month.String(),
		LeadingBlanks: int(first.Weekday()), // Sunday-first grid
		Cells:         make([]Cell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		d := NewDate(year, month, day)
		m.Cells = append(m.Cells, classify(d, ranges, sel, today))
	}
	return m
}

func classify(d Date, ranges []Range, sel *Selection, today Date) Cell {
	past := IsPast(d, today)
	booked := IsBooked(ranges, d)

	var anchor, cursor *Date
	if sel != nil {
		if a, ok := sel.Anchor(); ok {
			anchor = &a
		}
		if c, ok := sel.Cursor(); ok {
			cursor = &c
		}
	}
	endpoint := (anchor != nil && d.Equal(*anchor)) || (cursor != nil && d.Equal(*cursor))

	var state CellState
	switch {
	case past:
		state = CellPast
	case booked:
		state = CellBooked
	case endpoint:
		state = CellSelected
	case InSelectedRange(d, anchor, cursor):
		state = CellInRange
	case d.Equal(today):
		state = CellToday
	default:
		state = CellAvailable
	}

	return Cell{
		Date:      d,
		Day:       d.Day(),
		State:     state,
		Clickable: !past && !booked,
	}
}
