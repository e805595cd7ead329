package booking

// Signaler receives user-interaction events from the selection machine
// and the calendar view. Implementations forward them to an analytics
// sink; the zero-cost default swallows them.
type Signaler interface {
	CalendarViewed()
	CalendarNavigated(direction string)
	SelectionCompleted(start, end Date)
	BlockedDateClicked(d Date)
}

// NopSignaler discards every signal.
type NopSignaler struct{}

func (NopSignaler) CalendarViewed() {}

func (NopSignaler) CalendarNavigated(string) {}

func (NopSignaler) SelectionCompleted(_, _ Date) {}

func (NopSignaler) BlockedDateClicked(Date) {}
