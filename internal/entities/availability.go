package entities

// BookedRange is the wire form of one blocked interval. Start is the
// check-in day, End the checkout day (exclusive).
type BookedRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResponse mirrors what the calendar widgets consume. On
// upstream failure Success is false and BookedRanges is empty, never
// absent: the page degrades to "everything available" instead of
// erroring.
type AvailabilityResponse struct {
	Success      bool          `json:"success"`
	BookedRanges []BookedRange `json:"bookedRanges"`
	LastUpdated  string        `json:"lastUpdated,omitempty"`
	Error        string        `json:"error,omitempty"`
}
