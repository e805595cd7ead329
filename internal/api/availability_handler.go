package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"havreaixois/internal/booking"
	"havreaixois/internal/config"
	"havreaixois/internal/entities"
	"havreaixois/internal/service"
)

type AvailabilityHandler struct {
	Service *service.AvailabilityService
	Site    config.Site
}

func NewAvailabilityHandler(svc *service.AvailabilityService, site config.Site) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Site: site}
}

// GetAvailability serves the booked-range set the calendar widgets
// consume. Upstream failure degrades to an empty, well-formed envelope
// with a 500 status; the page renders "everything available" rather
// than an error.
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ranges, lastUpdated, ok := h.Service.Snapshot(r.Context())

	resp := entities.AvailabilityResponse{
		Success:      ok,
		BookedRanges: make([]entities.BookedRange, 0, len(ranges)),
	}
	if !ok {
		resp.Error = "Failed to fetch availability data"
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(resp)
		return
	}

	for _, br := range ranges {
		resp.BookedRanges = append(resp.BookedRanges, entities.BookedRange{
			Start: br.Start.String(),
			End:   br.End.String(),
		})
	}
	resp.LastUpdated = lastUpdated.UTC().Format(time.RFC3339)
	json.NewEncoder(w).Encode(resp)
}

type calendarResponse struct {
	Success   bool         `json:"success"`
	Offset    int          `json:"offset"`
	MaxOffset int          `json:"max_offset"`
	Today     string       `json:"today"`
	Grid      booking.Grid `json:"grid"`
}

// GetCalendar renders the month grid server-side for hosts that want a
// pre-classified calendar instead of raw ranges. The offset query
// parameter pages through the look-ahead window and is clamped to it.
func (h *AvailabilityHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	window := booking.NewWindow(h.Site.MonthsToShow, h.Site.MaxAdvanceMonths, nil)

	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid offset", http.StatusBadRequest)
			return
		}
		if offset < 0 {
			offset = 0
		}
		if offset > window.MaxOffset() {
			offset = window.MaxOffset()
		}
		window.MonthOffset = offset
	}

	ranges, _, _ := h.Service.Snapshot(r.Context())
	today := booking.DateOf(time.Now())

	json.NewEncoder(w).Encode(calendarResponse{
		Success:   true,
		Offset:    window.MonthOffset,
		MaxOffset: window.MaxOffset(),
		Today:     today.String(),
		Grid:      window.Render(ranges, nil, today),
	})
}
