package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"havreaixois/internal/entities"
	apperrors "havreaixois/internal/errors"
	"havreaixois/internal/service"
)

type InquiryHandler struct {
	Service *service.InquiryService
}

func NewInquiryHandler(svc *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{Service: svc}
}

// SubmitInquiry accepts the form-encoded contact form. Dates arrive
// either as separate arrival/departure fields or as a single
// "dates" field ("YYYY-MM-DD - YYYY-MM-DD").
func (h *InquiryHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	req := entities.InquiryRequest{
		Name:             r.PostFormValue("name"),
		Email:            r.PostFormValue("email"),
		Arrival:          r.PostFormValue("arrival"),
		Departure:        r.PostFormValue("departure"),
		Guests:           r.PostFormValue("guests"),
		Message:          r.PostFormValue("message"),
		Locale:           r.PostFormValue("locale"),
		Consent:          r.PostFormValue("consent") != "",
		AnalyticsConsent: r.PostFormValue("analytics_consent") == "granted",
		Honeypot:         r.PostFormValue("bot-field"),
	}
	if req.Arrival == "" && req.Departure == "" {
		if dates := r.PostFormValue("dates"); dates != "" {
			if parts := strings.SplitN(dates, " - ", 2); len(parts) == 2 {
				req.Arrival, req.Departure = parts[0], parts[1]
			}
		}
	}

	resp, err := h.Service.Submit(req)
	if err != nil {
		var httpErr *apperrors.HTTPError
		if errors.As(err, &httpErr) {
			w.WriteHeader(httpErr.Code)
			json.NewEncoder(w).Encode(entities.InquiryResponse{Success: false, Message: httpErr.Message})
			return
		}
		http.Error(w, "Could not submit inquiry", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resp)
}
