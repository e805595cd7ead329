package service

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"havreaixois/internal/analytics"
	"havreaixois/internal/config"
	"havreaixois/internal/entities"
	apperrors "havreaixois/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu     sync.Mutex
	emails []string // "to|subject"
	sms    []string // "to|body"
}

func (r *recordingSender) SendEmail(toEmail, toName, subject, plainBody, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, toEmail+"|"+subject)
	return nil
}

func (r *recordingSender) SendSMS(toNumber, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sms = append(r.sms, toNumber+"|"+body)
	return nil
}

func (r *recordingSender) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.emails), len(r.sms)
}

func newTestInquiryService(minNights int) (*InquiryService, *recordingSender) {
	site := config.Default()
	site.MinNights = minNights
	site.ContactEmail = "owner@example.com"
	site.OwnerPhone = "+33612345678"
	svc := NewInquiryService(site, analytics.New("", ""))
	rec := &recordingSender{}
	svc.sender = rec
	return svc, rec
}

func validInquiry() entities.InquiryRequest {
	return entities.InquiryRequest{
		Name:      "Jamie Doe",
		Email:     "jamie@example.com",
		Arrival:   "2025-06-01",
		Departure: "2025-06-05",
		Guests:    "2",
		Message:   "Is the courtyard shaded in the afternoon?",
		Locale:    "en",
		Consent:   true,
	}
}

func TestSubmitSendsOwnerAndGuestNotifications(t *testing.T) {
	svc, rec := newTestInquiryService(3)

	resp, err := svc.Submit(validInquiry())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.ReferenceCode, 8)

	assert.Eventually(t, func() bool {
		emails, sms := rec.counts()
		return emails == 2 && sms == 1
	}, time.Second, 10*time.Millisecond, "owner email, guest confirmation, owner SMS")
}

func TestSubmitHoneypotIsSilentlyDropped(t *testing.T) {
	svc, rec := newTestInquiryService(3)

	req := validInquiry()
	req.Honeypot = "http://spam.example"
	resp, err := svc.Submit(req)

	require.NoError(t, err)
	assert.True(t, resp.Success, "bots see a normal success envelope")
	assert.Empty(t, resp.ReferenceCode)

	// Give any stray goroutine a moment, then confirm nothing was sent.
	time.Sleep(50 * time.Millisecond)
	emails, sms := rec.counts()
	assert.Zero(t, emails)
	assert.Zero(t, sms)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entities.InquiryRequest)
	}{
		{"missing name", func(r *entities.InquiryRequest) { r.Name = " " }},
		{"missing email", func(r *entities.InquiryRequest) { r.Email = "" }},
		{"invalid email", func(r *entities.InquiryRequest) { r.Email = "not-an-address" }},
		{"no consent", func(r *entities.InquiryRequest) { r.Consent = false }},
		{"missing dates", func(r *entities.InquiryRequest) { r.Arrival, r.Departure = "", "" }},
		{"bad arrival", func(r *entities.InquiryRequest) { r.Arrival = "2025-13-32" }},
		{"bad departure", func(r *entities.InquiryRequest) { r.Departure = "someday" }},
		{"departure before arrival", func(r *entities.InquiryRequest) { r.Arrival, r.Departure = "2025-06-05", "2025-06-01" }},
		{"zero nights", func(r *entities.InquiryRequest) { r.Departure = r.Arrival }},
		{"below minimum stay", func(r *entities.InquiryRequest) { r.Departure = "2025-06-02" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rec := newTestInquiryService(3)
			req := validInquiry()
			tt.mutate(&req)

			_, err := svc.Submit(req)
			var httpErr *apperrors.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)

			time.Sleep(20 * time.Millisecond)
			emails, sms := rec.counts()
			assert.Zero(t, emails)
			assert.Zero(t, sms)
		})
	}
}

func TestSubmitLocalizesMessages(t *testing.T) {
	svc, _ := newTestInquiryService(3)

	req := validInquiry()
	req.Locale = "fr"
	req.Departure = "2025-06-02" // below minimum

	_, err := svc.Submit(req)
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Contains(t, httpErr.Message, "au moins 3 nuits")

	req = validInquiry()
	req.Locale = "fr-FR"
	resp, err := svc.Submit(req)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Merci")
}

func TestSubmitMinNightsDisabled(t *testing.T) {
	svc, _ := newTestInquiryService(0)
	req := validInquiry()
	req.Departure = "2025-06-02" // 1 night
	_, err := svc.Submit(req)
	assert.NoError(t, err)
}
