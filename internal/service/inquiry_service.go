package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"strings"
	"time"

	"havreaixois/internal/analytics"
	"havreaixois/internal/booking"
	"havreaixois/internal/config"
	"havreaixois/internal/entities"
	apperrors "havreaixois/internal/errors"

	"github.com/google/uuid"
)

// Sender abstracts the outbound channels so tests can record instead of
// hitting SendGrid/Twilio.
type Sender interface {
	SendEmail(toEmail, toName, subject, plainBody, htmlBody string) error
	SendSMS(toNumber, body string) error
}

// liveSender forwards to the real providers.
type liveSender struct{}

func (liveSender) SendEmail(toEmail, toName, subject, plainBody, htmlBody string) error {
	return SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBody)
}

func (liveSender) SendSMS(toNumber, body string) error {
	return SendSMS(toNumber, body)
}

// InquiryService validates and dispatches booking inquiries. There is
// no datastore: an inquiry lives exactly as long as it takes to notify
// the owner and confirm to the guest.
type InquiryService struct {
	Site      config.Site
	Analytics *analytics.Client
	sender    Sender
}

func NewInquiryService(site config.Site, ga *analytics.Client) *InquiryService {
	return &InquiryService{Site: site, Analytics: ga, sender: liveSender{}}
}

// Submit runs the inquiry pipeline: honeypot check, field validation,
// stay-length validation, then fire-and-forget notifications. The
// returned error, when non-nil, is an *apperrors.HTTPError the handler
// maps onto the response.
func (s *InquiryService) Submit(req entities.InquiryRequest) (*entities.InquiryResponse, error) {
	if strings.TrimSpace(req.Honeypot) != "" {
		// A filled hidden field means a bot. Answer exactly like a
		// success so the sender learns nothing, and send nothing.
		log.Printf("inquiry: honeypot tripped, dropping submission silently")
		return &entities.InquiryResponse{Success: true, Message: s.confirmationMessage(req.Locale)}, nil
	}

	arrival, departure, nights, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(uuid.NewString()[:8])
	guests := req.Guests
	if guests == "" {
		guests = "1"
	}

	data := entities.InquiryEmailData{
		PropertyTitle: s.Site.Title,
		Name:          req.Name,
		Email:         req.Email,
		Arrival:       arrival.String(),
		Departure:     departure.String(),
		Nights:        nights,
		Guests:        guests,
		Message:       req.Message,
		ReferenceCode: code,
		CurrentYear:   time.Now().Year(),
	}

	s.notifyOwner(data)
	s.confirmGuest(req.Locale, data)

	s.Analytics.Emit(req.AnalyticsConsent, analytics.EventInquirySubmit, map[string]any{
		"locale": s.normalizeLocale(req.Locale),
		"nights": nights,
		"guests": guests,
	})

	return &entities.InquiryResponse{
		Success:       true,
		Message:       s.confirmationMessage(req.Locale),
		ReferenceCode: code,
	}, nil
}

func (s *InquiryService) validate(req entities.InquiryRequest) (booking.Date, booking.Date, int, error) {
	var zero booking.Date

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return zero, zero, 0, apperrors.ErrUnprocessable(s.localized(req.Locale,
			"Please provide your name and email address.",
			"Merci d'indiquer votre nom et votre adresse email."))
	}
	if !strings.Contains(req.Email, "@") {
		return zero, zero, 0, apperrors.ErrUnprocessable(s.localized(req.Locale,
			"Please provide a valid email address.",
			"Merci d'indiquer une adresse email valide."))
	}
	if !req.Consent {
		return zero, zero, 0, apperrors.ErrUnprocessable(s.localized(req.Locale,
			"Please accept the privacy policy so we can reply to you.",
			"Merci d'accepter la politique de confidentialité pour que nous puissions vous répondre."))
	}
	if req.Arrival == "" || req.Departure == "" {
		return zero, zero, 0, apperrors.ErrUnprocessable(s.localized(req.Locale,
			"Please select your arrival and departure dates.",
			"Merci de sélectionner vos dates d'arrivée et de départ."))
	}

	arrival, err := booking.ParseDate(req.Arrival)
	if err != nil {
		return zero, zero, 0, apperrors.ErrUnprocessable(s.localized(req.Locale,
			"The arrival date is not a valid date.",
			"La date d'arrivée n'est pas valide."))
	}
	departure, err := booking.ParseDate(req.Departure)
	if err != nil {
		return zero, zero, 0, apperrors.ErrUnprocessable(s.localized(req.Locale,
			"The departure date is not a valid date.",
			"La date de départ n'est pas valide."))
	}

	nights := booking.NightsBetween(arrival, departure)
	if nights <= 0 {
		return zero, zero, 0, apperrors.ErrUnprocessable(s.localized(req.Locale,
			"The departure date must be after the arrival date.",
			"La date de départ doit être après la date d'arrivée."))
	}
	if s.Site.MinNights > 0 && nights < s.Site.MinNights {
		return zero, zero, 0, apperrors.ErrUnprocessable(s.localized(req.Locale,
			fmt.Sprintf("Please select at least %d nights.", s.Site.MinNights),
			fmt.Sprintf("Merci de sélectionner au moins %d nuits.", s.Site.MinNights)))
	}

	return arrival, departure, nights, nil
}

// notifyOwner emails and texts the property owner. Both channels run in
// the background: a notification failure must never fail the inquiry.
func (s *InquiryService) notifyOwner(data entities.InquiryEmailData) {
	subject := fmt.Sprintf("New inquiry %s: %s, %s to %s (%d nights, %s guests)",
		data.ReferenceCode, data.Name, data.Arrival, data.Departure, data.Nights, data.Guests)
	plainBody := fmt.Sprintf(
		"New booking inquiry for %s.\n\n"+
			"Reference: %s\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Arrival: %s\n"+
			"Departure: %s (%d nights)\n"+
			"Guests: %s\n\n"+
			"Message:\n%s\n",
		data.PropertyTitle, data.ReferenceCode, data.Name, data.Email,
		data.Arrival, data.Departure, data.Nights, data.Guests, data.Message,
	)
	htmlBody := s.renderEmailHTML(data)

	go func() {
		if err := s.sender.SendEmail(s.Site.ContactEmail, s.Site.Title, subject, plainBody, htmlBody); err != nil {
			log.Printf("ALERT (async): owner email for inquiry %s failed: %v", data.ReferenceCode, err)
		}
	}()

	if s.Site.OwnerPhone != "" {
		sms := fmt.Sprintf("%s: new inquiry %s from %s, %s to %s (%s guests). Details in your email.",
			data.PropertyTitle, data.ReferenceCode, data.Name, data.Arrival, data.Departure, data.Guests)
		go func() {
			if err := s.sender.SendSMS(s.Site.OwnerPhone, sms); err != nil {
				log.Printf("ALERT (async): owner SMS for inquiry %s failed: %v", data.ReferenceCode, err)
			}
		}()
	}
}

// confirmGuest acknowledges receipt to the guest in their language.
func (s *InquiryService) confirmGuest(locale string, data entities.InquiryEmailData) {
	var subject, plainBody string
	switch s.normalizeLocale(locale) {
	case "fr":
		subject = fmt.Sprintf("Votre demande pour %s - Référence : %s", data.PropertyTitle, data.ReferenceCode)
		plainBody = fmt.Sprintf(
			"Bonjour %s,\n\nNous avons bien reçu votre demande pour %s.\n\n"+
				"Référence : %s\n"+
				"Arrivée : %s\n"+
				"Départ : %s (%d nuits)\n"+
				"Voyageurs : %s\n\n"+
				"Nous vous répondrons rapidement avec les disponibilités et le tarif.\n\n"+
				"%s",
			data.Name, data.PropertyTitle, data.ReferenceCode,
			data.Arrival, data.Departure, data.Nights, data.Guests, data.PropertyTitle,
		)
	default:
		subject = fmt.Sprintf("Your inquiry for %s - Reference: %s", data.PropertyTitle, data.ReferenceCode)
		plainBody = fmt.Sprintf(
			"Hello %s,\n\nWe have received your inquiry for %s.\n\n"+
				"Reference: %s\n"+
				"Arrival: %s\n"+
				"Departure: %s (%d nights)\n"+
				"Guests: %s\n\n"+
				"We will reply promptly with availability and pricing.\n\n"+
				"%s",
			data.Name, data.PropertyTitle, data.ReferenceCode,
			data.Arrival, data.Departure, data.Nights, data.Guests, data.PropertyTitle,
		)
	}

	htmlBody := s.renderEmailHTML(data)
	go func() {
		if err := s.sender.SendEmail(data.Email, data.Name, subject, plainBody, htmlBody); err != nil {
			log.Printf("ALERT (async): guest confirmation for inquiry %s failed: %v", data.ReferenceCode, err)
		}
	}()
}

// renderEmailHTML renders the shared HTML email body. A missing or
// broken template degrades to plain-text-only mail.
func (s *InquiryService) renderEmailHTML(data entities.InquiryEmailData) string {
	tmplPath := filepath.Join("internal", "templates", "inquiry_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: could not parse email template %s: %v", tmplPath, err)
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("ALERT: could not execute email template for inquiry %s: %v", data.ReferenceCode, err)
		return ""
	}
	return buf.String()
}

func (s *InquiryService) normalizeLocale(locale string) string {
	l := strings.ToLower(locale)
	for _, supported := range s.Site.Locales {
		if l == supported || strings.HasPrefix(l, supported+"-") {
			return supported
		}
	}
	return "en"
}

func (s *InquiryService) localized(locale, en, fr string) string {
	if s.normalizeLocale(locale) == "fr" {
		return fr
	}
	return en
}

func (s *InquiryService) confirmationMessage(locale string) string {
	return s.localized(locale,
		"Thank you! Your inquiry has been sent; we will get back to you shortly.",
		"Merci ! Votre demande a bien été envoyée ; nous reviendrons vers vous rapidement.")
}
