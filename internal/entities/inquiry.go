package entities

// InquiryRequest carries the contact-form fields as posted by the page
// (form-encoded). Honeypot is the hidden bot-field; any value in it
// means the submission was not typed by a person.
type InquiryRequest struct {
	Name      string
	Email     string
	Arrival   string // YYYY-MM-DD
	Departure string // YYYY-MM-DD
	Guests    string
	Message   string
	Locale    string
	Consent   bool // consent to be contacted, required
	// AnalyticsConsent reflects the cookie-banner decision; it only
	// gates event emission, never the inquiry itself.
	AnalyticsConsent bool
	Honeypot         string
}

type InquiryResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ReferenceCode string `json:"reference_code,omitempty"`
}

// InquiryEmailData feeds the HTML email template.
type InquiryEmailData struct {
	PropertyTitle string
	Name          string
	Email         string
	Arrival       string
	Departure     string
	Nights        int
	Guests        string
	Message       string
	ReferenceCode string
	CurrentYear   int
}
