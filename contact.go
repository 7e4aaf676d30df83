package contactdir

import "strings"

// NotFoundName is the placeholder name for a contact whose name could not
// be determined.
const NotFoundName = "לא נמצא שם"

// Contact is one extracted directory entry for a locality.
// Optional fields are empty strings when absent and are omitted from JSON.
type Contact struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Department  string `json:"department,omitempty"`
	Locality    string `json:"locality,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneMobile string `json:"phone_mobile,omitempty"`
	PhoneOffice string `json:"phone_office,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// IdentityKey identifies a contact within a locality.
type IdentityKey struct {
	Name        string
	Email       string
	PhoneMobile string
	PhoneOffice string
}

// Identity returns the key used to deduplicate c within a ContactSet.
func (c *Contact) Identity() IdentityKey {
	return IdentityKey{
		Name:        c.Name,
		Email:       c.Email,
		PhoneMobile: c.PhoneMobile,
		PhoneOffice: c.PhoneOffice,
	}
}

// HasContactInfo reports whether c carries an email or a phone number.
// Contacts without any are built but not retained.
func (c *Contact) HasContactInfo() bool {
	return c.Email != "" || c.PhoneMobile != "" || c.PhoneOffice != ""
}

// SentinelName returns the placeholder name, annotated with role when known.
func SentinelName(role string) string {
	if role == "" {
		return NotFoundName
	}
	return NotFoundName + " (" + role + ")"
}

// IsSentinelName reports whether name is a placeholder produced by SentinelName.
func IsSentinelName(name string) bool {
	return strings.HasPrefix(name, NotFoundName)
}
