//nolint:revive // types is a standard Go package name pattern
package types

// RawOffer is a semi-structured job offer record as loaded from the catalog.
// Field names vary between the legacy and extended schemas; use the offers
// package to resolve them into an OfferRecord.
type RawOffer map[string]any

// OfferRecord is the canonical view of a job offer. All fields except Title
// and Description are optional; canonicalization never fails, missing fields
// resolve to empty values.
type OfferRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Organization   string   `json:"organization,omitempty"`
	Location       string   `json:"location,omitempty"`
	EmploymentType string   `json:"employment_type,omitempty"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements,omitempty"`
	Seniority      string   `json:"seniority,omitempty"`
	ContactEmail   string   `json:"contact_email,omitempty"`
}
