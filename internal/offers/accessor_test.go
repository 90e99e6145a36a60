package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu/applyassist/internal/types"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		offer    types.RawOffer
		field    string
		expected string
	}{
		{
			name:     "Extended schema organization",
			offer:    types.RawOffer{"organization": "Acme Corp"},
			field:    FieldOrganization,
			expected: "Acme Corp",
		},
		{
			name:     "Legacy schema company aliases to organization",
			offer:    types.RawOffer{"company": "Acme Corp"},
			field:    FieldOrganization,
			expected: "Acme Corp",
		},
		{
			name:     "Extended key wins over legacy key",
			offer:    types.RawOffer{"organization": "Extended Inc", "company": "Legacy Ltd"},
			field:    FieldOrganization,
			expected: "Extended Inc",
		},
		{
			name:     "Empty extended key falls through to legacy",
			offer:    types.RawOffer{"organization": "  ", "company": "Legacy Ltd"},
			field:    FieldOrganization,
			expected: "Legacy Ltd",
		},
		{
			name:     "Absent field resolves to empty string",
			offer:    types.RawOffer{"title": "Engineer"},
			field:    FieldOrganization,
			expected: "",
		},
		{
			name:     "List coerced to scalar by joining with comma",
			offer:    types.RawOffer{"locations": []any{"Paris", "Lyon"}},
			field:    FieldLocation,
			expected: "Paris, Lyon",
		},
		{
			name:     "Numeric id loses no precision and gains no decimal point",
			offer:    types.RawOffer{"id": float64(42)},
			field:    FieldID,
			expected: "42",
		},
		{
			name:     "Description text alias",
			offer:    types.RawOffer{"description_text": "We build things"},
			field:    FieldDescription,
			expected: "We build things",
		},
		{
			name:     "Application email alias",
			offer:    types.RawOffer{"application_email": "jobs@acme.io"},
			field:    FieldContactEmail,
			expected: "jobs@acme.io",
		},
		{
			name:     "Nil offer value",
			offer:    types.RawOffer{"organization": nil},
			field:    FieldOrganization,
			expected: "",
		},
		{
			name:     "Nil offer map",
			offer:    nil,
			field:    FieldTitle,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.offer, tt.field))
		})
	}
}

func TestResolveList(t *testing.T) {
	tests := []struct {
		name     string
		offer    types.RawOffer
		field    string
		expected []string
	}{
		{
			name:     "List stays a list",
			offer:    types.RawOffer{"requirements": []any{"Go", "SQL"}},
			field:    FieldRequirements,
			expected: []string{"Go", "SQL"},
		},
		{
			name:     "Scalar wrapped in single-element list",
			offer:    types.RawOffer{"requirements": "Go"},
			field:    FieldRequirements,
			expected: []string{"Go"},
		},
		{
			name:     "Legacy required_skills alias",
			offer:    types.RawOffer{"required_skills": []any{"Python", "Docker"}},
			field:    FieldRequirements,
			expected: []string{"Python", "Docker"},
		},
		{
			name:     "Missing all location aliases yields empty list, not nil panic",
			offer:    types.RawOffer{"title": "Engineer"},
			field:    FieldLocation,
			expected: []string{},
		},
		{
			name:     "Empty entries are dropped",
			offer:    types.RawOffer{"requirements": []any{"Go", "", "  "}},
			field:    FieldRequirements,
			expected: []string{"Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveList(tt.offer, tt.field)
			require.NotNil(t, result)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCanonicalizeNeverFails(t *testing.T) {
	tests := []struct {
		name  string
		offer types.RawOffer
	}{
		{"Empty record", types.RawOffer{}},
		{"Nil record", nil},
		{"Legacy record", types.RawOffer{
			"id":                float64(7),
			"title":             "Backend Intern",
			"company":           "Acme",
			"location":          "Paris",
			"type":              "internship",
			"description":       "Work on APIs",
			"requirements":      []any{"Go", "PostgreSQL"},
			"application_email": "jobs@acme.io",
		}},
		{"Extended record", types.RawOffer{
			"offer_id":         "ext-1",
			"job_title":        "SRE",
			"organization":     "Globex",
			"locations":        []any{"Berlin", "Remote"},
			"employment_type":  "full-time",
			"description_text": "<p>Keep things running</p>",
			"required_skills":  []any{"Kubernetes"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Canonicalize(tt.offer)
			require.NotNil(t, record.Requirements)
		})
	}
}

func TestCanonicalizeLegacyAndExtended(t *testing.T) {
	legacy := types.RawOffer{
		"id":                float64(7),
		"title":             "Backend Intern",
		"company":           "Acme",
		"location":          "Paris",
		"type":              "internship",
		"description":       "Work on APIs",
		"requirements":      []any{"Go", "PostgreSQL"},
		"application_email": "jobs@acme.io",
	}

	record := Canonicalize(legacy)
	assert.Equal(t, "7", record.ID)
	assert.Equal(t, "Backend Intern", record.Title)
	assert.Equal(t, "Acme", record.Organization)
	assert.Equal(t, "Paris", record.Location)
	assert.Equal(t, "internship", record.EmploymentType)
	assert.Equal(t, "Work on APIs", record.Description)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, record.Requirements)
	assert.Equal(t, "jobs@acme.io", record.ContactEmail)

	extended := types.RawOffer{
		"offer_id":         "ext-1",
		"job_title":        "SRE",
		"organization":     "Globex",
		"locations":        []any{"Berlin", "Remote"},
		"employment_type":  "full-time",
		"description_text": "<p>Keep things <b>running</b></p>",
		"required_skills":  []any{"Kubernetes"},
	}

	record = Canonicalize(extended)
	assert.Equal(t, "ext-1", record.ID)
	assert.Equal(t, "SRE", record.Title)
	assert.Equal(t, "Globex", record.Organization)
	assert.Equal(t, "Berlin, Remote", record.Location)
	assert.Equal(t, "Keep things running", record.Description)
}
