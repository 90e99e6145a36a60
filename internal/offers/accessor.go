// Package offers provides schema-tolerant access to semi-structured job
// offer records and loading of the offer catalog. Offer records exist in two
// historical field-name sets (the "legacy" and "extended" schemas); the
// accessor isolates every other component from that variance.
package offers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mathieu/applyassist/internal/types"
)

// Canonical field names understood by Resolve and ResolveList
const (
	FieldID             = "id"
	FieldTitle          = "title"
	FieldOrganization   = "organization"
	FieldLocation       = "location"
	FieldEmploymentType = "employment_type"
	FieldDescription    = "description"
	FieldRequirements   = "requirements"
	FieldSeniority      = "seniority"
	FieldContactEmail   = "contact_email"
)

// fieldAliases maps a canonical field name to the ordered list of keys tried
// against a raw offer. Legacy keys come after their extended counterparts so
// that extended records win when both are present.
var fieldAliases = map[string][]string{
	FieldID:             {"id", "offer_id", "job_id"},
	FieldTitle:          {"title", "job_title", "position"},
	FieldOrganization:   {"organization", "company", "employer"},
	FieldLocation:       {"location", "locations", "city"},
	FieldEmploymentType: {"employment_type", "type", "contract_type"},
	FieldDescription:    {"description", "description_text", "details"},
	FieldRequirements:   {"requirements", "required_skills", "skills"},
	FieldSeniority:      {"seniority", "experience_level", "level"},
	FieldContactEmail:   {"contact_email", "application_email", "email"},
}

// Resolve returns the first non-empty value found among the aliases of the
// canonical field, coerced to a scalar. List-typed values are joined with a
// comma. Absent fields resolve to the empty string; Resolve never panics.
func Resolve(offer types.RawOffer, field string) string {
	aliases, ok := fieldAliases[field]
	if !ok {
		aliases = []string{field}
	}

	for _, key := range aliases {
		value, present := offer[key]
		if !present {
			continue
		}
		if s := coerceScalar(value); s != "" {
			return s
		}
	}
	return ""
}

// ResolveList returns the first non-empty value found among the aliases of
// the canonical field, coerced to a list. Scalar values are wrapped in a
// single-element slice. Absent fields resolve to an empty slice, never nil
// dereferences.
func ResolveList(offer types.RawOffer, field string) []string {
	aliases, ok := fieldAliases[field]
	if !ok {
		aliases = []string{field}
	}

	for _, key := range aliases {
		value, present := offer[key]
		if !present {
			continue
		}
		if list := coerceList(value); len(list) > 0 {
			return list
		}
	}
	return []string{}
}

// Canonicalize builds the canonical view of a raw offer. It never fails:
// missing optional fields resolve to empty strings or empty slices.
func Canonicalize(offer types.RawOffer) types.OfferRecord {
	return types.OfferRecord{
		ID:             Resolve(offer, FieldID),
		Title:          Resolve(offer, FieldTitle),
		Organization:   Resolve(offer, FieldOrganization),
		Location:       Resolve(offer, FieldLocation),
		EmploymentType: Resolve(offer, FieldEmploymentType),
		Description:    StripHTML(Resolve(offer, FieldDescription)),
		Requirements:   ResolveList(offer, FieldRequirements),
		Seniority:      Resolve(offer, FieldSeniority),
		ContactEmail:   Resolve(offer, FieldContactEmail),
	}
}

// coerceScalar converts an arbitrary JSON-decoded value to a string.
// Lists are joined with ", "; unknown types fall back to fmt.
func coerceScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		// JSON numbers decode as float64; integral IDs should not grow a decimal point
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(nonEmpty(v), ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := coerceScalar(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// coerceList converts an arbitrary JSON-decoded value to a string slice
func coerceList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return nonEmpty(v)
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			if s := coerceScalar(item); s != "" {
				list = append(list, s)
			}
		}
		return list
	default:
		if s := coerceScalar(value); s != "" {
			return []string{s}
		}
		return nil
	}
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
