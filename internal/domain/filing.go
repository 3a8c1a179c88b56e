package domain

import "fmt"

// FilingStatus identifies the federal filing status. It selects bracket
// tables, deduction amounts and thresholds throughout the engine.
type FilingStatus string

const (
	FilingSingle            FilingStatus = "single"
	FilingMarriedJointly    FilingStatus = "married_jointly"
	FilingMarriedSeparately FilingStatus = "married_separately"
	FilingHeadOfHousehold   FilingStatus = "head_of_household"
)

// AllFilingStatuses lists the closed set of supported statuses.
var AllFilingStatuses = []FilingStatus{
	FilingSingle,
	FilingMarriedJointly,
	FilingMarriedSeparately,
	FilingHeadOfHousehold,
}

// ParseFilingStatus converts a string to a FilingStatus.
func ParseFilingStatus(s string) (FilingStatus, error) {
	fs := FilingStatus(s)
	if !fs.Valid() {
		return "", NewValidationError("filing_status", fmt.Sprintf("unknown filing status %q", s))
	}
	return fs, nil
}

// Valid reports whether the status is one of the supported values.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingSingle, FilingMarriedJointly, FilingMarriedSeparately, FilingHeadOfHousehold:
		return true
	}
	return false
}

// StateCode is a two-letter USPS state abbreviation.
type StateCode string

const (
	StateCA StateCode = "CA"
	StateNY StateCode = "NY"
	StateWA StateCode = "WA"
	StateTX StateCode = "TX"
	StateFL StateCode = "FL"
	StateNV StateCode = "NV"
	StateWY StateCode = "WY"
	StateSD StateCode = "SD"
	StateAK StateCode = "AK"
	StateTN StateCode = "TN"
	StateNH StateCode = "NH"
)

// knownStates covers every code the engine accepts, including states served
// by the estimation fallback.
var knownStates = map[StateCode]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// Valid reports whether the code is a recognized jurisdiction.
func (sc StateCode) Valid() bool {
	return knownStates[sc]
}

// ValidationError reports malformed or out-of-range input. It is the only
// error class surfaced to callers; the message is local to the offending
// field and suitable for direct display.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
