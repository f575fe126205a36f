// Package pii detects and masks personally identifiable information:
// globally-applicable patterns (email, phone, credit card, IP address,
// URL) and a registry of national identity-number schemes, each validated
// by its own checksum algorithm to keep false positives down. Masking
// supports several output strategies and resolves overlapping matches by
// preferring the earliest, longest span, mirroring the reverse-order,
// position-sorted replacement used by the entity anonymizer this package
// is grounded on.
package pii

import "github.com/google/uuid"

// Type names the category of a detected match.
type Type string

const (
	TypeEmail      Type = "email"
	TypePhone      Type = "phone"
	TypeCreditCard Type = "credit_card"
	TypeIPAddress  Type = "ip_address"
	TypeURL        Type = "url"
	TypeNationalID Type = "national_id"
)

// Match is one detected occurrence of PII in a text.
type Match struct {
	ID          string
	Type        Type
	Subtype     string // e.g. national-ID country code ("us_ssn", "kr_rrn")
	Start       int
	End         int
	Text        string
	Confidence  float64
	MaskedValue string // populated by the masker once a strategy has been applied
}

func newMatchID() string {
	return uuid.NewString()
}

// Detector finds PII matches of one kind within text.
type Detector interface {
	Detect(text string) []Match
}

// DetectAll runs every detector in order and returns the union of matches,
// unsorted; callers that need a resolved, non-overlapping set should pass
// the result through ResolveOverlaps.
func DetectAll(text string, detectors []Detector) []Match {
	var out []Match
	for _, d := range detectors {
		out = append(out, d.Detect(text)...)
	}
	return out
}

// DefaultDetectors returns the global-pattern detectors (email, phone,
// credit card, IP address, URL) plus every registered national-ID scheme.
func DefaultDetectors() []Detector {
	out := []Detector{
		EmailDetector{},
		PhoneDetector{},
		CreditCardDetector{},
		IPAddressDetector{},
		URLDetector{},
	}
	for _, nid := range AllNationalIDDetectors() {
		out = append(out, nid)
	}
	return out
}
