package pii

import (
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+`)

// EmailDetector matches RFC-5322-ish addresses and calibrates confidence
// by TLD commonality: a well-known TLD (.com, .org, ...) reads as a real
// address, an uncommon or single-letter TLD reads as plausibly incidental
// text that merely matched the shape.
type EmailDetector struct{}

func (EmailDetector) Detect(text string) []Match {
	var out []Match
	for _, loc := range emailRe.FindAllStringIndex(text, -1) {
		addr := text[loc[0]:loc[1]]
		if !localPartValid(addr) {
			continue
		}
		out = append(out, Match{
			ID: newMatchID(), Type: TypeEmail, Start: loc[0], End: loc[1],
			Text: addr, Confidence: emailConfidence(addr),
		})
	}
	return out
}

var commonTLDs = map[string]bool{
	"com": true, "org": true, "net": true, "edu": true, "gov": true,
	"io": true, "co": true, "info": true, "biz": true,
}

// emailConfidence boosts well-known TLDs, gives Korean addresses (.kr) an
// even higher boost since the national-profile corpus this package serves
// skews Korean, and leaves uncommon/short TLDs at a lower, still-reportable
// confidence.
func emailConfidence(addr string) float64 {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return 0.5
	}
	domain := addr[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	if dot < 0 {
		return 0.5
	}
	tld := strings.ToLower(domain[dot+1:])
	switch {
	case tld == "kr":
		return 0.95
	case commonTLDs[tld]:
		return 0.9
	case len(tld) == 2:
		return 0.7
	default:
		return 0.5
	}
}

// localPartValid rejects addresses whose local part starts, ends, or
// doubles up on a dot — syntactically invalid per RFC 5322 and a common
// source of false positives from ellipses ("user...@example.com").
func localPartValid(addr string) bool {
	at := strings.IndexByte(addr, '@')
	if at <= 0 {
		return false
	}
	local := addr[:at]
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false
	}
	return !strings.Contains(local, "..")
}

var phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{4}\b`)

// PhoneDetector matches a loose international/local phone number shape
// and calibrates confidence from the normalized digit count and leading
// country-code prefix, since short separator-delimited digit runs are
// common in non-phone contexts (dates, IDs).
type PhoneDetector struct{}

func (PhoneDetector) Detect(text string) []Match {
	var out []Match
	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		digits := onlyDigits(raw)
		out = append(out, Match{
			ID: newMatchID(), Type: TypePhone, Start: loc[0], End: loc[1],
			Text: raw, Confidence: phoneConfidence(digits),
		})
	}
	return out
}

// phoneConfidence classifies by normalized digit length and a handful of
// recognizable country-code prefixes: fewer than 7 or more than 15 digits
// scores 0.3, a leading 82, 1 or 44 scores 0.9, 11-13 digits 0.85, a bare
// 10-digit run 0.7, and any other length 0.6.
func phoneConfidence(digits string) float64 {
	n := len(digits)
	switch {
	case n < 7 || n > 15:
		return 0.3
	case strings.HasPrefix(digits, "82") || strings.HasPrefix(digits, "1") || strings.HasPrefix(digits, "44"):
		return 0.9
	case n == 11 || n == 12 || n == 13:
		return 0.85
	case n == 10:
		return 0.7
	default:
		return 0.6
	}
}

var creditCardRe = regexp.MustCompile(`\b(?:\d[ -]?){13,19}\b`)

// CreditCardDetector matches digit runs of plausible card length, keeps
// only those passing the Luhn checksum, and calibrates confidence by
// whether the leading digits match a known issuer prefix (Visa,
// Mastercard, Amex, Discover) — Luhn alone is satisfied by many
// coincidental digit sequences.
type CreditCardDetector struct{}

func (d CreditCardDetector) Detect(text string) []Match {
	var out []Match
	for _, loc := range creditCardRe.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		digits := onlyDigits(raw)
		if len(digits) < 13 || len(digits) > 19 {
			continue
		}
		if !luhnValid(digits) {
			continue
		}
		confidence := 0.65
		if issuerPrefixValid(digits) {
			confidence = 0.97
		}
		out = append(out, Match{
			ID: newMatchID(), Type: TypeCreditCard, Start: loc[0], End: loc[1],
			Text: raw, Confidence: confidence,
		})
	}
	return out
}

// issuerPrefixValid checks digits against the IIN ranges of the major
// card networks: Visa (4), Mastercard (51-55), Amex (34, 37), Discover
// (6011, 65).
func issuerPrefixValid(digits string) bool {
	switch {
	case strings.HasPrefix(digits, "4"):
		return true
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return true
	case strings.HasPrefix(digits, "6011"), strings.HasPrefix(digits, "65"):
		return true
	}
	if len(digits) >= 2 {
		if p, err := strconv.Atoi(digits[:2]); err == nil && p >= 51 && p <= 55 {
			return true
		}
	}
	return false
}

var ipv4Re = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|1?\d?\d)\.){3}(?:25[0-5]|2[0-4]\d|1?\d?\d)\b`)

// IPAddressDetector matches dotted-quad IPv4 addresses.
type IPAddressDetector struct{}

func (IPAddressDetector) Detect(text string) []Match {
	return matchAll(text, ipv4Re, TypeIPAddress, "", 0.85)
}

var urlRe = regexp.MustCompile(`\bhttps?://[^\s<>"']+`)

// URLDetector matches http(s) URLs. Confidence is high because the scheme
// prefix makes false positives rare.
type URLDetector struct{}

func (URLDetector) Detect(text string) []Match {
	return matchAll(text, urlRe, TypeURL, "", 0.9)
}

func matchAll(text string, re *regexp.Regexp, t Type, subtype string, confidence float64) []Match {
	var out []Match
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, Match{
			ID: newMatchID(), Type: t, Subtype: subtype,
			Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]], Confidence: confidence,
		})
	}
	return out
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// luhnValid implements the Luhn mod-10 checksum used by credit-card
// numbers and several national ID schemes.
func luhnValid(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	alt := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if alt {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		alt = !alt
	}
	return sum%10 == 0
}
