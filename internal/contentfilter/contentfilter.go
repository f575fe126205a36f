// Package contentfilter applies summary-level rules to a text before it
// reaches the chunker: dropping content that doesn't meet a minimum
// length or alphanumeric density, and rejecting text whose body matches a
// boilerplate pattern (copyright or "all rights reserved" notices, "page X
// of Y", confidentiality or unsubscribe lines); repeated headers/footers
// are not detected. Grounded
// on the request/result shape of the teacher's
// pkg/categorizer.ContentCategorizer, generalized from an LLM call into a
// deterministic rule engine so the library carries no network dependency
// on its own critical path.
package contentfilter

import (
	"regexp"
	"strings"
	"unicode"
)

// Request mirrors the categorizer's CategorizationRequest shape: text plus
// optional context a rule can use.
type Request struct {
	Title string
	Body  string
}

// Result mirrors CategorizationResult's verdict shape, generalized from
// "suggested tags" to "keep or drop and why".
type Result struct {
	Keep       bool
	Reasons    []string
	Confidence float64
}

// Rule evaluates one request and may veto it by returning keep=false.
type Rule interface {
	Name() string
	Evaluate(req Request) (keep bool, reason string)
}

// Filter runs an ordered list of rules; the first veto wins.
type Filter struct {
	rules []Rule
}

// New builds a Filter from rules, in evaluation order.
func New(rules ...Rule) *Filter {
	return &Filter{rules: rules}
}

// Default returns the filter used by the root façade: minimum length,
// minimum alphanumeric density, and boilerplate-pattern rejection.
func Default() *Filter {
	return New(
		MinLengthRule{MinChars: 20},
		MinDensityRule{MinRatio: 0.3},
		BoilerplateRule{},
	)
}

// Evaluate runs every rule in order, stopping at the first veto.
func (f *Filter) Evaluate(req Request) Result {
	for _, r := range f.rules {
		keep, reason := r.Evaluate(req)
		if !keep {
			return Result{Keep: false, Reasons: []string{r.Name() + ": " + reason}, Confidence: 1.0}
		}
	}
	return Result{Keep: true, Confidence: 1.0}
}

// MinLengthRule rejects bodies shorter than MinChars (after trimming).
type MinLengthRule struct {
	MinChars int
}

func (MinLengthRule) Name() string { return "min_length" }

func (r MinLengthRule) Evaluate(req Request) (bool, string) {
	trimmed := strings.TrimSpace(req.Body)
	if len(trimmed) < r.MinChars {
		return false, "body shorter than minimum length"
	}
	return true, ""
}

// MinDensityRule rejects bodies whose share of letter/digit runes falls
// below MinRatio — catches whitespace dumps, separator art that slipped
// past the refiner, and similar near-empty content.
type MinDensityRule struct {
	MinRatio float64
}

func (MinDensityRule) Name() string { return "min_density" }

func (r MinDensityRule) Evaluate(req Request) (bool, string) {
	total := 0
	alnum := 0
	for _, ru := range req.Body {
		if unicode.IsSpace(ru) {
			continue
		}
		total++
		if unicode.IsLetter(ru) || unicode.IsDigit(ru) {
			alnum++
		}
	}
	if total == 0 {
		return false, "body has no non-whitespace content"
	}
	if float64(alnum)/float64(total) < r.MinRatio {
		return false, "body has too low alphanumeric density"
	}
	return true, ""
}

var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^all rights reserved\.?$`),
	regexp.MustCompile(`(?i)^copyright\s+(?:\(c\)|©)?\s*\d{4}`),
	regexp.MustCompile(`(?i)^(page\s+\d+\s+of\s+\d+|confidential[\s-]+do not distribute)$`),
	regexp.MustCompile(`(?i)^unsubscribe\s*\|`),
}

// BoilerplateRule rejects content whose entire trimmed body matches a
// known boilerplate line (footers, copyright notices, email unsubscribe
// lines) rather than carrying document content.
type BoilerplateRule struct{}

func (BoilerplateRule) Name() string { return "boilerplate" }

func (BoilerplateRule) Evaluate(req Request) (bool, string) {
	trimmed := strings.TrimSpace(req.Body)
	for _, re := range boilerplatePatterns {
		if re.MatchString(trimmed) {
			return false, "body matches known boilerplate pattern"
		}
	}
	return true, ""
}
