package language

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// quotePair is one balance-tracked open/close rune pair used by profiles
// that must not split a sentence inside quoted or bracketed text (Korean).
type quotePair struct {
	open, close rune
}

// sectionPattern pairs a compiled section-marker regex with the index of
// its header-text capture group (0 means "use the whole match").
type sectionPattern struct {
	re        *regexp.Regexp
	textGroup int
}

// ruleProfile is the generic, regex-driven engine backing every language
// profile except English (which defers to the neurosnap/sentences
// tokenizer and falls back to this engine only if that tokenizer yields
// nothing). Per-language constructors in languages.go configure one of
// these with the table from spec §4.1.
type ruleProfile struct {
	code          string
	charsPerToken float64

	terminators   *regexp.Regexp // one or more sentence-terminator chars, with optional trailing closing punctuation
	paragraphGap  *regexp.Regexp
	sections      []sectionPattern
	abbreviations map[string]struct{}
	// abbrevPattern additionally suppresses breaks whose trailing word
	// matches a variable-width abbreviation shape (e.g. Korean "제1조").
	abbrevPattern *regexp.Regexp
	quotePairs    []quotePair

	// tokenEstimator overrides the default ceil(len/charsPerToken) rule
	// (used only by Korean's 2-phase estimator).
	tokenEstimator func(text string, charsPerToken float64) int
}

var defaultParagraphGap = regexp.MustCompile(`\n[ \t]*\n`)

func (p *ruleProfile) Code() string          { return p.code }
func (p *ruleProfile) CharsPerToken() float64 { return p.charsPerToken }

func (p *ruleProfile) EstimateTokenCount(text string) int {
	if text == "" {
		return 0
	}
	if p.tokenEstimator != nil {
		return p.tokenEstimator(text, p.charsPerToken)
	}
	return estimateByRatio(text, p.charsPerToken)
}

func estimateByRatio(text string, charsPerToken float64) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	count := int(math.Ceil(float64(n) / charsPerToken))
	if count < 1 {
		count = 1
	}
	return count
}

func (p *ruleProfile) FindParagraphBoundaries(text string) []int {
	return findGapBoundaries(text, paragraphGapOf(p))
}

func paragraphGapOf(p *ruleProfile) *regexp.Regexp {
	if p.paragraphGap != nil {
		return p.paragraphGap
	}
	return defaultParagraphGap
}

func findGapBoundaries(text string, gap *regexp.Regexp) []int {
	if text == "" {
		return nil
	}
	var out []int
	for _, m := range gap.FindAllStringIndex(text, -1) {
		out = append(out, m[1])
	}
	if len(out) == 0 || out[len(out)-1] != len(text) {
		out = append(out, len(text))
	}
	return dedupeSorted(out)
}

func (p *ruleProfile) FindSentenceBoundaries(text string) []int {
	if text == "" {
		return nil
	}
	if p.terminators == nil {
		return []int{len(text)}
	}
	var out []int
	for _, m := range p.terminators.FindAllStringIndex(text, -1) {
		end := m[1]
		start := m[0]
		if p.isAbbreviationBreak(text, start) {
			continue
		}
		if len(p.quotePairs) > 0 && !quoteBalanced(text[:end], p.quotePairs) {
			continue
		}
		out = append(out, end)
	}
	if len(out) == 0 || out[len(out)-1] != len(text) {
		out = append(out, len(text))
	}
	return dedupeSorted(out)
}

// isAbbreviationBreak looks back up to a 10-rune window from the start of
// the matched terminator run for a trailing word and checks it against the
// profile's abbreviation set, case-insensitively.
func (p *ruleProfile) isAbbreviationBreak(text string, termStart int) bool {
	if len(p.abbreviations) == 0 && p.abbrevPattern == nil {
		return false
	}
	runes := []rune(text[:termStart])
	const window = 10
	lo := len(runes) - window
	if lo < 0 {
		lo = 0
	}
	segment := runes[lo:]
	// Walk back from the end over letters/digits to isolate the trailing word.
	end := len(segment)
	start := end
	for start > 0 {
		r := segment[start-1]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			start--
			continue
		}
		break
	}
	word := strings.ToLower(string(segment[start:end]))
	if word == "" {
		return false
	}
	if _, ok := p.abbreviations[word]; ok {
		return true
	}
	if p.abbrevPattern != nil && p.abbrevPattern.MatchString(word) {
		return true
	}
	// A single trailing ASCII letter is almost always an initial ("U.S.",
	// "e.g.", "J. Smith") rather than a sentence end. Restricted to ASCII
	// so single-syllable Hangul/CJK endings aren't misclassified.
	wr := []rune(word)
	return len(wr) == 1 && wr[0] >= 'a' && wr[0] <= 'z'
}

// quoteBalanced reports whether every tracked quote/paren pair is closed
// within prefix. Symmetric marks (open == close, e.g. '"') are tracked as
// a parity toggle; asymmetric brackets ('「', '」') are tracked as counts.
func quoteBalanced(prefix string, pairs []quotePair) bool {
	counts := make(map[rune]int, len(pairs))
	toggles := make(map[rune]bool, len(pairs))
	for _, r := range prefix {
		for _, pr := range pairs {
			if pr.open == pr.close {
				if r == pr.open {
					toggles[r] = !toggles[r]
				}
				continue
			}
			switch r {
			case pr.open:
				counts[pr.open]++
			case pr.close:
				if counts[pr.open] > 0 {
					counts[pr.open]--
				}
			}
		}
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	for _, on := range toggles {
		if on {
			return false
		}
	}
	return true
}

func (p *ruleProfile) FindSectionHeaders(text string) []SectionHeader {
	if text == "" || len(p.sections) == 0 {
		return nil
	}
	var out []SectionHeader
	for _, sp := range p.sections {
		for _, m := range sp.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[0], m[1]
			headerText := text[start:end]
			gi := sp.textGroup
			if gi > 0 && 2*gi+1 < len(m) && m[2*gi] >= 0 {
				headerText = strings.TrimSpace(text[m[2*gi]:m[2*gi+1]])
			}
			out = append(out, SectionHeader{Start: start, End: end, Text: headerText})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func dedupeSorted(xs []int) []int {
	sort.Ints(xs)
	out := xs[:0:0]
	var prev int = -1
	for _, x := range xs {
		if x == prev {
			continue
		}
		out = append(out, x)
		prev = x
	}
	return out
}
