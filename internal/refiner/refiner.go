// Package refiner implements the fixed, ordered text-cleanup pipeline run
// before chunking: a deterministic sequence of steps that strip noise
// (base64 blobs, ASCII art, decorative separators, repeated characters,
// empty list items) and normalize whitespace, grounded on the teacher's
// mimir/internal/util.CleanFileContent step ordering and UTF-8 handling.
package refiner

import (
	"regexp"
	"strings"
)

// Step is one pipeline stage. Steps run in a fixed order (see Refine) and
// must be idempotent: running the full pipeline twice on its own output
// yields the same text.
type Step func(text string) string

// Options configures which steps run and their thresholds. The zero value
// runs no optional steps; use Default, ForTokenOptimization or
// ForAggressiveTokenOptimization to start from a sensible bundle.
type Options struct {
	StripBase64          bool
	RemoveASCIIArt        bool
	NormalizeSeparators   bool
	ReduceRepeatedChars   bool
	RemoveEmptyListItems  bool
	ProcessLines          bool
	NormalizeWhitespace   bool

	// MinBase64RunLength is the shortest run of base64-alphabet characters
	// treated as an encoded blob rather than ordinary text.
	MinBase64RunLength int

	// MaxRepeatedChar caps a repeated run of the same character (e.g.
	// "-----" or "!!!!!!") before it's collapsed to this many occurrences.
	MaxRepeatedChar int

	// MinLineLength drops non-empty lines shorter than this after
	// trimming, during the line-processing step (0 disables).
	MinLineLength int

	// UserPatterns are additional regexes removed verbatim, applied after
	// the built-in steps and before final whitespace normalization.
	UserPatterns []*regexp.Regexp
}

// Default enables the generally-safe steps with conservative thresholds.
func Default() Options {
	return Options{
		StripBase64:         true,
		RemoveASCIIArt:       true,
		NormalizeSeparators:  true,
		ReduceRepeatedChars:  true,
		RemoveEmptyListItems: true,
		ProcessLines:         true,
		NormalizeWhitespace:  true,
		MinBase64RunLength:   64,
		MaxRepeatedChar:      3,
	}
}

// ForTokenOptimization additionally drops very short lines, trading a
// little recall for a denser token budget.
func ForTokenOptimization() Options {
	o := Default()
	o.MinLineLength = 2
	return o
}

// ForAggressiveTokenOptimization lowers the base64 run threshold and
// collapses repeated characters harder, for pipelines that would rather
// over-strip than spend tokens on noise.
func ForAggressiveTokenOptimization() Options {
	o := ForTokenOptimization()
	o.MinBase64RunLength = 32
	o.MaxRepeatedChar = 1
	o.MinLineLength = 3
	return o
}

// Refine runs the enabled steps in a fixed order: base64 strip, ASCII-art
// removal, separator normalization, repeated-character reduction,
// empty-list-item removal, line processing, user patterns, whitespace
// normalization. The order is part of the contract — each step assumes the
// text shape left by the ones before it.
func Refine(text string, opts Options) string {
	if text == "" {
		return text
	}
	if opts.StripBase64 {
		text = stripBase64(text, minRunOrDefault(opts.MinBase64RunLength))
	}
	if opts.RemoveASCIIArt {
		text = removeASCIIArt(text)
	}
	if opts.NormalizeSeparators {
		text = normalizeSeparators(text)
	}
	if opts.ReduceRepeatedChars {
		text = reduceRepeatedChars(text, maxRepeatOrDefault(opts.MaxRepeatedChar))
	}
	if opts.RemoveEmptyListItems {
		text = removeEmptyListItems(text)
	}
	if opts.ProcessLines {
		text = processLines(text, opts.MinLineLength)
	}
	for _, pat := range opts.UserPatterns {
		text = pat.ReplaceAllString(text, "")
	}
	if opts.NormalizeWhitespace {
		text = normalizeWhitespace(text)
	}
	return text
}

func minRunOrDefault(n int) int {
	if n <= 0 {
		return 64
	}
	return n
}

func maxRepeatOrDefault(n int) int {
	if n <= 0 {
		return 3
	}
	return n
}

var base64RunRe = regexp.MustCompile(`[A-Za-z0-9+/]{32,}={0,2}`)

// stripBase64 removes runs of base64-alphabet characters at least minLen
// long. The regex itself only matches runs of 32 or more, so a minLen
// below 32 behaves as 32 and ordinary long identifiers are not stripped.
func stripBase64(text string, minLen int) string {
	return base64RunRe.ReplaceAllStringFunc(text, func(run string) string {
		if len(run) >= minLen {
			return ""
		}
		return run
	})
}

// asciiArtLineRe matches lines dominated by box-drawing/decorative
// characters rather than prose: at least 8 consecutive symbol characters
// with no letters or digits anywhere on the line. Lines that separatorRe
// matches are kept here and left to the separator-normalization step.
var asciiArtLineRe = regexp.MustCompile(`^[\s\p{P}\p{S}]{8,}$`)
var hasAlnumRe = regexp.MustCompile(`[\p{L}\p{N}]`)

func removeASCIIArt(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0:0]
	for _, ln := range lines {
		trimmed := strings.TrimRight(ln, "\r")
		if asciiArtLineRe.MatchString(trimmed) && !hasAlnumRe.MatchString(trimmed) && !separatorRe.MatchString(trimmed) {
			continue
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}

// separatorRe matches decorative rule lines: 3+ repeats of one of -, =,
// *, _, ~, # with only whitespace around them.
var separatorRe = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|={3,}|\*{3,}|_{3,}|~{3,}|#{3,})[ \t]*$`)

func normalizeSeparators(text string) string {
	return separatorRe.ReplaceAllString(text, "---")
}

// reduceRepeatedChars collapses any run of 4+ identical characters (other
// than newlines) down to max occurrences, leaving shorter runs (emphasis
// like "!!" or "...") untouched.
func reduceRepeatedChars(text string, max int) string {
	runes := []rune(text)
	var b strings.Builder
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		n := j - i
		if runes[i] != '\n' && n >= 4 && n > max {
			n = max
		}
		b.WriteString(strings.Repeat(string(runes[i]), n))
		i = j
	}
	return b.String()
}

// emptyListItemRe matches a bullet or numbered marker with no text after
// it on the line.
var emptyListItemRe = regexp.MustCompile(`(?m)^[ \t]*([-*+•]|\d{1,3}[.)])[ \t]*$`)

func removeEmptyListItems(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0:0]
	for _, ln := range lines {
		if emptyListItemRe.MatchString(ln) {
			continue
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}

// processLines trims trailing whitespace from every line and drops
// non-empty lines shorter than minLen after trimming (0 disables length
// filtering; blank lines, which carry paragraph structure, are never
// dropped by this step).
func processLines(text string, minLen int) string {
	lines := strings.Split(text, "\n")
	out := lines[:0:0]
	for _, ln := range lines {
		trimmed := strings.TrimRight(ln, " \t\r")
		stripped := strings.TrimSpace(trimmed)
		if stripped != "" && minLen > 0 && len(stripped) < minLen {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

var (
	trailingSpaceRe    = regexp.MustCompile(`[ \t]+\n`)
	multiBlankLineRe   = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe       = regexp.MustCompile(`[ \t]{2,}`)
)

// normalizeWhitespace is the final step: trims the whole text, strips
// trailing spaces and tabs from lines, collapses two or more consecutive
// blank lines to one, and collapses runs of interior
// horizontal whitespace to a single space.
func normalizeWhitespace(text string) string {
	text = trailingSpaceRe.ReplaceAllString(text, "\n")
	text = multiBlankLineRe.ReplaceAllString(text, "\n\n")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
