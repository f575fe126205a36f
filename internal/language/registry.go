package language

import (
	"sort"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/rangetable"
)

// Registry maps language codes to Profiles and auto-detects a language from
// raw text by script-bucket frequency. The zero value is not usable; call
// NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	fallback string
}

// NewRegistry builds a Registry pre-populated with all 13 built-in
// profiles, English set as the fallback for unknown or undetectable text.
func NewRegistry() *Registry {
	r := &Registry{
		profiles: make(map[string]Profile, 16),
		fallback: "en",
	}
	for _, p := range []Profile{
		newEnglishProfile(),
		newKoreanProfile(),
		newJapaneseProfile(),
		newChineseProfile(),
		newSpanishProfile(),
		newFrenchProfile(),
		newGermanProfile(),
		newPortugueseProfile(),
		newRussianProfile(),
		newArabicProfile(),
		newHindiProfile(),
		newVietnameseProfile(),
		newThaiProfile(),
	} {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a profile under its own Code(). Safe for
// concurrent use; intended mainly for tests that substitute a stub profile.
func (r *Registry) Register(p Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Code()] = p
}

// Get returns the profile for code, falling back to English when code is
// empty or unknown.
func (r *Registry) Get(code string) Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.profiles[code]; ok {
		return p
	}
	return r.profiles[r.fallback]
}

// DetectProfile auto-detects text's dominant language and returns the
// matching profile (or the English fallback).
func (r *Registry) DetectProfile(text string) Profile {
	return r.Get(DetectLanguage(text))
}

// scriptBucket names one of the Unicode-range buckets counted by
// DetectLanguage, in priority order for tie-breaking.
type scriptBucket struct {
	code string
	in   func(rune) bool
}

// Priority order matters when two buckets tie above threshold: Korean
// before Japanese before Chinese before Russian before Arabic before
// Hindi, Latin text falling through to English.
//
// Classification itself goes through golang.org/x/text/runes rather than
// hand-rolled range checks: each bucket is a runes.Set built from the
// standard library's Unicode script range tables, giving the same
// treatment to multi-range scripts (Hangul syllables plus jamo, Han plus
// the Latin supplement) that a hand-written range list would get wrong at
// the edges.
var scriptBuckets = []scriptBucket{
	{"ko", setContains(runes.In(unicode.Hangul))},
	{"ja", setContains(runes.In(rangetable.Merge(unicode.Hiragana, unicode.Katakana)))},
	{"zh", setContains(runes.In(unicode.Han))},
	{"ru", setContains(runes.In(unicode.Cyrillic))},
	{"ar", setContains(runes.In(unicode.Arabic))},
	{"hi", setContains(runes.In(unicode.Devanagari))},
}

var latinSet = setContains(runes.In(unicode.Latin))

func isLatin(r rune) bool { return latinSet(r) }

// setContains adapts a runes.Set (which exposes Contains via the
// transform.SpanningTransformer it returns) to a plain predicate.
func setContains(set runes.Set) func(rune) bool {
	return set.Contains
}

// detectThreshold is the minimum share of counted (script-bucketed) runes
// a bucket must hold before it's trusted over the Latin/English default.
const detectThreshold = 0.30

// DetectLanguage applies the script-bucket frequency algorithm: every rune
// is classified into at most one bucket (Hangul/Hiragana-Katakana/CJK
// ideograph/Cyrillic/Arabic/Devanagari/Latin), and the highest-scoring
// non-Latin bucket wins if its share of all classified runes clears 30%.
// Otherwise (including all-Latin or no classifiable runes) it returns "en".
func DetectLanguage(text string) string {
	if text == "" {
		return "en"
	}
	counts := make(map[string]int, len(scriptBuckets))
	total := 0
	latin := 0
	for _, r := range text {
		matched := false
		for _, b := range scriptBuckets {
			if b.in(r) {
				counts[b.code]++
				total++
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if isLatin(r) {
			latin++
			total++
		}
	}
	if total == 0 {
		return "en"
	}

	type scored struct {
		code  string
		share float64
		rank  int
	}
	var candidates []scored
	for rank, b := range scriptBuckets {
		if c := counts[b.code]; c > 0 {
			candidates = append(candidates, scored{code: b.code, share: float64(c) / float64(total), rank: rank})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].share != candidates[j].share {
			return candidates[i].share > candidates[j].share
		}
		return candidates[i].rank < candidates[j].rank
	})
	if len(candidates) > 0 && candidates[0].share >= detectThreshold {
		return candidates[0].code
	}
	return "en"
}
