package language

import (
	"strings"

	"github.com/neurosnap/sentences"
	log "github.com/sirupsen/logrus"
)

// englishAbbreviations suppresses false sentence breaks on common English
// titles and abbreviations, per spec §4.1.
var englishAbbreviations = buildAbbrevSet(
	"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "vs", "etc",
	"inc", "ltd", "co", "corp", "gov", "dept", "univ", "approx",
	"e.g", "i.e", "a.m", "p.m", "u.s", "u.k",
)

// englishProfile wraps the neurosnap/sentences tokenizer (the teacher's
// own sentence splitter, mimir/internal/chunking/strategies.go) as the
// primary sentence-boundary detector, falling back to the generic regex
// engine when the tokenizer is unavailable or returns nothing.
type englishProfile struct {
	fallback  *ruleProfile
	tokenizer *sentences.DefaultSentenceTokenizer
}

func newEnglishProfile() Profile {
	fb := &ruleProfile{
		code:          "en",
		charsPerToken: 4.0,
		terminators:   regexpMustCompileSentence(`[.!?]+(?:['"` + "`" + `)\]]*)`),
		abbreviations: englishAbbreviations,
		sections:      markdownAndNumberedSections(),
	}
	tok := sentences.NewSentenceTokenizer(nil)
	return &englishProfile{fallback: fb, tokenizer: tok}
}

func (p *englishProfile) Code() string           { return "en" }
func (p *englishProfile) CharsPerToken() float64 { return 4.0 }

func (p *englishProfile) EstimateTokenCount(text string) int {
	return p.fallback.EstimateTokenCount(text)
}

func (p *englishProfile) FindParagraphBoundaries(text string) []int {
	return p.fallback.FindParagraphBoundaries(text)
}

func (p *englishProfile) FindSectionHeaders(text string) []SectionHeader {
	return p.fallback.FindSectionHeaders(text)
}

func (p *englishProfile) FindSentenceBoundaries(text string) []int {
	if text == "" {
		return nil
	}
	if p.tokenizer == nil {
		return p.fallback.FindSentenceBoundaries(text)
	}

	sents := p.tokenizer.Tokenize(text)
	if len(sents) == 0 {
		log.WithField("language", "en").Debug("sentence tokenizer returned no sentences, falling back to regex boundaries")
		return p.fallback.FindSentenceBoundaries(text)
	}

	var out []int
	cursor := 0
	for _, s := range sents {
		sentText := strings.TrimSpace(s.Text)
		if sentText == "" {
			continue
		}
		idx := strings.Index(text[cursor:], sentText)
		if idx < 0 {
			// Tokenizer normalized whitespace in a way we can't locate
			// verbatim; abandon the precise walk and fall back.
			log.WithField("language", "en").Debug("could not locate tokenized sentence in source text, falling back to regex boundaries")
			return p.fallback.FindSentenceBoundaries(text)
		}
		end := cursor + idx + len(sentText)
		if p.fallback.isAbbreviationBreak(text, end-1) {
			// Rare: tokenizer split on an abbreviation our set also knows
			// about. Keep walking instead of recording a boundary here.
			cursor = end
			continue
		}
		out = append(out, end)
		cursor = end
	}
	if len(out) == 0 || out[len(out)-1] != len(text) {
		out = append(out, len(text))
	}
	return dedupeSorted(out)
}
