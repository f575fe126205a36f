package language

import (
	"math"
	"regexp"
)

// newKoreanProfile configures the regex engine for Korean: a 2-phase token
// estimator (Hangul syllables count close to 1:1.5 with tokens, everything
// else falls back to the generic 4-char ratio), quote/bracket balance
// tracking for "", '', 「」, 『』, () — all of which commonly wrap a
// terminal period in Korean prose without ending the sentence — and an
// abbreviation shape for article/clause numbering ("제1조", "제2항").
func newKoreanProfile() Profile {
	return &ruleProfile{
		code:          "ko",
		charsPerToken: 2.0,
		terminators:   regexpMustCompileSentence(`[.!?]+(?:['"’”)\]]*)`),
		abbrevPattern: regexp.MustCompile(`^제\d+(조|항|장|절|호)$`),
		quotePairs: []quotePair{
			{open: '"', close: '"'},
			{open: '\'', close: '\''},
			{open: '「', close: '」'},
			{open: '『', close: '』'},
			{open: '(', close: ')'},
		},
		sections: append(markdownAndNumberedSections(),
			chapterSection(`(?m)^제\s*\d+\s*장[.\s].*$`, 0),
			chapterSection(`(?m)^제\s*\d+\s*절[.\s].*$`, 0),
		),
		tokenEstimator: koreanTokenEstimate,
	}
}

func koreanTokenEstimate(text string, _ float64) int {
	hangul, other := 0, 0
	for _, r := range text {
		switch {
		case r >= 0xAC00 && r <= 0xD7A3:
			hangul++
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			// whitespace contributes to neither bucket
		default:
			other++
		}
	}
	count := int(math.Ceil(float64(hangul)/1.5)) + int(math.Ceil(float64(other)/4.0))
	if count < 1 && (hangul > 0 || other > 0) {
		count = 1
	}
	return count
}

func newJapaneseProfile() Profile {
	return &ruleProfile{
		code:          "ja",
		charsPerToken: 1.5,
		terminators:   regexpMustCompileSentence(`[。！？.!?]+(?:[」』）)\]]*)`),
		sections: append(markdownAndNumberedSections(),
			chapterSection(`(?m)^第\s*\d+\s*章[.\s　]*.*$`, 0),
		),
	}
}

func newChineseProfile() Profile {
	return &ruleProfile{
		code:          "zh",
		charsPerToken: 1.5,
		terminators:   regexpMustCompileSentence(`[。！？.!?]+(?:[」』）)\]]*)`),
		sections: append(markdownAndNumberedSections(),
			chapterSection(`(?m)^第\s*\d+\s*章[.\s　]*.*$`, 0),
		),
	}
}

var spanishAbbreviations = buildAbbrevSet(
	"sr", "sra", "srta", "dr", "dra", "ud", "uds", "etc", "pág", "núm",
)

func newSpanishProfile() Profile {
	return &ruleProfile{
		code:          "es",
		charsPerToken: 4.5,
		terminators:   regexpMustCompileSentence(`[.!?¡¿]+(?:['"’”)\]]*)`),
		abbreviations: spanishAbbreviations,
		sections:      markdownAndNumberedSections(),
	}
}

var frenchAbbreviations = buildAbbrevSet(
	"m", "mme", "mlle", "dr", "prof", "etc", "cf", "ex", "pp",
)

func newFrenchProfile() Profile {
	return &ruleProfile{
		code:          "fr",
		charsPerToken: 4.5,
		terminators:   regexpMustCompileSentence(`[.!?]+(?:['"’”»)\]]*)`),
		abbreviations: frenchAbbreviations,
		sections: append(markdownAndNumberedSections(),
			chapterSection(`(?m)^Chapitre\s+\d+.*$`, 0),
		),
	}
}

var germanAbbreviations = buildAbbrevSet(
	"hr", "fr", "dr", "prof", "etc", "bzw", "ca", "usw",
)

func newGermanProfile() Profile {
	return &ruleProfile{
		code:          "de",
		charsPerToken: 5.0,
		terminators:   regexpMustCompileSentence(`[.!?]+(?:['"’”)\]]*)`),
		abbreviations: germanAbbreviations,
		sections: append(markdownAndNumberedSections(),
			chapterSection(`(?m)^Kapitel\s+\d+.*$`, 0),
		),
	}
}

var portugueseAbbreviations = buildAbbrevSet(
	"sr", "sra", "dr", "dra", "etc", "pág", "núm",
)

func newPortugueseProfile() Profile {
	return &ruleProfile{
		code:          "pt",
		charsPerToken: 4.5,
		terminators:   regexpMustCompileSentence(`[.!?]+(?:['"’”)\]]*)`),
		abbreviations: portugueseAbbreviations,
		sections:      markdownAndNumberedSections(),
	}
}

var russianAbbreviations = buildAbbrevSet(
	"др", "им", "гг", "см", "стр", "т", "проф",
)

func newRussianProfile() Profile {
	return &ruleProfile{
		code:          "ru",
		charsPerToken: 4.0,
		terminators:   regexpMustCompileSentence(`[.!?]+(?:['"»)\]]*)`),
		abbreviations: russianAbbreviations,
		sections:      markdownAndNumberedSections(),
	}
}

func newArabicProfile() Profile {
	return &ruleProfile{
		code:          "ar",
		charsPerToken: 3.0,
		terminators:   regexpMustCompileSentence(`[.!?؟]+(?:['"”)\]]*)`),
		sections:      markdownAndNumberedSections(),
	}
}

func newHindiProfile() Profile {
	return &ruleProfile{
		code:          "hi",
		charsPerToken: 3.0,
		terminators:   regexpMustCompileSentence(`[।.!?]+(?:['"”)\]]*)`),
		sections:      markdownAndNumberedSections(),
	}
}

var vietnameseAbbreviations = buildAbbrevSet(
	"ts", "ths", "tp", "vd", "ông", "bà",
)

func newVietnameseProfile() Profile {
	return &ruleProfile{
		code:          "vi",
		charsPerToken: 4.0,
		terminators:   regexpMustCompileSentence(`[.!?]+(?:['"”)\]]*)`),
		abbreviations: vietnameseAbbreviations,
		sections:      markdownAndNumberedSections(),
	}
}

// newThaiProfile has no terminators: Thai prose marks sentence boundaries
// with whitespace and context rather than dedicated punctuation, so the
// engine falls back to its single-boundary default (the whole text) and
// leaves real segmentation to paragraph/section breaks and chunk sizing.
func newThaiProfile() Profile {
	return &ruleProfile{
		code:          "th",
		charsPerToken: 2.0,
		paragraphGap:  defaultParagraphGap,
		sections:      markdownAndNumberedSections(),
	}
}
