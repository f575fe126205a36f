package language

import "regexp"

func buildAbbrevSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// regexpMustCompileSentence compiles a terminator pattern. Kept as a named
// wrapper (rather than a bare regexp.MustCompile call at each site) so the
// intent — "this regex identifies sentence terminators" — reads clearly at
// every profile constructor.
func regexpMustCompileSentence(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

var markdownHeaderRe = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+)$`)
var numberedListRe = regexp.MustCompile(`(?m)^[ \t]*(\d{1,3}|[a-zA-Z]|[ivxlcdmIVXLCDM]{1,6})[.)][ \t]+(.+)$`)

// markdownAndNumberedSections returns the section-marker patterns common to
// every language: markdown ATX headers and numbered/alpha/roman lists.
func markdownAndNumberedSections() []sectionPattern {
	return []sectionPattern{
		{re: markdownHeaderRe, textGroup: 2},
		{re: numberedListRe, textGroup: 2},
	}
}

// chapterSection builds a section pattern for a culture-specific chapter
// marker, e.g. Korean "제N장", Japanese "第N章", French "Chapitre N".
func chapterSection(pattern string, textGroup int) sectionPattern {
	return sectionPattern{re: regexp.MustCompile(pattern), textGroup: textGroup}
}
