package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleProfile_FindSentenceBoundaries_SuppressesAbbreviation(t *testing.T) {
	p := newSpanishProfile()
	text := "El Dr. Gomez llegó tarde. La reunión terminó pronto."
	bounds := p.FindSentenceBoundaries(text)
	require.NotEmpty(t, bounds)
	assert.Equal(t, len(text), bounds[len(bounds)-1])
	// "Dr." must not itself register a boundary distinct from the real
	// sentence end.
	for _, b := range bounds[:len(bounds)-1] {
		assert.NotEqual(t, len("El Dr."), b)
	}
}

func TestRuleProfile_FindSentenceBoundaries_AlwaysEndsAtTextLength(t *testing.T) {
	p := newGermanProfile()
	text := "Hallo Welt. Wie geht es dir?"
	bounds := p.FindSentenceBoundaries(text)
	require.NotEmpty(t, bounds)
	assert.Equal(t, len(text), bounds[len(bounds)-1])
}

func TestRuleProfile_EstimateTokenCount(t *testing.T) {
	p := newFrenchProfile()
	assert.Equal(t, 0, p.EstimateTokenCount(""))
	assert.Greater(t, p.EstimateTokenCount("Bonjour tout le monde"), 0)
}

func TestKoreanProfile_QuoteBalanceSuppressesBreakInsideQuotes(t *testing.T) {
	p := newKoreanProfile()
	text := `그는 "정말요? 좋아요." 라고 말했다. 그리고 떠났다.`
	bounds := p.FindSentenceBoundaries(text)
	require.NotEmpty(t, bounds)
	assert.Equal(t, len(text), bounds[len(bounds)-1])
	// The "?" sits inside an open quote, so it must not register a boundary.
	for _, b := range bounds {
		assert.NotEqual(t, len(`그는 "정말요?`), b)
	}
}

func TestKoreanProfile_TokenEstimateUsesTwoPhase(t *testing.T) {
	p := newKoreanProfile()
	count := p.EstimateTokenCount("안녕하세요 world")
	assert.Greater(t, count, 0)
}

func TestKoreanProfile_AbbreviationPatternSuppressesArticleNumbering(t *testing.T) {
	p := newKoreanProfile()
	text := "제1조. 목적 이 법은 다음 각 호의 사항을 규정한다."
	bounds := p.FindSentenceBoundaries(text)
	require.NotEmpty(t, bounds)
	for _, b := range bounds[:len(bounds)-1] {
		assert.NotEqual(t, len("제1조."), b)
	}
}

func TestThaiProfile_NoTerminatorsFallsBackToWholeText(t *testing.T) {
	p := newThaiProfile()
	text := "สวัสดีครับ นี่คือข้อความทดสอบ"
	bounds := p.FindSentenceBoundaries(text)
	assert.Equal(t, []int{len(text)}, bounds)
}

func TestRuleProfile_FindParagraphBoundaries(t *testing.T) {
	p := newEnglishProfile().(*englishProfile).fallback
	text := "First paragraph.\n\nSecond paragraph.\n\nThird."
	bounds := p.FindParagraphBoundaries(text)
	assert.Equal(t, len(text), bounds[len(bounds)-1])
	assert.GreaterOrEqual(t, len(bounds), 3)
}

func TestRuleProfile_FindSectionHeaders_Markdown(t *testing.T) {
	p := newFrenchProfile()
	text := "# Intro\nSome text\n## Details\nMore text"
	headers := p.FindSectionHeaders(text)
	require.Len(t, headers, 2)
	assert.Equal(t, "Intro", headers[0].Text)
	assert.Equal(t, "Details", headers[1].Text)
}

func TestRuleProfile_FindSectionHeaders_ChapterMarker(t *testing.T) {
	p := newFrenchProfile()
	text := "Chapitre 1 Les débuts\nTexte ici."
	headers := p.FindSectionHeaders(text)
	require.NotEmpty(t, headers)
}
