package refiner

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefine_StripsBase64Blob(t *testing.T) {
	blob := "QUJDREVGR0hJSktMTU5PUFFSU1RVVldYWVoxMjM0NTY3ODkwQUJDREVGR0hJSktMTU5PUFFSU1RVVldYWVo="
	text := "see attachment: " + blob + " thanks"
	out := Refine(text, Default())
	assert.NotContains(t, out, blob)
	assert.Contains(t, out, "see attachment")
	assert.Contains(t, out, "thanks")
}

func TestRefine_RemovesASCIIArtLine(t *testing.T) {
	text := "Intro\n*~*~*~*~*~*~*~*~*\nBody text here\n"
	out := Refine(text, Default())
	assert.NotContains(t, out, "*~*~")
	assert.Contains(t, out, "Body text here")
}

func TestRefine_NormalizesSeparators(t *testing.T) {
	text := "above\n-----------\nbelow"
	out := Refine(text, Default())
	assert.Contains(t, out, "---")
	assert.NotContains(t, out, "-----------")
}

func TestRefine_ReducesRepeatedChars(t *testing.T) {
	text := "whoa!!!!!! that's wild"
	out := Refine(text, Default())
	assert.Contains(t, out, "whoa!!!")
	assert.NotContains(t, out, "!!!!!!")
}

func TestRefine_RemovesEmptyListItems(t *testing.T) {
	text := "- first\n-\n* \n- second"
	out := Refine(text, Default())
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	lines := 0
	for _, r := range out {
		if r == '\n' {
			lines++
		}
	}
	assert.LessOrEqual(t, lines, 1)
}

func TestRefine_TokenOptimizationDropsShortLines(t *testing.T) {
	text := "a\nb\nreal content line here"
	out := Refine(text, ForTokenOptimization())
	assert.NotContains(t, out, "a\n")
	assert.Contains(t, out, "real content line here")
}

func TestRefine_NormalizesWhitespace(t *testing.T) {
	text := "line one\n\n\n\nline two   with    gaps   \n"
	out := Refine(text, Default())
	assert.NotContains(t, out, "\n\n\n")
	assert.NotContains(t, out, "   ")
}

func TestRefine_EmptyInput(t *testing.T) {
	out := Refine("", Default())
	assert.Equal(t, "", out)
}

func TestRefine_Idempotent(t *testing.T) {
	text := "Header\n*****\nSome!!!! content.\n\n\n\n- \n- item\nshort\nreal content line follows"
	opts := ForAggressiveTokenOptimization()
	once := Refine(text, opts)
	twice := Refine(once, opts)
	require.Equal(t, once, twice)
}

func TestRefine_UserPatterns(t *testing.T) {
	opts := Default()
	opts.UserPatterns = []*regexp.Regexp{regexp.MustCompile(`CONFIDENTIAL-\d+`)}
	out := Refine("memo CONFIDENTIAL-4821 body text here", opts)
	assert.NotContains(t, out, "CONFIDENTIAL-4821")
	assert.Contains(t, out, "memo")
}
