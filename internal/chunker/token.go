package chunker

import (
	"context"
	"strings"

	"ragprep/internal/language"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"

	"github.com/google/uuid"
)

// TokenChunker splits on raw estimated-token windows without regard to
// sentence or paragraph boundaries, the fixed-size word-cascade fallback
// in the teacher generalized to rune-based windows via the profile's
// chars-per-token ratio, when PreserveSentences/PreserveParagraphs are
// both false (chunkopt.FixedSize). If either is set, it instead groups
// whole sentences into spans with sentence overlap, like SentenceChunker.
type TokenChunker struct{}

func (TokenChunker) Chunk(_ context.Context, text string, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error) {
	if text == "" {
		return nil, nil
	}
	if opts.PreserveSentences || opts.PreserveParagraphs {
		bounds := profile.FindSentenceBoundaries(text)
		spans := buildFromBoundaries(text, bounds, profile, opts)
		return spansToChunks(text, spans, profile, opts, chunkopt.Token), nil
	}

	runeByteOffsets := byteOffsetsOfRunes(text)
	runeCount := len(runeByteOffsets) - 1

	runeWindow := int(float64(opts.TargetSize) * profile.CharsPerToken())
	if runeWindow <= 0 {
		runeWindow = opts.TargetSize
	}
	overlapRunes := int(float64(opts.OverlapSize) * profile.CharsPerToken())

	var spans []span
	start := 0
	for start < runeCount {
		end := start + runeWindow
		if end > runeCount {
			end = runeCount
		}
		spans = append(spans, span{start: runeByteOffsets[start], end: runeByteOffsets[end]})
		if end == runeCount {
			break
		}
		next := end - overlapRunes
		if next <= start {
			next = end
		}
		start = next
	}
	return rawSpansToChunks(text, spans, profile, opts), nil
}

// byteOffsetsOfRunes returns a slice where element i is the byte offset of
// the i-th rune in text, with a final trailing entry of len(text).
func byteOffsetsOfRunes(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return offsets
}

// rawSpansToChunks is like spansToChunks but without sentence-aware
// overlap prepending, since TokenChunker already built overlapping spans
// directly.
func rawSpansToChunks(text string, spans []span, profile language.Profile, opts chunkopt.Options) []*chunk.Chunk {
	chunks := make([]*chunk.Chunk, 0, len(spans))
	for _, s := range spans {
		content := text[s.start:s.end]
		if opts.TrimWhitespace {
			content = strings.TrimSpace(content)
		}
		if content == "" {
			continue
		}
		c := newChunk(uuid.NewString(), content, s.start, s.end, profile, opts, chunkopt.Token)
		chunks = append(chunks, c)
	}
	chunk.Reindex(chunks)
	return chunks
}
