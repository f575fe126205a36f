package chunker

import (
	"context"

	"ragprep/internal/language"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"
)

// ParagraphChunker groups whole paragraphs into chunks near TargetSize
// tokens. A paragraph that alone exceeds MaxSize falls through to a
// sentence-level split of just that paragraph, mirroring the teacher's
// paragraph-then-line-then-word cascade.
type ParagraphChunker struct{}

func (ParagraphChunker) Chunk(_ context.Context, text string, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error) {
	if text == "" {
		return nil, nil
	}
	bounds := profile.FindParagraphBoundaries(text)
	bounds = splitOversizedSegments(text, bounds, profile, opts)
	spans := buildFromBoundaries(text, bounds, profile, opts)
	return spansToChunks(text, spans, profile, opts, chunkopt.Paragraph), nil
}

// splitOversizedSegments inserts sentence boundaries inside any segment
// (between consecutive entries of bounds) that alone exceeds MaxSize
// tokens, so a single oversized paragraph doesn't become one oversized
// chunk.
func splitOversizedSegments(text string, bounds []int, profile language.Profile, opts chunkopt.Options) []int {
	if len(bounds) == 0 {
		return bounds
	}
	out := make([]int, 0, len(bounds))
	segStart := 0
	for _, b := range bounds {
		segment := text[segStart:b]
		if profile.EstimateTokenCount(segment) > opts.MaxSize {
			for _, sb := range profile.FindSentenceBoundaries(segment) {
				out = append(out, segStart+sb)
			}
		} else {
			out = append(out, b)
		}
		segStart = b
	}
	return out
}
