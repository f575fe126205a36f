package chunker

import (
	"strings"

	"ragprep/internal/language"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"

	"github.com/google/uuid"
)

// span is a half-open [start,end) byte range into the source text.
type span struct {
	start, end int
}

// buildFromBoundaries greedily groups the text between consecutive
// boundaries into spans, closing a span once it reaches TargetSize and
// starting a new one before adding a segment would exceed MaxSize,
// generalizing the teacher's paragraph/line/word accumulation cascade to
// any boundary list (sentence or paragraph ends). A single segment larger
// than MaxSize still forms one span, and an undersized span that cannot
// be merged (see mergeUndersizedSpans) stays below MinSize.
func buildFromBoundaries(text string, boundaries []int, profile language.Profile, opts chunkopt.Options) []span {
	if len(boundaries) == 0 {
		return nil
	}
	var spans []span
	segStart := 0
	chunkStart := 0
	tokens := 0

	flush := func(end int) {
		if end <= chunkStart {
			return
		}
		spans = append(spans, span{start: chunkStart, end: end})
	}

	for _, b := range boundaries {
		if b <= segStart {
			continue
		}
		segment := text[segStart:b]
		segTokens := profile.EstimateTokenCount(segment)

		if tokens > 0 && tokens+segTokens > opts.MaxSize {
			flush(segStart)
			chunkStart = segStart
			tokens = 0
		}

		tokens += segTokens
		segStart = b

		if tokens >= opts.TargetSize {
			flush(segStart)
			chunkStart = segStart
			tokens = 0
		}
	}
	if segStart > chunkStart {
		flush(segStart)
	}
	return mergeUndersizedSpans(text, spans, profile, opts)
}

// mergeUndersizedSpans folds each span after the first that is under
// MinSize into its predecessor when the merged span still fits within
// MaxSize, so a short leftover sentence/paragraph doesn't become its own
// tiny chunk. A leading undersized span is kept as is.
func mergeUndersizedSpans(text string, spans []span, profile language.Profile, opts chunkopt.Options) []span {
	if len(spans) < 2 || opts.MinSize <= 0 {
		return spans
	}
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if len(out) > 0 {
			tokens := profile.EstimateTokenCount(text[s.start:s.end])
			prev := out[len(out)-1]
			if tokens < opts.MinSize && profile.EstimateTokenCount(text[prev.start:s.end]) <= opts.MaxSize {
				out[len(out)-1] = span{start: prev.start, end: s.end}
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// spansToChunks converts spans into Chunks, computing OverlapFromPrevious
// by taking trailing sentences of the previous chunk (the teacher's
// calculateSentenceOverlap, generalized via profile.FindSentenceBoundaries)
// and prepending them to this chunk's content.
func spansToChunks(text string, spans []span, profile language.Profile, opts chunkopt.Options, strategy chunkopt.Strategy) []*chunk.Chunk {
	chunks := make([]*chunk.Chunk, 0, len(spans))
	var prevContent string
	for _, s := range spans {
		content := text[s.start:s.end]
		if opts.TrimWhitespace {
			content = strings.TrimSpace(content)
		}
		if content == "" {
			continue
		}

		overlapText := ""
		if opts.OverlapSize > 0 && prevContent != "" {
			overlapText = trailingOverlap(prevContent, opts.OverlapSize, profile)
			if overlapText != "" {
				content = overlapText + content
			}
		}

		c := newChunk(uuid.NewString(), content, s.start, s.end, profile, opts, strategy)
		c.Metadata.OverlapFromPrevious = overlapText
		c.Metadata.StartsAtBoundary = true
		c.Metadata.EndsAtBoundary = true
		chunks = append(chunks, c)
		prevContent = text[s.start:s.end]
	}
	chunk.Reindex(chunks)
	return chunks
}

// trailingOverlap selects whole trailing sentences from text totaling
// approximately overlapTokens, walking backward sentence-by-sentence and
// stopping once the budget would be exceeded — the same backward
// accumulation as the teacher's calculateSentenceOverlap, generalized
// to the requested profile.
func trailingOverlap(text string, overlapTokens int, profile language.Profile) string {
	if overlapTokens <= 0 || text == "" {
		return ""
	}
	bounds := profile.FindSentenceBoundaries(text)
	if len(bounds) == 0 {
		return ""
	}
	starts := make([]int, len(bounds))
	prev := 0
	for i, b := range bounds {
		starts[i] = prev
		prev = b
	}

	var pieces []string
	accumulated := 0
	for i := len(bounds) - 1; i >= 0; i-- {
		sentence := strings.TrimSpace(text[starts[i]:bounds[i]])
		if sentence == "" {
			continue
		}
		tokens := profile.EstimateTokenCount(sentence)
		if accumulated+tokens <= overlapTokens {
			pieces = append([]string{sentence}, pieces...)
			accumulated += tokens
			continue
		}
		if len(pieces) == 0 {
			pieces = append([]string{sentence}, pieces...)
		}
		break
	}
	if len(pieces) == 0 {
		return ""
	}
	return strings.Join(pieces, " ") + " "
}
