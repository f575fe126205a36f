// Package balancer post-processes a chunker's output: merging runs of
// undersized chunks, splitting any chunk that still exceeds MaxSize, and
// reindexing the result, plus a stats summary used by the root façade's
// result. Grounded on the teacher's overlap/size bookkeeping in
// mimir/internal/chunking/strategies.go, generalized into a standalone
// pass any strategy's output can go through.
package balancer

import (
	"context"
	"strings"

	"ragprep/internal/language"
	"ragprep/internal/rerrors"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"

	"github.com/google/uuid"
)

// Stats summarizes a chunk set's size distribution.
type Stats struct {
	TotalChunks int
	TotalTokens int
	MinTokens   int
	MaxTokens   int
	AvgTokens   float64
}

// Balance merges undersized runs, splits oversized chunks, and reindexes.
// It checks ctx for cancellation between phases and every N chunks within
// a phase, so a caller can bound work on pathologically large inputs.
func Balance(ctx context.Context, chunks []*chunk.Chunk, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error) {
	if !opts.EnableChunkBalancing || len(chunks) == 0 {
		return chunks, nil
	}
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	merged, err := mergeUndersized(ctx, chunks, profile, opts)
	if err != nil {
		return nil, err
	}
	split, err := splitOversized(ctx, merged, profile, opts)
	if err != nil {
		return nil, err
	}
	chunk.Reindex(split)
	return split, nil
}

func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return rerrors.ErrCancelled
	default:
		return nil
	}
}

// mergeUndersized folds each chunk below MinSize into the preceding output
// chunk, skipping merges across a hierarchy parent boundary so sections
// don't bleed into each other. A chunk is never merged into the chunk that
// follows it: a leading undersized chunk stays, and absorbs the undersized
// chunks after it. The merged size is not checked against MaxSize here.
func mergeUndersized(ctx context.Context, chunks []*chunk.Chunk, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error) {
	if opts.MinSize <= 0 {
		return chunks, nil
	}
	var out []*chunk.Chunk
	for i := 0; i < len(chunks); i++ {
		if i%64 == 0 {
			if err := checkCancel(ctx); err != nil {
				return nil, err
			}
		}
		c := chunks[i]
		if c.Metadata.EstTokens >= opts.MinSize || len(out) == 0 {
			out = append(out, c)
			continue
		}
		prev := out[len(out)-1]
		if !sameParent(prev, c) {
			out = append(out, c)
			continue
		}
		merged := mergeTwo(prev, c, profile, opts)
		out[len(out)-1] = merged
	}
	return out, nil
}

func sameParent(a, b *chunk.Chunk) bool {
	pa, _ := a.ParentID()
	pb, _ := b.ParentID()
	return pa == pb
}

func mergeTwo(a, b *chunk.Chunk, profile language.Profile, opts chunkopt.Options) *chunk.Chunk {
	sep := " "
	if strings.HasSuffix(a.Content, "\n") || strings.HasPrefix(b.Content, "\n") {
		sep = ""
	}
	content := a.Content + sep + b.Content
	merged := &chunk.Chunk{
		ID:      a.ID,
		Content: content,
		Location: chunk.Location{
			Start:       a.Location.Start,
			End:         b.Location.End,
			StartLine:   a.Location.StartLine,
			EndLine:     b.Location.EndLine,
			SectionPath: a.Location.SectionPath,
		},
		Metadata: chunk.Metadata{
			Language:            profile.Code(),
			EstTokens:           profile.EstimateTokenCount(content),
			Strategy:            a.Metadata.Strategy,
			StartsAtBoundary:    a.Metadata.StartsAtBoundary,
			EndsAtBoundary:      b.Metadata.EndsAtBoundary,
			ContainsHeader:      a.Metadata.ContainsHeader || b.Metadata.ContainsHeader,
			OverlapFromPrevious: a.Metadata.OverlapFromPrevious,
		},
	}
	if a.Metadata.Custom != nil {
		for k, v := range a.Metadata.Custom {
			merged.SetCustom(k, v)
		}
	}
	return merged
}

// splitOversized re-splits any chunk whose estimated token count exceeds
// MaxSize along sentence boundaries, preserving its hierarchy metadata
// across the resulting pieces.
func splitOversized(ctx context.Context, chunks []*chunk.Chunk, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error) {
	if opts.MaxSize <= 0 {
		return chunks, nil
	}
	var out []*chunk.Chunk
	for i, c := range chunks {
		if i%64 == 0 {
			if err := checkCancel(ctx); err != nil {
				return nil, err
			}
		}
		if c.Metadata.EstTokens <= opts.MaxSize {
			out = append(out, c)
			continue
		}
		out = append(out, splitOne(c, profile, opts)...)
	}
	return out, nil
}

func splitOne(c *chunk.Chunk, profile language.Profile, opts chunkopt.Options) []*chunk.Chunk {
	bounds := profile.FindSentenceBoundaries(c.Content)
	if len(bounds) <= 1 {
		return []*chunk.Chunk{c}
	}

	var pieces []*chunk.Chunk
	segStart := 0
	pieceStart := 0
	tokens := 0
	flush := func(end int) {
		if end <= pieceStart {
			return
		}
		content := c.Content[pieceStart:end]
		piece := &chunk.Chunk{
			ID:      uuid.NewString(),
			Content: content,
			Location: chunk.Location{
				Start:       c.Location.Start + pieceStart,
				End:         c.Location.Start + end,
				SectionPath: c.Location.SectionPath,
			},
			Metadata: chunk.Metadata{
				Language:  profile.Code(),
				EstTokens: profile.EstimateTokenCount(content),
				Strategy:  c.Metadata.Strategy,
			},
		}
		if c.Metadata.Custom != nil {
			for k, v := range c.Metadata.Custom {
				piece.SetCustom(k, v)
			}
		}
		pieces = append(pieces, piece)
	}
	for _, b := range bounds {
		segTokens := profile.EstimateTokenCount(c.Content[segStart:b])
		if tokens > 0 && tokens+segTokens > opts.MaxSize {
			flush(segStart)
			pieceStart = segStart
			tokens = 0
		}
		tokens += segTokens
		segStart = b
	}
	flush(segStart)
	if len(pieces) == 0 {
		return []*chunk.Chunk{c}
	}
	pieces[0].Metadata.ContainsHeader = c.Metadata.ContainsHeader
	return pieces
}

// CalcStats summarizes a final chunk set.
func CalcStats(chunks []*chunk.Chunk) Stats {
	if len(chunks) == 0 {
		return Stats{}
	}
	s := Stats{TotalChunks: len(chunks), MinTokens: chunks[0].Metadata.EstTokens}
	for _, c := range chunks {
		t := c.Metadata.EstTokens
		s.TotalTokens += t
		if t < s.MinTokens {
			s.MinTokens = t
		}
		if t > s.MaxTokens {
			s.MaxTokens = t
		}
	}
	s.AvgTokens = float64(s.TotalTokens) / float64(s.TotalChunks)
	return s
}
