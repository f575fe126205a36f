package chunker

import (
	"context"

	"ragprep/internal/language"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"
)

// SentenceChunker groups whole sentences into chunks near TargetSize
// tokens, never splitting a sentence across a chunk boundary.
type SentenceChunker struct{}

func (SentenceChunker) Chunk(_ context.Context, text string, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error) {
	if text == "" {
		return nil, nil
	}
	bounds := profile.FindSentenceBoundaries(text)
	spans := buildFromBoundaries(text, bounds, profile, opts)
	return spansToChunks(text, spans, profile, opts, chunkopt.Sentence), nil
}
