package balancer

import (
	"context"
	"testing"

	"ragprep/internal/language"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChunk(id, content string, tokens int) *chunk.Chunk {
	return &chunk.Chunk{
		ID:      id,
		Content: content,
		Metadata: chunk.Metadata{
			EstTokens: tokens,
		},
	}
}

func TestBalance_MergesUndersizedChunks(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()
	opts.MinSize = 20
	opts.MaxSize = 1000

	chunks := []*chunk.Chunk{
		newTestChunk("a", "Tiny one.", 3),
		newTestChunk("b", "Also tiny.", 3),
		newTestChunk("c", "This one is large enough on its own to pass the minimum threshold easily.", 25),
	}
	out, err := Balance(context.Background(), chunks, profile, opts)
	require.NoError(t, err)
	assert.Less(t, len(out), len(chunks))
	for i, c := range out {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, len(out), c.TotalCount)
	}
}

func TestBalance_SplitsOversizedChunk(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()
	opts.MinSize = 0
	opts.MaxSize = 10

	big := "Sentence number one here. Sentence number two here. Sentence number three here. Sentence number four here."
	chunks := []*chunk.Chunk{newTestChunk("big", big, profile.EstimateTokenCount(big))}
	out, err := Balance(context.Background(), chunks, profile, opts)
	require.NoError(t, err)
	assert.Greater(t, len(out), 1)
	for _, c := range out {
		assert.LessOrEqual(t, c.Metadata.EstTokens, opts.MaxSize+5)
	}
}

func TestBalance_DisabledReturnsInputUnchanged(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()
	opts.EnableChunkBalancing = false

	chunks := []*chunk.Chunk{newTestChunk("a", "x", 1)}
	out, err := Balance(context.Background(), chunks, profile, opts)
	require.NoError(t, err)
	assert.Same(t, chunks[0], out[0])
}

func TestBalance_RespectsCancellation(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chunks := []*chunk.Chunk{newTestChunk("a", "x", 1)}
	_, err := Balance(ctx, chunks, profile, opts)
	assert.Error(t, err)
}

func TestCalcStats(t *testing.T) {
	chunks := []*chunk.Chunk{
		newTestChunk("a", "x", 10),
		newTestChunk("b", "y", 20),
		newTestChunk("c", "z", 30),
	}
	stats := CalcStats(chunks)
	assert.Equal(t, 3, stats.TotalChunks)
	assert.Equal(t, 60, stats.TotalTokens)
	assert.Equal(t, 10, stats.MinTokens)
	assert.Equal(t, 30, stats.MaxTokens)
	assert.InDelta(t, 20.0, stats.AvgTokens, 0.001)
}

func TestCalcStats_Empty(t *testing.T) {
	stats := CalcStats(nil)
	assert.Equal(t, Stats{}, stats)
}
