package chunker

import (
	"context"
	"math"
	"strings"
	"testing"

	"ragprep/internal/language"
	"ragprep/pkg/chunkopt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnknownStrategy(t *testing.T) {
	_, err := New("bogus", nil)
	assert.Error(t, err)
}

func TestNew_SemanticWithoutEmbedderFails(t *testing.T) {
	_, err := New(chunkopt.Semantic, nil)
	assert.Error(t, err)
}

func TestSentenceChunker_IndicesAndTotalCount(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()
	opts.TargetSize = 10
	opts.MinSize = 0
	opts.MaxSize = 40
	opts.OverlapSize = 0

	text := "This is one. This is two. This is three. This is four. This is five."
	c := SentenceChunker{}
	chunks, err := c.Chunk(context.Background(), text, profile, opts)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, len(chunks), ch.TotalCount)
		assert.NotEmpty(t, ch.ID)
	}
}

func TestSentenceChunker_UniqueIDs(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()
	opts.TargetSize = 8
	opts.MaxSize = 30

	text := "Alpha sentence here. Beta sentence here. Gamma sentence here. Delta sentence here."
	chunks, err := SentenceChunker{}.Chunk(context.Background(), text, profile, opts)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, c := range chunks {
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}

func TestParagraphChunker_SplitsOnBlankLines(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()
	opts.TargetSize = 5
	opts.MaxSize = 20
	opts.MinSize = 0

	text := "Paragraph one here.\n\nParagraph two here.\n\nParagraph three here."
	chunks, err := ParagraphChunker{}.Chunk(context.Background(), text, profile, opts)
	require.NoError(t, err)
	assert.Len(t, chunks, 3)
}

func TestTokenChunker_FixedWindow(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.FixedSize(20, 5)

	text := "word "
	for i := 0; i < 50; i++ {
		text += "word "
	}
	chunks, err := TokenChunker{}.Chunk(context.Background(), text, profile, opts)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
}

func TestHierarchicalChunker_BuildsParentChildLinks(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()
	opts.TargetSize = 100
	opts.MaxSize = 500

	text := "# Title\nIntro text here.\n\n## Section A\nContent of section A.\n\n## Section B\nContent of section B."
	chunks, err := HierarchicalChunker{}.Chunk(context.Background(), text, profile, opts)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	var root *chunkWithChildren
	for _, c := range chunks {
		if c.Location.SectionPath == "Title" {
			root = &chunkWithChildren{id: c.ID, children: c.ChildIDs()}
		}
	}
	require.NotNil(t, root)
	assert.NotEmpty(t, root.children)
}

type chunkWithChildren struct {
	id       string
	children []string
}

func TestSemanticChunker_BreaksOnLowSimilarity(t *testing.T) {
	reg := language.NewRegistry()
	profile := reg.Get("en")
	opts := chunkopt.Default()
	opts.TargetSize = 1000
	opts.MinSize = 0
	opts.MaxSize = 5000
	opts.SimilarityThreshold = 0.5

	emb := &stubEmbedder{}
	c := SemanticChunker{Embedder: emb}
	text := "Cats are small mammals. Cats like to sleep a lot. Rockets launch into orbit. Rockets burn a lot of fuel."
	chunks, err := c.Chunk(context.Background(), text, profile, opts)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
}

// stubEmbedder returns a fixed direction per leading keyword, so "cat"
// sentences cluster apart from "rocket" sentences without a real model.
type stubEmbedder struct{}

func (stubEmbedder) Dimension() int { return 2 }

func (s stubEmbedder) EmbedOne(_ context.Context, text string) ([]float32, error) {
	if strings.Contains(text, "Cat") || strings.Contains(text, "cat") {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func (s stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := s.EmbedOne(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (stubEmbedder) CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
