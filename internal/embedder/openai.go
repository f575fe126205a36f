// Package embedder provides the Embedder used by the semantic chunking
// strategy, grounded on the teacher's OpenAIProvider
// (mimir/internal/services/openai_provider.go): same client, same
// model-to-dimension table, minus the pgvector.Vector return type and
// cost-tracking hooks that belong to the teacher's persistence layer and
// have no home in a library with no storage of its own.
package embedder

import (
	"context"
	"fmt"
	"math"
	"os"

	"ragprep/internal/rerrors"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// OpenAI implements chunker.Embedder using the OpenAI embeddings API.
type OpenAI struct {
	client *openai.Client
	model  openai.EmbeddingModel
	dim    int
}

// NewOpenAI builds an Embedder for modelID, falling back to the
// OPENAI_API_KEY environment variable when apiKey is empty.
func NewOpenAI(apiKey, modelID string) (*OpenAI, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no OpenAI API key provided", rerrors.ErrEmbedderFailed)
	}

	dim := 1536
	switch modelID {
	case string(openai.AdaEmbeddingV2), "text-embedding-3-small":
		dim = 1536
	case "text-embedding-3-large":
		dim = 3072
	case "":
		modelID = string(openai.AdaEmbeddingV2)
	default:
		log.WithField("model", modelID).Warn("unknown OpenAI embedding model, defaulting dimension to 1536")
	}

	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  openai.EmbeddingModel(modelID),
		dim:    dim,
	}, nil
}

// Dimension returns the embedding vector length this model produces.
func (o *OpenAI) Dimension() int { return o.dim }

// EmbedOne requests a single embedding vector for text.
func (o *OpenAI) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return make([]float32, o.dim), nil
	}
	vectors, err := o.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch requests embeddings for every text in a single API call and
// returns one vector per input in input order, placing each vector by the
// Index field of its response entry.
func (o *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: o.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrEmbedderFailed, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: requested %d embeddings, got %d", rerrors.ErrEmbedderFailed, len(texts), len(resp.Data))
	}
	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// CosineSimilarity scores how similar two embedding vectors are. Either
// vector being all-zero (e.g. an empty-text placeholder) reports zero
// similarity rather than dividing by zero.
func (o *OpenAI) CosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
