package ragprep

import (
	"context"
	"testing"

	"ragprep/pkg/chunkopt"
	"ragprep/pkg/pii"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess_EmptyTextReturnsEmptyResult(t *testing.T) {
	result, err := Preprocess(context.Background(), "", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Chunks)
	assert.False(t, result.Filtered)
}

func TestPreprocess_FiltersLowValueContent(t *testing.T) {
	result, err := Preprocess(context.Background(), "ok", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.Filtered)
	assert.Empty(t, result.Chunks)
}

func TestPreprocess_HappyPath(t *testing.T) {
	text := "This document explains the onboarding checklist for new hires. " +
		"It covers account provisioning, required reading, and the first-week schedule. " +
		"Every new employee should complete these steps within five business days."
	result, err := Preprocess(context.Background(), text, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, result.Filtered)
	assert.NotEmpty(t, result.Chunks)
	assert.Equal(t, "en", result.Language)
	assert.Equal(t, len(result.Chunks), result.Stats.TotalChunks)
}

func TestPreprocess_MasksDetectedPII(t *testing.T) {
	text := "Please reach the account owner at jane.doe@example.com before escalating any billing disputes to finance."
	opts := DefaultOptions()
	opts.PII.Enabled = true
	result, err := Preprocess(context.Background(), text, opts)
	require.NoError(t, err)
	require.NotEmpty(t, result.PIIMatches)
	for _, c := range result.Chunks {
		assert.NotContains(t, c.Content, "jane.doe@example.com")
	}
}

func TestPreprocess_InvalidOptionsRejected(t *testing.T) {
	opts := DefaultOptions()
	opts.Chunk.MaxSize = -1
	_, err := Preprocess(context.Background(), "some text here", opts)
	assert.Error(t, err)
}

func TestPreprocess_SemanticWithoutEmbedderFails(t *testing.T) {
	text := "This document explains the onboarding checklist for new hires in great detail across several sections."
	opts := DefaultOptions()
	opts.Chunk.Strategy = chunkopt.Semantic
	_, err := Preprocess(context.Background(), text, opts)
	assert.Error(t, err)
}

func TestDefaultPIIOptions(t *testing.T) {
	opts := DefaultPIIOptions()
	assert.False(t, opts.Enabled)
	assert.Equal(t, pii.MaskToken, opts.Mask.Strategy)
}

func TestPreprocess_MasksWithMinConfidenceFloor(t *testing.T) {
	text := "Call 555-0100 about jane.doe@example.com"
	opts := DefaultOptions()
	opts.PII.Enabled = true
	opts.PII.MinConfidence = 0.99
	result, err := Preprocess(context.Background(), text, opts)
	require.NoError(t, err)
	assert.Empty(t, result.PIIMatches)
}
