// Package chunkopt defines the configuration bundle that drives every
// chunking strategy and the chunk balancer: target/min/max sizes (in
// estimated tokens), overlap, language selection, and the preset
// factories used throughout the example corpus and this library's tests.
package chunkopt

import (
	"fmt"

	"ragprep/internal/rerrors"
)

// Strategy names a chunking algorithm.
type Strategy string

const (
	Sentence     Strategy = "sentence"
	Paragraph    Strategy = "paragraph"
	Token        Strategy = "token"
	Hierarchical Strategy = "hierarchical"
	Semantic     Strategy = "semantic"
	Auto         Strategy = "auto"
)

// Options is the configuration bundle threaded through the chunker
// strategies and balancer. Construct via one of the preset factories and
// then adjust fields, or build one from scratch and call Validate.
type Options struct {
	Strategy Strategy

	TargetSize  int // estimated tokens
	MinSize     int
	MaxSize     int
	OverlapSize int

	// Language is an explicit ISO 639-1/IETF code. Empty triggers
	// auto-detection against the source text.
	Language string

	PreserveParagraphs     bool
	PreserveSentences      bool
	PreserveSectionHeaders bool

	// SimilarityThreshold gates the semantic chunker's breakpoint scan.
	SimilarityThreshold float64

	TrimWhitespace      bool
	NormalizeWhitespace bool
	IncludeMetadata     bool

	EnableChunkBalancing bool

	// EnableParallelProcessing and ParallelThreshold are carried as
	// configuration only: no component reads them, and the PII masker
	// always runs its detectors sequentially.
	EnableParallelProcessing bool
	ParallelThreshold        int
}

// Default mirrors the documented defaults: 512/100/1024/50.
func Default() Options {
	return Options{
		Strategy:               Sentence,
		TargetSize:             512,
		MinSize:                100,
		MaxSize:                1024,
		OverlapSize:            50,
		PreserveParagraphs:     true,
		PreserveSentences:      true,
		PreserveSectionHeaders: true,
		SimilarityThreshold:    0.75,
		TrimWhitespace:         true,
		NormalizeWhitespace:    false,
		IncludeMetadata:        true,
		EnableChunkBalancing:   true,
		ParallelThreshold:      10000,
	}
}

// ForRAG favors smaller, tightly-overlapped chunks tuned for retrieval
// precision over recall of surrounding context.
func ForRAG() Options {
	o := Default()
	o.Strategy = Sentence
	o.TargetSize = 384
	o.MinSize = 80
	o.MaxSize = 768
	o.OverlapSize = 64
	return o
}

// ForKorean narrows the target window to account for Korean's lower
// chars-per-token ratio and pins the language explicitly.
func ForKorean() Options {
	o := Default()
	o.Language = "ko"
	o.TargetSize = 400
	o.MinSize = 80
	o.MaxSize = 800
	o.OverlapSize = 40
	return o
}

// ForLargeDocument widens the window for hierarchical/long-document
// processing, trading retrieval precision for fewer total chunks.
func ForLargeDocument() Options {
	o := Default()
	o.Strategy = Hierarchical
	o.TargetSize = 1024
	o.MinSize = 200
	o.MaxSize = 2048
	o.OverlapSize = 100
	return o
}

// FixedSize builds a Token-strategy configuration with no boundary
// preservation, useful for raw character-window chunking.
func FixedSize(size, overlap int) Options {
	o := Default()
	o.Strategy = Token
	o.TargetSize = size
	o.MinSize = size / 4
	o.MaxSize = size * 2
	o.OverlapSize = overlap
	o.PreserveSentences = false
	o.PreserveParagraphs = false
	return o
}

// Validate enforces the §7 InvalidOption constraints.
func (o Options) Validate() error {
	if o.TargetSize <= 0 || o.MinSize < 0 || o.MaxSize <= 0 || o.OverlapSize < 0 {
		return fmt.Errorf("%w: sizes must be non-negative and target/max positive", rerrors.ErrInvalidOption)
	}
	if o.TargetSize > o.MaxSize {
		return fmt.Errorf("%w: target_size (%d) > max_size (%d)", rerrors.ErrInvalidOption, o.TargetSize, o.MaxSize)
	}
	if o.OverlapSize >= o.TargetSize {
		return fmt.Errorf("%w: overlap_size (%d) >= target_size (%d)", rerrors.ErrInvalidOption, o.OverlapSize, o.TargetSize)
	}
	if o.SimilarityThreshold < 0 || o.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity_threshold (%v) outside [0,1]", rerrors.ErrInvalidOption, o.SimilarityThreshold)
	}
	return nil
}
