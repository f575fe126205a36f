// Package ragprep is a text-preprocessing library for retrieval-augmented
// generation pipelines: it refines raw text, filters out low-value
// content, detects and masks personally identifiable information, and
// chunks the result for embedding, tying together the internal
// refiner/contentfilter/pii/language/chunker/balancer packages behind one
// call. Grounded on the teacher's top-level wiring style
// (mimir/internal/app), generalized from a CLI-driven ingestion pipeline
// into a single synchronous library entry point with no persistence or
// transport of its own.
package ragprep

import (
	"context"
	"fmt"

	"ragprep/internal/balancer"
	"ragprep/internal/chunker"
	"ragprep/internal/config"
	"ragprep/internal/contentfilter"
	"ragprep/internal/language"
	"ragprep/internal/refiner"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"
	"ragprep/pkg/pii"

	log "github.com/sirupsen/logrus"
)

// Logger is the package-level logger every internal component logs
// through, in the teacher's style of a shared logrus instance rather than
// a logger threaded through every call. Callers may reconfigure it (level,
// output, formatter) before calling Preprocess.
var Logger = log.StandardLogger()

// registry is the process-wide language.Registry backing language
// auto-detection and lookup; built once since profiles are immutable.
var registry = language.NewRegistry()

// masker is the process-wide pii.Masker used by Preprocess; its detector
// set (global detectors plus the full national-ID registry) is immutable,
// so one shared instance is as safe as the language registry above.
var masker = pii.NewMasker()

// PIIOptions configures PII handling within Preprocess: whether detection
// runs at all, and the full pii.MaskingOptions (detector type filter,
// national-ID language codes, confidence floor, masking strategy) driving
// the masker.
type PIIOptions struct {
	Enabled bool
	pii.MaskingOptions
}

// DefaultPIIOptions disables masking but leaves a sensible mask
// configuration in place for callers who flip Enabled on.
func DefaultPIIOptions() PIIOptions {
	return PIIOptions{Enabled: false, MaskingOptions: pii.DefaultMaskingOptions()}
}

// Options bundles every stage's configuration for one Preprocess call.
type Options struct {
	Chunk         chunkopt.Options
	Refine        refiner.Options
	ContentFilter *contentfilter.Filter
	PII           PIIOptions

	// Embedder is required only when Chunk.Strategy is chunkopt.Semantic.
	Embedder chunker.Embedder
}

// DefaultOptions returns the façade's default pipeline: default chunking,
// default refining, the default content filter, and PII masking disabled.
func DefaultOptions() Options {
	return Options{
		Chunk:         chunkopt.Default(),
		Refine:        refiner.Default(),
		ContentFilter: contentfilter.Default(),
		PII:           DefaultPIIOptions(),
	}
}

// Result is everything Preprocess produced from one input.
type Result struct {
	Chunks []*chunk.Chunk
	Stats  balancer.Stats

	Filtered      bool
	FilterReasons []string

	PIIMatches []pii.Match
	Language   string
}

// Preprocess runs the full pipeline: refine, content-filter, PII
// detect/mask, language detection, chunk, balance. A content-filter veto
// short-circuits the remaining stages and returns a Result with Filtered
// set and no chunks, matching the teacher's "skip downstream processing on
// rejection" behavior in its categorization gate.
func Preprocess(ctx context.Context, text string, opts Options) (*Result, error) {
	if err := opts.Chunk.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return &Result{}, nil
	}

	refined := refiner.Refine(text, opts.Refine)

	filter := opts.ContentFilter
	if filter == nil {
		filter = contentfilter.Default()
	}
	verdict := filter.Evaluate(contentfilter.Request{Body: refined})
	if !verdict.Keep {
		Logger.WithField("reasons", verdict.Reasons).Debug("content filter rejected input")
		return &Result{Filtered: true, FilterReasons: verdict.Reasons}, nil
	}

	result := &Result{}

	workingText := refined
	if opts.PII.Enabled {
		maskResult := masker.Mask(workingText, opts.PII.MaskingOptions)
		result.PIIMatches = maskResult.Matches
		workingText = maskResult.Masked
	}

	profile := resolveProfile(opts.Chunk.Language, workingText)
	result.Language = profile.Code()

	c, err := chunker.New(opts.Chunk.Strategy, opts.Embedder)
	if err != nil {
		return nil, err
	}

	chunks, err := c.Chunk(ctx, workingText, profile, opts.Chunk)
	if err != nil {
		return nil, fmt.Errorf("chunking failed: %w", err)
	}

	balanced, err := balancer.Balance(ctx, chunks, profile, opts.Chunk)
	if err != nil {
		return nil, fmt.Errorf("balancing failed: %w", err)
	}

	result.Chunks = balanced
	result.Stats = balancer.CalcStats(balanced)
	return result, nil
}

func resolveProfile(explicitLanguage, text string) language.Profile {
	if explicitLanguage != "" {
		return registry.Get(explicitLanguage)
	}
	return registry.DetectProfile(text)
}

// LoadAmbientOptions reads config.yaml/environment variables (via
// internal/config) and overlays any values present onto base, returning
// the merged Options. Fields absent from the ambient config leave base's
// value untouched.
func LoadAmbientOptions(base Options) (Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return base, err
	}
	if cfg.Chunking.Strategy != "" {
		base.Chunk.Strategy = chunkopt.Strategy(cfg.Chunking.Strategy)
	}
	if cfg.Chunking.TargetSize > 0 {
		base.Chunk.TargetSize = cfg.Chunking.TargetSize
	}
	if cfg.Chunking.MinSize > 0 {
		base.Chunk.MinSize = cfg.Chunking.MinSize
	}
	if cfg.Chunking.MaxSize > 0 {
		base.Chunk.MaxSize = cfg.Chunking.MaxSize
	}
	if cfg.Chunking.OverlapSize > 0 {
		base.Chunk.OverlapSize = cfg.Chunking.OverlapSize
	}
	if cfg.Chunking.Language != "" {
		base.Chunk.Language = cfg.Chunking.Language
	}
	if cfg.Chunking.Threshold > 0 {
		base.Chunk.SimilarityThreshold = cfg.Chunking.Threshold
	}
	if cfg.PII.Enabled {
		base.PII.Enabled = true
	}
	if cfg.PII.Strategy != "" {
		base.PII.Mask.Strategy = pii.MaskStrategy(cfg.PII.Strategy)
	}
	return base, nil
}
