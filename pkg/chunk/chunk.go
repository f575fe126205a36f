// Package chunk defines the data model produced by the preprocessing core:
// an ordered sequence of text chunks with position, size, and metadata,
// suitable for downstream embedding and vector-store ingestion.
package chunk

// Location gives a chunk's position within the original source text.
type Location struct {
	Start int `json:"start"`
	End   int `json:"end"`

	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	StartPage *int `json:"start_page,omitempty"`
	EndPage   *int `json:"end_page,omitempty"`

	// SectionPath is the breadcrumb "A > B > C" built from hierarchical
	// parent titles. Empty outside the hierarchical strategy.
	SectionPath string `json:"section_path,omitempty"`
}

// Metadata carries everything about a chunk that isn't its raw content.
type Metadata struct {
	Language     string `json:"language"`
	EstTokens    int    `json:"est_tokens"`
	Strategy     string `json:"strategy"`
	StartsAtBoundary bool `json:"starts_at_boundary"`
	EndsAtBoundary   bool `json:"ends_at_boundary"`
	ContainsHeader   bool `json:"contains_header"`

	// OverlapFromPrevious is the leading text of this chunk that duplicates
	// the trailing text of its predecessor, when overlap_size > 0.
	OverlapFromPrevious string `json:"overlap_from_previous,omitempty"`

	Quality float64 `json:"quality"`
	Density float64 `json:"density"`

	// Custom carries extensible key-value pairs. Hierarchy chunking uses
	// the stable keys HierarchyLevel, ParentId, ChildIds, SectionTitle.
	Custom map[string]interface{} `json:"custom,omitempty"`
}

// Hierarchy custom-metadata keys, stable across the wire.
const (
	KeyHierarchyLevel = "HierarchyLevel"
	KeyParentID       = "ParentId"
	KeyChildIDs       = "ChildIds"
	KeySectionTitle   = "SectionTitle"
)

// Chunk is an ordered piece of the source text.
type Chunk struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	Index      int      `json:"index"`
	TotalCount int      `json:"total"`
	Location   Location `json:"location"`
	Metadata   Metadata `json:"metadata"`

	// Embedding is not set by any chunker, including the semantic one; it
	// stays nil unless a caller fills it.
	Embedding []float32 `json:"embedding,omitempty"`
}

// ParentID returns the hierarchy parent id, if this chunk has one.
func (c *Chunk) ParentID() (string, bool) {
	if c.Metadata.Custom == nil {
		return "", false
	}
	v, ok := c.Metadata.Custom[KeyParentID]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// ChildIDs returns the hierarchy child ids, if any are set.
func (c *Chunk) ChildIDs() []string {
	if c.Metadata.Custom == nil {
		return nil
	}
	v, ok := c.Metadata.Custom[KeyChildIDs]
	if !ok {
		return nil
	}
	ids, _ := v.([]string)
	return ids
}

// HierarchyLevel returns the hierarchy level (1 = top), or 0 if unset.
func (c *Chunk) HierarchyLevel() int {
	if c.Metadata.Custom == nil {
		return 0
	}
	v, ok := c.Metadata.Custom[KeyHierarchyLevel]
	if !ok {
		return 0
	}
	lvl, _ := v.(int)
	return lvl
}

// SetCustom sets a custom metadata key, initializing the map if needed.
func (c *Chunk) SetCustom(key string, value interface{}) {
	if c.Metadata.Custom == nil {
		c.Metadata.Custom = make(map[string]interface{})
	}
	c.Metadata.Custom[key] = value
}

// Reindex sets Index = 0..N-1 and TotalCount = N across the list in place.
func Reindex(chunks []*Chunk) {
	n := len(chunks)
	for i, c := range chunks {
		c.Index = i
		c.TotalCount = n
	}
}
