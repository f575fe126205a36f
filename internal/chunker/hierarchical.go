package chunker

import (
	"context"
	"regexp"
	"strings"

	"ragprep/internal/language"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"

	"github.com/google/uuid"
)

// markdownHeadingRe captures ATX heading depth directly (the generic
// language.Profile section detector reports only the title, not depth),
// since hierarchy nesting in this strategy is built from markdown heading
// level specifically, generalizing the teacher's MarkdownChunker heading
// split into a parent/child forest instead of a flat section list.
var markdownHeadingRe = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+)$`)

type heading struct {
	level      int
	title      string
	matchStart int
	matchEnd   int // end of the heading line
}

// HierarchicalChunker builds a parent/child forest keyed by markdown
// heading depth: each heading becomes a chunk carrying its immediate
// prose (split further if it exceeds MaxSize), linked to its nearest
// shallower heading via KeyParentID/KeyChildIDs. Content with no headings
// falls back to SentenceChunker's flat output.
type HierarchicalChunker struct{}

func (HierarchicalChunker) Chunk(ctx context.Context, text string, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error) {
	if text == "" {
		return nil, nil
	}
	headings := findHeadings(text)
	if len(headings) == 0 {
		return SentenceChunker{}.Chunk(ctx, text, profile, opts)
	}

	var chunks []*chunk.Chunk
	type stackEntry struct {
		level int
		id    string
		path  string
	}
	var stack []stackEntry

	if headings[0].matchStart > 0 {
		preamble := text[:headings[0].matchStart]
		chunks = append(chunks, sectionChunks(preamble, 0, 0, "", profile, opts, chunkopt.Hierarchical)...)
	}

	for i, h := range headings {
		contentEnd := len(text)
		if i+1 < len(headings) {
			contentEnd = headings[i+1].matchStart
		}
		content := text[h.matchEnd:contentEnd]

		for len(stack) > 0 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}
		var parentID string
		path := h.title
		if len(stack) > 0 {
			parentID = stack[len(stack)-1].id
			path = stack[len(stack)-1].path + " > " + h.title
		}

		section := sectionChunks(content, h.matchEnd, h.level, path, profile, opts, chunkopt.Hierarchical)
		if len(section) == 0 {
			// A heading with no body still occupies a node in the tree so
			// deeper headings have somewhere to attach.
			c := newChunk(uuid.NewString(), h.title, h.matchStart, h.matchEnd, profile, opts, chunkopt.Hierarchical)
			c.Location.SectionPath = path
			c.Metadata.ContainsHeader = true
			section = []*chunk.Chunk{c}
		}
		for _, c := range section {
			c.SetCustom(chunk.KeyHierarchyLevel, h.level)
			if parentID != "" {
				c.SetCustom(chunk.KeyParentID, parentID)
			}
			c.SetCustom(chunk.KeySectionTitle, h.title)
		}
		section[0].Metadata.ContainsHeader = true

		if parentID != "" {
			linkChild(chunks, parentID, section[0].ID)
		}
		for _, sib := range section[1:] {
			if parentID != "" {
				linkChild(chunks, parentID, sib.ID)
			}
		}

		chunks = append(chunks, section...)
		stack = append(stack, stackEntry{level: h.level, id: section[0].ID, path: path})
	}

	chunk.Reindex(chunks)
	return chunks, nil
}

func linkChild(chunks []*chunk.Chunk, parentID, childID string) {
	for _, c := range chunks {
		if c.ID == parentID {
			existing := c.ChildIDs()
			c.SetCustom(chunk.KeyChildIDs, append(existing, childID))
			return
		}
	}
}

// sectionChunks splits one section's body into one or more chunks via
// sentence boundaries, or returns nil for an empty/whitespace-only body.
// baseOffset is the section body's starting byte offset within the
// original document, added back onto each chunk's Location.
func sectionChunks(content string, baseOffset, level int, title string, profile language.Profile, opts chunkopt.Options, strategy chunkopt.Strategy) []*chunk.Chunk {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	bounds := profile.FindSentenceBoundaries(content)
	spans := buildFromBoundaries(content, bounds, profile, opts)
	out := spansToChunks(content, spans, profile, opts, strategy)
	for _, c := range out {
		c.Location.Start += baseOffset
		c.Location.End += baseOffset
		if title != "" {
			c.Location.SectionPath = title
		}
	}
	return out
}

func findHeadings(text string) []heading {
	matches := markdownHeadingRe.FindAllStringSubmatchIndex(text, -1)
	out := make([]heading, 0, len(matches))
	for _, m := range matches {
		level := m[3] - m[2]
		title := strings.TrimSpace(text[m[4]:m[5]])
		out = append(out, heading{level: level, title: title, matchStart: m[0], matchEnd: m[1]})
	}
	return out
}
