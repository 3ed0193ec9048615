// Package corpus loads tokenized document streams from a SQLite corpus
// store and reconstructs display text for result records.
package corpus

import (
	"fmt"
	"sort"
	"strings"
)

// Page is one page's token sequence with its resolved lemma and root ids.
type Page struct {
	PartIndex uint32
	PageID    uint32
	TokenIDs  []uint32
	LemmaIDs  []uint32
	RootIDs   []uint32
}

// Stream is the complete, read-only token stream of one document. It is
// immutable once loaded and shared by reference across the pipeline.
type Stream struct {
	docID   uint32
	pages   []Page
	tokens  []uint32
	lemmas  []uint32
	roots   []uint32
	offsets []pageOffset
}

type pageOffset struct {
	partIndex uint32
	pageID    uint32
	start     int
	end       int // exclusive
}

// NewStream assembles a stream from its pages, flattening the per-page
// arrays and indexing page boundaries for position lookups.
func NewStream(docID uint32, pages []Page) *Stream {
	s := &Stream{docID: docID, pages: pages}
	total := 0
	for _, p := range pages {
		total += len(p.TokenIDs)
	}
	s.tokens = make([]uint32, 0, total)
	s.lemmas = make([]uint32, 0, total)
	s.roots = make([]uint32, 0, total)
	s.offsets = make([]pageOffset, 0, len(pages))
	for _, p := range pages {
		start := len(s.tokens)
		s.tokens = append(s.tokens, p.TokenIDs...)
		s.lemmas = append(s.lemmas, p.LemmaIDs...)
		s.roots = append(s.roots, p.RootIDs...)
		s.offsets = append(s.offsets, pageOffset{
			partIndex: p.PartIndex,
			pageID:    p.PageID,
			start:     start,
			end:       len(s.tokens),
		})
	}
	return s
}

// ID returns the document id.
func (s *Stream) ID() uint32 { return s.docID }

// TokenCount returns the stream length.
func (s *Stream) TokenCount() int { return len(s.tokens) }

// PageCount returns the number of pages.
func (s *Stream) PageCount() int { return len(s.pages) }

// Pages returns the per-page structure of the stream. Read-only.
func (s *Stream) Pages() []Page { return s.pages }

// Lemmas returns the flat lemma-id array. Callers must treat it as
// read-only.
func (s *Stream) Lemmas() []uint32 { return s.lemmas }

// Roots returns the flat root-id array (0 = no root). Read-only.
func (s *Stream) Roots() []uint32 { return s.roots }

// Locate maps a global token position to (part, page, offset in page).
func (s *Stream) Locate(pos int) (part, page, offset uint32) {
	if len(s.offsets) == 0 {
		return 0, 0, 0
	}
	idx := sort.Search(len(s.offsets), func(i int) bool { return s.offsets[i].end > pos })
	if idx == len(s.offsets) {
		idx = len(s.offsets) - 1
	}
	po := s.offsets[idx]
	if pos < po.start {
		return po.partIndex, po.pageID, 0
	}
	return po.partIndex, po.pageID, uint32(pos - po.start)
}

// Location renders a half-open global range as a location label of the
// form "part:page.offset → part:page.offset". The end label points at
// the last token of the range.
func (s *Stream) Location(start, end int) string {
	sp, spg, so := s.Locate(start)
	last := end - 1
	if last < start {
		last = start
	}
	ep, epg, eo := s.Locate(last)
	return fmt.Sprintf("%d:%d.%d → %d:%d.%d", sp, spg, so, ep, epg, eo)
}

// PassageText is reconstructed display text for a passage, with
// surrounding context.
type PassageText struct {
	Before  string `json:"before"`
	Matched string `json:"matched"`
	After   string `json:"after"`
}

// ContextText reconstructs the surface text of a global range plus
// contextTokens of surrounding context, using the token-id → surface
// mapping.
func (s *Stream) ContextText(start, end, contextTokens int, surface []string) PassageText {
	n := len(s.tokens)
	ctxStart := start - contextTokens
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := end + contextTokens
	if ctxEnd > n {
		ctxEnd = n
	}
	return PassageText{
		Before:  s.surfaceText(ctxStart, start, surface),
		Matched: s.surfaceText(start, end, surface),
		After:   s.surfaceText(end, ctxEnd, surface),
	}
}

func (s *Stream) surfaceText(start, end int, surface []string) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	if start >= end {
		return ""
	}
	words := make([]string, 0, end-start)
	for _, tid := range s.tokens[start:end] {
		if int(tid) < len(surface) && surface[tid] != "" {
			words = append(words, surface[tid])
		}
	}
	return strings.Join(words, " ")
}
