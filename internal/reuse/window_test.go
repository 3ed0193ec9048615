package reuse

import (
	"fmt"
	"testing"
)

// memDoc is an in-memory Document for tests.
type memDoc struct {
	id     uint32
	lemmas []uint32
	roots  []uint32
}

func (d *memDoc) ID() uint32        { return d.id }
func (d *memDoc) TokenCount() int   { return len(d.lemmas) }
func (d *memDoc) Lemmas() []uint32  { return d.lemmas }
func (d *memDoc) Roots() []uint32   { return d.roots }
func (d *memDoc) Location(start, end int) string {
	return fmt.Sprintf("%d..%d", start, end)
}

// newMemDoc builds a document whose roots default to lemma ids.
func newMemDoc(id uint32, lemmas []uint32) *memDoc {
	roots := make([]uint32, len(lemmas))
	copy(roots, lemmas)
	return &memDoc{id: id, lemmas: lemmas, roots: roots}
}

// seq returns lemma ids start..start+n-1.
func seq(start uint32, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = start + uint32(i)
	}
	return out
}

func windowParams(size, stride int) *Params {
	p := DefaultParams()
	p.WindowSize = size
	p.Stride = stride
	return &p
}

func TestWindowsOverlapping(t *testing.T) {
	doc := newMemDoc(1, seq(0, 10))
	windows := Windows(doc, windowParams(4, 2))

	want := [][2]int{{0, 4}, {2, 6}, {4, 8}, {6, 10}}
	if len(windows) != len(want) {
		t.Fatalf("got %d windows, want %d", len(windows), len(want))
	}
	for i, w := range windows {
		if w.Start != want[i][0] || w.End != want[i][1] {
			t.Errorf("window %d: got [%d,%d), want [%d,%d)", i, w.Start, w.End, want[i][0], want[i][1])
		}
		if w.Index != i {
			t.Errorf("window %d: index %d", i, w.Index)
		}
		if len(w.Lemmas) != w.Len() || len(w.Roots) != w.Len() {
			t.Errorf("window %d: slice lengths disagree with range", i)
		}
	}
}

func TestWindowsTrailingPartial(t *testing.T) {
	doc := newMemDoc(1, seq(0, 10))
	windows := Windows(doc, windowParams(4, 8))

	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	last := windows[1]
	if last.Start != 8 || last.End != 10 {
		t.Errorf("partial window: got [%d,%d), want [8,10)", last.Start, last.End)
	}
}

func TestWindowsStopAfterStreamEnd(t *testing.T) {
	// Once a window reaches the end of the stream, no further windows
	// are emitted even if another stride would still start in range.
	doc := newMemDoc(1, seq(0, 10))
	windows := Windows(doc, windowParams(8, 2))

	if last := windows[len(windows)-1]; last.End != 10 {
		t.Fatalf("last window ends at %d, want 10", last.End)
	}
	for i, w := range windows[:len(windows)-1] {
		if w.End == 10 {
			t.Errorf("window %d already reached the end", i)
		}
	}
}

func TestWindowsShortDocument(t *testing.T) {
	doc := newMemDoc(1, seq(0, 3))
	windows := Windows(doc, windowParams(275, 60))

	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	if windows[0].Start != 0 || windows[0].End != 3 {
		t.Errorf("got [%d,%d), want [0,3)", windows[0].Start, windows[0].End)
	}
}

func TestWindowsEmptyDocument(t *testing.T) {
	doc := newMemDoc(1, nil)
	if windows := Windows(doc, windowParams(275, 60)); windows != nil {
		t.Fatalf("got %d windows for an empty document", len(windows))
	}
}

func TestWindowsAreViews(t *testing.T) {
	lemmas := seq(0, 10)
	doc := newMemDoc(1, lemmas)
	windows := Windows(doc, windowParams(4, 2))

	lemmas[2] = 999
	if windows[0].Lemmas[2] != 999 {
		t.Error("window lemmas are a copy, want a view of the stream")
	}
}
