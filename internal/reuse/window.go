package reuse

// Window is a half-open view into a document's token stream. Lemmas and
// Roots are subslices of the document's flat arrays, never copies.
type Window struct {
	DocID  uint32
	Index  int
	Start  int
	End    int
	Lemmas []uint32
	Roots  []uint32
}

// Len returns the number of tokens in the window.
func (w *Window) Len() int { return w.End - w.Start }

// Windows slices a document into overlapping windows of WindowSize
// tokens, starting every Stride tokens. The final window may be shorter
// than WindowSize; a zero-length window is never emitted. Params must be
// validated before calling.
func Windows(doc Document, p *Params) []Window {
	lemmas := doc.Lemmas()
	roots := doc.Roots()
	n := len(lemmas)
	if n == 0 {
		return nil
	}

	var windows []Window
	for start := 0; start < n; start += p.Stride {
		end := start + p.WindowSize
		if end > n {
			end = n
		}
		windows = append(windows, Window{
			DocID:  doc.ID(),
			Index:  len(windows),
			Start:  start,
			End:    end,
			Lemmas: lemmas[start:end],
			Roots:  roots[start:end],
		})
		if end == n {
			break
		}
	}
	return windows
}
