package model

// Border is a single border edge (w:top, w:left, ...).
type Border struct {
	Style string // single, double, dotted, dashed, thick, none, nil, ...
	Size  int    // eighths of a point
	Color string // RGB hex or "auto"
	Space int    // points
}

// Visible reports whether the edge is declared with a drawing style.
// A nil edge, an empty style and the styles "none" and "nil" are invisible.
func (b *Border) Visible() bool {
	return b != nil && b.Style != "" && b.Style != "none" && b.Style != "nil"
}

// BorderSet holds the edges of a table (all six) or a cell (the first four).
// A nil edge means "not declared at this level".
type BorderSet struct {
	Top     *Border
	Bottom  *Border
	Left    *Border
	Right   *Border
	InsideH *Border
	InsideV *Border
}

// IsZero reports whether no edge is declared.
func (s BorderSet) IsZero() bool {
	return s.Top == nil && s.Bottom == nil && s.Left == nil && s.Right == nil &&
		s.InsideH == nil && s.InsideV == nil
}
