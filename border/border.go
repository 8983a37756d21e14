// Package border resolves table borders.
//
// Two questions are answered here. Detect decides which of a table's six
// border lines are visible at all, which is what the text renderer needs to
// draw an ASCII box. ForCell computes the effective four edges of a single
// cell, which is what the HTML renderer puts on each <td>.
package border

import "github.com/tsawler/docxconv/model"

// Info records which border lines of a table are visible.
type Info struct {
	Top     bool
	Bottom  bool
	Left    bool
	Right   bool
	InsideH bool // lines between rows
	InsideV bool // lines between columns
}

// HasAny reports whether any line is visible.
func (i Info) HasAny() bool {
	return i.Top || i.Bottom || i.Left || i.Right || i.InsideH || i.InsideV
}

// Full returns an Info with every line visible.
func Full() Info {
	return Info{Top: true, Bottom: true, Left: true, Right: true, InsideH: true, InsideV: true}
}

// Detect reports the visible lines of a table from its direct borders,
// falling back to its cell borders.
func Detect(tbl *model.Table) Info {
	if tbl == nil {
		return Info{}
	}
	return DetectWith(tbl, tbl.Properties.Borders)
}

// DetectWith is Detect with an explicit table-level border set, typically
// the one resolved through the table style.
//
// When any table-level edge is visible the table-level values are used
// as-is. Otherwise cell borders are OR-aggregated by the cell's index within
// its row: a visible bottom edge on any row but the last counts as an
// inside-h line, a visible right edge on any cell but the last in its row
// counts as inside-v, and so on. Spans are not taken into account.
func DetectWith(tbl *model.Table, tableLevel model.BorderSet) Info {
	info := Info{
		Top:     tableLevel.Top.Visible(),
		Bottom:  tableLevel.Bottom.Visible(),
		Left:    tableLevel.Left.Visible(),
		Right:   tableLevel.Right.Visible(),
		InsideH: tableLevel.InsideH.Visible(),
		InsideV: tableLevel.InsideV.Visible(),
	}
	if info.HasAny() || tbl == nil {
		return info
	}

	last := len(tbl.Rows) - 1
	for r, row := range tbl.Rows {
		if row == nil {
			continue
		}
		for c, cell := range row.Cells {
			if cell == nil {
				continue
			}
			cb := cell.Properties.Borders
			lastCol := len(row.Cells) - 1
			if r == 0 && cb.Top.Visible() {
				info.Top = true
			}
			if r == last && cb.Bottom.Visible() {
				info.Bottom = true
			}
			if c == 0 && cb.Left.Visible() {
				info.Left = true
			}
			if c == lastCol && cb.Right.Visible() {
				info.Right = true
			}
			if (r < last && cb.Bottom.Visible()) || (r > 0 && cb.Top.Visible()) {
				info.InsideH = true
			}
			if (c < lastCol && cb.Right.Visible()) || (c > 0 && cb.Left.Visible()) {
				info.InsideV = true
			}
		}
	}
	return info
}

// Merge layers primary over fallback edge by edge: a declared primary edge
// wins, even when its style is none.
func Merge(primary, fallback model.BorderSet) model.BorderSet {
	return model.BorderSet{
		Top:     pick(primary.Top, fallback.Top),
		Bottom:  pick(primary.Bottom, fallback.Bottom),
		Left:    pick(primary.Left, fallback.Left),
		Right:   pick(primary.Right, fallback.Right),
		InsideH: pick(primary.InsideH, fallback.InsideH),
		InsideV: pick(primary.InsideV, fallback.InsideV),
	}
}

func pick(a, b *model.Border) *model.Border {
	if a != nil {
		return a
	}
	return b
}
