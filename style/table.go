package style

import (
	"github.com/tsawler/docxconv/border"
	"github.com/tsawler/docxconv/model"
)

// TableStyle is the effective formatting of a table.
type TableStyle struct {
	StyleID string

	// Borders keeps nil edges for "not declared anywhere"; the border
	// package treats them as invisible.
	Borders   model.BorderSet
	Width     model.Width // Type is auto when undeclared
	Layout    model.TableLayout
	Alignment model.Alignment
	Shading   string // fill hex, "" for none
}

// CellStyle is the effective formatting of a table cell. Borders are
// complete: cell edges layered over the table style's cell edges, then over
// the resolved table borders by grid position.
type CellStyle struct {
	Borders  model.BorderSet
	Shading  string
	Width    model.Width
	VAlign   string // top, center or bottom
	ColSpan  int
	RowSpan  int
	IsHeader bool
}

// tableStyleID returns the table's own style or the default table style.
func (r *Resolver) tableStyleID(t *model.Table) string {
	if t != nil && t.Properties.StyleID != "" {
		return t.Properties.StyleID
	}
	if def, ok := r.styles.Default(model.StyleTable); ok {
		return def.ID
	}
	return ""
}

// ResolveTable returns the effective formatting of t: direct properties,
// then the table style chain.
func (r *Resolver) ResolveTable(t *model.Table) TableStyle {
	var props model.TableProperties
	if t != nil {
		props = t.Properties
	}
	styleID := r.tableStyleID(t)
	fillTable(&props, r.tableLayer(styleID).table)

	ts := TableStyle{
		StyleID:   styleID,
		Borders:   props.Borders,
		Width:     model.Width{Type: model.WidthAuto},
		Layout:    model.LayoutAuto,
		Alignment: model.AlignLeft,
		Shading:   deref(props.Shading),
	}
	if props.Width != nil {
		ts.Width = *props.Width
	}
	if props.Layout != nil {
		ts.Layout = *props.Layout
	}
	if props.Alignment != nil {
		ts.Alignment = *props.Alignment
	}
	return ts
}

// ResolveCell returns the effective formatting of cell, which sits in row of
// table t.
func (r *Resolver) ResolveCell(t *model.Table, row *model.TableRow, cell *model.TableCell) CellStyle {
	cs := CellStyle{
		Width:   model.Width{Type: model.WidthAuto},
		VAlign:  "top",
		ColSpan: cell.ColSpan(),
		RowSpan: 1,
	}
	if cell == nil {
		return cs
	}
	if cell.RowSpan > 1 {
		cs.RowSpan = cell.RowSpan
	}
	if row != nil {
		cs.IsHeader = row.Properties.IsHeader
	}

	props := cell.Properties
	fillCell(&props, r.tableLayer(r.tableStyleID(t)).cell)
	cs.Shading = deref(props.Shading)
	if props.Width != nil {
		cs.Width = *props.Width
	}
	if props.VAlign != nil {
		cs.VAlign = *props.VAlign
	}

	layered := *cell
	layered.Properties.Borders = props.Borders
	cs.Borders = border.ForCell(r.ResolveTable(t).Borders, &layered, r.position(t, cell))
	return cs
}

// position finds cell in the grid layout of t.
func (r *Resolver) position(t *model.Table, cell *model.TableCell) border.Position {
	if t == nil {
		return border.Position{FirstRow: true, LastRow: true, FirstCol: true, LastCol: true}
	}
	layout, ok := r.layouts[t]
	if !ok {
		layout = border.Layout(t)
		r.layouts[t] = layout
	}
	for ri, row := range t.Rows {
		if row == nil {
			continue
		}
		for ci, c := range row.Cells {
			if c == cell {
				return layout[ri][ci]
			}
		}
	}
	return border.Position{}
}
