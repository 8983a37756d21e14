package textrender

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/docxconv/border"
	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/model"
)

// CellToText returns the text of a cell: the non-empty text of each of its
// paragraphs, joined with newlines. Nested tables are not included. A nil or
// merge-continuation cell yields "".
func CellToText(cell *model.TableCell) string {
	return newRenderer(nil, config.Default()).cellText(cell)
}

// RowToText joins the text of each cell of row with separator.
func RowToText(row *model.TableRow, separator string) string {
	return newRenderer(nil, config.Default()).rowText(row, separator)
}

// TableToText renders tbl in the given mode. Auto mode draws an ASCII box
// with the borders detected from the table's own properties, or falls back
// to tabs when it has none.
func TableToText(tbl *model.Table, mode config.TableMode) string {
	if tbl == nil {
		return ""
	}
	return newRenderer(nil, config.Default()).tableText(tbl, mode, border.Detect(tbl))
}

// TableToASCII draws tbl as a box using only the lines set in info.
func TableToASCII(tbl *model.Table, info border.Info) string {
	return newRenderer(nil, config.Default()).ascii(tbl, info)
}

// TableToTabs renders tbl with tab-separated cells, one row per line.
func TableToTabs(tbl *model.Table) string {
	return newRenderer(nil, config.Default()).separated(tbl, "\t")
}

// TableToPlain renders tbl with cells separated by two spaces.
func TableToPlain(tbl *model.Table) string {
	return newRenderer(nil, config.Default()).separated(tbl, "  ")
}

func (r *renderer) cellText(cell *model.TableCell) string {
	if cell == nil || cell.IsContinuation() {
		return ""
	}
	var parts []string
	for _, p := range cell.Paragraphs() {
		if text := r.paragraph(p); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func (r *renderer) rowText(row *model.TableRow, separator string) string {
	if row == nil {
		return ""
	}
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = r.cellText(c)
	}
	return strings.Join(cells, separator)
}

// tableText picks the drawing for mode. detected is only used in auto mode.
func (r *renderer) tableText(tbl *model.Table, mode config.TableMode, detected border.Info) string {
	if tbl == nil || len(tbl.Rows) == 0 {
		return ""
	}
	switch mode {
	case config.TableASCII:
		return r.ascii(tbl, border.Full())
	case config.TableTabs:
		return r.separated(tbl, "\t")
	case config.TablePlain:
		return r.separated(tbl, "  ")
	case config.TableAuto:
		if !detected.HasAny() {
			return r.separated(tbl, "\t")
		}
		return r.ascii(tbl, detected)
	}
	return r.separated(tbl, "\t")
}

func (r *renderer) separated(tbl *model.Table, separator string) string {
	if tbl == nil || len(tbl.Rows) == 0 {
		return ""
	}
	lines := make([]string, len(tbl.Rows))
	for i, row := range tbl.Rows {
		lines[i] = r.rowText(row, separator)
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) ascii(tbl *model.Table, info border.Info) string {
	if tbl == nil || len(tbl.Rows) == 0 {
		return ""
	}

	rows := make([][]string, len(tbl.Rows))
	cols := 0
	for i, row := range tbl.Rows {
		if row == nil {
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = strings.ReplaceAll(r.cellText(c), "\n", " ")
		}
		rows[i] = cells
		cols = max(cols, len(cells))
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i := range rows {
		for len(rows[i]) < cols {
			rows[i] = append(rows[i], "")
		}
		for j, text := range rows[i] {
			widths[j] = max(widths[j], utf8.RuneCountInString(text), 1)
		}
	}

	rule := hline(widths, info)
	var lines []string
	if info.Top {
		lines = append(lines, rule)
	}
	for i, cells := range rows {
		lines = append(lines, dataRow(cells, widths, info))
		if i < len(rows)-1 && info.InsideH {
			lines = append(lines, rule)
		}
	}
	if info.Bottom {
		lines = append(lines, rule)
	}
	return strings.Join(lines, "\n")
}

func hline(widths []int, info border.Info) string {
	var inner string
	if info.InsideV {
		segs := make([]string, len(widths))
		for i, w := range widths {
			segs[i] = strings.Repeat("-", w+2)
		}
		inner = strings.Join(segs, "+")
	} else {
		total := 3*(len(widths)-1) + 2
		for _, w := range widths {
			total += w
		}
		inner = strings.Repeat("-", total)
	}
	return edge(info.Left, "+", "-") + inner + edge(info.Right, "+", "-")
}

func dataRow(cells []string, widths []int, info border.Info) string {
	padded := make([]string, len(cells))
	for i, text := range cells {
		padded[i] = " " + text + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(text)) + " "
	}
	sep := " "
	if info.InsideV {
		sep = "|"
	}
	return edge(info.Left, "|", " ") + strings.Join(padded, sep) + edge(info.Right, "|", " ")
}

func edge(set bool, on, off string) string {
	if set {
		return on
	}
	return off
}
