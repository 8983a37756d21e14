package htmlrender

import (
	"strings"
	"unicode"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/numbering"
	"github.com/tsawler/docxconv/style"
	"github.com/tsawler/docxconv/units"
)

// decl is one CSS declaration.
type decl struct {
	prop  string
	value string
}

// decls is an ordered declaration list. Order is fixed by construction so
// that output is deterministic.
type decls []decl

func (d *decls) add(prop, value string) {
	*d = append(*d, decl{prop, value})
}

func (d decls) String() string {
	var sb strings.Builder
	for i, x := range d {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(x.prop)
		sb.WriteByte(':')
		sb.WriteString(x.value)
	}
	return sb.String()
}

// without drops the named properties.
func (d decls) without(props ...string) decls {
	var out decls
	for _, x := range d {
		drop := false
		for _, p := range props {
			if x.prop == p {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, x)
		}
	}
	return out
}

var impliedStyles = map[string]string{
	"strong": "font-weight:bold",
	"b":      "font-weight:bold",
	"em":     "font-style:italic",
	"i":      "font-style:italic",
	"u":      "text-decoration:underline",
	"s":      "text-decoration:line-through",
	"sub":    "vertical-align:sub",
	"sup":    "vertical-align:super",
	"th":     "font-weight:bold",
}

// ImpliedStyles returns the CSS a semantic tag implies, such as
// "font-weight:bold" for strong, or "" for tags with no implied style.
func ImpliedStyles(tag string) string {
	return impliedStyles[strings.ToLower(tag)]
}

// paragraphCSS returns the paragraph declarations that differ from the
// built-in defaults. list is nil for paragraphs that are not list items.
func paragraphCSS(ps style.ParagraphStyle, list *numbering.Result) decls {
	var d decls
	switch ps.Alignment {
	case model.AlignCenter:
		d.add("text-align", "center")
	case model.AlignRight:
		d.add("text-align", "right")
	case model.AlignJustify, model.AlignDistribute:
		d.add("text-align", "justify")
	}

	left := units.TwipsToPoints(ps.IndentLeft)
	indent := units.TwipsToPoints(ps.FirstLine)
	if ps.Hanging > 0 {
		indent = -units.TwipsToPoints(ps.Hanging)
	}
	if list != nil && !ps.DirectIndent {
		left, indent = list.IndentPt, list.TextIndentPt
	}
	if left != 0 {
		d.add("margin-left", units.Pt(left))
	}
	if ps.IndentRight != 0 {
		d.add("margin-right", units.Pt(units.TwipsToPoints(ps.IndentRight)))
	}
	if indent != 0 {
		d.add("text-indent", units.Pt(indent))
	}
	if ps.SpaceBefore != 0 {
		d.add("margin-top", units.Pt(units.TwipsToPoints(ps.SpaceBefore)))
	}
	if ps.SpaceAfter != 0 {
		d.add("margin-bottom", units.Pt(units.TwipsToPoints(ps.SpaceAfter)))
	}
	if ps.Line > 0 {
		switch ps.LineRule {
		case model.LineExact, model.LineAtLeast:
			d.add("line-height", units.Pt(units.TwipsToPoints(ps.Line)))
		default:
			if ps.Line != 240 {
				d.add("line-height", units.FormatNumber(float64(ps.Line)/240))
			}
		}
	}
	if ps.PageBreakBefore {
		d.add("page-break-before", "always")
	}
	return d
}

// runCSS returns the run declarations that differ from base, the
// formatting of an unstyled run.
func runCSS(rs, base style.RunStyle) decls {
	var d decls
	if rs.Bold != base.Bold {
		d.add("font-weight", choose(rs.Bold, "bold", "normal"))
	}
	if rs.Italic != base.Italic {
		d.add("font-style", choose(rs.Italic, "italic", "normal"))
	}
	if td := textDecoration(rs); td != textDecoration(base) {
		d.add("text-decoration", td)
	}
	if rs.Color != base.Color {
		d.add("color", cssColor(rs.Color, "inherit"))
	}
	if rs.Highlight != base.Highlight {
		d.add("background-color", highlightColor(rs.Highlight))
	}
	if rs.FontSize != base.FontSize {
		d.add("font-size", units.Pt(units.HalfPointsToPoints(rs.FontSize)))
	}
	if rs.FontFamily != base.FontFamily {
		ff := fontFamily(rs.FontFamily)
		if ff == "" {
			ff = "inherit"
		}
		d.add("font-family", ff)
	}
	if rs.SmallCaps != base.SmallCaps {
		d.add("font-variant", choose(rs.SmallCaps, "small-caps", "normal"))
	}
	if rs.AllCaps != base.AllCaps {
		d.add("text-transform", choose(rs.AllCaps, "uppercase", "none"))
	}
	if rs.VertAlign != base.VertAlign {
		switch rs.VertAlign {
		case model.VertSuperscript:
			d.add("vertical-align", "super")
		case model.VertSubscript:
			d.add("vertical-align", "sub")
		default:
			d.add("vertical-align", "baseline")
		}
	}
	return d
}

func textDecoration(rs style.RunStyle) string {
	var lines []string
	if rs.IsUnderlined() {
		lines = append(lines, "underline")
	}
	if rs.Strike || rs.DoubleStrike {
		lines = append(lines, "line-through")
	}
	if len(lines) == 0 {
		return "none"
	}
	switch {
	case rs.DoubleStrike, rs.Underline == model.UnderlineDouble:
		lines = append(lines, "double")
	case rs.Underline == model.UnderlineWavy:
		lines = append(lines, "wavy")
	case rs.Underline == model.UnderlineDotted:
		lines = append(lines, "dotted")
	case rs.Underline == model.UnderlineDashed:
		lines = append(lines, "dashed")
	}
	return strings.Join(lines, " ")
}

func tableCSS(ts style.TableStyle) decls {
	var d decls
	d.add("border-collapse", "collapse")
	if w := cssWidth(ts.Width); w != "" {
		d.add("width", w)
	}
	if ts.Layout == model.LayoutFixed {
		d.add("table-layout", "fixed")
	}
	switch ts.Alignment {
	case model.AlignCenter:
		d.add("margin-left", "auto")
		d.add("margin-right", "auto")
	case model.AlignRight:
		d.add("margin-left", "auto")
	}
	if ts.Shading != "" {
		d.add("background-color", cssColor(ts.Shading, "transparent"))
	}
	return d
}

func cellCSS(cs style.CellStyle) decls {
	var d decls
	d.add("border-top", borderCSS(cs.Borders.Top))
	d.add("border-right", borderCSS(cs.Borders.Right))
	d.add("border-bottom", borderCSS(cs.Borders.Bottom))
	d.add("border-left", borderCSS(cs.Borders.Left))
	if cs.Shading != "" {
		d.add("background-color", cssColor(cs.Shading, "transparent"))
	}
	switch cs.VAlign {
	case "center":
		d.add("vertical-align", "middle")
	case "bottom":
		d.add("vertical-align", "bottom")
	}
	if w := cssWidth(cs.Width); w != "" {
		d.add("width", w)
	}
	return d
}

// borderCSS formats one edge as "<width> <style> <color>", or "none".
func borderCSS(b *model.Border) string {
	if !b.Visible() {
		return "none"
	}
	size := b.Size
	if size <= 0 {
		size = 4
	}
	width := units.EighthsToPoints(size)
	if b.Style == "thick" && width < 1.5 {
		width = 1.5
	}
	return units.Pt(width) + " " + borderStyle(b.Style) + " " + cssColor(b.Color, "#000000")
}

func borderStyle(s string) string {
	switch s {
	case "double", "triple":
		return "double"
	case "dotted":
		return "dotted"
	case "dashed", "dashSmallGap", "dotDash", "dotDotDash", "dashDotStroked":
		return "dashed"
	case "inset", "outset", "groove", "ridge":
		return s
	case "threeDEmboss":
		return "ridge"
	case "threeDEngrave":
		return "groove"
	}
	return "solid"
}

func cssWidth(w model.Width) string {
	switch w.Type {
	case model.WidthPercent:
		if w.Value > 0 {
			return units.FormatNumber(w.Percent()) + "%"
		}
	case model.WidthTwips:
		if w.Value > 0 {
			return units.Pt(units.TwipsToPoints(w.Value))
		}
	}
	return ""
}

// cssColor turns a six-digit hex value into "#RRGGBB". Anything else,
// including "" and "auto", yields def.
func cssColor(hex, def string) string {
	if !isHexColor(hex) {
		return def
	}
	return "#" + strings.ToUpper(hex)
}

func isHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// highlightColors maps w:highlight names to their rendered colors.
var highlightColors = map[string]string{
	"black":       "#000000",
	"blue":        "#0000FF",
	"cyan":        "#00FFFF",
	"green":       "#00FF00",
	"magenta":     "#FF00FF",
	"red":         "#FF0000",
	"yellow":      "#FFFF00",
	"white":       "#FFFFFF",
	"darkBlue":    "#000080",
	"darkCyan":    "#008080",
	"darkGreen":   "#008000",
	"darkMagenta": "#800080",
	"darkRed":     "#800000",
	"darkYellow":  "#808000",
	"darkGray":    "#808080",
	"lightGray":   "#C0C0C0",
}

func highlightColor(h string) string {
	if h == "" || h == "none" {
		return "transparent"
	}
	if c, ok := highlightColors[h]; ok {
		return c
	}
	return cssColor(h, "transparent")
}

// fontFamily reduces name to letters, digits, spaces, '-' and '_', and
// quotes it when it has a space. It returns "" when nothing is left.
func fontFamily(name string) string {
	clean := strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == ' ' || c == '-' || c == '_' {
			return c
		}
		return -1
	}, name)
	clean = strings.Join(strings.Fields(clean), " ")
	if strings.Contains(clean, " ") {
		return "'" + clean + "'"
	}
	return clean
}

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
