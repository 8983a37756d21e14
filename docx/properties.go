package docx

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
)

// paragraphProperties parses w:pPr.
func (b *builder) paragraphProperties(n *xmlquery.Node) model.ParagraphProperties {
	var pp model.ParagraphProperties
	for _, c := range elements(n) {
		if !inW(c) {
			continue
		}
		switch c.Data {
		case "pStyle":
			pp.StyleID = val(c)
		case "jc":
			if a, ok := b.alignment(val(c)); ok {
				pp.Alignment = &a
			}
		case "ind":
			pp.Indent = indent(c)
		case "spacing":
			pp.Spacing = b.spacing(c)
		case "numPr":
			pp.Numbering = numberingRef(c)
		case "outlineLvl":
			if v, err := strconv.Atoi(val(c)); err == nil && v >= 0 && v <= 9 {
				pp.OutlineLevel = model.Ptr(v)
			}
		case "pageBreakBefore":
			if v, ok := onOff(c); ok {
				pp.PageBreakBefore = model.Ptr(v)
			}
		case "keepNext":
			if v, ok := onOff(c); ok {
				pp.KeepNext = model.Ptr(v)
			}
		case "rPr":
			pp.MarkRun = b.runProperties(c)
		}
	}
	return pp
}

func (b *builder) alignment(v string) (model.Alignment, bool) {
	switch v {
	case "left", "start":
		return model.AlignLeft, true
	case "center":
		return model.AlignCenter, true
	case "right", "end":
		return model.AlignRight, true
	case "both", "lowKashida", "mediumKashida", "highKashida", "thaiDistribute":
		return model.AlignJustify, true
	case "distribute":
		return model.AlignDistribute, true
	}
	b.unsupportedValue("jc", v)
	return "", false
}

// indent parses w:ind. "start"/"end" are the Strict spellings of
// left/right.
func indent(n *xmlquery.Node) model.Indent {
	var ind model.Indent
	if v, ok := firstInt(n, "left", "start"); ok {
		ind.Left = model.Ptr(v)
	}
	if v, ok := firstInt(n, "right", "end"); ok {
		ind.Right = model.Ptr(v)
	}
	if v, ok := intAttr(n, "hanging"); ok {
		ind.Hanging = model.Ptr(v)
	}
	if v, ok := intAttr(n, "firstLine"); ok {
		ind.FirstLine = model.Ptr(v)
	}
	return ind
}

func firstInt(n *xmlquery.Node, names ...string) (int, bool) {
	for _, name := range names {
		if v, ok := intAttr(n, name); ok {
			return v, true
		}
	}
	return 0, false
}

func (b *builder) spacing(n *xmlquery.Node) model.Spacing {
	var sp model.Spacing
	if v, ok := intAttr(n, "before"); ok {
		sp.Before = model.Ptr(v)
	}
	if v, ok := intAttr(n, "after"); ok {
		sp.After = model.Ptr(v)
	}
	if v, ok := intAttr(n, "line"); ok {
		sp.Line = model.Ptr(v)
	}
	if rule, ok := attr(n, "lineRule"); ok {
		switch model.LineRule(rule) {
		case model.LineAuto, model.LineExact, model.LineAtLeast:
			sp.LineRule = model.Ptr(model.LineRule(rule))
		default:
			b.unsupportedValue("lineRule", rule)
		}
	}
	return sp
}

// numberingRef parses w:numPr. A missing ilvl means level 0.
func numberingRef(n *xmlquery.Node) *model.NumberingRef {
	id := child(n, "numId")
	if id == nil {
		return nil
	}
	ref := &model.NumberingRef{NumID: val(id)}
	if lvl := child(n, "ilvl"); lvl != nil {
		if v, err := strconv.Atoi(val(lvl)); err == nil {
			ref.Level = v
		}
	}
	return ref
}

// runProperties parses w:rPr.
func (b *builder) runProperties(n *xmlquery.Node) model.RunProperties {
	var rp model.RunProperties
	flag := func(dst **bool, c *xmlquery.Node) {
		if v, ok := onOff(c); ok {
			*dst = model.Ptr(v)
		} else {
			b.unsupportedValue(c.Data, val(c))
		}
	}
	for _, c := range elements(n) {
		if !inW(c) {
			continue
		}
		switch c.Data {
		case "rStyle":
			rp.StyleID = val(c)
		case "b":
			flag(&rp.Bold, c)
		case "i":
			flag(&rp.Italic, c)
		case "strike":
			flag(&rp.Strike, c)
		case "dstrike":
			flag(&rp.DoubleStrike, c)
		case "smallCaps":
			flag(&rp.SmallCaps, c)
		case "caps":
			flag(&rp.AllCaps, c)
		case "vanish":
			flag(&rp.Hidden, c)
		case "u":
			if u, ok := b.underline(val(c)); ok {
				rp.Underline = &u
			}
		case "color":
			if v := val(c); isHexColor(v) {
				rp.Color = model.Ptr(strings.ToUpper(v))
			} else if v != "" && !strings.EqualFold(v, "auto") {
				b.unsupportedValue("color", v)
			}
		case "highlight":
			if v := val(c); isColorName(v) && v != "none" {
				rp.Highlight = model.Ptr(v)
			} else if v != "" && v != "none" {
				b.unsupportedValue("highlight", v)
			}
		case "shd":
			// Run shading behaves like a highlight when no highlight is set.
			if fill, _ := attr(c, "fill"); rp.Highlight == nil && isHexColor(fill) {
				rp.Highlight = model.Ptr(strings.ToUpper(fill))
			}
		case "sz":
			if v, err := strconv.Atoi(val(c)); err == nil && v > 0 {
				rp.FontSize = model.Ptr(v)
			}
		case "rFonts":
			if f, ok := firstAttr(c, "ascii", "hAnsi", "cs", "eastAsia"); ok {
				rp.FontFamily = model.Ptr(f)
			}
		case "vertAlign":
			switch v := model.VerticalAlign(val(c)); v {
			case model.VertBaseline, model.VertSuperscript, model.VertSubscript:
				rp.VertAlign = &v
			default:
				b.unsupportedValue("vertAlign", string(v))
			}
		}
	}
	return rp
}

func firstAttr(n *xmlquery.Node, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := attr(n, name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// underline folds Word's underline variants onto the model's kinds.
func (b *builder) underline(v string) (model.Underline, bool) {
	switch v {
	case "", "single", "words":
		return model.UnderlineSingle, true
	case "none":
		return model.UnderlineNone, true
	case "double":
		return model.UnderlineDouble, true
	case "thick":
		return model.UnderlineThick, true
	case "wave", "wavyHeavy", "wavyDouble":
		return model.UnderlineWavy, true
	case "dotted", "dottedHeavy":
		return model.UnderlineDotted, true
	case "dash", "dashedHeavy", "dashLong", "dashLongHeavy", "dotDash",
		"dashDotHeavy", "dotDotDash", "dashDotDotHeavy":
		return model.UnderlineDashed, true
	}
	b.unsupportedValue("u", v)
	return "", false
}

// isColorName reports whether s is a plain ASCII word such as "darkBlue".
func isColorName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

func isHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

// tableProperties parses w:tblPr.
func (b *builder) tableProperties(n *xmlquery.Node) model.TableProperties {
	var tp model.TableProperties
	for _, c := range elements(n) {
		if !inW(c) {
			continue
		}
		switch c.Data {
		case "tblStyle":
			tp.StyleID = val(c)
		case "tblBorders":
			tp.Borders = borderSet(c)
		case "tblW":
			tp.Width = b.width(c)
		case "tblLayout":
			if typ, _ := attr(c, "type"); typ == "fixed" {
				tp.Layout = model.Ptr(model.LayoutFixed)
			} else {
				tp.Layout = model.Ptr(model.LayoutAuto)
			}
		case "jc":
			if a, ok := b.alignment(val(c)); ok {
				tp.Alignment = &a
			}
		case "shd":
			if fill, _ := attr(c, "fill"); isHexColor(fill) {
				tp.Shading = model.Ptr(strings.ToUpper(fill))
			}
		}
	}
	return tp
}

// cellProperties parses w:tcPr.
func (b *builder) cellProperties(n *xmlquery.Node) model.CellProperties {
	cp := model.CellProperties{GridSpan: 1}
	for _, c := range elements(n) {
		if !inW(c) {
			continue
		}
		switch c.Data {
		case "tcBorders":
			cp.Borders = borderSet(c)
		case "shd":
			if fill, _ := attr(c, "fill"); isHexColor(fill) {
				cp.Shading = model.Ptr(strings.ToUpper(fill))
			}
		case "tcW":
			cp.Width = b.width(c)
		case "vAlign":
			switch v := val(c); v {
			case "top", "center", "bottom":
				cp.VAlign = model.Ptr(v)
			case "both":
				cp.VAlign = model.Ptr("center")
			default:
				b.unsupportedValue("vAlign", v)
			}
		case "gridSpan":
			if v, err := strconv.Atoi(val(c)); err == nil && v > 1 {
				cp.GridSpan = v
			}
		case "vMerge":
			// A w:vMerge without w:val continues the span above.
			if v, _ := attr(c, "val"); v == "restart" {
				cp.Merge = model.MergeRestart
			} else {
				cp.Merge = model.MergeContinue
			}
		}
	}
	return cp
}

// borderSet parses w:tblBorders or w:tcBorders. "start"/"end" are the
// Strict spellings of left/right.
func borderSet(n *xmlquery.Node) model.BorderSet {
	var bs model.BorderSet
	for _, c := range elements(n) {
		if !inW(c) {
			continue
		}
		edge := parseBorder(c)
		switch c.Data {
		case "top":
			bs.Top = edge
		case "bottom":
			bs.Bottom = edge
		case "left", "start":
			bs.Left = edge
		case "right", "end":
			bs.Right = edge
		case "insideH":
			bs.InsideH = edge
		case "insideV":
			bs.InsideV = edge
		}
	}
	return bs
}

func parseBorder(n *xmlquery.Node) *model.Border {
	bd := &model.Border{Style: val(n), Color: "auto"}
	if v, ok := intAttr(n, "sz"); ok {
		bd.Size = v
	}
	if v, ok := intAttr(n, "space"); ok {
		bd.Space = v
	}
	if c, ok := attr(n, "color"); ok && isHexColor(c) {
		bd.Color = strings.ToUpper(c)
	}
	return bd
}

// width parses w:tblW/w:tcW. Strict documents write percentages as "50%".
func (b *builder) width(n *xmlquery.Node) *model.Width {
	typ, _ := attr(n, "type")
	raw, _ := attr(n, "w")
	w := &model.Width{Type: model.WidthType(typ)}
	switch w.Type {
	case "", model.WidthTwips:
		w.Type = model.WidthTwips
	case model.WidthAuto, model.WidthNil:
		return w
	case model.WidthPercent:
		if strings.HasSuffix(raw, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
			if err != nil {
				return nil
			}
			w.Value = int(f * 50)
			return w
		}
	default:
		b.unsupportedValue("width type", typ)
		return nil
	}
	v, ok := parseMeasure(raw)
	if !ok {
		return nil
	}
	w.Value = v
	return w
}

// parseSection parses the body's final w:sectPr.
func (b *builder) parseSection(n *xmlquery.Node) model.Section {
	var s model.Section
	if pg := child(n, "pgSz"); pg != nil {
		s.PageWidth, _ = intAttr(pg, "w")
		s.PageHeight, _ = intAttr(pg, "h")
	}
	if m := child(n, "pgMar"); m != nil {
		s.MarginTop, _ = intAttr(m, "top")
		s.MarginRight, _ = intAttr(m, "right")
		s.MarginBottom, _ = intAttr(m, "bottom")
		s.MarginLeft, _ = intAttr(m, "left")
	}
	return s
}
