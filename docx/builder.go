package docx

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/ooxml"
)

var (
	errNoDocument = errors.New("docx: document part is missing")
	errNoBody     = errors.New("docx: w:body not found")
)

// builder holds the state of one Build call.
type builder struct {
	log *slog.Logger

	// hyperlink relationship targets of the main part, by id
	links map[string]string

	// set by w:br w:type="page", consumed by the next paragraph
	pageBreak bool
}

func newBuilder(opts ...Option) *builder {
	b := &builder{
		log:   slog.New(slog.DiscardHandler),
		links: make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *builder) build(parts Parts) (*model.Document, error) {
	if parts.Document == nil {
		return nil, ooxml.Malformed(ooxml.DefaultMainPart, errNoDocument)
	}
	body := xmlquery.QuerySelector(parts.Document, exprBody)
	if body == nil {
		return nil, ooxml.Malformed(ooxml.DefaultMainPart, errNoBody)
	}

	doc := model.NewDocument()
	b.parseRelationships(parts.Relationships)
	for id, target := range b.links {
		doc.Links[id] = target
	}
	if parts.Styles != nil {
		b.parseStyles(parts.Styles, doc.Styles)
	}
	if parts.Numbering != nil {
		b.parseNumbering(parts.Numbering, doc.Numbering)
	}
	if parts.Core != nil {
		doc.Metadata = b.parseCore(parts.Core)
	}
	if sect := xmlquery.QuerySelector(body, exprSectPr); sect != nil {
		doc.Section = b.parseSection(sect)
	}

	doc.Body.Append(b.blocks(body)...)
	doc.Assets = parts.Assets
	return doc, nil
}

// parseRelationships records external hyperlink targets.
func (b *builder) parseRelationships(root *xmlquery.Node) {
	if root == nil {
		return
	}
	for _, rel := range xmlquery.QuerySelectorAll(root, exprRelations) {
		id, _ := attr(rel, "Id")
		typ, _ := attr(rel, "Type")
		target, _ := attr(rel, "Target")
		if id == "" || !ooxml.IsHyperlinkRelationship(typ) {
			continue
		}
		b.links[id] = target
	}
}

// blocks converts the block-level children of a container (w:body, w:tc,
// w:sdtContent) in document order.
func (b *builder) blocks(container *xmlquery.Node) []model.Block {
	var out []model.Block
	for _, n := range elements(container) {
		if n.NamespaceURI == nsMC && n.Data == "AlternateContent" {
			out = append(out, b.blocks(fallback(n))...)
			continue
		}
		if !inW(n) {
			continue
		}
		switch n.Data {
		case "p":
			out = append(out, b.paragraph(n))
		case "tbl":
			out = append(out, b.table(n))
		case "sdt":
			out = append(out, b.blocks(child(n, "sdtContent"))...)
		case "customXml", "ins", "moveTo":
			out = append(out, b.blocks(n)...)
		case "sectPr", "tcPr", "bookmarkStart", "bookmarkEnd", "del", "moveFrom",
			"proofErr", "permStart", "permEnd", "commentRangeStart", "commentRangeEnd":
		default:
			b.unsupported("block", n.Data)
		}
	}
	return out
}

// paragraph converts a w:p element.
func (b *builder) paragraph(n *xmlquery.Node) *model.Paragraph {
	p := &model.Paragraph{}
	if pPr := child(n, "pPr"); pPr != nil {
		p.Properties = b.paragraphProperties(pPr)
	}
	if b.pageBreak {
		if p.Properties.PageBreakBefore == nil {
			p.Properties.PageBreakBefore = model.Ptr(true)
		}
		b.pageBreak = false
	}
	p.Content = b.inlines(n, "")
	return p
}

// inlines converts the run-level children of a paragraph or of an inline
// container. href is the enclosing hyperlink target.
func (b *builder) inlines(container *xmlquery.Node, href string) []model.Inline {
	var out []model.Inline
	for _, n := range elements(container) {
		if n.NamespaceURI == nsMC && n.Data == "AlternateContent" {
			out = append(out, b.inlines(fallback(n), href)...)
			continue
		}
		if !inW(n) {
			continue
		}
		switch n.Data {
		case "r":
			out = append(out, b.run(n, href)...)
		case "hyperlink":
			out = append(out, b.inlines(n, b.hyperlinkTarget(n))...)
		case "sdt":
			out = append(out, b.inlines(child(n, "sdtContent"), href)...)
		case "ins", "moveTo", "smartTag", "customXml", "fldSimple", "dir", "bdo":
			out = append(out, b.inlines(n, href)...)
		case "pPr", "del", "moveFrom", "bookmarkStart", "bookmarkEnd", "proofErr",
			"commentRangeStart", "commentRangeEnd", "permStart", "permEnd", "oMathPara", "oMath":
		default:
			b.unsupported("inline", n.Data)
		}
	}
	return out
}

// hyperlinkTarget returns the URL of an external hyperlink or "#anchor"
// for an internal one.
func (b *builder) hyperlinkTarget(n *xmlquery.Node) string {
	target := ""
	if id := relAttr(n, "id"); id != "" {
		target = b.links[id]
	}
	if anchor, ok := attr(n, "anchor"); ok && anchor != "" {
		if target == "" {
			return "#" + anchor
		}
		return target + "#" + anchor
	}
	return target
}

// run converts a w:r element. Text and drawings are interleaved in the
// source, so one w:r may yield several inlines.
func (b *builder) run(n *xmlquery.Node, href string) []model.Inline {
	var props model.RunProperties
	if rPr := child(n, "rPr"); rPr != nil {
		props = b.runProperties(rPr)
	}

	var out []model.Inline
	var text strings.Builder
	flush := func() {
		if text.Len() == 0 {
			return
		}
		out = append(out, &model.Run{Properties: props, Text: text.String(), Hyperlink: href})
		text.Reset()
	}

	for _, c := range elements(n) {
		if c.NamespaceURI == nsMC && c.Data == "AlternateContent" {
			for _, d := range elements(fallback(c)) {
				if isW(d, "drawing") {
					flush()
					out = append(out, b.drawings(d)...)
				}
			}
			continue
		}
		if !inW(c) {
			continue
		}
		switch c.Data {
		case "t":
			text.WriteString(innerText(c))
		case "tab", "ptab":
			text.WriteByte('\t')
		case "br":
			text.WriteByte('\n')
			if typ, _ := attr(c, "type"); typ == "page" {
				b.pageBreak = true
			}
		case "cr":
			text.WriteByte('\n')
		case "noBreakHyphen":
			text.WriteByte('-')
		case "sym":
			text.WriteString(symbol(c))
		case "drawing":
			flush()
			out = append(out, b.drawings(c)...)
		case "rPr", "softHyphen", "lastRenderedPageBreak", "fldChar", "instrText",
			"delText", "footnoteReference", "endnoteReference", "commentReference",
			"annotationRef", "separator", "continuationSeparator", "pict", "object":
		default:
			b.unsupported("run", c.Data)
		}
	}
	flush()
	return out
}

// symbol returns the character of a w:sym element (w:char is hex).
func symbol(n *xmlquery.Node) string {
	s, _ := attr(n, "char")
	code, ok := parseHex(s)
	if !ok {
		return ""
	}
	// Symbol fonts store glyphs in the private use area at F000+code.
	if code >= 0xF000 && code <= 0xF0FF {
		code -= 0xF000
	}
	return string(rune(code))
}

func parseHex(s string) (int, bool) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// fallback returns the mc:Fallback branch of an mc:AlternateContent.
func fallback(n *xmlquery.Node) *xmlquery.Node {
	for _, c := range elements(n) {
		if c.NamespaceURI == nsMC && c.Data == "Fallback" {
			return c
		}
	}
	return nil
}

func (b *builder) unsupported(where, name string) {
	b.log.Debug("skipping unsupported element",
		slog.String("kind", model.KindUnsupportedProperty),
		slog.String("context", where),
		slog.String("element", name))
}

func (b *builder) unsupportedValue(property, value string) {
	b.log.Debug("ignoring unsupported value",
		slog.String("kind", model.KindUnsupportedProperty),
		slog.String("property", property),
		slog.String("value", value))
}
