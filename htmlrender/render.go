// Package htmlrender renders a document model as semantic HTML.
//
// The output is built as a golang.org/x/net/html node tree and serialized
// with html.Render. Each Render call resolves styles, numbering and CSS
// classes from scratch, so the same document and options always give the
// same bytes.
package htmlrender

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/numbering"
	"github.com/tsawler/docxconv/style"
	"github.com/tsawler/docxconv/units"
)

// ErrNilDocument is returned when Render is given no document.
var ErrNilDocument = errors.New("htmlrender: nil document")

// Option configures a render pass.
type Option func(*renderer)

// WithLogger sets the logger for recoverable anomalies such as missing
// images. It is also handed to the style and numbering engines.
func WithLogger(l *slog.Logger) Option {
	return func(r *renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// renderer holds the state of one render pass.
type renderer struct {
	doc     *model.Document
	cfg     config.Config
	log     *slog.Logger
	styles  *style.Resolver
	nums    *numbering.Context
	classes *classRegistry
	baseRun style.RunStyle
}

// Render converts doc to HTML.
func Render(doc *model.Document, cfg config.Config, opts ...Option) (string, error) {
	if doc == nil {
		return "", ErrNilDocument
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	r := &renderer{
		doc:     doc,
		cfg:     cfg,
		log:     slog.New(slog.DiscardHandler),
		classes: newClassRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.styles = style.New(doc, style.WithLogger(r.log))
	r.nums = numbering.NewContext(doc.Numbering,
		numbering.WithLogger(r.log), numbering.WithStyles(doc.Styles))
	r.baseRun = r.styles.DefaultRun()

	content := element(atom.Div, attr("class", "document"))
	r.blocks(content, doc.Body.Blocks)

	var buf bytes.Buffer
	if cfg.FragmentOnly {
		if cfg.StyleMode == config.StyleClasses && len(r.classes.rules) > 0 {
			s := element(atom.Style)
			s.AppendChild(text(r.classes.stylesheet()))
			if err := html.Render(&buf, s); err != nil {
				return "", fmt.Errorf("render style block: %w", err)
			}
		}
		for c := content.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", fmt.Errorf("render fragment: %w", err)
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, r.shell(content)); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

// applyCSS attaches d to n according to the style mode. prefix names the
// class family used in classes mode.
func (r *renderer) applyCSS(n *html.Node, prefix string, d decls) {
	if len(d) == 0 {
		return
	}
	switch r.cfg.StyleMode {
	case config.StyleInline:
		setAttr(n, "style", d.String())
	case config.StyleClasses:
		addClass(n, r.classes.class(prefix, d.String()))
	case config.StyleNone:
	}
}

func (r *renderer) blocks(parent *html.Node, blocks []model.Block) {
	for _, blk := range blocks {
		switch b := blk.(type) {
		case *model.Paragraph:
			for _, n := range r.paragraph(b) {
				parent.AppendChild(n)
			}
		case *model.Table:
			parent.AppendChild(r.table(b))
		}
	}
}

// paragraph renders p. Anchored drawings are returned as siblings placed
// before the paragraph element, since a block cannot sit inside <p>.
func (r *renderer) paragraph(p *model.Paragraph) []*html.Node {
	ps := r.styles.ResolveParagraph(p)

	tag := atom.P
	if r.cfg.SemanticTags && ps.HeadingLevel >= 1 && ps.HeadingLevel <= len(headingAtoms) {
		tag = headingAtoms[ps.HeadingLevel-1]
	}
	n := element(tag)

	var list *numbering.Result
	if ps.IsListItem() {
		if res, ok := r.nums.Resolve(&ps.Numbering); ok {
			list = &res
		}
	}
	r.applyCSS(n, "p", paragraphCSS(ps, list))
	if list != nil && list.Marker+list.Suffix != "" {
		marker := element(atom.Span, attr("class", "list-marker"))
		marker.AppendChild(text(list.Marker + list.Suffix))
		r.applyCSS(marker, "r", runCSS(r.styles.ResolveRunProperties(list.Run, p), r.baseRun))
		n.AppendChild(marker)
	}

	var out []*html.Node
	var link *html.Node
	for _, in := range p.Content {
		switch v := in.(type) {
		case *model.Run:
			parent := n
			href := r.safeHref(v.Hyperlink)
			if href != "" {
				if link == nil || linkTarget(link) != href {
					link = element(atom.A, attr("href", href))
					n.AppendChild(link)
				}
				parent = link
			} else {
				link = nil
			}
			r.run(parent, v, p)
		case *model.Drawing:
			link = nil
			img := r.image(v)
			if img == nil {
				continue
			}
			if v.Placement == model.PlacementAnchored {
				div := element(atom.Div, attr("class", "drawing"))
				r.applyCSS(div, "d", anchorCSS(v))
				div.AppendChild(img)
				out = append(out, div)
				continue
			}
			n.AppendChild(img)
		}
	}
	return append(out, n)
}

// safeHref returns target when it is an http, https or mailto URL or an
// in-document anchor. Other schemes are logged and yield "", so the run
// renders as plain text.
func (r *renderer) safeHref(target string) string {
	if target == "" {
		return ""
	}
	if strings.HasPrefix(target, "#") {
		return target
	}
	if u, err := url.Parse(target); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "mailto":
			return target
		}
	}
	r.log.Debug("hyperlink dropped",
		slog.String("kind", model.KindUnsupportedProperty),
		slog.String("target", target))
	return ""
}

func linkTarget(a *html.Node) string {
	for _, at := range a.Attr {
		if at.Key == "href" {
			return at.Val
		}
	}
	return ""
}

// run appends run to parent. With semantic tags, emphasis that a tag can
// express moves out of the CSS into <strong>, <em>, <u>, <s>, <sup> or
// <sub>. A <span> is emitted only when CSS remains.
func (r *renderer) run(parent *html.Node, run *model.Run, p *model.Paragraph) {
	rs := r.styles.ResolveRun(run, p)
	if rs.Hidden || run.Text == "" {
		return
	}
	css := runCSS(rs, r.baseRun)

	var tags []atom.Atom
	if r.cfg.SemanticTags {
		var kept decls
		for _, d := range css {
			switch {
			case d.prop == "font-weight" && d.value == "bold":
				tags = append(tags, atom.Strong)
			case d.prop == "font-style" && d.value == "italic":
				tags = append(tags, atom.Em)
			case d.prop == "text-decoration" && d.value == "underline":
				tags = append(tags, atom.U)
			case d.prop == "text-decoration" && d.value == "line-through":
				tags = append(tags, atom.S)
			case d.prop == "text-decoration" && d.value == "underline line-through":
				tags = append(tags, atom.U, atom.S)
			case d.prop == "vertical-align" && d.value == "super":
				tags = append(tags, atom.Sup)
			case d.prop == "vertical-align" && d.value == "sub":
				tags = append(tags, atom.Sub)
			default:
				kept = append(kept, d)
			}
		}
		css = kept
	}

	target := parent
	if len(css) > 0 && r.cfg.StyleMode != config.StyleNone {
		span := element(atom.Span)
		r.applyCSS(span, "r", css)
		target.AppendChild(span)
		target = span
	}
	for _, a := range tags {
		el := element(a)
		target.AppendChild(el)
		target = el
	}
	appendText(target, run.Text)
}

// image returns an <img> for d, or nil when its asset cannot be found.
func (r *renderer) image(d *model.Drawing) *html.Node {
	var asset model.Asset
	ok := false
	if r.doc.Assets != nil && d.RelID != "" {
		asset, ok = r.doc.Assets.Asset(d.RelID)
	}
	if !ok || len(asset.Data) == 0 {
		r.log.Debug("drawing skipped",
			slog.String("kind", model.KindMissingRelationshipTarget),
			slog.String("rId", d.RelID))
		return nil
	}

	src := "data:" + asset.ContentType + ";base64," + base64.StdEncoding.EncodeToString(asset.Data)
	img := element(atom.Img, attr("src", src))
	alt := d.AltText
	if alt == "" {
		alt = d.Name
	}
	img.Attr = append(img.Attr, attr("alt", alt))
	if d.Width > 0 {
		img.Attr = append(img.Attr, attr("width", strconv.Itoa(units.EMUToPixels(d.Width))))
	}
	if d.Height > 0 {
		img.Attr = append(img.Attr, attr("height", strconv.Itoa(units.EMUToPixels(d.Height))))
	}
	return img
}

func anchorCSS(d *model.Drawing) decls {
	var css decls
	switch {
	case d.BehindText || d.Wrap == model.WrapNone:
		css.add("position", "relative")
	case d.Wrap == model.WrapTopAndBottom || d.HAlign == "center":
		css.add("text-align", "center")
		css.add("clear", "both")
	case d.HAlign == "right" || d.HAlign == "outside":
		css.add("float", "right")
		css.add("margin-left", "1em")
	default:
		css.add("float", "left")
		css.add("margin-right", "1em")
	}
	return css
}

func (r *renderer) table(t *model.Table) *html.Node {
	tbl := element(atom.Table)
	r.applyCSS(tbl, "t", tableCSS(r.styles.ResolveTable(t)))

	var head *html.Node
	body := element(atom.Tbody)
	for i, row := range t.Rows {
		if row == nil {
			continue
		}
		tr := element(atom.Tr)
		header := r.cfg.SemanticTags && row.Properties.IsHeader
		if header && head == nil && i == 0 {
			head = element(atom.Thead)
		}
		if header && head != nil && body.FirstChild == nil {
			head.AppendChild(tr)
		} else {
			body.AppendChild(tr)
		}

		for _, cell := range row.Cells {
			if cell == nil || cell.IsContinuation() {
				continue
			}
			cs := r.styles.ResolveCell(t, row, cell)
			td := element(atom.Td)
			if header {
				td = element(atom.Th)
			}
			if cs.ColSpan > 1 {
				td.Attr = append(td.Attr, attr("colspan", strconv.Itoa(cs.ColSpan)))
			}
			if cs.RowSpan > 1 {
				td.Attr = append(td.Attr, attr("rowspan", strconv.Itoa(cs.RowSpan)))
			}
			r.applyCSS(td, "c", cellCSS(cs))
			r.blocks(td, cell.Content)
			tr.AppendChild(td)
		}
	}
	if head != nil {
		tbl.AppendChild(head)
	}
	if body.FirstChild != nil {
		tbl.AppendChild(body)
	}
	return tbl
}
