package htmlrender

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/units"
)

const responsiveCSS = `img{max-width:100%;height:auto}
@media (max-width:768px){.document{max-width:100%;padding:1em}}`

const printCSS = `@media print{.document{max-width:none;padding:0;margin:0}table,img{page-break-inside:avoid}tr{page-break-inside:avoid}}`

// shell wraps content in a complete HTML document.
func (r *renderer) shell(content *html.Node) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html, attr("lang", r.cfg.LanguageTag()))
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	htmlEl.AppendChild(head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	if r.cfg.Responsive {
		head.AppendChild(element(atom.Meta,
			attr("name", "viewport"),
			attr("content", "width=device-width, initial-scale=1")))
	}
	title := element(atom.Title)
	title.AppendChild(text(r.title()))
	head.AppendChild(title)

	if css := r.stylesheet(); css != "" {
		s := element(atom.Style)
		s.AppendChild(text(css))
		head.AppendChild(s)
	}

	body := element(atom.Body)
	htmlEl.AppendChild(body)
	body.AppendChild(content)
	return root
}

func (r *renderer) title() string {
	if t := strings.TrimSpace(r.cfg.Title); t != "" {
		return t
	}
	if t := strings.TrimSpace(r.doc.Metadata.Title); t != "" {
		return t
	}
	return "Document"
}

// stylesheet returns the <style> contents: the base rules that carry the
// document defaults, the optional responsive and print rules, and the
// registered classes. Style mode none emits nothing.
func (r *renderer) stylesheet() string {
	if r.cfg.StyleMode == config.StyleNone {
		return ""
	}
	var rules []string

	var page decls
	page.add("margin", "0 auto")
	sec := r.doc.Section
	if width := sec.PageWidth; width > 0 {
		page.add("max-width", units.Pt(units.TwipsToPoints(width)))
	}
	if sec.MarginTop != 0 || sec.MarginRight != 0 || sec.MarginBottom != 0 || sec.MarginLeft != 0 {
		page.add("padding", strings.Join([]string{
			units.Pt(units.TwipsToPoints(sec.MarginTop)),
			units.Pt(units.TwipsToPoints(sec.MarginRight)),
			units.Pt(units.TwipsToPoints(sec.MarginBottom)),
			units.Pt(units.TwipsToPoints(sec.MarginLeft)),
		}, " "))
	}
	if ff := fontFamily(r.baseRun.FontFamily); ff != "" {
		page.add("font-family", ff+",sans-serif")
	} else {
		page.add("font-family", "sans-serif")
	}
	page.add("font-size", units.Pt(units.HalfPointsToPoints(r.baseRun.FontSize)))
	if r.baseRun.Bold {
		page.add("font-weight", "bold")
	}
	if r.baseRun.Italic {
		page.add("font-style", "italic")
	}
	if r.baseRun.Color != "" {
		page.add("color", cssColor(r.baseRun.Color, "inherit"))
	}
	rules = append(rules,
		".document{"+page.String()+"}",
		".document p,.document h1,.document h2,.document h3,.document h4,.document h5,.document h6{margin:0}",
		".list-marker{white-space:pre}",
		".drawing img{display:inline-block}",
	)
	if r.cfg.Responsive {
		rules = append(rules, responsiveCSS)
	}
	if r.cfg.IncludePrintStyles {
		rules = append(rules, printCSS)
	}
	if r.cfg.StyleMode == config.StyleClasses && len(r.classes.rules) > 0 {
		rules = append(rules, r.classes.stylesheet())
	}
	return strings.Join(rules, "\n")
}
