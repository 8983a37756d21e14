// Package textrender renders a document model as plain or markdown text.
//
// Tables are drawn with tabs, double spaces or an ASCII box whose lines
// follow the table's visible borders. Drawings contribute nothing.
package textrender

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docxconv/border"
	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/numbering"
	"github.com/tsawler/docxconv/style"
)

// Option configures a render pass.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger handed to the style and numbering engines.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// renderer holds the state of one render pass.
type renderer struct {
	cfg    config.Config
	styles *style.Resolver
	nums   *numbering.Context
	upper  cases.Caser
}

func newRenderer(doc *model.Document, cfg config.Config, opts ...Option) *renderer {
	o := options{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	r := &renderer{
		cfg:    cfg,
		styles: style.New(doc, style.WithLogger(o.log)),
		upper:  cases.Upper(language.Und),
	}
	if doc != nil {
		r.nums = numbering.NewContext(doc.Numbering,
			numbering.WithLogger(o.log), numbering.WithStyles(doc.Styles))
	} else {
		r.nums = numbering.NewContext(nil)
	}
	return r
}

// Render converts doc to text. Each call starts with fresh numbering
// counters, so rendering the same document twice gives the same output.
func Render(doc *model.Document, cfg config.Config, opts ...Option) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("textrender: nil document")
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	r := newRenderer(doc, cfg, opts...)
	var parts []string
	for _, blk := range doc.Body.Blocks {
		var text string
		switch b := blk.(type) {
		case *model.Paragraph:
			text = r.paragraph(b)
		case *model.Table:
			text = r.table(b)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return norm.NFC.String(strings.Join(parts, cfg.ParagraphSeparator)), nil
}

func (r *renderer) table(tbl *model.Table) string {
	var detected border.Info
	if r.cfg.TableMode == config.TableAuto {
		detected = border.DetectWith(tbl, r.styles.ResolveTable(tbl).Borders)
	}
	return r.tableText(tbl, r.cfg.TableMode, detected)
}

// paragraph renders the list marker followed by the visible run text.
func (r *renderer) paragraph(p *model.Paragraph) string {
	if p == nil {
		return ""
	}
	ps := r.styles.ResolveParagraph(p)

	var sb strings.Builder
	markdown := r.cfg.TextFormatting == config.FormatMarkdown
	if markdown && ps.HeadingLevel > 0 {
		sb.WriteString(strings.Repeat("#", ps.HeadingLevel))
		sb.WriteByte(' ')
	}
	if ps.IsListItem() {
		if res, ok := r.nums.Resolve(&ps.Numbering); ok && res.Marker != "" {
			sb.WriteString(res.Marker)
			sb.WriteString(res.Suffix)
		}
	}

	segs := r.segments(p)
	if markdown {
		for _, s := range mergeSegments(segs) {
			sb.WriteString(s.markdown())
		}
	} else {
		for _, s := range segs {
			sb.WriteString(s.text)
		}
	}

	return sb.String()
}

// segment is a run of text with the formatting markdown can express.
type segment struct {
	text   string
	bold   bool
	italic bool
	strike bool
	link   string
}

func (r *renderer) segments(p *model.Paragraph) []segment {
	var segs []segment
	for _, in := range p.Content {
		run, ok := in.(*model.Run)
		if !ok || run.Text == "" {
			continue
		}
		rs := r.styles.ResolveRun(run, p)
		if rs.Hidden {
			continue
		}
		text := run.Text
		if rs.AllCaps {
			text = r.upper.String(text)
		}
		segs = append(segs, segment{
			text:   text,
			bold:   rs.Bold,
			italic: rs.Italic,
			strike: rs.Strike || rs.DoubleStrike,
			link:   run.Hyperlink,
		})
	}
	return segs
}

// mergeSegments joins neighbours with identical formatting so that markers
// are not repeated inside a word split across runs.
func mergeSegments(segs []segment) []segment {
	var out []segment
	for _, s := range segs {
		if n := len(out); n > 0 && out[n-1].sameFormat(s) {
			out[n-1].text += s.text
			continue
		}
		out = append(out, s)
	}
	return out
}

func (s segment) sameFormat(o segment) bool {
	return s.bold == o.bold && s.italic == o.italic && s.strike == o.strike && s.link == o.link
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "~", `\~`, "[", `\[`, "]", `\]`,
)

// markdown escapes the segment's text and wraps it in emphasis markers,
// keeping surrounding whitespace outside them.
func (s segment) markdown() string {
	core := strings.TrimSpace(s.text)
	if core == "" {
		return s.text
	}
	start := strings.Index(s.text, core)
	lead, trail := s.text[:start], s.text[start+len(core):]
	core = markdownEscaper.Replace(core)

	var mark string
	switch {
	case s.bold && s.italic:
		mark = "***"
	case s.bold:
		mark = "**"
	case s.italic:
		mark = "*"
	}
	core = mark + core + mark
	if s.strike {
		core = "~~" + core + "~~"
	}
	if s.link != "" {
		core = "[" + core + "](" + s.link + ")"
	}
	return lead + core + trail
}
