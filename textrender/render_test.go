package textrender

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/model"
)

func run(text string, props model.RunProperties) *model.Run {
	return &model.Run{Text: text, Properties: props}
}

func docOf(blocks ...model.Block) *model.Document {
	doc := model.NewDocument()
	doc.Body.Append(blocks...)
	return doc
}

func listCatalog() *model.NumberingCatalog {
	cat := model.NewNumberingCatalog()
	cat.Abstract["0"] = &model.AbstractNumbering{ID: "0", Levels: map[int]*model.NumberingLevel{
		0: {Level: 0, Format: model.FormatDecimal, Start: 1, Text: "%1.", Suffix: model.SuffixTab},
		1: {Level: 1, Format: model.FormatLowerLetter, Start: 1, Text: "%2)", Suffix: model.SuffixSpace},
	}}
	cat.Instances["1"] = &model.NumberingInstance{ID: "1", AbstractID: "0"}
	return cat
}

func listItem(level int, text string) *model.Paragraph {
	p := para(text)
	p.Properties.Numbering = &model.NumberingRef{NumID: "1", Level: level}
	return p
}

func render(t *testing.T, doc *model.Document, cfg config.Config) string {
	t.Helper()
	out, err := Render(doc, cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestRender_Paragraphs(t *testing.T) {
	doc := docOf(para("Hello, ", "world."), para(), &model.Paragraph{}, para("Second"))
	if got := render(t, doc, config.Default()); got != "Hello, world.\n\nSecond" {
		t.Errorf("got %q", got)
	}

	cfg := config.Default()
	cfg.ParagraphSeparator = "\n"
	if got := render(t, doc, cfg); got != "Hello, world.\nSecond" {
		t.Errorf("custom separator: got %q", got)
	}
}

func TestRender_Lists(t *testing.T) {
	doc := docOf(
		listItem(0, "one"),
		listItem(1, "sub a"),
		listItem(1, "sub b"),
		listItem(0, "two"),
		listItem(1, "sub again"),
	)
	doc.Numbering = listCatalog()

	want := "1.\tone\na) sub a\nb) sub b\n2.\ttwo\na) sub again"
	cfg := config.Default()
	cfg.ParagraphSeparator = "\n"
	if got := render(t, doc, cfg); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestRender_UnknownNumberingHasNoMarker(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := para("plain")
	p.Properties.Numbering = &model.NumberingRef{NumID: "99"}
	out, err := Render(docOf(p), config.Default(), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if out != "plain" {
		t.Errorf("got %q", out)
	}
	if !strings.Contains(buf.String(), model.KindUnknownNumberingReference) {
		t.Errorf("expected unknown numbering log, got %q", buf.String())
	}
}

func TestRender_RunFormatting(t *testing.T) {
	p := &model.Paragraph{Content: []model.Inline{
		run("caps ", model.RunProperties{AllCaps: model.Ptr(true)}),
		run("secret", model.RunProperties{Hidden: model.Ptr(true)}),
		&model.Drawing{RelID: "rId1"},
		run("straße", model.RunProperties{AllCaps: model.Ptr(true)}),
	}}
	if got := render(t, docOf(p), config.Default()); got != "CAPS STRASSE" {
		t.Errorf("got %q", got)
	}
}

func TestRender_Markdown(t *testing.T) {
	bold := model.RunProperties{Bold: model.Ptr(true)}
	italic := model.RunProperties{Italic: model.Ptr(true)}
	both := model.RunProperties{Bold: model.Ptr(true), Italic: model.Ptr(true)}
	strike := model.RunProperties{Strike: model.Ptr(true)}

	heading := para("Title")
	heading.Properties.StyleID = "Heading2"

	tests := []struct {
		name string
		p    *model.Paragraph
		want string
	}{
		{"bold merged across runs", &model.Paragraph{Content: []model.Inline{
			run("Hel", bold), run("lo", bold), run(" world", model.RunProperties{}),
		}}, "**Hello** world"},
		{"whitespace outside markers", &model.Paragraph{Content: []model.Inline{
			run("a", model.RunProperties{}), run(" it ", italic), run("b", model.RunProperties{}),
		}}, "a *it* b"},
		{"bold italic", &model.Paragraph{Content: []model.Inline{run("x", both)}}, "***x***"},
		{"strike", &model.Paragraph{Content: []model.Inline{run("gone", strike)}}, "~~gone~~"},
		{"whitespace only", &model.Paragraph{Content: []model.Inline{
			run("a", model.RunProperties{}), run("  ", bold), run("b", model.RunProperties{}),
		}}, "a  b"},
		{"link", &model.Paragraph{Content: []model.Inline{
			&model.Run{Text: "site", Hyperlink: "https://example.com"},
		}}, "[site](https://example.com)"},
		{"heading", heading, "## Title"},
		{"literal markers escaped", &model.Paragraph{Content: []model.Inline{
			run("2*3*4 snake_case ~x~ [n] C:\\dir", model.RunProperties{}),
		}}, `2\*3\*4 snake\_case \~x\~ \[n\] C:\\dir`},
		{"escaped inside emphasis", &model.Paragraph{Content: []model.Inline{
			run("a*b", bold),
		}}, `**a\*b**`},
	}
	cfg := config.Default()
	cfg.TextFormatting = config.FormatMarkdown
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, docOf(tt.p), cfg); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	// Plain output ignores emphasis and headings.
	if got := render(t, docOf(heading), config.Default()); got != "Title" {
		t.Errorf("plain heading = %q", got)
	}
}

func TestRender_NFC(t *testing.T) {
	doc := docOf(para("cafe\u0301"))
	if got := render(t, doc, config.Default()); got != "caf\u00e9" {
		t.Errorf("got %q, want NFC form", got)
	}
}

func TestRender_Tables(t *testing.T) {
	tbl := table([]string{"A1", "A2"})
	doc := docOf(para("before"), tbl, para("after"))

	if got := render(t, doc, config.Default()); got != "before\n\nA1\tA2\n\nafter" {
		t.Errorf("auto without borders = %q", got)
	}

	cfg := config.Default()
	cfg.TableMode = config.TableASCII
	want := "before\n\n+----+----+\n| A1 | A2 |\n+----+----+\n\nafter"
	if got := render(t, doc, cfg); got != want {
		t.Errorf("ascii = %q", got)
	}
}

func TestRender_AutoUsesTableStyleBorders(t *testing.T) {
	tbl := table([]string{"A1", "A2"})
	tbl.Properties.StyleID = "Boxed"
	doc := docOf(tbl)
	doc.Styles.Add(&model.StyleDefinition{ID: "Boxed", Kind: model.StyleTable, Table: model.TableProperties{
		Borders: model.BorderSet{Top: single(), Bottom: single()},
	}})

	want := "-----------\n  A1   A2  \n-----------"
	if got := render(t, doc, config.Default()); got != want {
		t.Errorf("got\n%q\nwant\n%q", got, want)
	}
}

func TestRender_Idempotent(t *testing.T) {
	doc := docOf(listItem(0, "one"), listItem(0, "two"), table([]string{"a", "b"}))
	doc.Numbering = listCatalog()
	cfg := config.Default()
	cfg.TextFormatting = config.FormatMarkdown

	first := render(t, doc, cfg)
	second := render(t, doc, cfg)
	if first != second {
		t.Errorf("renders differ:\n%q\n%q", first, second)
	}
	if !strings.HasPrefix(second, "1.\tone") {
		t.Errorf("second render should restart counters, got %q", second)
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := Render(nil, config.Default()); err == nil {
		t.Error("nil document should fail")
	}
	cfg := config.Default()
	cfg.TableMode = "grid"
	if _, err := Render(docOf(para("x")), cfg); err == nil {
		t.Error("invalid config should fail")
	}
}
