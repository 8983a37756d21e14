package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
)

const wNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" ` +
	`xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"`

func parseXML(t *testing.T, s string) *xmlquery.Node {
	t.Helper()
	n, err := xmlquery.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return n
}

func documentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + wNS + `><w:body>` + body + `</w:body></w:document>`
}

func stylesXML(content string) string {
	return `<w:styles ` + wNS + `>` + content + `</w:styles>`
}

func numberingXML(content string) string {
	return `<w:numbering ` + wNS + `>` + content + `</w:numbering>`
}

// buildBody builds a document from body content only.
func buildBody(t *testing.T, body string) *model.Document {
	t.Helper()
	doc, err := Build(Parts{Document: parseXML(t, documentXML(body))})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return doc
}

func TestBuild_Errors(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		_, err := Build(Parts{})
		if !errors.Is(err, ErrMalformedPackage) {
			t.Errorf("err = %v, want ErrMalformedPackage", err)
		}
	})

	t.Run("no body", func(t *testing.T) {
		_, err := Build(Parts{Document: parseXML(t, `<w:document `+wNS+`/>`)})
		var pe *PackageError
		if !errors.As(err, &pe) {
			t.Fatalf("err = %v, want *PackageError", err)
		}
		if !errors.Is(err, ErrMalformedPackage) {
			t.Error("PackageError should match ErrMalformedPackage")
		}
	})
}

func TestBuild_Paragraphs(t *testing.T) {
	doc := buildBody(t, `
<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve"> World</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading1"/><w:jc w:val="center"/></w:pPr><w:r><w:t>Title</w:t></w:r></w:p>
<w:p/>`)

	paras := doc.Body.Paragraphs()
	if len(paras) != 3 {
		t.Fatalf("got %d paragraphs, want 3", len(paras))
	}
	if got := paras[0].Text(); got != "Hello World" {
		t.Errorf("Text() = %q, want %q", got, "Hello World")
	}
	if paras[1].Properties.StyleID != "Heading1" {
		t.Errorf("StyleID = %q", paras[1].Properties.StyleID)
	}
	if a := paras[1].Properties.Alignment; a == nil || *a != model.AlignCenter {
		t.Errorf("Alignment = %v, want center", a)
	}
	if len(paras[2].Content) != 0 {
		t.Errorf("empty paragraph has %d inlines", len(paras[2].Content))
	}
}

func TestBuild_RunContent(t *testing.T) {
	tests := []struct {
		name string
		run  string
		want string
	}{
		{"tab", `<w:t>a</w:t><w:tab/><w:t>b</w:t>`, "a\tb"},
		{"break", `<w:t>a</w:t><w:br/><w:t>b</w:t>`, "a\nb"},
		{"carriage return", `<w:t>a</w:t><w:cr/><w:t>b</w:t>`, "a\nb"},
		{"no-break hyphen", `<w:t>e</w:t><w:noBreakHyphen/><w:t>mail</w:t>`, "e-mail"},
		{"soft hyphen dropped", `<w:t>co</w:t><w:softHyphen/><w:t>op</w:t>`, "coop"},
		{"symbol", `<w:sym w:font="Symbol" w:char="F061"/>`, "a"},
		{"plain symbol", `<w:sym w:font="Arial" w:char="2022"/>`, "•"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buildBody(t, `<w:p><w:r>`+tt.run+`</w:r></w:p>`)
			if got := doc.Body.Paragraphs()[0].Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_Revisions(t *testing.T) {
	doc := buildBody(t, `<w:p>
<w:r><w:t>keep </w:t></w:r>
<w:ins w:id="1"><w:r><w:t>inserted </w:t></w:r></w:ins>
<w:del w:id="2"><w:r><w:delText>deleted </w:delText></w:r></w:del>
<w:smartTag><w:r><w:t>tagged</w:t></w:r></w:smartTag>
</w:p>
<w:sdt><w:sdtContent><w:p><w:r><w:t>in control</w:t></w:r></w:p></w:sdtContent></w:sdt>`)

	paras := doc.Body.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	if got := paras[0].Text(); got != "keep inserted tagged" {
		t.Errorf("Text() = %q", got)
	}
	if got := paras[1].Text(); got != "in control" {
		t.Errorf("sdt paragraph Text() = %q", got)
	}
}

func TestBuild_PageBreak(t *testing.T) {
	doc := buildBody(t, `
<w:p><w:r><w:t>one</w:t><w:br w:type="page"/></w:r></w:p>
<w:p><w:r><w:t>two</w:t></w:r></w:p>
<w:p><w:r><w:t>three</w:t></w:r></w:p>`)
	paras := doc.Body.Paragraphs()
	if pb := paras[1].Properties.PageBreakBefore; pb == nil || !*pb {
		t.Error("paragraph after a page break should have PageBreakBefore")
	}
	if paras[2].Properties.PageBreakBefore != nil {
		t.Error("page break should apply to one paragraph only")
	}
}

func TestBuild_RunProperties(t *testing.T) {
	doc := buildBody(t, `<w:p><w:r><w:rPr>
<w:rStyle w:val="Emphasis"/><w:b/><w:i w:val="0"/><w:u w:val="wave"/><w:strike/>
<w:color w:val="ff0000"/><w:highlight w:val="yellow"/><w:sz w:val="28"/>
<w:rFonts w:ascii="Arial" w:hAnsi="Arial"/><w:vertAlign w:val="superscript"/>
<w:caps/><w:smallCaps w:val="false"/><w:vanish w:val="1"/>
</w:rPr><w:t>x</w:t></w:r></w:p>`)

	rp := doc.Body.Paragraphs()[0].Runs()[0].Properties
	checks := []struct {
		name string
		ok   bool
	}{
		{"style", rp.StyleID == "Emphasis"},
		{"bold", rp.Bold != nil && *rp.Bold},
		{"italic off", rp.Italic != nil && !*rp.Italic},
		{"underline wavy", rp.Underline != nil && *rp.Underline == model.UnderlineWavy},
		{"strike", rp.Strike != nil && *rp.Strike},
		{"color upper-cased", rp.Color != nil && *rp.Color == "FF0000"},
		{"highlight", rp.Highlight != nil && *rp.Highlight == "yellow"},
		{"size", rp.FontSize != nil && *rp.FontSize == 28},
		{"font", rp.FontFamily != nil && *rp.FontFamily == "Arial"},
		{"superscript", rp.VertAlign != nil && *rp.VertAlign == model.VertSuperscript},
		{"caps", rp.AllCaps != nil && *rp.AllCaps},
		{"small caps off", rp.SmallCaps != nil && !*rp.SmallCaps},
		{"hidden", rp.Hidden != nil && *rp.Hidden},
	}
	for _, c := range checks {
		if !c.ok {
			t.Errorf("%s not parsed as expected: %+v", c.name, rp)
		}
	}
}

func TestBuild_ColorAuto(t *testing.T) {
	doc := buildBody(t, `<w:p><w:r><w:rPr><w:color w:val="auto"/></w:rPr><w:t>x</w:t></w:r></w:p>`)
	if c := doc.Body.Paragraphs()[0].Runs()[0].Properties.Color; c != nil {
		t.Errorf("Color = %q, want nil for auto", *c)
	}
}

func TestBuild_RejectsMalformedValues(t *testing.T) {
	const payload = `x}&lt;/style&gt;&lt;script&gt;alert(1)&lt;/script&gt;`
	body := `<w:p><w:r><w:rPr>
<w:color w:val="` + payload + `"/><w:highlight w:val="` + payload + `"/><w:u w:val="squiggle"/>
</w:rPr><w:t>x</w:t></w:r></w:p>
<w:tbl><w:tblPr><w:tblBorders>
<w:top w:val="single" w:sz="4" w:color="` + payload + `"/>
<w:bottom w:val="single" w:sz="4" w:color="00ff00"/>
</w:tblBorders></w:tblPr><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>`

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	doc, err := Build(Parts{Document: parseXML(t, documentXML(body))}, WithLogger(logger))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	rp := doc.Body.Paragraphs()[0].Runs()[0].Properties
	if rp.Color != nil {
		t.Errorf("Color = %q, want nil", *rp.Color)
	}
	if rp.Highlight != nil {
		t.Errorf("Highlight = %q, want nil", *rp.Highlight)
	}
	if rp.Underline != nil {
		t.Errorf("Underline = %q, want nil for an unknown value", *rp.Underline)
	}
	b := doc.Body.Tables()[0].Properties.Borders
	if b.Top.Color != "auto" {
		t.Errorf("Top.Color = %q, want auto", b.Top.Color)
	}
	if b.Bottom.Color != "00FF00" {
		t.Errorf("Bottom.Color = %q, want 00FF00", b.Bottom.Color)
	}
	for _, prop := range []string{"property=color", "property=highlight", "property=u"} {
		if !strings.Contains(buf.String(), prop) {
			t.Errorf("log missing %s: %s", prop, buf.String())
		}
	}
}

func TestBuild_ParagraphProperties(t *testing.T) {
	doc := buildBody(t, `<w:p><w:pPr>
<w:ind w:left="720" w:hanging="360"/>
<w:spacing w:before="120" w:after="240" w:line="360" w:lineRule="auto"/>
<w:numPr><w:ilvl w:val="1"/><w:numId w:val="3"/></w:numPr>
<w:outlineLvl w:val="2"/>
<w:jc w:val="both"/>
</w:pPr><w:r><w:t>x</w:t></w:r></w:p>`)

	pp := doc.Body.Paragraphs()[0].Properties
	if pp.Indent.Left == nil || *pp.Indent.Left != 720 {
		t.Errorf("Indent.Left = %v", pp.Indent.Left)
	}
	if pp.Indent.Hanging == nil || *pp.Indent.Hanging != 360 {
		t.Errorf("Indent.Hanging = %v", pp.Indent.Hanging)
	}
	if pp.Spacing.Before == nil || *pp.Spacing.Before != 120 || *pp.Spacing.After != 240 {
		t.Errorf("Spacing = %+v", pp.Spacing)
	}
	if pp.Spacing.LineRule == nil || *pp.Spacing.LineRule != model.LineAuto {
		t.Errorf("LineRule = %v", pp.Spacing.LineRule)
	}
	if pp.Numbering == nil || pp.Numbering.NumID != "3" || pp.Numbering.Level != 1 {
		t.Errorf("Numbering = %+v", pp.Numbering)
	}
	if pp.OutlineLevel == nil || *pp.OutlineLevel != 2 {
		t.Errorf("OutlineLevel = %v", pp.OutlineLevel)
	}
	if pp.Alignment == nil || *pp.Alignment != model.AlignJustify {
		t.Errorf("Alignment = %v", pp.Alignment)
	}
}

func TestBuild_Hyperlinks(t *testing.T) {
	rels := parseXML(t, `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId9" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/" TargetMode="External"/>
</Relationships>`)
	body := `<w:p>
<w:hyperlink r:id="rId9"><w:r><w:t>site</w:t></w:r></w:hyperlink>
<w:r><w:t> and </w:t></w:r>
<w:hyperlink w:anchor="intro"><w:r><w:t>intro</w:t></w:r></w:hyperlink>
</w:p>`
	doc, err := Build(Parts{Document: parseXML(t, documentXML(body)), Relationships: rels})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	runs := doc.Body.Paragraphs()[0].Runs()
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].Hyperlink != "https://example.com/" {
		t.Errorf("external link = %q", runs[0].Hyperlink)
	}
	if runs[1].Hyperlink != "" {
		t.Errorf("plain run has link %q", runs[1].Hyperlink)
	}
	if runs[2].Hyperlink != "#intro" {
		t.Errorf("anchor link = %q", runs[2].Hyperlink)
	}
	if doc.Links["rId9"] != "https://example.com/" {
		t.Errorf("Links = %v", doc.Links)
	}
}

const inlineDrawing = `<w:drawing><wp:inline>
<wp:extent cx="952500" cy="476250"/>
<wp:docPr id="1" name="Picture 1" descr="A red square"/>
<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">
<pic:pic><pic:blipFill><a:blip r:embed="rId4"/></pic:blipFill></pic:pic>
</a:graphicData></a:graphic>
</wp:inline></w:drawing>`

func TestBuild_Drawings(t *testing.T) {
	doc := buildBody(t, `<w:p><w:r><w:t>before</w:t>`+inlineDrawing+`<w:t>after</w:t></w:r></w:p>`)
	p := doc.Body.Paragraphs()[0]
	if len(p.Content) != 3 {
		t.Fatalf("got %d inlines, want 3 (run, drawing, run)", len(p.Content))
	}
	d, ok := p.Content[1].(*model.Drawing)
	if !ok {
		t.Fatalf("Content[1] = %T, want *model.Drawing", p.Content[1])
	}
	if d.RelID != "rId4" || d.Width != 952500 || d.Height != 476250 {
		t.Errorf("drawing = %+v", d)
	}
	if d.AltText != "A red square" || d.Name != "Picture 1" {
		t.Errorf("alt/name = %q/%q", d.AltText, d.Name)
	}
	if d.Placement != model.PlacementInline {
		t.Error("expected inline placement")
	}
}

func TestBuild_AnchoredDrawing(t *testing.T) {
	doc := buildBody(t, `<w:p><w:r><w:drawing><wp:anchor behindDoc="0">
<wp:positionH relativeFrom="column"><wp:align>right</wp:align></wp:positionH>
<wp:extent cx="9525" cy="9525"/>
<wp:wrapSquare wrapText="bothSides"/>
<wp:docPr id="2" name="Float"/>
<a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:embed="rId5"/></pic:blipFill></pic:pic></a:graphicData></a:graphic>
</wp:anchor></w:drawing></w:r></w:p>`)

	ds := doc.Body.Paragraphs()[0].Drawings()
	if len(ds) != 1 {
		t.Fatalf("got %d drawings", len(ds))
	}
	d := ds[0]
	if d.Placement != model.PlacementAnchored || d.HAlign != "right" || d.Wrap != model.WrapSquare {
		t.Errorf("anchor = %+v", d)
	}
	if d.BehindText {
		t.Error("BehindText should be false")
	}
}

func TestBuild_AlternateContent(t *testing.T) {
	doc := buildBody(t, `<w:p><w:r><mc:AlternateContent>
<mc:Choice Requires="wps"><w:t>modern</w:t></mc:Choice>
<mc:Fallback>`+inlineDrawing+`</mc:Fallback>
</mc:AlternateContent></w:r></w:p>`)
	if n := len(doc.Body.Paragraphs()[0].Drawings()); n != 1 {
		t.Errorf("got %d drawings from fallback, want 1", n)
	}
}

func TestBuild_Section(t *testing.T) {
	doc := buildBody(t, `<w:p/><w:sectPr>
<w:pgSz w:w="12240" w:h="15840"/>
<w:pgMar w:top="1440" w:right="1800" w:bottom="1440" w:left="1800"/>
</w:sectPr>`)
	want := model.Section{PageWidth: 12240, PageHeight: 15840, MarginTop: 1440, MarginRight: 1800, MarginBottom: 1440, MarginLeft: 1800}
	if doc.Section != want {
		t.Errorf("Section = %+v, want %+v", doc.Section, want)
	}
	if doc.Body.Len() != 1 {
		t.Errorf("sectPr must not become a block, got %d blocks", doc.Body.Len())
	}
}

func TestBuild_Core(t *testing.T) {
	core := parseXML(t, `<cp:coreProperties
 xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
 xmlns:dc="http://purl.org/dc/elements/1.1/"
 xmlns:dcterms="http://purl.org/dc/terms/">
<dc:title>Quarterly Report</dc:title>
<dc:creator>Jane Doe</dc:creator>
<dc:subject>Finance</dc:subject>
<cp:keywords>money, q3; growth</cp:keywords>
<dcterms:created>2024-01-02T03:04:05Z</dcterms:created>
</cp:coreProperties>`)
	doc, err := Build(Parts{Document: parseXML(t, documentXML(`<w:p/>`)), Core: core})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m := doc.Metadata
	if m.Title != "Quarterly Report" || m.Creator != "Jane Doe" || m.Subject != "Finance" {
		t.Errorf("Metadata = %+v", m)
	}
	if len(m.Keywords) != 3 || m.Keywords[2] != "growth" {
		t.Errorf("Keywords = %q", m.Keywords)
	}
	if m.Created != "2024-01-02T03:04:05Z" {
		t.Errorf("Created = %q", m.Created)
	}
}

// createTestDOCX writes a DOCX with the given document body and optional
// extra parts.
func createTestDOCX(t *testing.T, body string, extra map[string][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	zw := zip.NewWriter(f)

	files := map[string][]byte{
		"[Content_Types].xml": []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
</Types>`),
		"_rels/.rels": []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`),
		"word/document.xml": []byte(documentXML(body)),
	}
	for name, data := range extra {
		files[name] = data
	}
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		w.Write(data)
	}
	zw.Close()
	f.Close()
	return path
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestOpen(t *testing.T) {
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`
	styles := stylesXML(`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>`)
	path := createTestDOCX(t, `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r>`+inlineDrawing+`</w:r></w:p>`,
		map[string][]byte{
			"word/_rels/document.xml.rels": []byte(rels),
			"word/styles.xml":              []byte(styles),
			"word/media/image1.png":        pngBytes(t),
		})

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := doc.Styles.Get("Heading1"); !ok {
		t.Error("styles.xml was not loaded")
	}
	a, ok := doc.Assets.Asset("rId4")
	if !ok {
		t.Fatal("image asset was not loaded")
	}
	if a.ContentType != "image/png" || len(a.Data) == 0 {
		t.Errorf("asset = %q (%d bytes)", a.ContentType, len(a.Data))
	}

	// The file is released once Open returns.
	if err := os.Remove(path); err != nil {
		t.Errorf("removing file after Open: %v", err)
	}
}

func TestOpen_MissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	f, _ := os.Create(path)
	zw := zip.NewWriter(f)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	zw.Close()
	f.Close()

	_, err := Open(path)
	if !errors.Is(err, ErrMalformedPackage) {
		t.Errorf("err = %v, want ErrMalformedPackage", err)
	}
}

func TestOpenReader_NotZip(t *testing.T) {
	data := []byte("plain text, not a package")
	_, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, ErrMalformedPackage) {
		t.Errorf("err = %v, want ErrMalformedPackage", err)
	}
}
