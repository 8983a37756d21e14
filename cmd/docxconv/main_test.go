package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

const minimalDocument = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>first</w:t></w:r></w:p>` +
	`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>second</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func writeDOCX(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "in.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	files := map[string]string{
		"[Content_Types].xml": `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/></Types>`,
		"_rels/.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`,
		"word/document.xml": minimalDocument,
	}
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) {
	t.Helper()
	parser, err := kong.New(&CLI, kong.Name("docxconv"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	if err := ctx.Run(); err != nil {
		t.Fatalf("Run(%v): %v", args, err)
	}
}

func TestTextCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeDOCX(t, dir)
	out := filepath.Join(dir, "out.md")

	run(t, "text", in, "--markdown", "--separator", `\n---\n`, "-o", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "first\n---\n**second**\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHTMLCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeDOCX(t, dir)
	out := filepath.Join(dir, "out.html")

	run(t, "html", in, "--semantic", "--fragment", "--style-mode", "none", "-o", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if strings.Contains(got, "<html") {
		t.Errorf("fragment output contains the document shell: %s", got)
	}
	if !strings.Contains(got, "<strong>second</strong>") {
		t.Errorf("output = %s, want <strong>second</strong>", got)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeDOCX(t, dir)
	cfgPath := filepath.Join(dir, "docxconv.yaml")
	if err := os.WriteFile(cfgPath, []byte("paragraph_separator: \" | \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.txt")

	run(t, "--config", cfgPath, "text", in, "-o", out)
	CLI.Config = ""

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "first | second\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestInvalidStyleMode(t *testing.T) {
	parser, err := kong.New(&CLI, kong.Name("docxconv"))
	if err != nil {
		t.Fatal(err)
	}
	in := writeDOCX(t, t.TempDir())
	if _, err := parser.Parse([]string{"html", in, "--style-mode", "loud"}); err == nil {
		t.Error("expected a parse error for an unknown style mode")
	}
}

func TestCheckInput(t *testing.T) {
	for _, ok := range []string{"a.docx", "a.DOCM", "upload.bin"} {
		if err := checkInput(ok); err != nil {
			t.Errorf("checkInput(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"a.pdf", "a.xlsx", "old.doc"} {
		if err := checkInput(bad); err == nil {
			t.Errorf("checkInput(%q) should fail", bad)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`\n\n`, "\n\n"},
		{`a\tb`, "a\tb"},
		{`\\n`, `\n`},
		{`\x`, `\x`},
		{`trailing\`, `trailing\`},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := unescape(tt.in); got != tt.want {
			t.Errorf("unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
