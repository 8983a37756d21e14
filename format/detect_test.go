package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{XLSX, "XLSX"},
		{PPTX, "PPTX"},
		{ODT, "ODT"},
		{PDF, "PDF"},
		{HTML, "HTML"},
		{DOC, "DOC"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"report.docx", DOCX},
		{"REPORT.DOCX", DOCX},
		{"macro.docm", DOCX},
		{"template.dotx", DOCX},
		{"legacy.doc", DOC},
		{"sheet.xlsx", XLSX},
		{"deck.pptx", PPTX},
		{"open.odt", ODT},
		{"paper.pdf", PDF},
		{"page.htm", HTML},
		{"/path/to/notes.txt", Unknown},
		{"noextension", Unknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}, DOC},
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04, 0x14}, Unknown},
		{"doctype", []byte("  <!doctype html><html>"), HTML},
		{"html tag", []byte("\n<HTML><body>"), HTML},
		{"xhtml", []byte(`<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml">`), HTML},
		{"plain xml", []byte(`<?xml version="1.0"?><root/>`), Unknown},
		{"short", []byte("%P"), Unknown},
		{"empty", nil, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
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
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"docx", zipOf(t, map[string]string{"[Content_Types].xml": "", "word/document.xml": ""}), DOCX},
		{"xlsx", zipOf(t, map[string]string{"[Content_Types].xml": "", "xl/workbook.xml": ""}), XLSX},
		{"pptx", zipOf(t, map[string]string{"ppt/presentation.xml": ""}), PPTX},
		{"odt", zipOf(t, map[string]string{"mimetype": "application/vnd.oasis.opendocument.text", "content.xml": ""}), ODT},
		{"other zip", zipOf(t, map[string]string{"readme.txt": "hi"}), Unknown},
		{"pdf", []byte("%PDF-1.4 body"), PDF},
		{"empty", nil, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromPartNames(t *testing.T) {
	if got := FromPartNames([]string{"_rels/.rels", "word/document.xml"}); got != DOCX {
		t.Errorf("got %v, want DOCX", got)
	}
	if got := FromPartNames([]string{"custom/main.xml"}); got != Unknown {
		t.Errorf("got %v, want Unknown", got)
	}
	if got := FromPartNames(nil); got != Unknown {
		t.Errorf("got %v, want Unknown", got)
	}
}
