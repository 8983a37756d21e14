// Package format identifies the kind of document a file or archive holds,
// so callers can reject non-Word input with a useful message.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format is a document format docxconv can recognize.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX is a WordprocessingML package (.docx, .docm, .dotx, .dotm).
	DOCX
	// XLSX is a SpreadsheetML package.
	XLSX
	// PPTX is a PresentationML package.
	PPTX
	// ODT is an OpenDocument text archive.
	ODT
	// PDF is a PDF file.
	PDF
	// HTML is an HTML document.
	HTML
	// DOC is a legacy binary Word file.
	DOC
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case ODT:
		return "ODT"
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	case DOC:
		return "DOC"
	default:
		return "Unknown"
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".docm", ".dotx", ".dotm":
		return DOCX
	case ".xlsx", ".xlsm":
		return XLSX
	case ".pptx", ".pptm":
		return PPTX
	case ".odt":
		return ODT
	case ".pdf":
		return PDF
	case ".html", ".htm":
		return HTML
	case ".doc":
		return DOC
	default:
		return Unknown
	}
}

var (
	magicZIP = []byte{0x50, 0x4B, 0x03, 0x04}
	magicPDF = []byte("%PDF")
	// Compound File Binary header used by .doc files.
	magicCFB = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFromMagic checks leading bytes. ZIP archives report Unknown here
// because telling the OOXML formats apart needs the archive directory; use
// DetectFromReader or FromPartNames for those.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case bytes.HasPrefix(data, magicCFB):
		return DOC
	case bytes.HasPrefix(data, magicZIP):
		return Unknown
	case looksLikeHTML(data):
		return HTML
	}
	return Unknown
}

func looksLikeHTML(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	head := strings.ToUpper(string(data[:min(len(data), 512)]))
	switch {
	case strings.HasPrefix(head, "<!DOCTYPE HTML"), strings.HasPrefix(head, "<HTML"):
		return true
	case strings.HasPrefix(head, "<?XML"):
		return strings.Contains(head, "<HTML")
	}
	return false
}

// DetectFromReader inspects content, opening ZIP archives to tell the
// OOXML and OpenDocument formats apart.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	head := make([]byte, 512)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	head = head[:n]

	if !bytes.HasPrefix(head, magicZIP) {
		return DetectFromMagic(head), nil
	}
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		if f.Name == "mimetype" && isODTMimetype(f) {
			return ODT, nil
		}
		names = append(names, f.Name)
	}
	return FromPartNames(names), nil
}

func isODTMimetype(f *zip.File) bool {
	rc, err := f.Open()
	if err != nil {
		return false
	}
	defer rc.Close()
	data, _ := io.ReadAll(io.LimitReader(rc, 256))
	return strings.HasPrefix(string(data), "application/vnd.oasis.opendocument.text")
}

// FromPartNames classifies an OOXML package by the directory its parts
// live under.
func FromPartNames(names []string) Format {
	for _, name := range names {
		switch {
		case strings.HasPrefix(name, "word/"):
			return DOCX
		case strings.HasPrefix(name, "xl/"):
			return XLSX
		case strings.HasPrefix(name, "ppt/"):
			return PPTX
		}
	}
	return Unknown
}
