package ooxml

import (
	"bytes"
	"image"
	"mime"
	"path"
	"strings"

	// Decoders registered for DecodeConfig sniffing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// IsZip reports whether data starts with the ZIP local file header magic
// (PK\x03\x04).
func IsZip(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// DetectContentType returns the MIME type of a media part. Raster formats
// are identified from their header; vector formats Word embeds (EMF, WMF,
// SVG) fall back to the file extension.
func DetectContentType(data []byte, name string) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return "image/" + format
	}

	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".emf":
		return "image/x-emf"
	case ".wmf":
		return "image/x-wmf"
	case ".svg":
		return "image/svg+xml"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
