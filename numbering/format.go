package numbering

import (
	"strconv"
	"strings"

	"github.com/tsawler/docxconv/model"
)

// Format renders n in a numbering format. Unknown formats render as
// decimal; bullet and none render as "".
func Format(f model.NumberFormat, n int) string {
	switch f {
	case model.FormatDecimal:
		return strconv.Itoa(n)
	case model.FormatDecimalZero:
		if n >= 0 && n < 10 {
			return "0" + strconv.Itoa(n)
		}
		return strconv.Itoa(n)
	case model.FormatUpperRoman:
		return strings.ToUpper(Roman(n))
	case model.FormatLowerRoman:
		return Roman(n)
	case model.FormatUpperLetter:
		return strings.ToUpper(Letters(n))
	case model.FormatLowerLetter:
		return Letters(n)
	case model.FormatBullet, model.FormatNone:
		return ""
	}
	return strconv.Itoa(n)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// Roman returns n as lower-case Roman numerals. Values outside 1..3999 are
// returned as decimal.
func Roman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

// Letters returns n in bijective base 26: a..z, aa..az, ba... Values below 1
// are returned as decimal.
func Letters(n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('a'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// symbolBullets maps private-use glyphs of the Symbol and Wingdings fonts,
// which Word stores at U+F000 plus the font code, to Unicode.
var symbolBullets = map[rune]string{
	0xF0B7: "•", // Symbol bullet
	0xF0A7: "▪", // Wingdings small square
	0xF0A8: "□",
	0xF06E: "■",
	0xF0D8: "➢",
	0xF076: "❖",
	0xF0FC: "✓",
	0xF0E0: "➔",
	0xF02D: "–",
	0xF06F: "○",
}

// bulletGlyph turns a bullet level text into a renderable glyph. Unknown
// private-use or control characters become "•".
func bulletGlyph(text string) string {
	switch text {
	case "":
		return "•"
	case "o":
		// Courier New "o" is Word's default second-level bullet.
		return "◦"
	}
	var sb strings.Builder
	for _, r := range text {
		switch {
		case symbolBullets[r] != "":
			sb.WriteString(symbolBullets[r])
		case r >= 0xE000 && r <= 0xF8FF, r < 0x20:
			sb.WriteString("•")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
