package api

import "fmt"

// Glyph - символ клетки с цветом, упакованный в uint32:
//
//	[0:8]  - символ (ASCII)
//	[8:32] - цвет 0xRRGGBB
type Glyph uint32

const (
	bitsChar   = 8
	shiftColor = bitsChar
	maskChar   = 1<<bitsChar - 1
	maskColor  = 1<<24 - 1
)

// MakeGlyph упаковывает цвет (младшие 24 бита) и символ.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | uint32(char)&maskChar)
}

func (g Glyph) Color() uint32 { return uint32(g>>shiftColor) & maskColor }
func (g Glyph) Char() byte    { return byte(g & maskChar) }

// HexColor возвращает цвет в виде "#RRGGBB".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

// Dim - тот же символ вдвое темнее. Так рисуются клетки, которые игрок
// помнит, но сейчас не видит.
func (g Glyph) Dim() Glyph {
	c := g.Color()
	r, gr, b := (c>>16)&0xFF, (c>>8)&0xFF, c&0xFF
	return MakeGlyph((r>>1)<<16|(gr>>1)<<8|b>>1, g.Char())
}

func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	// Непечатаемые - в hex
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// Символы объектов поверх рельефа
var (
	GlyphObserver = MakeGlyph(0x22D3EE, '@')
	GlyphMonster  = MakeGlyph(0xEF4444, 'M')
	GlyphObject   = MakeGlyph(0xFACC15, '&')
	GlyphTrap     = MakeGlyph(0xF97316, '^')
	GlyphUnknown  = MakeGlyph(0x000000, ' ')
)
