package api

import "testing"

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name  string
		color uint32
		char  byte
		want  Glyph
	}{
		{"orange A", 0xFFA500, 'A', Glyph(0xFFA50041)},
		{"black space", 0x000000, ' ', Glyph(0x00000020)},
		{"color truncation", 0x12345678, 'x', Glyph(0x34567878)},
		{"max char", 0x404040, 0xFF, Glyph(0x404040FF)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeGlyph(tt.color, tt.char)
			if got != tt.want {
				t.Errorf("MakeGlyph() = 0x%08X, want 0x%08X", got, tt.want)
			}
			if got.Char() != tt.char {
				t.Errorf("Char() = %q, want %q", got.Char(), tt.char)
			}
			if got.Color() != tt.color&0xFFFFFF {
				t.Errorf("Color() = 0x%06X", got.Color())
			}
		})
	}
}

func TestGlyph_Dim(t *testing.T) {
	g := MakeGlyph(0xFF8040, '#')
	dim := g.Dim()
	if dim.Char() != '#' {
		t.Errorf("Dim changed the char: %q", dim.Char())
	}
	if dim.HexColor() != "#7F4020" {
		t.Errorf("Dim color = %s, want #7F4020", dim.HexColor())
	}
}

func TestGlyph_String(t *testing.T) {
	tests := []struct {
		g    Glyph
		want string
	}{
		{MakeGlyph(0xFFA500, 'A'), "Glyph{char='A', color=#FFA500}"},
		{MakeGlyph(0xFFFFFF, '\n'), "Glyph{char='\\x0A', color=#FFFFFF}"},
		{MakeGlyph(0x654321, 0x7F), "Glyph{char='\\x7F', color=#654321}"},
	}
	for _, tt := range tests {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
