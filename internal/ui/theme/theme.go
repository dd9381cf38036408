// Package theme holds the colour palettes shared by the desktop window and the
// terminal front end, plus the presentation rules derived from timer state.
package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"droplet/internal/core/timer"
)

// Palette is a named colour scheme.
type Palette struct {
	Name        string
	Background  string
	WorkAccent  string
	BreakAccent string
	Text        string
}

// DefaultName is used when a stored theme name is unknown.
const DefaultName = "Dark"

var palettes = []Palette{
	{Name: "Dark", Background: "1E1E1E", WorkAccent: "81A1C1", BreakAccent: "A3BE8C", Text: "E0E0E0"},
	{Name: "Noir", Background: "000000", WorkAccent: "7D7D7D", BreakAccent: "4B4B4B", Text: "BFBFBF"},
	{Name: "Light", Background: "F5F5F5", WorkAccent: "5D8AA8", BreakAccent: "6B8E23", Text: "333333"},
	{Name: "Beige", Background: "F5F1E4", WorkAccent: "8B5E3C", BreakAccent: "A68A64", Text: "4A3728"},
	{Name: "Linen", Background: "F5F1E4", WorkAccent: "1C2E4A", BreakAccent: "3E5C76", Text: "1C2E4A"},
	{Name: "Poppy", Background: "FFE4E9", WorkAccent: "FF6B6B", BreakAccent: "FF8FA3", Text: "8B2942"},
	{Name: "Blossom", Background: "FFF0F5", WorkAccent: "DB7093", BreakAccent: "EAB8C5", Text: "5F3E49"},
	{Name: "Velvet", Background: "2F2A44", WorkAccent: "A76D99", BreakAccent: "6F4C7A", Text: "E8BFD1"},
	{Name: "Plum", Background: "5C4B8A", WorkAccent: "A77BCA", BreakAccent: "D6A6E0", Text: "EAD1E5"},
	{Name: "Navy", Background: "1C2E4A", WorkAccent: "F5F1E4", BreakAccent: "E8E4D5", Text: "F5F1E4"},
	{Name: "Royal", Background: "0F1826", WorkAccent: "D7C49E", BreakAccent: "E0D5B6", Text: "E0D5B6"},
	{Name: "Teal", Background: "008080", WorkAccent: "48D1CC", BreakAccent: "7FFFD4", Text: "E0FFFF"},
	{Name: "Frog", Background: "E8F3E8", WorkAccent: "2D5A27", BreakAccent: "7FB069", Text: "1B3022"},
	{Name: "Leaf", Background: "051907", WorkAccent: "2D5A27", BreakAccent: "558B2F", Text: "E8F5E9"},
	{Name: "Emerald", Background: "0D2B1D", WorkAccent: "6B8F71", BreakAccent: "AEC3B0", Text: "E3EFD3"},
}

// Names lists every palette in menu order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for _, palette := range palettes {
		names = append(names, palette.Name)
	}
	return names
}

// Parse looks a palette up by name, case-insensitively, falling back to Dark.
func Parse(name string) Palette {
	for _, palette := range palettes {
		if strings.EqualFold(palette.Name, strings.TrimSpace(name)) {
			return palette
		}
	}
	return palettes[0]
}

// Accent returns the hex accent for a phase: work accent while working,
// break accent during both breaks.
func (palette Palette) Accent(phase timer.Phase) string {
	if phase.IsBreak() {
		return palette.BreakAccent
	}
	return palette.WorkAccent
}

// HexColor converts a palette entry into a "#RRGGBB" string.
func HexColor(hex string) string {
	c := ParseHex(hex)
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex converts 3 (RGB), 6 (RRGGBB) or 8 (AARRGGBB) hex digits into a colour.
// Anything else yields opaque black.
func ParseHex(hex string) color.NRGBA {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	value, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{A: 255}
	}

	switch len(hex) {
	case 3:
		return color.NRGBA{
			R: uint8((value >> 8) * 17),
			G: uint8((value >> 4 & 0xF) * 17),
			B: uint8((value & 0xF) * 17),
			A: 255,
		}
	case 6:
		return color.NRGBA{
			R: uint8(value >> 16),
			G: uint8(value >> 8 & 0xFF),
			B: uint8(value & 0xFF),
			A: 255,
		}
	case 8:
		return color.NRGBA{
			A: uint8(value >> 24),
			R: uint8(value >> 16 & 0xFF),
			G: uint8(value >> 8 & 0xFF),
			B: uint8(value & 0xFF),
		}
	default:
		return color.NRGBA{A: 255}
	}
}

// WithAlpha returns c with its alpha scaled by opacity in [0, 1].
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}
