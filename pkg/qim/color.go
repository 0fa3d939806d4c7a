// Package qim implements the quadtree + palette + QIM binary codec
// pipeline: palette generation, nearest-color quantization, quadtree
// construction, trimming, rendering, and the QIM byte format.
package qim

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

// Color represents an RGBA color value with 8-bit channels.
//
// Each channel (R, G, B, A) ranges from 0-255, where 0 is no
// contribution and 255 is full contribution; A follows the image/color
// convention where 0 is fully transparent and 255 is fully opaque.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var hexColorPattern = regexp.MustCompile(`^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{8})$`)

// NewColor creates a new Color with the specified RGBA values.
func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromNRGBA converts a standard library color.NRGBA into a Color.
func FromNRGBA(c color.NRGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// NRGBA converts c to the standard library's color.NRGBA representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromHex parses a hex color string and updates c with the parsed
// values.
//
// Supported formats: "#RRGGBB" (implies alpha = 255), "#RRGGBBAA", and
// the same without the leading "#".
func (c *Color) FromHex(hex string) error {
	hex = strings.TrimPrefix(hex, "#")

	if !hexColorPattern.MatchString("#" + hex) {
		return fmt.Errorf("invalid hex color format: %q (expected #RRGGBB or #RRGGBBAA)", hex)
	}

	r, _ := strconv.ParseUint(hex[0:2], 16, 8)
	g, _ := strconv.ParseUint(hex[2:4], 16, 8)
	b, _ := strconv.ParseUint(hex[4:6], 16, 8)

	c.R = uint8(r)
	c.G = uint8(g)
	c.B = uint8(b)

	if len(hex) == 8 {
		a, _ := strconv.ParseUint(hex[6:8], 16, 8)
		c.A = uint8(a)
	} else {
		c.A = 255
	}

	return nil
}

// ToHex converts the color to a "#RRGGBBAA" hex string.
func (c Color) ToHex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ToHexRGB converts the color to a "#RRGGBB" hex string, dropping alpha.
func (c Color) ToHexRGB() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func vec4LenSquared(a, b, c, d uint8) uint32 {
	return uint32(a)*uint32(a) + uint32(b)*uint32(b) + uint32(c)*uint32(c) + uint32(d)*uint32(d)
}

// distance returns the squared Euclidean distance between a and b in
// 8-bit RGBA space: d_color = dR² + dG² + dB² + dA².
func distance(a, b Color) uint32 {
	return vec4LenSquared(
		absDiff(a.R, b.R),
		absDiff(a.G, b.G),
		absDiff(a.B, b.B),
		absDiff(a.A, b.A),
	)
}

// dedupDistance returns the palette-generator dedup distance between a
// and b: squared RGB distance plus the square of the alpha difference
// divided by 4: dR² + dG² + dB² + (dA/4)².
func dedupDistance(a, b Color) uint32 {
	return vec4LenSquared(
		absDiff(a.R, b.R),
		absDiff(a.G, b.G),
		absDiff(a.B, b.B),
		absDiff(a.A, b.A)/4,
	)
}
