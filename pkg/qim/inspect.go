package qim

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// PaletteSwatch describes one palette entry for the inspect subcommand's
// human-readable summary: its RGBA value alongside an HSL breakdown.
// This is presentation-only; the core nearest-color math always works
// in integer squared-RGBA space (see distance, dedupDistance).
type PaletteSwatch struct {
	Index      uint32
	Color      Color
	Hue        float64 // 0..360 degrees
	Saturation float64 // 0..1
	Lightness  float64 // 0..1
}

// PaletteSwatches builds a PaletteSwatch for each stored entry of p (in
// index order), for display by the inspect subcommand.
func PaletteSwatches(p Palette) ([]PaletteSwatch, error) {
	colors, ok := p.Slice()
	if !ok {
		return nil, nil
	}
	swatches := make([]PaletteSwatch, len(colors))
	for i, c := range colors {
		rgb := colorful.Color{
			R: float64(c.R) / 255.0,
			G: float64(c.G) / 255.0,
			B: float64(c.B) / 255.0,
		}
		h, s, l := rgb.Hsl()
		swatches[i] = PaletteSwatch{Index: uint32(i), Color: c, Hue: h, Saturation: s, Lightness: l}
	}
	return swatches, nil
}

// TreeStats summarizes the shape of a quadtree for the inspect
// subcommand: how deep it runs and how many internal/leaf nodes it
// holds.
type TreeStats struct {
	Depth     int
	NodeCount int
	LeafCount int
	Internal  int
}

// Stats walks n and reports its shape.
func Stats(n *QuadtreeNode) TreeStats {
	var s TreeStats
	s.Depth, s.NodeCount, s.LeafCount, s.Internal = walkStats(n, 1)
	return s
}

func walkStats(n *QuadtreeNode, depth int) (maxDepth, nodes, leaves, internal int) {
	if n.IsLeaf() {
		return depth, 1, 1, 0
	}
	nodes = 1
	internal = 1
	maxDepth = depth
	for _, child := range n.Sections {
		d, nn, ll, ii := walkStats(child, depth+1)
		if d > maxDepth {
			maxDepth = d
		}
		nodes += nn
		leaves += ll
		internal += ii
	}
	return maxDepth, nodes, leaves, internal
}

// Thumbnail downscales img to fit within maxSide on its longer edge,
// for the inspect subcommand's optional preview render.
func Thumbnail(img image.Image, maxSide uint) image.Image {
	b := img.Bounds()
	w, h := uint(b.Dx()), uint(b.Dy())
	if w <= maxSide && h <= maxSide {
		return img
	}
	if w >= h {
		return resize.Resize(maxSide, 0, img, resize.Bilinear)
	}
	return resize.Resize(0, maxSide, img, resize.Bilinear)
}
