package qim

import "image"

// QuantizeImage maps every pixel of img to its nearest palette color,
// returning a flat row-major, top-left-origin sequence of palette
// indices. Ties are broken by lowest index. A pixel-to-index memo is
// kept for the duration of the call to amortize repeated colors.
func QuantizeImage(img *image.RGBA, p Palette) []uint32 {
	paletteColors := paletteColorList(p)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]uint32, w*h)

	memo := make(map[Color]uint32)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			off := img.PixOffset(x, y)
			c := Color{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2], A: img.Pix[off+3]}
			idx, ok := memo[c]
			if !ok {
				idx = nearestIndex(c, paletteColors)
				memo[c] = idx
			}
			out[i] = idx
			i++
		}
	}
	return out
}

// paletteColorList returns the full set of addressable colors for p, in
// index order, preferring the palette's own backing slice when
// available and falling back to calling ToRGBA over its whole capacity
// otherwise.
func paletteColorList(p Palette) []Color {
	if slice, ok := p.Slice(); ok {
		return slice
	}
	capacity := paletteCapacity(p.Width())
	colors := make([]Color, capacity)
	for i := range colors {
		c, err := p.ToRGBA(uint32(i))
		if err == nil {
			colors[i] = c
		}
	}
	return colors
}

// nearestIndex returns the index into colors whose RGBA value is
// closest to c under squared-Euclidean distance, with ties broken by
// lowest index.
func nearestIndex(c Color, colors []Color) uint32 {
	var best uint32
	bestDist := ^uint32(0)
	for i, pc := range colors {
		d := distance(c, pc)
		if d < bestDist {
			bestDist = d
			best = uint32(i)
		}
	}
	return best
}
