// Package blur applies a Gaussian pre-filter to source images before
// quantization, smoothing sensor/dither noise that would otherwise
// fragment the quadtree builder's uniform regions.
package blur

import (
	"image"
	"math"
)

// Gaussian returns a copy of img blurred with a separable Gaussian
// kernel of the given radius (standard deviation). radius == 0 is
// handled by the caller as a no-op; Gaussian itself always filters.
func Gaussian(img *image.RGBA, radius float64) *image.RGBA {
	kernel := gaussianKernel(radius)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	horizontal := image.NewRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := convolveRow(img, b, x, y, kernel)
			off := horizontal.PixOffset(b.Min.X+x, b.Min.Y+y)
			horizontal.Pix[off] = r
			horizontal.Pix[off+1] = g
			horizontal.Pix[off+2] = bl
			horizontal.Pix[off+3] = a
		}
	}

	out := image.NewRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := convolveColumn(horizontal, b, x, y, kernel)
			off := out.PixOffset(b.Min.X+x, b.Min.Y+y)
			out.Pix[off] = r
			out.Pix[off+1] = g
			out.Pix[off+2] = bl
			out.Pix[off+3] = a
		}
	}
	return out
}

// gaussianKernel builds a normalized 1D kernel spanning ±3*radius,
// clamped to at least three taps (one on each side of the center).
func gaussianKernel(radius float64) []float64 {
	if radius < 0 {
		radius = 0
	}
	extent := int(math.Ceil(radius * 3))
	if extent < 1 {
		extent = 1
	}
	size := 2*extent + 1
	kernel := make([]float64, size)

	sigma := radius
	if sigma <= 0 {
		sigma = 1e-6
	}
	var sum float64
	for i := 0; i < size; i++ {
		x := float64(i - extent)
		v := math.Exp(-(x * x) / (2 * sigma * sigma))
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func convolveRow(img *image.RGBA, b image.Rectangle, x, y int, kernel []float64) (r, g, bl, a uint8) {
	extent := len(kernel) / 2
	var sr, sg, sb, sa float64
	for i, weight := range kernel {
		sx := clamp(x+i-extent, 0, b.Dx()-1)
		off := img.PixOffset(b.Min.X+sx, b.Min.Y+y)
		sr += float64(img.Pix[off]) * weight
		sg += float64(img.Pix[off+1]) * weight
		sb += float64(img.Pix[off+2]) * weight
		sa += float64(img.Pix[off+3]) * weight
	}
	return round8(sr), round8(sg), round8(sb), round8(sa)
}

func convolveColumn(img *image.RGBA, b image.Rectangle, x, y int, kernel []float64) (r, g, bl, a uint8) {
	extent := len(kernel) / 2
	var sr, sg, sb, sa float64
	for i, weight := range kernel {
		sy := clamp(y+i-extent, 0, b.Dy()-1)
		off := img.PixOffset(b.Min.X+x, b.Min.Y+sy)
		sr += float64(img.Pix[off]) * weight
		sg += float64(img.Pix[off+1]) * weight
		sb += float64(img.Pix[off+2]) * weight
		sa += float64(img.Pix[off+3]) * weight
	}
	return round8(sr), round8(sg), round8(sb), round8(sa)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
