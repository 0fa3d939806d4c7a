package blur

import (
	"image"
	"testing"
)

func TestGaussian_UniformImageUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
			continue
		}
		img.Pix[i] = 100
	}
	out := Gaussian(img, 1.5)
	for i, want := range img.Pix {
		if out.Pix[i] != want {
			t.Fatalf("pixel byte %d = %d, want %d (uniform image must be unchanged by blur)", i, out.Pix[i], want)
		}
	}
}

func TestGaussian_SmoothsSingleBrightPixel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			off := img.PixOffset(x, y)
			img.Pix[off+3] = 255
		}
	}
	off := img.PixOffset(2, 2)
	img.Pix[off] = 255

	out := Gaussian(img, 1.0)
	centerOff := out.PixOffset(2, 2)
	if out.Pix[centerOff] >= 255 {
		t.Errorf("center pixel R = %d, want < 255 after blur", out.Pix[centerOff])
	}
	neighborOff := out.PixOffset(3, 2)
	if out.Pix[neighborOff] == 0 {
		t.Errorf("neighbor pixel R = 0, want bleed from center under blur")
	}
}

func TestGaussian_PreservesBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	out := Gaussian(img, 2.0)
	if out.Bounds() != img.Bounds() {
		t.Errorf("Bounds() = %v, want %v", out.Bounds(), img.Bounds())
	}
}
