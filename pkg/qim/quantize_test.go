package qim

import (
	"image"
	"testing"
)

func TestQuantizeImage_NearestColor(t *testing.T) {
	p, err := NewDynamicPalette(2, []Color{
		NewColor(0, 0, 0, 255),
		NewColor(255, 255, 255, 255),
		NewColor(255, 0, 0, 255),
	})
	if err != nil {
		t.Fatalf("NewDynamicPalette() error = %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, NewColor(10, 10, 10, 255).NRGBA())  // nearer to black
	img.Set(1, 0, NewColor(250, 5, 5, 255).NRGBA())   // nearer to red

	indices := QuantizeImage(img, p)
	if len(indices) != 2 {
		t.Fatalf("len(indices) = %d, want 2", len(indices))
	}
	if indices[0] != 0 {
		t.Errorf("indices[0] = %d, want 0 (black)", indices[0])
	}
	if indices[1] != 2 {
		t.Errorf("indices[1] = %d, want 2 (red)", indices[1])
	}
}

func TestQuantizeImage_TieBreakLowestIndex(t *testing.T) {
	// Two palette entries equidistant from the source pixel; lowest
	// index must win.
	p, err := NewDynamicPalette(1, []Color{
		NewColor(0, 0, 0, 255),
		NewColor(20, 0, 0, 255),
	})
	if err != nil {
		t.Fatalf("NewDynamicPalette() error = %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, NewColor(10, 0, 0, 255).NRGBA())

	indices := QuantizeImage(img, p)
	if indices[0] != 0 {
		t.Errorf("indices[0] = %d, want 0 (tie broken toward lowest index)", indices[0])
	}
}

func TestQuantizeImage_NoOtherEntryCloser(t *testing.T) {
	p, err := NewDynamicPalette(4, []Color{
		NewColor(0, 0, 0, 255),
		NewColor(64, 64, 64, 255),
		NewColor(128, 128, 128, 255),
		NewColor(192, 192, 192, 255),
		NewColor(255, 255, 255, 255),
	})
	if err != nil {
		t.Fatalf("NewDynamicPalette() error = %v", err)
	}
	colors, _ := p.Slice()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	n := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, NewColor(uint8(n*17), uint8(255-n*17), uint8(n*11), 255).NRGBA())
			n++
		}
	}

	indices := QuantizeImage(img, p)
	b := img.Bounds()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			off := img.PixOffset(x, y)
			src := Color{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2], A: img.Pix[off+3]}
			got := indices[i]
			gotDist := distance(src, colors[got])
			for j, c := range colors {
				if distance(src, c) < gotDist {
					t.Errorf("pixel %d: index %d (dist %d) not nearest; index %d is closer (dist %d)",
						i, got, gotDist, j, distance(src, c))
				}
			}
			i++
		}
	}
}
