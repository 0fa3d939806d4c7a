package qim

import (
	"image"
	"testing"
)

func fillSolid(img *image.RGBA, c Color) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c.NRGBA())
		}
	}
}

func quadrantImage(size int, colors [4]Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			idx := 0
			if x >= half {
				idx += 1
			}
			if y >= half {
				idx += 2
			}
			img.Set(x, y, colors[idx].NRGBA())
		}
	}
	return img
}

func TestGeneratePalette_UniformImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fillSolid(img, NewColor(128, 64, 32, 255))

	p, err := GeneratePalette(img, 256, 8)
	if err != nil {
		t.Fatalf("GeneratePalette() error = %v", err)
	}
	if p.Len() != 1 {
		t.Fatalf("palette length = %d, want 1", p.Len())
	}
	c, err := p.ToRGBA(0)
	if err != nil {
		t.Fatalf("ToRGBA(0) error = %v", err)
	}
	if c != NewColor(128, 64, 32, 255) {
		t.Errorf("palette[0] = %+v, want (128,64,32,255)", c)
	}
}

func TestGeneratePalette_QuadrantCheckerboard(t *testing.T) {
	colors := [4]Color{
		NewColor(255, 0, 0, 255),
		NewColor(0, 255, 0, 255),
		NewColor(0, 0, 255, 255),
		NewColor(0, 0, 0, 255),
	}
	img := quadrantImage(2, colors)

	p, err := GeneratePalette(img, 1, 8)
	if err != nil {
		t.Fatalf("GeneratePalette() error = %v", err)
	}
	if p.Len() != 4 {
		t.Fatalf("palette length = %d, want 4 distinct colors", p.Len())
	}
}

func TestGeneratePalette_DedupMonotonicity(t *testing.T) {
	colors := [4]Color{
		NewColor(10, 10, 10, 255),
		NewColor(12, 12, 12, 255),
		NewColor(200, 200, 200, 255),
		NewColor(202, 202, 202, 255),
	}
	img := quadrantImage(4, colors)

	small, err := GeneratePalette(img, 1, 8)
	if err != nil {
		t.Fatalf("GeneratePalette(low dedup) error = %v", err)
	}
	large, err := GeneratePalette(img, 1000, 8)
	if err != nil {
		t.Fatalf("GeneratePalette(high dedup) error = %v", err)
	}
	if large.Len() > small.Len() {
		t.Errorf("higher dedup threshold produced more colors: %d > %d", large.Len(), small.Len())
	}
}

func TestGeneratePalette_TruncatesToCapacity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	n := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, NewColor(uint8(n*7), uint8(n*13), uint8(n*17), 255).NRGBA())
			n++
		}
	}

	p, err := GeneratePalette(img, 1, 2) // width 2 -> capacity 4
	if err != nil {
		t.Fatalf("GeneratePalette() error = %v", err)
	}
	if p.Len() > 4 {
		t.Errorf("palette length = %d, want <= 4", p.Len())
	}
}
