package qim

import "testing"

func smallPalette(t *testing.T) *dynamicPalette {
	t.Helper()
	p, err := NewDynamicPalette(4, []Color{
		NewColor(128, 64, 32, 255),
		NewColor(255, 0, 0, 255),
		NewColor(0, 255, 0, 255),
		NewColor(0, 0, 255, 255),
		NewColor(0, 0, 0, 255),
	})
	if err != nil {
		t.Fatalf("NewDynamicPalette() error = %v", err)
	}
	return p
}

func TestEncode_HeaderBytes(t *testing.T) {
	p := smallPalette(t)
	root := &QuadtreeNode{Color: 0}

	data, err := Encode(root, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(data[0:7]) != "QuadIM\x01" {
		t.Fatalf("header = %q, want %q", data[0:7], "QuadIM\x01")
	}
}

func TestEncode_RejectsOutOfRangeColor(t *testing.T) {
	p := smallPalette(t)
	root := &QuadtreeNode{Color: 1 << 4}

	if _, err := Encode(root, p); err != ErrColorOutOfRange {
		t.Fatalf("err = %v, want ErrColorOutOfRange", err)
	}
}

func TestEncodeDecode_RoundTripSingleLeaf(t *testing.T) {
	p := smallPalette(t)
	root := &QuadtreeNode{Color: 2}

	data, err := Encode(root, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	gotRoot, gotPalette, err := DecodeQIM(data)
	if err != nil {
		t.Fatalf("DecodeQIM() error = %v", err)
	}
	if !gotRoot.IsLeaf() || gotRoot.Color != 2 {
		t.Fatalf("decoded root = %+v, want leaf with color 2", gotRoot)
	}
	c, err := gotPalette.ToRGBA(2)
	if err != nil {
		t.Fatalf("ToRGBA(2) error = %v", err)
	}
	if c != NewColor(0, 255, 0, 255) {
		t.Errorf("palette[2] = %+v, want (0,255,0,255)", c)
	}
}

func TestEncodeDecode_RoundTripInternalTree(t *testing.T) {
	p := smallPalette(t)
	children := [4]*QuadtreeNode{
		{Color: 1}, {Color: 2}, {Color: 3}, {Color: 4},
	}
	root := &QuadtreeNode{Color: 0, Sections: &children}

	data, err := Encode(root, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	gotRoot, _, err := DecodeQIM(data)
	if err != nil {
		t.Fatalf("DecodeQIM() error = %v", err)
	}
	if gotRoot.IsLeaf() {
		t.Fatalf("decoded root is a leaf, want internal")
	}
	for i, want := range []uint32{1, 2, 3, 4} {
		if gotRoot.Sections[i].Color != want {
			t.Errorf("child %d color = %d, want %d", i, gotRoot.Sections[i].Color, want)
		}
	}
}

func TestDecodeQIM_MissingHeader(t *testing.T) {
	if _, _, err := DecodeQIM([]byte("short")); err != ErrMissingHeader {
		t.Errorf("err = %v, want ErrMissingHeader", err)
	}
	bad := []byte("QuadIM\x02\x00")
	if _, _, err := DecodeQIM(bad); err != ErrMissingHeader {
		t.Errorf("err = %v, want ErrMissingHeader (bad version)", err)
	}
}

func TestDecodeQIM_InsufficientData(t *testing.T) {
	p := smallPalette(t)
	root := &QuadtreeNode{Color: 0}
	data, err := Encode(root, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	truncated := data[:len(data)-1]
	if _, _, err := DecodeQIM(truncated); err != ErrInsufficientData {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
}

func TestPaletteLength_WithinBounds(t *testing.T) {
	p := smallPalette(t)
	root := &QuadtreeNode{Color: 0}
	data, err := Encode(root, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	capacity := int(paletteCapacity(p.Width()))
	lengthByte := data[7]
	approxCode := int(lengthByte >> 5)
	length := paletteLengthForCode(approxCode, capacity)

	lower := 9 * capacity / 16
	if length < lower || length > capacity {
		t.Errorf("L = %d, want in [%d, %d]", length, lower, capacity)
	}
}

func TestEncode_RefusesWidthBelowFour(t *testing.T) {
	p, err := NewDynamicPalette(2, []Color{NewColor(0, 0, 0, 255)})
	if err != nil {
		t.Fatalf("NewDynamicPalette() error = %v", err)
	}
	root := &QuadtreeNode{Color: 0}
	if _, err := Encode(root, p); err != ErrPaletteTooLarge {
		t.Errorf("err = %v, want ErrPaletteTooLarge", err)
	}
}
