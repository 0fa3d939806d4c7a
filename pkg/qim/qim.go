package qim

import (
	"github.com/gabrielmougard/qimc/pkg/qim/bitio"
)

// magic is the fixed 6-byte ASCII header identifying a QIM file.
const magic = "QuadIM"

// formatVersion is the only version this codec understands.
const formatVersion = 0x01

// headerSize is the byte length of magic + version + length/width byte,
// before the palette block begins.
const headerSize = 8

// Encode serializes root against palette into the QIM byte layout: a
// 6-byte magic, a version byte, a length/width byte, the palette
// block, and a pre-order, MSB-first bitstream of the tree.
//
// Encoding fails with ErrColorOutOfRange if any node stores a color
// index ≥ the palette's 2^width capacity, and with ErrPaletteTooLarge
// if width falls outside the encodable range [4,32]. Widths below 4
// are refused rather than guessed at: the palette-length rounding
// the format relies on is only unambiguous once capacity ≥ 16.
func Encode(root *QuadtreeNode, palette Palette) ([]byte, error) {
	width := palette.Width()
	if width < 4 || width > 32 {
		return nil, ErrPaletteTooLarge
	}
	capacity := paletteCapacity(width)

	if err := validateColors(root, capacity); err != nil {
		return nil, err
	}

	colors, _ := palette.Slice()
	approxCode, length := encodePaletteLength(width, colors)

	out := make([]byte, 0, headerSize+4*length)
	out = append(out, magic...)
	out = append(out, formatVersion)
	out = append(out, byte(approxCode<<5)|byte(width-1))

	for i := 0; i < length; i++ {
		var c Color
		if i < len(colors) {
			c = colors[i]
		}
		out = append(out, c.R, c.G, c.B, c.A)
	}

	w := bitio.NewWriter(len(out) + estimateTreeBytes(root, int(width)))
	writeTree(w, root, int(width))
	out = append(out, w.Finish()...)

	return out, nil
}

func validateColors(n *QuadtreeNode, capacity uint64) error {
	if uint64(n.Color) >= capacity {
		return ErrColorOutOfRange
	}
	if n.IsLeaf() {
		return nil
	}
	for _, child := range n.Sections {
		if err := validateColors(child, capacity); err != nil {
			return err
		}
	}
	return nil
}

func writeTree(w *bitio.Writer, n *QuadtreeNode, width int) {
	w.WriteBit(!n.IsLeaf())
	w.WriteBits(n.Color, width)
	if !n.IsLeaf() {
		for _, child := range n.Sections {
			writeTree(w, child, width)
		}
	}
}

func estimateTreeBytes(n *QuadtreeNode, width int) int {
	return (countNodes(n)*(1+width))/8 + 1
}

func countNodes(n *QuadtreeNode) int {
	if n.IsLeaf() {
		return 1
	}
	total := 1
	for _, child := range n.Sections {
		total += countNodes(child)
	}
	return total
}

// encodePaletteLength picks the stored palette length L for the given
// width: the smallest multiple-of-C/16 length (expressed as a 3-bit
// approx_len_code in [0,7]) that still preserves every trailing
// non-zero entry of colors.
func encodePaletteLength(width uint8, colors []Color) (approxCode, length int) {
	capacity := int(paletteCapacity(width))

	lastNonZero := -1
	for i, c := range colors {
		if c != (Color{}) {
			lastNonZero = i
		}
	}
	needed := lastNonZero + 1

	for code := 0; code <= 7; code++ {
		l := paletteLengthForCode(code, capacity)
		if l >= needed {
			return code, l
		}
	}
	return 7, paletteLengthForCode(7, capacity)
}

// paletteLengthForCode computes L = (code+9)*C/16 for a given
// approx_len_code and palette capacity C, using integer division
// throughout to avoid floating-point rounding drift between encoder
// and decoder.
func paletteLengthForCode(code, capacity int) int {
	l := (code + 9) * capacity / 16
	if l < 1 {
		l = 1
	}
	// code == 7 already yields exactly capacity, so this clamp is never
	// actually hit; kept because the formula's range isn't obviously
	// bounded by capacity at a glance.
	if l > capacity {
		l = capacity
	}
	return l
}

// DecodeQIM parses a QIM byte sequence into a tree and the palette that
// was embedded alongside it.
func DecodeQIM(data []byte) (*QuadtreeNode, DynamicPalette, error) {
	if len(data) < headerSize {
		return nil, nil, ErrMissingHeader
	}
	if string(data[0:6]) != magic || data[6] != formatVersion {
		return nil, nil, ErrMissingHeader
	}

	lw := data[7]
	approxCode := int(lw >> 5)
	width := uint8(lw&0x1F) + 1
	capacity := int(paletteCapacity(width))
	length := paletteLengthForCode(approxCode, capacity)

	// paletteLengthForCode never returns more than capacity, so this
	// never actually triggers; left as a guard in case that invariant
	// changes.
	if length > capacity {
		return nil, nil, ErrPaletteTooLarge
	}
	if len(data) < headerSize+4*length {
		return nil, nil, ErrInsufficientData
	}

	colors := make([]Color, capacity)
	off := headerSize
	for i := 0; i < length; i++ {
		colors[i] = Color{R: data[off], G: data[off+1], B: data[off+2], A: data[off+3]}
		off += 4
	}

	palette, err := NewDynamicPalette(width, colors)
	if err != nil {
		return nil, nil, err
	}

	r := bitio.NewReader(data[off:])
	root, err := readTree(r, int(width))
	if err != nil {
		return nil, nil, err
	}

	return root, palette, nil
}

func readTree(r *bitio.Reader, width int) (*QuadtreeNode, error) {
	hasChildren, ok := r.ReadBit()
	if !ok {
		return nil, ErrInsufficientData
	}
	color, ok := r.ReadBits(width)
	if !ok {
		return nil, ErrInsufficientData
	}
	if !hasChildren {
		return &QuadtreeNode{Color: color}, nil
	}

	var children [4]*QuadtreeNode
	for i := range children {
		child, err := readTree(r, width)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return &QuadtreeNode{Color: color, Sections: &children}, nil
}
