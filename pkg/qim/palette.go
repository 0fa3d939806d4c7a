package qim

import "fmt"

// Palette is the capability set a quadtree needs to turn a palette
// index into a color: a bit width and an index → color lookup. It is
// deliberately an interface rather than a concrete type, so that future
// fixed-width palettes (grayscale, web-safe, ...) can be added without
// touching the tree, quantizer, or codec.
type Palette interface {
	// Width returns the bit width of a palette index, in [1, 32].
	Width() uint8

	// ToRGBA converts a palette index into its color. Returns
	// ErrColorOutOfRange if index is outside [0, 1<<Width()).
	ToRGBA(index uint32) (Color, error)

	// Slice returns the palette's backing color list, if the
	// implementation stores one; ok is false when no such list exists
	// (e.g. a procedurally-computed palette).
	Slice() (colors []Color, ok bool)
}

// DynamicPalette is a Palette that can be constructed from an ordered
// list of at most 1<<width colors (see NewDynamicPalette).
type DynamicPalette interface {
	Palette
}

// dynamicPalette is the one concrete Palette implementation this
// module ships: a fixed-width index space backed by an explicit color
// list. Entries beyond len(colors) are implicitly (0,0,0,0).
type dynamicPalette struct {
	width  uint8
	colors []Color
}

var _ DynamicPalette = (*dynamicPalette)(nil)

// NewDynamicPalette builds a DynamicPalette of the given bit width from
// an ordered color list. width must be in [1, 32]; colors must contain
// at most 1<<width entries. Any shorter list is accepted; missing tail
// entries read back as (0,0,0,0).
func NewDynamicPalette(width uint8, colors []Color) (*dynamicPalette, error) {
	if width < 1 || width > 32 {
		return nil, fmt.Errorf("qim: palette width must be in [1, 32], got %d", width)
	}
	capacity := paletteCapacity(width)
	if uint64(len(colors)) > capacity {
		return nil, fmt.Errorf("qim: palette has %d colors, exceeds capacity %d for width %d", len(colors), capacity, width)
	}
	cp := make([]Color, len(colors))
	copy(cp, colors)
	return &dynamicPalette{width: width, colors: cp}, nil
}

// paletteCapacity returns 1<<width as a uint64, safe for width up to 32.
func paletteCapacity(width uint8) uint64 {
	return uint64(1) << uint(width)
}

func (p *dynamicPalette) Width() uint8 { return p.width }

func (p *dynamicPalette) ToRGBA(index uint32) (Color, error) {
	if uint64(index) >= paletteCapacity(p.width) {
		return Color{}, ErrColorOutOfRange
	}
	if int(index) < len(p.colors) {
		return p.colors[index], nil
	}
	return Color{}, nil
}

func (p *dynamicPalette) Slice() ([]Color, bool) {
	return p.colors, true
}

// Len returns the number of explicitly stored colors (not the full
// 1<<width capacity).
func (p *dynamicPalette) Len() int {
	return len(p.colors)
}
