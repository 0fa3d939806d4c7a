package qim

import (
	"image"

	"github.com/gabrielmougard/qimc/internal/blur"
)

// maxUniformity is the uniformity scale's upper bound: U is expressed
// on a 0..16384 scale.
const maxUniformity = 16384

// QuadtreeNode is a recursive quadtree entity. Color is a palette index:
// for leaves it is the rendered color; for internal nodes it is the
// representative color used when a viewer stops descending. Sections
// holds the four children in quadrant order Q0=NW, Q1=NE, Q2=SW, Q3=SE;
// nil means the node is a leaf.
type QuadtreeNode struct {
	Color    uint32
	Sections *[4]*QuadtreeNode
}

// IsLeaf reports whether n has no children.
func (n *QuadtreeNode) IsLeaf() bool {
	return n.Sections == nil
}

// FromImage validates img's dimensions, optionally blurs it, quantizes
// it against palette, and mounts the resulting quadtree into n.
//
// sensitivity is on the 0..16384 uniformity scale. blurRadius of 0
// disables the pre-filter.
func (n *QuadtreeNode) FromImage(img *image.RGBA, palette Palette, sensitivity uint32, blurRadius float64, gradient bool) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != h {
		return ErrNonSquare
	}
	if !isPowerOfTwo(w) {
		return ErrNonPowerOfTwo
	}

	working := img
	if blurRadius != 0 {
		working = blur.Gaussian(img, blurRadius)
	}

	indices := QuantizeImage(working, palette)
	tree, err := BuildTree(indices, palette, sensitivity, gradient)
	if err != nil {
		// from_image's own preconditions guarantee a well-formed
		// indices buffer and in-range colors, so BuildTree cannot
		// fail here; a failure indicates a bug in quantization.
		return err
	}
	*n = *tree
	return nil
}

// BuildTree recursively subdivides a palettized square region of side
// sqrt(len(indices)) into a quadtree. indices must have a power-of-four
// length.
func BuildTree(indices []uint32, palette Palette, sensitivity uint32, gradient bool) (*QuadtreeNode, error) {
	n := len(indices)
	side, ok := isqrtPowerOfTwo(n)
	if !ok {
		return nil, ErrInvalidSize
	}
	for _, idx := range indices {
		if uint64(idx) >= paletteCapacity(palette.Width()) {
			return nil, ErrColorOutOfRange
		}
	}
	b := &builder{indices: indices, side: side, palette: palette, sensitivity: sensitivity, gradient: gradient}
	node, _ := b.build(0, 0, side)
	return node, nil
}

// isqrtPowerOfTwo reports whether n is a power of four and returns its
// square root (the side length of the implied square region).
func isqrtPowerOfTwo(n int) (side int, ok bool) {
	if n <= 0 || !isPowerOfTwo(n) {
		return 0, false
	}
	side = 1
	for side*side < n {
		side <<= 1
	}
	if side*side != n {
		return 0, false
	}
	return side, true
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

type builder struct {
	indices     []uint32
	side        int
	palette     Palette
	sensitivity uint32
	gradient    bool
}

// build constructs the quadtree for the side0 x side0 square region
// whose top-left corner is (x0, y0) in the full image, returning the
// node and its representative RGBA color.
func (b *builder) build(x0, y0, side0 int) (*QuadtreeNode, Color) {
	if side0 == 1 {
		idx := b.indices[y0*b.side+x0]
		c, _ := b.palette.ToRGBA(idx)
		return &QuadtreeNode{Color: idx}, c
	}

	half := side0 / 2
	children := [4]*QuadtreeNode{}
	reps := [4]Color{}

	// Q0=NW, Q1=NE, Q2=SW, Q3=SE
	children[0], reps[0] = b.build(x0, y0, half)
	children[1], reps[1] = b.build(x0+half, y0, half)
	children[2], reps[2] = b.build(x0, y0+half, half)
	children[3], reps[3] = b.build(x0+half, y0+half, half)

	repColor := areaWeightedAverage(reps)
	repIndex := nearestIndex(repColor, paletteColorList(b.palette))

	allLeaves := children[0].IsLeaf() && children[1].IsLeaf() && children[2].IsLeaf() && children[3].IsLeaf()
	u := uniformityScore(reps)
	if allLeaves && u >= b.sensitivity {
		return &QuadtreeNode{Color: repIndex}, repColor
	}

	return &QuadtreeNode{Color: repIndex, Sections: &children}, repColor
}

// areaWeightedAverage returns the average of four RGBA colors (each
// quadrant contributes equal area), using truncating integer division.
func areaWeightedAverage(c [4]Color) Color {
	var sumR, sumG, sumB, sumA int
	for _, x := range c {
		sumR += int(x.R)
		sumG += int(x.G)
		sumB += int(x.B)
		sumA += int(x.A)
	}
	return Color{
		R: uint8(sumR / 4),
		G: uint8(sumG / 4),
		B: uint8(sumB / 4),
		A: uint8(sumA / 4),
	}
}

// uniformityScore computes U = 16384 - max_pairwise_squared_distance(reps),
// clamped to [0, 16384].
func uniformityScore(reps [4]Color) uint32 {
	var maxDist uint32
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			d := distance(reps[i], reps[j])
			if d > maxDist {
				maxDist = d
			}
		}
	}
	if maxDist > maxUniformity {
		return 0
	}
	return maxUniformity - maxDist
}

// Trim descends the tree, collapsing leaf-quartets past depth into a
// single leaf when their color-frequency pattern is exactly 3 distinct
// colors, or exactly 2 distinct colors with a 3-1 split. depth is
// decremented on each descent; a node becomes a trim candidate once
// depth <= 0.
func (n *QuadtreeNode) Trim(depth int) {
	if n.Sections == nil {
		return
	}
	sections := n.Sections
	allLeaves := sections[0].IsLeaf() && sections[1].IsLeaf() && sections[2].IsLeaf() && sections[3].IsLeaf()
	if depth <= 0 && allLeaves {
		freq := make(map[uint32]int, 4)
		for _, s := range sections {
			freq[s.Color]++
		}
		switch len(freq) {
		case 3:
			n.Sections = nil
		case 2:
			max := 0
			for _, c := range freq {
				if c > max {
					max = c
				}
			}
			if max == 3 {
				n.Sections = nil
			}
		}
		return
	}
	for _, s := range sections {
		s.Trim(depth - 1)
	}
}
