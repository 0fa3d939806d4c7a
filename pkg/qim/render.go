package qim

import "image"

// ToImage reconstructs an RGBA bitmap of side w from root and palette.
// gradient selects between flat quadrant fill and a bilinear blend
// across leaf-region corners; it is a rendering quality hint only; a
// decoder that never sets it still produces a valid image.
//
// Quadrants are visited in Q0..Q3 order, so rendering is deterministic
// and requires no concurrency.
func ToImage(root *QuadtreeNode, palette Palette, w int, gradient bool) (*image.RGBA, error) {
	if w <= 0 || !isPowerOfTwo(w) {
		return nil, ErrNonPowerOfTwo
	}

	img := image.NewRGBA(image.Rect(0, 0, w, w))
	r := &renderer{palette: palette, img: img}

	self, err := palette.ToRGBA(root.Color)
	if err != nil {
		return nil, err
	}

	if root.IsLeaf() {
		r.flatFill(0, 0, w, self)
		return img, nil
	}

	siblings, err := r.childReps(root)
	if err != nil {
		return nil, err
	}
	if err := r.renderChildren(root, 0, 0, w, gradient, self, siblings); err != nil {
		return nil, err
	}
	return img, nil
}

type renderer struct {
	palette Palette
	img     *image.RGBA
}

// childReps resolves the RGBA representative of each of n's four
// children (n must be internal).
func (r *renderer) childReps(n *QuadtreeNode) ([4]Color, error) {
	var reps [4]Color
	for i, child := range n.Sections {
		c, err := r.palette.ToRGBA(child.Color)
		if err != nil {
			return reps, err
		}
		reps[i] = c
	}
	return reps, nil
}

// renderChildren lays out n's four children across the x0,y0,side
// region, passing n's own representative as the gradient anchor for
// the inner ("parent") corner of each child.
func (r *renderer) renderChildren(n *QuadtreeNode, x0, y0, side int, gradient bool, parentRep Color, siblings [4]Color) error {
	half := side / 2
	origins := [4][2]int{
		{x0, y0},             // Q0 NW
		{x0 + half, y0},       // Q1 NE
		{x0, y0 + half},       // Q2 SW
		{x0 + half, y0 + half}, // Q3 SE
	}

	for i, child := range n.Sections {
		ox, oy := origins[i][0], origins[i][1]
		if err := r.renderNode(child, ox, oy, half, gradient, parentRep, siblings, i); err != nil {
			return err
		}
	}
	return nil
}

// renderNode renders n (a non-root node, always with a parent) into
// the x0,y0,side region. quadIdx is n's position (0..3) among
// siblings, and siblings holds all four sibling representative colors
// including n's own (at index quadIdx).
func (r *renderer) renderNode(n *QuadtreeNode, x0, y0, side int, gradient bool, parentRep Color, siblings [4]Color, quadIdx int) error {
	self := siblings[quadIdx]

	if n.IsLeaf() {
		if !gradient || side <= 1 {
			r.flatFill(x0, y0, side, self)
			return nil
		}
		tl, tr, bl, br := leafCorners(quadIdx, siblings, parentRep)
		r.bilinearFill(x0, y0, side, tl, tr, bl, br)
		return nil
	}

	childSiblings, err := r.childReps(n)
	if err != nil {
		return err
	}
	return r.renderChildren(n, x0, y0, side, gradient, self, childSiblings)
}

// leafCorners computes the four corner colors used for gradient fill:
// the corner shared with an adjacent sibling is the average of the
// two; the corner toward the parent's center uses the parent's
// representative; the outward corner uses the leaf's own color.
//
// Quadrant layout: Q0=NW, Q1=NE, Q2=SW, Q3=SE. tl/tr/bl/br name the
// returned region's own top-left, top-right, bottom-left, bottom-right
// corners.
func leafCorners(quadIdx int, siblings [4]Color, parentRep Color) (tl, tr, bl, br Color) {
	self := siblings[quadIdx]
	switch quadIdx {
	case 0: // NW
		tl = self
		tr = averageColor(self, siblings[1])
		bl = averageColor(self, siblings[2])
		br = parentRep
	case 1: // NE
		tl = averageColor(self, siblings[0])
		tr = self
		bl = parentRep
		br = averageColor(self, siblings[3])
	case 2: // SW
		tl = averageColor(self, siblings[0])
		tr = parentRep
		bl = self
		br = averageColor(self, siblings[3])
	default: // 3, SE
		tl = parentRep
		tr = averageColor(self, siblings[1])
		bl = averageColor(self, siblings[2])
		br = self
	}
	return
}

func averageColor(a, b Color) Color {
	return Color{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: uint8((uint16(a.A) + uint16(b.A)) / 2),
	}
}

func (r *renderer) flatFill(x0, y0, side int, c Color) {
	nrgba := c.NRGBA()
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			r.img.Set(x, y, nrgba)
		}
	}
}

// bilinearFill fills the x0,y0,side region by interpolating between
// its four corners. Channel arithmetic is integer and saturating on
// [0,255] (trivially true here since every intermediate stays within
// the input channels' range).
func (r *renderer) bilinearFill(x0, y0, side int, tl, tr, bl, br Color) {
	den := side - 1
	for j := 0; j < side; j++ {
		for i := 0; i < side; i++ {
			top := lerpColor(tl, tr, i, den)
			bottom := lerpColor(bl, br, i, den)
			c := lerpColor(top, bottom, j, den)
			r.img.Set(x0+i, y0+j, c.NRGBA())
		}
	}
}

func lerpColor(a, b Color, num, den int) Color {
	return Color{
		R: lerpChannel(a.R, b.R, num, den),
		G: lerpChannel(a.G, b.G, num, den),
		B: lerpChannel(a.B, b.B, num, den),
		A: lerpChannel(a.A, b.A, num, den),
	}
}

func lerpChannel(a, b uint8, num, den int) uint8 {
	if den == 0 {
		return a
	}
	v := int(a) + (int(b)-int(a))*num/den
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
