package qim

import (
	"image"
	"sort"
)

// bucket accumulates the pixels that have been folded into one
// dedup-distance cluster during palette generation.
type bucket struct {
	anchor Color // the first color assigned to this bucket
	sumR   int64
	sumG   int64
	sumB   int64
	sumA   int64
	total  int64
}

func (b *bucket) add(c Color, count int64) {
	b.sumR += int64(c.R) * count
	b.sumG += int64(c.G) * count
	b.sumB += int64(c.B) * count
	b.sumA += int64(c.A) * count
	b.total += count
}

// centroid computes the bucket's area-weighted average color, using
// truncating integer division per channel.
func (b *bucket) centroid() Color {
	if b.total == 0 {
		return Color{}
	}
	return Color{
		R: uint8(b.sumR / b.total),
		G: uint8(b.sumG / b.total),
		B: uint8(b.sumB / b.total),
		A: uint8(b.sumA / b.total),
	}
}

// GeneratePalette builds a DynamicPalette of the given bit width from
// img: a pixel-color histogram is partitioned into dedup-distance
// buckets, each bucket collapses to its weighted-average centroid, and
// centroids are sorted by descending total weight before being
// truncated to the palette's capacity.
//
// dedupThreshold is the squared-distance radius within which two source
// colors merge into the same bucket (the CLI's -d/--dedup flag).
func GeneratePalette(img *image.RGBA, dedupThreshold uint32, width uint8) (*dynamicPalette, error) {
	hist := make(map[Color]int64)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			off := img.PixOffset(x, y)
			c := Color{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2], A: img.Pix[off+3]}
			hist[c]++
		}
	}

	var buckets []*bucket
	for c, count := range hist {
		var target *bucket
		for _, cand := range buckets {
			if dedupDistance(cand.anchor, c) < dedupThreshold {
				target = cand
				break
			}
		}
		if target == nil {
			target = &bucket{anchor: c}
			buckets = append(buckets, target)
		}
		target.add(c, count)
	}

	type weighted struct {
		color  Color
		weight int64
	}
	ranked := make([]weighted, len(buckets))
	for i, bk := range buckets {
		ranked[i] = weighted{color: bk.centroid(), weight: bk.total}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].weight > ranked[j].weight
	})

	capacity := paletteCapacity(width)
	if uint64(len(ranked)) > capacity {
		ranked = ranked[:capacity]
	}
	colors := make([]Color, len(ranked))
	for i, w := range ranked {
		colors[i] = w.color
	}
	return NewDynamicPalette(width, colors)
}
