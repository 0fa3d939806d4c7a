package main

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabrielmougard/qimc/pkg/qim"
	"github.com/willibrandon/mtlog/core"
)

// runInto implements the --into (image -> QIM) pipeline.
func runInto(logger core.Logger, input, output string, dedup uint32, blurRadius float64, sensitivity uint32, trimPasses int) int {
	f, err := os.Open(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "file not found or could not be read")
		return 3
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid image data")
		return 4
	}

	rgba := toRGBA(src)

	// Generate against a generously-wide scratch palette first, then
	// re-size to the smallest width the actual result needs so the
	// stored palette block isn't bloated by an upper-bound guess.
	scratch, err := qim.GeneratePalette(rgba, dedup, 32)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid image data")
		return 4
	}
	colors, _ := scratch.Slice()
	width := widthForLength(len(colors))
	palette, err := qim.GeneratePalette(rgba, dedup, width)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid image data")
		return 4
	}
	logger.Information("{Count} colors in generated palette", palette.Len())

	sensitivityScaled := (16384 * sensitivity) / (sensitivity + 1)

	var root qim.QuadtreeNode
	if err := root.FromImage(rgba, palette, sensitivityScaled, blurRadius, true); err != nil {
		fmt.Fprintln(os.Stderr, "input image has invalid dimensions")
		return 4
	}

	for i := 0; i < trimPasses; i++ {
		root.Trim(6)
	}
	logger.Debug("Applied {Passes} trim passes", trimPasses)

	data, err := qim.Encode(&root, palette)
	if err != nil {
		// FromImage's own output is guaranteed to hold in-range
		// colors, so this can only fail if the program has a bug.
		fmt.Fprintln(os.Stderr, "internal error serializing to QIM")
		return 10
	}

	if output == "" {
		output = swapExtension(input, ".qim")
	}
	if err := atomicWriteFile(output, data, 0644); err != nil {
		fmt.Fprintln(os.Stderr, "could not write to output file")
		return 3
	}
	logger.Information("Wrote {Bytes} bytes to {Output}", len(data), output)
	return 0
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, src, b.Min, draw.Src)
	return rgba
}

// widthForLength returns the smallest encodable bit width whose
// capacity 2^width is at least n, clamped to [4, 32]. Widths below 4
// are refused at encode time, since the palette-length rounding the
// format relies on is only unambiguous once capacity >= 16.
func widthForLength(n int) uint8 {
	width := uint8(4)
	for (uint64(1)<<width) < uint64(n) && width < 32 {
		width++
	}
	return width
}

// swapExtension strips path's extension and appends newExt.
func swapExtension(path, newExt string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + newExt
}
