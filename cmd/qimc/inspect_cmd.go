package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/gabrielmougard/qimc/pkg/qim"
)

// runInspect implements the read-only `inspect <file.qim>` diagnostic
// subcommand: palette and tree-shape summary, plus an optional preview
// render. It performs no core algorithm beyond what qim already
// exposes.
func runInspect(args []string) int {
	fs := flag.NewFlagSet("qimc inspect", flag.ContinueOnError)
	previewOut := fs.String("o", "", "optional preview thumbnail output path")
	maxSide := fs.Uint("max-side", 256, "longest edge, in pixels, of the preview thumbnail")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: qimc inspect [-o preview.png] <file.qim>")
		return 2
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "file not found or could not be read")
		return 3
	}

	root, palette, err := qim.DecodeQIM(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid image data")
		return decodeExitCode(err)
	}

	stats := qim.Stats(root)
	paletteLen := 0
	if colors, ok := palette.Slice(); ok {
		paletteLen = len(colors)
	}
	fmt.Printf("palette width: %d bits (%d entries)\n", palette.Width(), paletteLen)
	fmt.Printf("tree: depth %d, %d nodes (%d internal, %d leaves)\n",
		stats.Depth, stats.NodeCount, stats.Internal, stats.LeafCount)

	swatches, err := qim.PaletteSwatches(palette)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not summarize palette")
		return 10
	}
	for _, s := range swatches {
		fmt.Printf("  [%3d] %s  h=%.0f s=%.2f l=%.2f\n", s.Index, s.Color.ToHex(), s.Hue, s.Saturation, s.Lightness)
	}

	if *previewOut != "" {
		img, err := qim.ToImage(root, palette, int(*maxSide), true)
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not render preview")
			return 10
		}
		thumb := qim.Thumbnail(img, *maxSide)
		f, err := os.Create(*previewOut)
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not save preview")
			return 3
		}
		defer f.Close()
		if err := png.Encode(f, thumb); err != nil {
			fmt.Fprintln(os.Stderr, "could not save preview")
			return 3
		}
	}
	return 0
}
