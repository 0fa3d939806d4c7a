package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"

	"github.com/gabrielmougard/qimc/pkg/qim"
	"github.com/willibrandon/mtlog/core"
)

// runFrom implements the --from (QIM -> image) pipeline.
func runFrom(logger core.Logger, input, output string, width int) int {
	data, err := os.ReadFile(input)
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
	logger.Debug("Decoded tree: {Nodes} nodes, depth {Depth}", stats.NodeCount, stats.Depth)

	img, err := qim.ToImage(root, palette, width, true)
	if err != nil {
		switch {
		case errors.Is(err, qim.ErrNonSquare), errors.Is(err, qim.ErrNonPowerOfTwo):
			fmt.Fprintln(os.Stderr, "invalid output dimensions")
			return 2
		case errors.Is(err, qim.ErrColorOutOfRange):
			fmt.Fprintln(os.Stderr, "invalid image data")
			return 4
		default:
			fmt.Fprintln(os.Stderr, "an error occurred")
			return 10
		}
	}

	if output == "" {
		output = swapExtension(input, ".png")
	}

	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not save output")
		return 3
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fmt.Fprintln(os.Stderr, "could not save output")
		return 3
	}
	logger.Information("Rendered {Width}x{Width} image to {Output}", width, output)
	return 0
}

// decodeExitCode maps a DecodeQIM error to the CLI's exit code table.
func decodeExitCode(err error) int {
	switch {
	case errors.Is(err, qim.ErrMissingHeader):
		return 4
	case errors.Is(err, qim.ErrInsufficientData):
		return 4
	case errors.Is(err, qim.ErrPaletteTooLarge):
		return 5
	default:
		return 10
	}
}
