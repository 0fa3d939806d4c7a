package qim

import "errors"

// Sentinel errors for the codec's failure kinds. Checked with
// errors.Is; wrapped with fmt.Errorf("%w", ...) for caller context.
var (
	// ErrNonSquare is returned by the tree builder (FromImage) when a
	// source image's width and height differ. The renderer takes a single
	// side length and always produces a square image, so it never
	// returns this error.
	ErrNonSquare = errors.New("qim: image is not square")

	// ErrNonPowerOfTwo is returned by the tree builder and renderer
	// when a buffer's side is not a power of two.
	ErrNonPowerOfTwo = errors.New("qim: side length is not a power of two")

	// ErrInvalidSize is returned when a palettized index buffer's
	// length is not a power of four.
	ErrInvalidSize = errors.New("qim: palettized buffer length is not a power of four")

	// ErrColorOutOfRange is returned when a palette index is
	// >= 1<<width, by the encoder and renderer.
	ErrColorOutOfRange = errors.New("qim: palette index out of range")

	// ErrInsufficientData is returned by the QIM decoder when the
	// bitstream ends before a node's full bits are read.
	ErrInsufficientData = errors.New("qim: bitstream truncated")

	// ErrMissingHeader is returned by the QIM decoder when the magic
	// bytes or version byte don't match.
	ErrMissingHeader = errors.New("qim: missing or invalid QIM header")

	// ErrPaletteTooLarge is returned by the QIM decoder when the
	// stored palette length exceeds the receiving palette's capacity.
	ErrPaletteTooLarge = errors.New("qim: stored palette exceeds palette capacity")
)
