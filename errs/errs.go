// Package errs defines the sentinel errors returned by the SISF format
// packages. Callers should use errors.Is against these values rather than
// comparing error strings.
package errs

import "errors"

var (
	// ErrUnknownDtype is returned when a dtype code outside {U8, U16} is
	// encountered.
	ErrUnknownDtype = errors.New("sisf: unknown dtype")

	// ErrUnknownCodec is returned when a compression tag outside {0,1,2,3}
	// is requested from the codec dispatcher.
	ErrUnknownCodec = errors.New("sisf: unknown codec")

	// ErrEncoderEmptyOutput is returned when an external video encoder
	// produces zero bytes of output, typically because a micro-chunk is
	// too small to form a valid frame.
	ErrEncoderEmptyOutput = errors.New("sisf: encoder produced empty output")

	// ErrInvalidDimensions is returned when an array's data length does
	// not match the size implied by its shape and dtype.
	ErrInvalidDimensions = errors.New("sisf: invalid number of dimensions")

	// ErrUnsupportedStride is returned when a slice request asks for a
	// stride other than 1.
	ErrUnsupportedStride = errors.New("sisf: unsupported stride")

	// ErrNegativeIndex is returned when a slice request contains a
	// negative start or stop value.
	ErrNegativeIndex = errors.New("sisf: negative index")

	// ErrIndexOutOfRange is returned when a slice request falls outside
	// the addressable shape on some axis.
	ErrIndexOutOfRange = errors.New("sisf: index out of range")

	// ErrIncorrectRangeOrder is returned when a range's stop precedes its
	// start.
	ErrIncorrectRangeOrder = errors.New("sisf: range stop precedes start")

	// ErrCorruptIndex is returned when a chunk index read returns fewer
	// bytes than the fixed entry size.
	ErrCorruptIndex = errors.New("sisf: corrupt chunk index")

	// ErrVersionMismatch is returned when a parsed header's version does
	// not equal the version this build understands.
	ErrVersionMismatch = errors.New("sisf: version mismatch")
)
