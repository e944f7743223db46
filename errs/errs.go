// Package errs collects the sentinel errors RION's encoder and decoder
// return. Call sites wrap a sentinel with fmt.Errorf("%w: ...", errs.ErrX, ...)
// to attach detail; callers compare with errors.Is against the sentinel.
package errs

import "errors"

// Decoder errors, one per recognized error kind.
var (
	ErrEmptyInput         = errors.New("rion: empty input")
	ErrInvalidLead        = errors.New("rion: invalid lead byte")
	ErrTruncated          = errors.New("rion: truncated input")
	ErrExtraData          = errors.New("rion: extra data after value")
	ErrExpectedKey        = errors.New("rion: expected key field")
	ErrDuplicateKey       = errors.New("rion: duplicate object key")
	ErrInvalidUTF8        = errors.New("rion: invalid utf-8 payload")
	ErrIntegerOutOfRange  = errors.New("rion: integer out of range")
	ErrWrongType          = errors.New("rion: wrong field type")
	ErrInvalidEnum        = errors.New("rion: invalid enum shape")
	ErrInvalidTableShape  = errors.New("rion: invalid table shape")
	ErrBadFamily          = errors.New("rion: unexpected field family")
)

// Encoder errors.
var (
	ErrPayloadTooLarge = errors.New("rion: payload too large to frame")
	ErrInvalidKeyType  = errors.New("rion: invalid object key type")
	ErrIoError         = errors.New("rion: sink write failed")
	ErrUnsupportedType = errors.New("rion: unsupported host value type")
	ErrCyclicValue     = errors.New("rion: cyclic value graph")
	ErrMaxDepthExceeded = errors.New("rion: maximum nesting depth exceeded")
)

// Compression errors. Package compress reports an unknown compression type
// with its own formatted error and does not return this sentinel.
var (
	ErrUnknownCompression = errors.New("rion: unknown compression type")
)
