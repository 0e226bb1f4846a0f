package tgmd

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 is returned for input that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput is returned when the input contains NUL bytes.
	ErrBinaryInput = errors.New("binary input detected")
)

// ValidateInput rejects input that cannot be markdown text.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	if bytes.IndexByte(src, 0) >= 0 {
		return ErrBinaryInput
	}
	return nil
}
