// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import "errors"

// Errors returned by Build. A pattern that is merely "not found" by Find is
// not an error (see Find's doc comment); these are only ever returned when
// construction itself cannot proceed.
var (
	// ErrMissingSentinel is returned when text is empty or its last byte is
	// not the zero sentinel.
	ErrMissingSentinel = errors.New("suffixkit: text must end with a unique zero sentinel byte")

	// ErrSentinelNotUnique is returned when the zero byte occurs anywhere in
	// text other than the final position.
	ErrSentinelNotUnique = errors.New("suffixkit: sentinel byte 0x00 occurs before the end of text")

	// ErrWidthTooSmall is returned when the requested suffix-index width W
	// cannot address every position in text.
	ErrWidthTooSmall = errors.New("suffixkit: index width too small for text length")
)
