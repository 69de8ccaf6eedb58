// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lzw

package lzw

import "errors"

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	// ErrMalformedHeader is returned when the 3-byte header is short, has the wrong magic,
	// an out-of-range maxbits value or reserved flag bits set.
	ErrMalformedHeader = errors.New("malformed .Z header")
	// ErrCorruptStream is returned when a code is outside the range valid at its position.
	ErrCorruptStream = errors.New("corrupt code stream")
	// ErrTruncated is returned together with ErrCorruptStream when input ends inside a code.
	ErrTruncated = errors.New("input ends inside a code")
	// ErrInvalidMaxBits is returned when compress options ask for maxbits outside 9..16.
	ErrInvalidMaxBits = errors.New("maxbits must be in range 9..16")
	// ErrBlockModeDisabled is returned by Writer.Clear when block mode is off.
	ErrBlockModeDisabled = errors.New("clear code requires block mode")
	// ErrClosed is returned when a Writer or Reader is used after Close.
	ErrClosed = errors.New("stream is closed")
	// ErrOutputTooLarge is returned when decoded data exceeds DecompressOptions.MaxOutputSize.
	ErrOutputTooLarge = errors.New("output exceeds MaxOutputSize")

	ErrNilReader = errors.New("reader is nil")
	ErrNilWriter = errors.New("writer is nil")
)
