// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package exifcodec reads and writes Exif metadata profiles.
//
// A profile is the TIFF structured blob stored in e.g. the APP1 segment of a JPEG,
// optionally prefixed with "Exif\x00\x00". The reader decodes it into a list of
// tagged values, the writer encodes such a list back into a blob.
package exifcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when the container of a profile (e.g. a JPEG) is not valid.
	// Note that malformed Exif data itself is never an error, it decodes to fewer values.
	ErrInvalidFormat = errors.New("exifcodec: invalid format")

	// ErrNilValue is returned when setting a nil payload.
	ErrNilValue = errors.New("exifcodec: nil value")

	// ErrTypeMismatch is returned when a payload does not match the data type of a value.
	ErrTypeMismatch = errors.New("exifcodec: type mismatch")

	// ErrReservedTag is returned when setting one of the sub-IFD pointer tags,
	// which are written by the encoder.
	ErrReservedTag = errors.New("exifcodec: reserved tag")

	// ErrUnsupportedDataType is returned when encoding a value with a data type
	// outside the 12 Exif types.
	ErrUnsupportedDataType = errors.New("exifcodec: unsupported data type")

	// Internal error signaling a bug in the writer's layout computation.
	errLayout = errors.New("exifcodec: layout mismatch")
)

// IsInvalidFormat reports whether err is or wraps ErrInvalidFormat.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

func newInvalidFormatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, fmt.Sprintf(format, args...))
}

const defaultLimitNumTags = 5000

// Options contains the options for a Profile.
type Options struct {
	// Parts limits which IFDs are written.
	// Default is PartsAll.
	Parts Part

	// ByteOrder is the byte order used when writing.
	// Default is binary.NativeEndian, the host byte order.
	// The byte order of the source is only used for reading.
	ByteOrder binary.ByteOrder

	// Warnf will be called for each warning, e.g. for invalid tags.
	Warnf func(string, ...any)

	// LimitNumTags is the maximum number of IFD entries to read.
	// Default value is 5000.
	LimitNumTags uint32
}

func (o Options) init() Options {
	if o.Parts.IsZero() {
		o.Parts = PartsAll
	}
	if o.ByteOrder == nil {
		o.ByteOrder = binary.NativeEndian
	}
	if o.Warnf == nil {
		o.Warnf = func(string, ...any) {}
	}
	if o.LimitNumTags == 0 {
		o.LimitNumTags = defaultLimitNumTags
	}
	return o
}

func errFromRecover(r any) (err error) {
	if r == nil {
		return nil
	}
	if errp, ok := r.(error); ok {
		return errp
	}
	return fmt.Errorf("unknown panic: %v", r)
}
