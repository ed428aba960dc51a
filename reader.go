// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"bytes"
	"encoding/binary"
	"slices"
)

// dataTypeIFD is the TIFF 6 "IFD" type some encoders use for sub-IFD pointers.
const dataTypeIFD DataType = 13

const (
	meaningOfLife = 0x002a
	ifdEntryLen   = 12
)

var exifHeader = []byte("Exif\x00\x00")

type decodeResult struct {
	byteOrder       binary.ByteOrder
	values          []*Value
	invalidTags     []Tag
	thumbnailOffset uint32
	thumbnailLength uint32
}

// decode decodes an Exif profile. It never fails: malformed input
// gives an empty result or invalid tags.
func decode(b []byte, opts Options) decodeResult {
	dec := newMetaDecoderEXIF(b, opts)
	dec.decode()
	return dec.result
}

func newMetaDecoderEXIF(b []byte, opts Options) *metaDecoderEXIF {
	return &metaDecoderEXIF{
		byteReader: newByteReader(b, binary.BigEndian),
		opts:       opts.init(),
	}
}

type metaDecoderEXIF struct {
	*byteReader

	// All offsets in the profile are relative to this position.
	startIndex int

	exifOffset uint32
	gpsOffset  uint32
	numTags    uint32

	// Set while decoding IFD1, whose entries are not part of the result.
	scratch bool

	opts   Options
	result decodeResult
}

func (e *metaDecoderEXIF) decode() {
	if len(e.b) == 0 {
		return
	}

	if bytes.HasPrefix(e.b, exifHeader) {
		e.startIndex = len(exifHeader)
	}
	e.seek(e.startIndex)

	switch e.read2() {
	case byteOrderBigEndian:
		e.byteOrder = binary.BigEndian
	case byteOrderLittleEndian:
		e.byteOrder = binary.LittleEndian
	default:
		e.opts.Warnf("exif: invalid byte order marker")
		return
	}
	e.result.byteOrder = e.byteOrder

	if magic := e.read2(); magic != meaningOfLife {
		e.opts.Warnf("exif: invalid magic number 0x%x", magic)
		return
	}

	ifd0Offset := e.read4()
	if e.isEOF {
		e.opts.Warnf("exif: truncated header")
		return
	}

	// Main image.
	thumbnailIFDOffset := e.decodeIFD(&e.result.values, ifd0Offset, PartIFD, true)

	// Thumbnail IFD.
	if thumbnailIFDOffset != 0 {
		e.decodeThumbnail(thumbnailIFDOffset)
	}

	if e.exifOffset != 0 {
		e.decodeIFD(&e.result.values, e.exifOffset, PartExif, true)
	}

	if e.gpsOffset != 0 {
		e.decodeIFD(&e.result.values, e.gpsOffset, PartGPS, true)
	}
}

// decodeIFD decodes the IFD at offset into dst and returns the offset of the next IFD.
// Entry positions are computed from the IFD start, so reading a value
// stored elsewhere does not affect the iteration.
func (e *metaDecoderEXIF) decodeIFD(dst *[]*Value, offset uint32, part Part, interceptPointers bool) uint32 {
	start := e.startIndex + int(offset)
	if !e.seek(start) || !e.canRead(2) {
		e.opts.Warnf("exif: IFD offset %d out of range", offset)
		return 0
	}

	numEntries := int(e.read2())

	for i := range numEntries {
		entryPos := start + 2 + i*ifdEntryLen
		if !e.seek(entryPos) || !e.canRead(ifdEntryLen) {
			e.opts.Warnf("exif: IFD at offset %d truncated after %d of %d entries", offset, i, numEntries)
			return 0
		}
		if e.numTags >= e.opts.LimitNumTags {
			e.opts.Warnf("exif: tag limit %d reached", e.opts.LimitNumTags)
			return 0
		}
		e.numTags++
		e.decodeTag(dst, part, interceptPointers)
	}

	if !e.seek(start+2+numEntries*ifdEntryLen) || !e.canRead(4) {
		return 0
	}
	return e.read4()
}

// A tag is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself, if it fits, otherwise for a pointer to another location where the data may be found;
//     this could be a pointer to the beginning of another IFD.
func (e *metaDecoderEXIF) decodeTag(dst *[]*Value, part Part, interceptPointers bool) {
	tag := Tag(e.read2())
	dataType := DataType(e.read2())
	count := e.read4()

	if interceptPointers && tag.isPointer() {
		e.decodePointer(tag, dataType, count)
		return
	}

	if containsTag(*dst, tag) || (!e.scratch && slices.Contains(e.result.invalidTags, tag)) {
		// First occurrence wins, also when it was invalid.
		return
	}

	if !dataType.IsValid() {
		e.invalidTag(tag, "unknown data type %d", dataType)
		return
	}

	if dataType == DataTypeUndefined && count == 0 {
		// Some encoders write 0 for 4 bytes of undefined data.
		count = 4
	}

	size := uint64(count) * uint64(dataType.Size())
	if size > uint64(len(e.b)) {
		e.invalidTag(tag, "value of %d bytes exceeds profile size", size)
		return
	}

	if size > 4 {
		valueOffset := e.read4()
		if !e.seek(e.startIndex+int(valueOffset)) || !e.canRead(int(size)) {
			e.invalidTag(tag, "value offset %d out of range", valueOffset)
			return
		}
	}

	// Known tags go where the registry says, unknown tags
	// stay in the IFD they were found in.
	valuePart := part
	if tag.IsKnown() {
		valuePart = tag.Part()
	}

	isArray := isArrayValue(tag, dataType, count)
	v := &Value{
		tag:      tag,
		dataType: dataType,
		isArray:  isArray,
		part:     valuePart,
		value:    e.readValue(dataType, int(count), isArray),
	}

	if v.value == nil || e.isEOF {
		e.invalidTag(tag, "failed to read value")
		return
	}

	*dst = append(*dst, v)
}

func (e *metaDecoderEXIF) decodePointer(tag Tag, dataType DataType, count uint32) {
	if count != 1 || (dataType != DataTypeLong && dataType != dataTypeIFD) {
		e.opts.Warnf("exif: invalid IFD pointer %s of type %s", tag, dataType)
		return
	}
	offset := e.read4()
	switch tag {
	case TagExifOffset:
		if e.exifOffset == 0 {
			e.exifOffset = offset
		}
	case TagGPSInfo:
		if e.gpsOffset == 0 {
			e.gpsOffset = offset
		}
	}
}

// decodeThumbnail decodes the IFD1 of the profile to find the location of the
// embedded JPEG thumbnail. All other IFD1 values are discarded.
func (e *metaDecoderEXIF) decodeThumbnail(offset uint32) {
	var values []*Value
	e.scratch = true
	e.decodeIFD(&values, offset, PartIFD, false)
	e.scratch = false

	for _, v := range values {
		n, ok := toUint32(v.value)
		if !ok {
			continue
		}
		switch v.tag {
		case TagJPEGInterchangeFormat:
			e.result.thumbnailOffset = n + uint32(e.startIndex)
		case TagJPEGInterchangeFormatLength:
			e.result.thumbnailLength = n
		}
	}

	if e.result.thumbnailLength == 0 {
		e.result.thumbnailOffset = 0
		return
	}

	if uint64(e.result.thumbnailOffset)+uint64(e.result.thumbnailLength) > uint64(len(e.b)) {
		e.opts.Warnf("exif: thumbnail at offset %d with length %d out of range", e.result.thumbnailOffset, e.result.thumbnailLength)
	}
}

func (e *metaDecoderEXIF) invalidTag(tag Tag, format string, args ...any) {
	e.opts.Warnf("exif: invalid tag %s: "+format, append([]any{tag}, args...)...)
	if e.scratch {
		return
	}
	e.result.invalidTags = append(e.result.invalidTags, tag)
}

// readValue reads count elements of dataType at the current position,
// into a slice if isArray is set. Strings are always scalars.
func (e *metaDecoderEXIF) readValue(dataType DataType, count int, isArray bool) any {
	switch dataType {
	case DataTypeString:
		b := e.readBytesVolatile(count)
		if b == nil && count > 0 {
			return nil
		}
		return trimString(b)
	case DataTypeByte, DataTypeUndefined:
		return readValues(count, isArray, e.read1)
	case DataTypeShort:
		return readValues(count, isArray, e.read2)
	case DataTypeLong:
		return readValues(count, isArray, e.read4)
	case DataTypeRational:
		return readValues(count, isArray, func() URational {
			n, d := e.read4(), e.read4()
			return NewRational(n, d)
		})
	case DataTypeSignedByte:
		return readValues(count, isArray, e.read1s)
	case DataTypeSignedShort:
		return readValues(count, isArray, e.read2s)
	case DataTypeSignedLong:
		return readValues(count, isArray, e.read4s)
	case DataTypeSignedRational:
		return readValues(count, isArray, func() SRational {
			n, d := e.read4s(), e.read4s()
			return NewRational(n, d)
		})
	case DataTypeFloat:
		return readValues(count, isArray, e.readFloat)
	case DataTypeDouble:
		return readValues(count, isArray, e.readDouble)
	default:
		return nil
	}
}

func readValues[T any](count int, isArray bool, read func() T) any {
	if !isArray {
		return read()
	}
	values := make([]T, count)
	for i := range values {
		values[i] = read()
	}
	return values
}

// isArrayValue reports whether a value with the given count is decoded into a slice.
// Known tags follow the registry so a one-element array stays a slice,
// but a count other than 1 always gives a slice.
func isArrayValue(tag Tag, dataType DataType, count uint32) bool {
	if dataType == DataTypeString {
		return false
	}
	if count != 1 {
		return true
	}
	def, found := tagDefinitions[tag]
	return found && def.isArray
}

func containsTag(values []*Value, tag Tag) bool {
	for _, v := range values {
		if v.tag == tag {
			return true
		}
	}
	return false
}

func toUint32(v any) (uint32, bool) {
	switch vv := v.(type) {
	case uint32:
		return vv, true
	case uint16:
		return uint32(vv), true
	default:
		return 0, false
	}
}
