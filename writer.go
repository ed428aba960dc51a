// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"fmt"
	"math"
)

// Offset of IFD0 relative to the TIFF header, i.e. right after it.
const ifd0Offset = 8

// encode encodes values into an Exif profile prefixed with "Exif\x00\x00".
// Pointer tags in values are ignored, the writer synthesizes its own.
// It returns nil if there is nothing to write.
//
// The layout is computed up front: all sizes are known from the value
// counts and types, so every offset is resolved before the first byte is written.
func encode(values []*Value, opts Options) (b []byte, err error) {
	defer func() {
		if err2 := errFromRecover(recover()); err2 != nil {
			b, err = nil, err2
		}
	}()

	opts = opts.init()

	var ifdValues, exifValues, gpsValues []*Value
	for _, v := range values {
		if v.tag.isPointer() || !v.HasValue() || !opts.Parts.Has(v.part) {
			continue
		}
		if !v.dataType.IsValid() {
			return nil, fmt.Errorf("%w: %s has data type %s", ErrUnsupportedDataType, v.tag, v.dataType)
		}
		switch {
		case v.part.Has(PartExif):
			exifValues = append(exifValues, v)
		case v.part.Has(PartGPS):
			gpsValues = append(gpsValues, v)
		default:
			ifdValues = append(ifdValues, v)
		}
	}

	if len(ifdValues) == 0 && len(exifValues) == 0 && len(gpsValues) == 0 {
		return nil, nil
	}

	var pointers []Tag
	if len(exifValues) > 0 {
		pointers = append(pointers, TagExifOffset)
	}
	if len(gpsValues) > 0 {
		pointers = append(pointers, TagGPSInfo)
	}

	ifd0, err := newIFDLayout(ifdValues, pointers, ifd0Offset)
	if err != nil {
		return nil, err
	}
	exif, err := newIFDLayout(exifValues, nil, ifd0.end())
	if err != nil {
		return nil, err
	}
	gps, err := newIFDLayout(gpsValues, nil, exif.end())
	if err != nil {
		return nil, err
	}

	if uint64(gps.end()) > math.MaxUint32 {
		return nil, fmt.Errorf("exif: profile of %d bytes is too large", gps.end())
	}

	enc := &metaEncoderEXIF{
		byteWriter: newByteWriter(len(exifHeader)+gps.end(), opts.ByteOrder),
		pointerOffsets: map[Tag]int{
			TagExifOffset: exif.offset,
			TagGPSInfo:    gps.offset,
		},
	}

	enc.writeBytes(exifHeader)
	enc.write2(byteOrderMarker(opts.ByteOrder))
	enc.write2(meaningOfLife)
	enc.write4(ifd0Offset)

	enc.writeIFD(ifd0)
	enc.writeIFD(exif)
	enc.writeIFD(gps)

	if enc.pos() != len(enc.b) {
		panic(fmt.Errorf("%w: wrote %d of %d bytes", errLayout, enc.pos(), len(enc.b)))
	}

	return enc.b, nil
}

// ifdLayout is the precomputed placement of one IFD.
// All offsets are relative to the TIFF header.
type ifdLayout struct {
	values   []*Value
	pointers []Tag

	// Start of the IFD, i.e. the entry count.
	offset int
	// Start of the values that do not fit in an entry.
	dataOffset int
	// Total size including the out-of-line values.
	size int
}

func newIFDLayout(values []*Value, pointers []Tag, offset int) (ifdLayout, error) {
	l := ifdLayout{
		values:   values,
		pointers: pointers,
		offset:   offset,
	}

	numEntries := len(values) + len(pointers)
	if numEntries == 0 {
		return l, nil
	}
	if numEntries > math.MaxUint16 {
		return l, fmt.Errorf("exif: too many entries in IFD: %d", numEntries)
	}

	// Number of entries + entries + next IFD offset.
	l.dataOffset = offset + 2 + numEntries*ifdEntryLen + 4
	l.size = l.dataOffset - offset
	for _, v := range values {
		if n := v.encodedLen(); n > 4 {
			l.size += n
		}
	}

	return l, nil
}

func (l ifdLayout) end() int {
	return l.offset + l.size
}

func (l ifdLayout) isEmpty() bool {
	return len(l.values) == 0 && len(l.pointers) == 0
}

type metaEncoderEXIF struct {
	*byteWriter
	pointerOffsets map[Tag]int
}

// tiffPos returns the current position relative to the TIFF header.
func (e *metaEncoderEXIF) tiffPos() int {
	return e.pos() - len(exifHeader)
}

func (e *metaEncoderEXIF) assertPos(expect int) {
	if pos := e.tiffPos(); pos != expect {
		panic(fmt.Errorf("%w: at %d, expected %d", errLayout, pos, expect))
	}
}

func (e *metaEncoderEXIF) writeIFD(l ifdLayout) {
	if l.isEmpty() {
		return
	}

	e.assertPos(l.offset)
	e.write2(uint16(len(l.values) + len(l.pointers)))

	dataOffset := l.dataOffset
	for _, v := range l.values {
		e.write2(uint16(v.tag))
		e.write2(uint16(v.dataType))
		e.write4(uint32(v.numberOfComponents()))

		n := v.encodedLen()
		if n > 4 {
			e.write4(uint32(dataOffset))
			dataOffset += n
			continue
		}
		e.writeValue(v)
		e.pad(4 - n)
	}

	for _, tag := range l.pointers {
		e.write2(uint16(tag))
		e.write2(uint16(DataTypeLong))
		e.write4(1)
		e.write4(uint32(e.pointerOffsets[tag]))
	}

	// No next IFD. The thumbnail is not written back.
	e.write4(0)

	e.assertPos(l.dataOffset)
	for _, v := range l.values {
		if v.encodedLen() > 4 {
			e.writeValue(v)
		}
	}
	e.assertPos(l.end())
}

func (e *metaEncoderEXIF) writeValue(v *Value) {
	switch vv := v.value.(type) {
	case string:
		e.writeBytes([]byte(vv))
		e.write1(0)
	case uint8:
		e.write1(vv)
	case []uint8:
		e.writeBytes(vv)
	case uint16:
		e.write2(vv)
	case []uint16:
		writeValues(vv, e.write2)
	case uint32:
		e.write4(vv)
	case []uint32:
		writeValues(vv, e.write4)
	case URational:
		e.writeURational(vv)
	case []URational:
		writeValues(vv, e.writeURational)
	case int8:
		e.write1(uint8(vv))
	case []int8:
		writeValues(vv, func(x int8) { e.write1(uint8(x)) })
	case int16:
		e.write2(uint16(vv))
	case []int16:
		writeValues(vv, func(x int16) { e.write2(uint16(x)) })
	case int32:
		e.write4(uint32(vv))
	case []int32:
		writeValues(vv, func(x int32) { e.write4(uint32(x)) })
	case SRational:
		e.writeSRational(vv)
	case []SRational:
		writeValues(vv, e.writeSRational)
	case float32:
		e.write4(math.Float32bits(vv))
	case []float32:
		writeValues(vv, func(x float32) { e.write4(math.Float32bits(x)) })
	case float64:
		e.write8(math.Float64bits(vv))
	case []float64:
		writeValues(vv, func(x float64) { e.write8(math.Float64bits(x)) })
	default:
		panic(fmt.Errorf("%w: %s holds a %T", ErrUnsupportedDataType, v.tag, v.value))
	}
}

func (e *metaEncoderEXIF) writeURational(r URational) {
	e.write4(r.num)
	e.write4(r.den)
}

func (e *metaEncoderEXIF) writeSRational(r SRational) {
	e.write4(uint32(r.num))
	e.write4(uint32(r.den))
}

func writeValues[T any](values []T, write func(T)) {
	for _, v := range values {
		write(v)
	}
}
