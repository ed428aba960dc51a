// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	byteOrderBigEndian    = 0x4d4d // MM
	byteOrderLittleEndian = 0x4949 // II
)

// byteReader is a random access reader over a byte slice that provides
// methods to read binary data in a given byte order.
// Reads past the end return zero values and set isEOF; they never panic.
// Note that this is not thread safe.
type byteReader struct {
	b         []byte
	offset    int
	byteOrder binary.ByteOrder

	isEOF bool
}

func newByteReader(b []byte, byteOrder binary.ByteOrder) *byteReader {
	return &byteReader{
		b:         b,
		byteOrder: byteOrder,
	}
}

func (e *byteReader) canRead(n int) bool {
	return n >= 0 && e.offset+n <= len(e.b) && e.offset+n >= e.offset
}

func (e *byteReader) pos() int {
	return e.offset
}

// seek moves the cursor to the absolute position pos.
// Seeking to the end of the buffer is allowed, past it is not.
func (e *byteReader) seek(pos int) bool {
	if pos < 0 || pos > len(e.b) {
		return false
	}
	e.offset = pos
	return true
}

func (e *byteReader) skip(n int) bool {
	return e.seek(e.offset + n)
}

func (e *byteReader) next(n int) []byte {
	if !e.canRead(n) {
		e.isEOF = true
		e.offset = len(e.b)
		return nil
	}
	b := e.b[e.offset : e.offset+n]
	e.offset += n
	return b
}

func (e *byteReader) read1() uint8 {
	b := e.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (e *byteReader) read1s() int8 {
	return int8(e.read1())
}

func (e *byteReader) read2() uint16 {
	b := e.next(2)
	if b == nil {
		return 0
	}
	return e.byteOrder.Uint16(b)
}

func (e *byteReader) read2s() int16 {
	return int16(e.read2())
}

func (e *byteReader) read4() uint32 {
	b := e.next(4)
	if b == nil {
		return 0
	}
	return e.byteOrder.Uint32(b)
}

func (e *byteReader) read4s() int32 {
	return int32(e.read4())
}

func (e *byteReader) read8() uint64 {
	b := e.next(8)
	if b == nil {
		return 0
	}
	return e.byteOrder.Uint64(b)
}

func (e *byteReader) readFloat() float32 {
	return math.Float32frombits(e.read4())
}

func (e *byteReader) readDouble() float64 {
	return math.Float64frombits(e.read8())
}

// readBytes returns a copy of the next n bytes, nil if there are not enough.
func (e *byteReader) readBytes(n int) []byte {
	b := e.next(n)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// readBytesVolatile returns the next n bytes without copying.
// The slice aliases the underlying buffer.
func (e *byteReader) readBytesVolatile(n int) []byte {
	return e.next(n)
}

// byteWriter writes binary data into a pre-sized byte slice.
// The writer layout is computed up front, so running out of space
// is a programming error and panics.
type byteWriter struct {
	b         []byte
	offset    int
	byteOrder binary.ByteOrder
}

func newByteWriter(size int, byteOrder binary.ByteOrder) *byteWriter {
	return &byteWriter{
		b:         make([]byte, size),
		byteOrder: byteOrder,
	}
}

func (w *byteWriter) pos() int {
	return w.offset
}

func (w *byteWriter) next(n int) []byte {
	if w.offset+n > len(w.b) {
		panic(fmt.Errorf("%w: write of %d bytes at %d exceeds buffer size %d", errLayout, n, w.offset, len(w.b)))
	}
	b := w.b[w.offset : w.offset+n]
	w.offset += n
	return b
}

func (w *byteWriter) write1(v uint8) {
	w.next(1)[0] = v
}

func (w *byteWriter) write2(v uint16) {
	w.byteOrder.PutUint16(w.next(2), v)
}

func (w *byteWriter) write4(v uint32) {
	w.byteOrder.PutUint32(w.next(4), v)
}

func (w *byteWriter) write8(v uint64) {
	w.byteOrder.PutUint64(w.next(8), v)
}

func (w *byteWriter) writeBytes(b []byte) {
	copy(w.next(len(b)), b)
}

// pad writes n zero bytes.
func (w *byteWriter) pad(n int) {
	clear(w.next(n))
}

// isLittleEndian reports whether byteOrder puts the least significant byte first.
// This also works for binary.NativeEndian.
func isLittleEndian(byteOrder binary.ByteOrder) bool {
	var b [2]byte
	byteOrder.PutUint16(b[:], 1)
	return b[0] == 1
}

func byteOrderMarker(byteOrder binary.ByteOrder) uint16 {
	if isLittleEndian(byteOrder) {
		return byteOrderLittleEndian
	}
	return byteOrderBigEndian
}
