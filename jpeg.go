// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	markerSOI  = 0xffd8
	markerEOI  = 0xffd9
	markerSOS  = 0xffda
	markerApp1 = 0xffe1
	markerTEM  = 0xff01
	markerRST0 = 0xffd0
	markerRST7 = 0xffd7
)

// The segment length is stored in 2 bytes and includes itself.
const maxSegmentPayloadLen = 0xffff - 2

type jpegSegment struct {
	marker uint16
	// start and end of the segment including the marker.
	start, end int
	payload    []byte
}

func (s jpegSegment) isExif() bool {
	return s.marker == markerApp1 && bytes.HasPrefix(s.payload, exifHeader)
}

// jpegSegments walks the marker segments of a JPEG up to the start of scan
// and returns them with the position where the image data starts.
func jpegSegments(b []byte) (segments []jpegSegment, scanStart int, err error) {
	r := newByteReader(b, binary.BigEndian)

	if soi := r.read2(); soi != markerSOI {
		return nil, 0, newInvalidFormatErrorf("not a JPEG")
	}

	for {
		start := r.pos()
		marker := r.read2()
		if r.isEOF {
			return segments, len(b), nil
		}

		if marker == 0xffff {
			// Fill byte.
			r.seek(start + 1)
			continue
		}

		if marker>>8 != 0xff {
			return nil, 0, newInvalidFormatErrorf("invalid JPEG marker 0x%x at %d", marker, start)
		}

		if marker == markerSOS || marker == markerEOI {
			// Start of scan or end of image. We're done.
			return segments, start, nil
		}

		if marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7) {
			// No payload.
			segments = append(segments, jpegSegment{marker: marker, start: start, end: r.pos()})
			continue
		}

		// The length includes the 2 bytes for the length itself.
		length := int(r.read2())
		if r.isEOF || length < 2 {
			return nil, 0, newInvalidFormatErrorf("invalid length of JPEG segment 0x%x at %d", marker, start)
		}
		payload := r.readBytesVolatile(length - 2)
		if payload == nil && length > 2 {
			return nil, 0, newInvalidFormatErrorf("truncated JPEG segment 0x%x at %d", marker, start)
		}

		segments = append(segments, jpegSegment{marker: marker, start: start, end: r.pos(), payload: payload})
	}
}

// ReadJPEGProfile reads the Exif profile from the first Exif APP1 segment of the JPEG in r.
// A JPEG without Exif data gives an empty profile.
func ReadJPEGProfile(r io.Reader, opts Options) (p *Profile, err error) {
	defer func() {
		if err2 := errFromRecover(recover()); err2 != nil {
			p, err = nil, err2
		}
	}()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	segments, _, err := jpegSegments(b)
	if err != nil {
		return nil, err
	}

	for _, s := range segments {
		if s.isExif() {
			return NewProfileFromBytes(s.payload, opts), nil
		}
	}

	return NewProfile(opts), nil
}

// WriteJPEGProfile copies the JPEG in r to w with its Exif APP1 segment replaced by p.
// If the JPEG has no Exif segment, one is inserted right after the SOI marker.
// An empty profile removes the Exif segment.
func WriteJPEGProfile(w io.Writer, r io.Reader, p *Profile) (err error) {
	defer func() {
		if err2 := errFromRecover(recover()); err2 != nil {
			err = err2
		}
	}()

	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	segments, scanStart, err := jpegSegments(b)
	if err != nil {
		return err
	}

	var app1 []byte
	if !p.IsEmpty() {
		profile, err := p.Bytes()
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(profile, exifHeader) {
			profile = append(bytes.Clone(exifHeader), profile...)
		}
		if len(profile) > maxSegmentPayloadLen {
			return newInvalidFormatErrorf("Exif profile of %d bytes does not fit in a JPEG segment", len(profile))
		}
		app1 = make([]byte, 4, 4+len(profile))
		binary.BigEndian.PutUint16(app1, markerApp1)
		binary.BigEndian.PutUint16(app1[2:], uint16(len(profile)+2))
		app1 = append(app1, profile...)
	}

	hasExif := false
	for _, s := range segments {
		if s.isExif() {
			hasExif = true
			break
		}
	}

	var buf bytes.Buffer
	buf.Grow(len(b) + len(app1))
	buf.Write(b[:2])

	if !hasExif {
		// Right after SOI.
		buf.Write(app1)
	}

	written := false
	for _, s := range segments {
		if s.isExif() && !written {
			buf.Write(app1)
			written = true
			continue
		}
		buf.Write(b[s.start:s.end])
	}
	buf.Write(b[scanStart:])

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("exif: write JPEG: %w", err)
	}
	return nil
}
