// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/rwcarlsen/goexif/exif"
)

func TestEncode(t *testing.T) {
	c := qt.New(t)

	le := Options{ByteOrder: binary.LittleEndian}

	c.Run("String", func(c *qt.C) {
		b, err := encode([]*Value{valueOf(TagSoftware, DataTypeString, "Magick.NET")}, le)
		c.Assert(err, qt.IsNil)

		// Header, one entry, next IFD and the string with its NUL.
		c.Assert(b, qt.HasLen, 6+8+2+12+4+11)
		c.Assert(b[:14], qt.DeepEquals, []byte("Exif\x00\x00II*\x00\x08\x00\x00\x00"))
		c.Assert(binary.LittleEndian.Uint32(b[6+8+2+4:]), qt.Equals, uint32(11))
		c.Assert(binary.LittleEndian.Uint32(b[6+8+2+8:]), qt.Equals, uint32(26))
		c.Assert(string(b[len(b)-11:]), qt.Equals, "Magick.NET\x00")

		result := decode(b, Options{})
		c.Assert(result.values, eq, []*Value{valueOf(TagSoftware, DataTypeString, "Magick.NET")})
	})

	c.Run("UTF-8 string", func(c *qt.C) {
		b, err := encode([]*Value{valueOf(TagArtist, DataTypeString, "Bjørn Erik")}, le)
		c.Assert(err, qt.IsNil)
		c.Assert(binary.LittleEndian.Uint32(b[6+8+2+4:]), qt.Equals, uint32(len("Bjørn Erik")+1))
		c.Assert(decode(b, Options{}).values[0].Value(), qt.Equals, "Bjørn Erik")
	})

	c.Run("Big endian", func(c *qt.C) {
		b, err := encode([]*Value{valueOf(TagOrientation, DataTypeShort, uint16(6))}, Options{ByteOrder: binary.BigEndian})
		c.Assert(err, qt.IsNil)
		c.Assert(b[:14], qt.DeepEquals, []byte("Exif\x00\x00MM\x00*\x00\x00\x00\x08"))
		// Short inline in the first 2 bytes of the value field.
		c.Assert(b[6+8+2+8:6+8+2+12], qt.DeepEquals, []byte{0x00, 0x06, 0x00, 0x00})
		c.Assert(decode(b, Options{}).values, eq, []*Value{valueOf(TagOrientation, DataTypeShort, uint16(6))})
	})

	c.Run("Native byte order", func(c *qt.C) {
		b, err := encode([]*Value{valueOf(TagOrientation, DataTypeShort, uint16(6))}, Options{})
		c.Assert(err, qt.IsNil)
		c.Assert(binary.BigEndian.Uint16(b[6:]), qt.Equals, byteOrderMarker(binary.NativeEndian))
	})

	c.Run("Nothing to write", func(c *qt.C) {
		for _, values := range [][]*Value{
			nil,
			{valueOf(TagSoftware, DataTypeString, "")},
			{valueOf(TagMakerNote, DataTypeUndefined, []uint8{})},
			{NewValue(TagMake, DataTypeString, false)},
			{valueOf(TagExifOffset, DataTypeLong, uint32(26))},
		} {
			b, err := encode(values, le)
			c.Assert(err, qt.IsNil)
			c.Assert(b, qt.IsNil)
		}
	})

	c.Run("GPS only", func(c *qt.C) {
		b, err := encode([]*Value{valueOf(TagGPSLatitudeRef, DataTypeString, "N")}, le)
		c.Assert(err, qt.IsNil)

		// IFD0 with the GPS pointer only, then the GPS IFD.
		c.Assert(b, qt.HasLen, 6+8+(2+12+4)+(2+12+4))
		tiff := b[6:]
		c.Assert(binary.LittleEndian.Uint16(tiff[8:]), qt.Equals, uint16(1))
		c.Assert(binary.LittleEndian.Uint16(tiff[10:]), qt.Equals, uint16(TagGPSInfo))
		c.Assert(binary.LittleEndian.Uint16(tiff[12:]), qt.Equals, uint16(DataTypeLong))
		c.Assert(binary.LittleEndian.Uint32(tiff[14:]), qt.Equals, uint32(1))
		c.Assert(binary.LittleEndian.Uint32(tiff[18:]), qt.Equals, uint32(26))
		// Next IFD of IFD0.
		c.Assert(binary.LittleEndian.Uint32(tiff[22:]), qt.Equals, uint32(0))
		// The GPS IFD follows immediately.
		c.Assert(binary.LittleEndian.Uint16(tiff[26:]), qt.Equals, uint16(1))
		c.Assert(binary.LittleEndian.Uint16(tiff[28:]), qt.Equals, uint16(TagGPSLatitudeRef))
		c.Assert(binary.LittleEndian.Uint32(tiff[40:]), qt.Equals, uint32(0))

		result := decode(b, Options{})
		c.Assert(result.values, eq, []*Value{valueOf(TagGPSLatitudeRef, DataTypeString, "N")})
		c.Assert(result.values[0].Part(), qt.Equals, PartGPS)
	})

	c.Run("Pointer order", func(c *qt.C) {
		values := []*Value{
			valueOf(TagGPSLatitudeRef, DataTypeString, "N"),
			valueOf(TagExposureTime, DataTypeRational, NewRational[uint32](1, 200)),
			valueOf(TagOrientation, DataTypeShort, uint16(1)),
		}
		b, err := encode(values, le)
		c.Assert(err, qt.IsNil)

		tiff := b[6:]
		entryTag := func(ifd, i int) Tag {
			return Tag(binary.LittleEndian.Uint16(tiff[ifd+2+i*ifdEntryLen:]))
		}
		entryValue := func(ifd, i int) uint32 {
			return binary.LittleEndian.Uint32(tiff[ifd+2+i*ifdEntryLen+8:])
		}

		c.Assert(entryTag(8, 0), qt.Equals, TagOrientation)
		c.Assert(entryTag(8, 1), qt.Equals, TagExifOffset)
		c.Assert(entryTag(8, 2), qt.Equals, TagGPSInfo)

		// IFD0 is 2+3*12+4 bytes, the Exif IFD 2+12+4 bytes plus the rational.
		exifIFD, gpsIFD := 8+42, 8+42+18+8
		c.Assert(entryValue(8, 1), qt.Equals, uint32(exifIFD))
		c.Assert(entryValue(8, 2), qt.Equals, uint32(gpsIFD))
		c.Assert(entryTag(exifIFD, 0), qt.Equals, TagExposureTime)
		c.Assert(entryValue(exifIFD, 0), qt.Equals, uint32(exifIFD+18))
		c.Assert(entryTag(gpsIFD, 0), qt.Equals, TagGPSLatitudeRef)
		c.Assert(tiff, qt.HasLen, gpsIFD+18)

		result := decode(b, Options{})
		c.Assert(result.values, eq, []*Value{values[2], values[1], values[0]})
	})

	c.Run("Parts", func(c *qt.C) {
		values := []*Value{
			valueOf(TagOrientation, DataTypeShort, uint16(1)),
			valueOf(TagExposureTime, DataTypeRational, NewRational[uint32](1, 200)),
			valueOf(TagGPSLatitudeRef, DataTypeString, "N"),
		}
		b, err := encode(values, Options{Parts: PartIFD | PartGPS})
		c.Assert(err, qt.IsNil)
		c.Assert(decode(b, Options{}).values, eq, []*Value{values[0], values[2]})

		b, err = encode(values, Options{Parts: PartExif})
		c.Assert(err, qt.IsNil)
		c.Assert(decode(b, Options{}).values, eq, []*Value{values[1]})
	})

	c.Run("Round trip", func(c *qt.C) {
		values := []*Value{
			valueOf(TagImageWidth, DataTypeLong, uint32(4000)),
			valueOf(TagBitsPerSample, DataTypeShort, []uint16{8, 8, 8}),
			valueOf(TagMake, DataTypeString, "Canon"),
			valueOf(TagXResolution, DataTypeRational, NewRational[uint32](72, 0)),
			valueOf(TagXPTitle, DataTypeByte, []uint8{'a', 0, 'b', 0, 0, 0}),
			valueOf(Tag(0xc001), DataTypeSignedByte, []int8{-1, 2, -3, 4, -5}),
			valueOf(Tag(0xc002), DataTypeSignedShort, int16(-42)),
			valueOf(Tag(0xc003), DataTypeSignedLong, []int32{math.MinInt32, math.MaxInt32}),
			valueOf(Tag(0xc004), DataTypeFloat, float32(1.5)),
			valueOf(Tag(0xc005), DataTypeDouble, []float64{math.Pi, -1}),
			valueOf(Tag(0xc006), DataTypeUndefined, uint8(7)),
			valueOf(TagExposureBiasValue, DataTypeSignedRational, NewRational[int32](-1, 3)),
			valueOf(TagExifVersion, DataTypeUndefined, []uint8("0232")),
			valueOf(TagGPSLatitude, DataTypeRational, []URational{NewRational[uint32](59, 1), NewRational[uint32](55, 1), NewRational[uint32](0, 1)}),
			valueOf(TagGPSAltitudeRef, DataTypeByte, uint8(0)),
		}

		for _, bo := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
			b, err := encode(values, Options{ByteOrder: bo})
			c.Assert(err, qt.IsNil)
			result := decode(b, Options{})
			c.Assert(result.invalidTags, qt.HasLen, 0)
			c.Assert(result.values, eq, values)
			for i, v := range result.values {
				c.Assert(v.Part(), qt.Equals, values[i].Part(), qt.Commentf("%s", v.Tag()))
			}
		}
	})

	c.Run("Unknown tag in Exif IFD", func(c *qt.C) {
		v := valueOf(Tag(0xc123), DataTypeShort, uint16(7))
		v.part = PartExif
		b, err := encode([]*Value{v}, le)
		c.Assert(err, qt.IsNil)
		result := decode(b, Options{})
		c.Assert(result.values, eq, []*Value{v})
		c.Assert(result.values[0].Part(), qt.Equals, PartExif)
	})

	c.Run("Unsupported data type", func(c *qt.C) {
		_, err := encode([]*Value{{tag: Tag(0xc000), dataType: DataType(42), part: PartIFD, value: uint32(1)}}, le)
		c.Assert(err, qt.ErrorIs, ErrUnsupportedDataType)

		_, err = encode([]*Value{{tag: Tag(0xc000), dataType: DataTypeLong, part: PartIFD, value: 42}}, le)
		c.Assert(err, qt.ErrorIs, ErrUnsupportedDataType)
	})
}

func TestEncodeGoexif(t *testing.T) {
	c := qt.New(t)

	for _, bo := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		p := NewProfile(Options{ByteOrder: bo})
		setTestValues(c, p)

		var buf bytes.Buffer
		c.Assert(WriteJPEGProfile(&buf, bytes.NewReader(newTestJPEG(c, 8, 8)), p), qt.IsNil)

		x, err := exif.Decode(bytes.NewReader(buf.Bytes()))
		c.Assert(err, qt.IsNil)

		tag, err := x.Get(exif.Make)
		c.Assert(err, qt.IsNil)
		s, err := tag.StringVal()
		c.Assert(err, qt.IsNil)
		c.Assert(s, qt.Equals, "Canon")

		tag, err = x.Get(exif.Orientation)
		c.Assert(err, qt.IsNil)
		orientation, err := tag.Int(0)
		c.Assert(err, qt.IsNil)
		c.Assert(orientation, qt.Equals, 6)

		tag, err = x.Get(exif.ExposureTime)
		c.Assert(err, qt.IsNil)
		num, den, err := tag.Rat2(0)
		c.Assert(err, qt.IsNil)
		c.Assert(num, qt.Equals, int64(1))
		c.Assert(den, qt.Equals, int64(200))

		lat, long, err := x.LatLong()
		c.Assert(err, qt.IsNil)
		c.Assert(lat, eq, 59.925)
		c.Assert(long, eq, 10.75)
	}
}

func BenchmarkEncode(b *testing.B) {
	p := NewProfile(Options{})
	setTestValues(b, p)
	values := p.Values()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := encode(values, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
