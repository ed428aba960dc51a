// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestValue(t *testing.T) {
	c := qt.New(t)

	c.Run("SetValue", func(c *qt.C) {
		v := NewValue(TagOrientation, DataTypeShort, false)
		c.Assert(v.HasValue(), qt.IsFalse)
		c.Assert(v.Part(), qt.Equals, PartIFD)
		c.Assert(v.SetValue(uint16(6)), qt.IsNil)
		c.Assert(v.Value(), qt.Equals, uint16(6))
		c.Assert(v.HasValue(), qt.IsTrue)
		c.Assert(v.numberOfComponents(), qt.Equals, 1)
		c.Assert(v.encodedLen(), qt.Equals, 2)
	})

	c.Run("Type mismatch", func(c *qt.C) {
		v := NewValue(TagOrientation, DataTypeShort, false)
		c.Assert(v.SetValue(uint32(6)), qt.ErrorIs, ErrTypeMismatch)
		c.Assert(v.SetValue([]uint16{6}), qt.ErrorIs, ErrTypeMismatch)
		c.Assert(v.SetValue("6"), qt.ErrorIs, ErrTypeMismatch)
		c.Assert(v.HasValue(), qt.IsFalse)
	})

	c.Run("Nil", func(c *qt.C) {
		v := NewValue(TagXResolution, DataTypeRational, true)
		c.Assert(v.SetValue(nil), qt.ErrorIs, ErrNilValue)
		var rats []URational
		c.Assert(v.SetValue(rats), qt.ErrorIs, ErrNilValue)
	})

	c.Run("Byte accepts uint8", func(c *qt.C) {
		v := NewValue(TagXPTitle, DataTypeByte, true)
		c.Assert(v.SetValue([]uint8{1, 2, 3}), qt.IsNil)
		c.Assert(v.DataType(), qt.Equals, DataTypeByte)
	})

	c.Run("String components", func(c *qt.C) {
		v := NewValue(TagSoftware, DataTypeString, false)
		c.Assert(v.SetValue("Magick.NET"), qt.IsNil)
		c.Assert(v.numberOfComponents(), qt.Equals, 11)
		c.Assert(v.SetValue("Blåbær"), qt.IsNil)
		c.Assert(v.numberOfComponents(), qt.Equals, len("Blåbær")+1)
		c.Assert(v.String(), qt.Equals, "Blåbær")
	})

	c.Run("Empty payloads", func(c *qt.C) {
		c.Assert(valueOf(TagSoftware, DataTypeString, "").HasValue(), qt.IsFalse)
		c.Assert(valueOf(TagMakerNote, DataTypeUndefined, []uint8{}).HasValue(), qt.IsFalse)
	})

	c.Run("Copies", func(c *qt.C) {
		src := []uint16{1, 2, 3}
		v := NewValue(TagISOSpeedRatings, DataTypeShort, true)
		c.Assert(v.SetValue(src), qt.IsNil)
		src[0] = 42
		got := v.Value().([]uint16)
		c.Assert(got, qt.DeepEquals, []uint16{1, 2, 3})
		got[1] = 42
		c.Assert(v.Value(), qt.DeepEquals, []uint16{1, 2, 3})
	})

	c.Run("Equal", func(c *qt.C) {
		v1 := valueOf(TagXResolution, DataTypeRational, NewRational[uint32](72, 1))
		v2 := valueOf(TagXResolution, DataTypeRational, NewRational[uint32](72, 1))
		v3 := valueOf(TagXResolution, DataTypeRational, NewRational[uint32](144, 2))
		c.Assert(v1.Equal(v2), qt.IsTrue)
		c.Assert(v1.Equal(v3), qt.IsFalse)
		c.Assert(v1.Equal(nil), qt.IsFalse)
	})

	c.Run("String", func(c *qt.C) {
		c.Assert(valueOf(TagMakerNote, DataTypeUndefined, []uint8{1, 2, 3}).String(), qt.Equals, "(Binary data 3 bytes)")
		c.Assert(valueOf(TagExposureTime, DataTypeRational, NewRational[uint32](1, 200)).String(), qt.Equals, "1/200")
		c.Assert(valueOf(TagISOSpeedRatings, DataTypeShort, []uint16{100, 200}).String(), qt.Equals, "[100 200]")
	})

	c.Run("Inferred data type", func(c *qt.C) {
		v, err := newValueForPayload(Tag(0xc000), DataTypeUnknown, []float64{1.5, 2.5})
		c.Assert(err, qt.IsNil)
		c.Assert(v.DataType(), qt.Equals, DataTypeDouble)
		c.Assert(v.IsArray(), qt.IsTrue)
		c.Assert(v.encodedLen(), qt.Equals, 16)

		_, err = newValueForPayload(Tag(0xc000), DataTypeUnknown, 42)
		c.Assert(err, qt.ErrorIs, ErrTypeMismatch)
	})

	c.Run("trimString", func(c *qt.C) {
		c.Assert(trimString([]byte("abc\x00def\x00")), qt.Equals, "abc")
		c.Assert(trimString([]byte("abc")), qt.Equals, "abc")
		c.Assert(trimString(nil), qt.Equals, "")
	})
}

func TestTags(t *testing.T) {
	c := qt.New(t)

	tag, found := TagByName("Make")
	c.Assert(found, qt.IsTrue)
	c.Assert(tag, qt.Equals, TagMake)
	_, found = TagByName("Foo")
	c.Assert(found, qt.IsFalse)

	c.Assert(TagMake.Part(), qt.Equals, PartIFD)
	c.Assert(TagExposureTime.Part(), qt.Equals, PartExif)
	c.Assert(TagGPSLatitude.Part(), qt.Equals, PartGPS)
	c.Assert(Tag(0xc000).Part(), qt.Equals, PartIFD)
	c.Assert(Tag(0xc000).IsKnown(), qt.IsFalse)
	c.Assert(TagExposureTime.DataType(), qt.Equals, DataTypeRational)
	c.Assert(Tag(0xc000).DataType(), qt.Equals, DataTypeUnknown)

	c.Assert(TagExifOffset.isPointer(), qt.IsTrue)
	c.Assert(TagGPSInfo.isPointer(), qt.IsTrue)
	c.Assert(TagMake.isPointer(), qt.IsFalse)

	parts := PartsAll.Remove(PartGPS)
	c.Assert(parts.Has(PartIFD), qt.IsTrue)
	c.Assert(parts.Has(PartGPS), qt.IsFalse)
	c.Assert(parts.Remove(PartIFD|PartExif).IsZero(), qt.IsTrue)

	for tag, def := range tagDefinitions {
		c.Assert(def.dataType.IsValid(), qt.IsTrue, qt.Commentf("%s", tag))
		c.Assert(def.part.IsZero(), qt.IsFalse, qt.Commentf("%s", tag))
		got, _ := TagByName(def.name)
		c.Assert(got, qt.Equals, tag, qt.Commentf("duplicate name %s", def.name))
	}
}

func TestDataType(t *testing.T) {
	c := qt.New(t)

	c.Assert(DataTypeByte.Size(), qt.Equals, 1)
	c.Assert(DataTypeShort.Size(), qt.Equals, 2)
	c.Assert(DataTypeLong.Size(), qt.Equals, 4)
	c.Assert(DataTypeRational.Size(), qt.Equals, 8)
	c.Assert(DataTypeSignedRational.Size(), qt.Equals, 8)
	c.Assert(DataTypeFloat.Size(), qt.Equals, 4)
	c.Assert(DataTypeDouble.Size(), qt.Equals, 8)
	c.Assert(DataTypeUnknown.IsValid(), qt.IsFalse)
	c.Assert(dataTypeIFD.IsValid(), qt.IsFalse)
	c.Assert(DataType(0xffff).Size(), qt.Equals, 0)
}
