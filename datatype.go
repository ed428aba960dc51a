// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

// DataType is the on-disk type of an Exif value.
//
//go:generate stringer -type=DataType -trimprefix=DataType
type DataType uint16

const (
	// DataTypeUnknown is the zero value and not a valid on-disk type.
	DataTypeUnknown        DataType = 0
	DataTypeByte           DataType = 1
	DataTypeString         DataType = 2
	DataTypeShort          DataType = 3
	DataTypeLong           DataType = 4
	DataTypeRational       DataType = 5
	DataTypeSignedByte     DataType = 6
	DataTypeUndefined      DataType = 7
	DataTypeSignedShort    DataType = 8
	DataTypeSignedLong     DataType = 9
	DataTypeSignedRational DataType = 10
	DataTypeFloat          DataType = 11
	DataTypeDouble         DataType = 12
)

// Size in bytes of each type.
var dataTypeSize = [...]int{
	DataTypeByte:           1,
	DataTypeString:         1,
	DataTypeShort:          2,
	DataTypeLong:           4,
	DataTypeRational:       8,
	DataTypeSignedByte:     1,
	DataTypeUndefined:      1,
	DataTypeSignedShort:    2,
	DataTypeSignedLong:     4,
	DataTypeSignedRational: 8,
	DataTypeFloat:          4,
	DataTypeDouble:         8,
}

// Size returns the size in bytes of one element of this type,
// 0 if the type is not known.
func (t DataType) Size() int {
	if int(t) >= len(dataTypeSize) {
		return 0
	}
	return dataTypeSize[t]
}

// IsValid reports whether t is one of the 12 Exif data types.
func (t DataType) IsValid() bool {
	return t.Size() > 0
}
