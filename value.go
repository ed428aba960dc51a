// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"
)

// Value is one Exif entry: a tag, its on-disk data type and a payload that
// is either a single scalar or a slice of scalars of the Go type matching
// the data type:
//
//	Byte, Undefined   uint8      []uint8
//	String            string
//	Short             uint16     []uint16
//	Long              uint32     []uint32
//	Rational          URational  []URational
//	SignedByte        int8       []int8
//	SignedShort       int16      []int16
//	SignedLong        int32      []int32
//	SignedRational    SRational  []SRational
//	Float             float32    []float32
//	Double            float64    []float64
type Value struct {
	tag      Tag
	dataType DataType
	isArray  bool
	part     Part

	value any
}

// NewValue creates an empty value. Set its payload with SetValue.
func NewValue(tag Tag, dataType DataType, isArray bool) *Value {
	return &Value{
		tag:      tag,
		dataType: dataType,
		isArray:  isArray,
		part:     tag.Part(),
	}
}

// Tag returns the tag of this value.
func (v *Value) Tag() Tag {
	return v.tag
}

// DataType returns the on-disk data type.
func (v *Value) DataType() DataType {
	return v.dataType
}

// IsArray reports whether the payload is a slice.
func (v *Value) IsArray() bool {
	return v.isArray
}

// Part returns the IFD this value is written to.
func (v *Value) Part() Part {
	return v.part
}

// Value returns a copy of the payload, nil if it is not set.
func (v *Value) Value() any {
	return clonePayload(v.value)
}

// HasValue reports whether the value holds non-empty data.
// Empty strings and empty slices are not written.
func (v *Value) HasValue() bool {
	switch vv := v.value.(type) {
	case nil:
		return false
	case string:
		return vv != ""
	default:
		n, isSlice := payloadLen(vv)
		return !isSlice || n > 0
	}
}

// SetValue sets the payload. The Go type must match the data type and
// the array-ness of v, see Value.
func (v *Value) SetValue(val any) error {
	if isNilPayload(val) {
		return fmt.Errorf("%w: %s", ErrNilValue, v.tag)
	}
	dataType, isArray, ok := payloadDataType(val)
	if !ok || isArray != v.isArray || !dataTypeCompatible(v.dataType, dataType) {
		return fmt.Errorf("%w: %s (%s) cannot hold a %T", ErrTypeMismatch, v.tag, v.dataType, val)
	}
	v.value = clonePayload(val)
	return nil
}

// Equal reports whether v and other have the same tag, data type and payload.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.tag == other.tag &&
		v.dataType == other.dataType &&
		v.isArray == other.isArray &&
		reflect.DeepEqual(v.value, other.value)
}

func (v *Value) String() string {
	switch vv := v.value.(type) {
	case nil:
		return ""
	case string:
		return vv
	case []uint8:
		if v.dataType == DataTypeUndefined {
			return fmt.Sprintf("(Binary data %d bytes)", len(vv))
		}
	}
	return fmt.Sprintf("%v", v.value)
}

func (v *Value) clone() *Value {
	v2 := *v
	v2.value = clonePayload(v.value)
	return &v2
}

// numberOfComponents is the Exif count of this value. For strings this
// is the UTF-8 length plus the NUL terminator, recomputed on every call.
func (v *Value) numberOfComponents() int {
	switch vv := v.value.(type) {
	case nil:
		return 0
	case string:
		return len(vv) + 1
	default:
		n, isSlice := payloadLen(vv)
		if isSlice {
			return n
		}
		return 1
	}
}

// encodedLen is the length in bytes of the encoded payload.
func (v *Value) encodedLen() int {
	return v.numberOfComponents() * v.dataType.Size()
}

// newValueForPayload creates a value for tag holding val.
// dataType may be DataTypeUnknown, in which case it is derived from val.
func newValueForPayload(tag Tag, dataType DataType, val any) (*Value, error) {
	if isNilPayload(val) {
		return nil, fmt.Errorf("%w: %s", ErrNilValue, tag)
	}
	inferred, isArray, ok := payloadDataType(val)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot hold a %T", ErrTypeMismatch, tag, val)
	}
	if dataType == DataTypeUnknown {
		dataType = inferred
	}
	v := NewValue(tag, dataType, isArray)
	if err := v.SetValue(val); err != nil {
		return nil, err
	}
	return v, nil
}

// payloadDataType maps the Go type of val to a data type.
// uint8 payloads map to DataTypeUndefined, which is also accepted for
// DataTypeByte, see dataTypeCompatible.
func payloadDataType(val any) (dataType DataType, isArray, ok bool) {
	switch val.(type) {
	case uint8:
		return DataTypeUndefined, false, true
	case []uint8:
		return DataTypeUndefined, true, true
	case string:
		return DataTypeString, false, true
	case uint16:
		return DataTypeShort, false, true
	case []uint16:
		return DataTypeShort, true, true
	case uint32:
		return DataTypeLong, false, true
	case []uint32:
		return DataTypeLong, true, true
	case URational:
		return DataTypeRational, false, true
	case []URational:
		return DataTypeRational, true, true
	case int8:
		return DataTypeSignedByte, false, true
	case []int8:
		return DataTypeSignedByte, true, true
	case int16:
		return DataTypeSignedShort, false, true
	case []int16:
		return DataTypeSignedShort, true, true
	case int32:
		return DataTypeSignedLong, false, true
	case []int32:
		return DataTypeSignedLong, true, true
	case SRational:
		return DataTypeSignedRational, false, true
	case []SRational:
		return DataTypeSignedRational, true, true
	case float32:
		return DataTypeFloat, false, true
	case []float32:
		return DataTypeFloat, true, true
	case float64:
		return DataTypeDouble, false, true
	case []float64:
		return DataTypeDouble, true, true
	default:
		return DataTypeUnknown, false, false
	}
}

func dataTypeCompatible(want, got DataType) bool {
	if want == got {
		return true
	}
	return want == DataTypeByte && got == DataTypeUndefined
}

func isNilPayload(val any) bool {
	if val == nil {
		return true
	}
	rv := reflect.ValueOf(val)
	return rv.Kind() == reflect.Slice && rv.IsNil()
}

func payloadLen(val any) (n int, isSlice bool) {
	switch vv := val.(type) {
	case []uint8:
		return len(vv), true
	case []uint16:
		return len(vv), true
	case []uint32:
		return len(vv), true
	case []URational:
		return len(vv), true
	case []int8:
		return len(vv), true
	case []int16:
		return len(vv), true
	case []int32:
		return len(vv), true
	case []SRational:
		return len(vv), true
	case []float32:
		return len(vv), true
	case []float64:
		return len(vv), true
	default:
		return 0, false
	}
}

func clonePayload(val any) any {
	switch vv := val.(type) {
	case []uint8:
		return slices.Clone(vv)
	case []uint16:
		return slices.Clone(vv)
	case []uint32:
		return slices.Clone(vv)
	case []URational:
		return slices.Clone(vv)
	case []int8:
		return slices.Clone(vv)
	case []int16:
		return slices.Clone(vv)
	case []int32:
		return slices.Clone(vv)
	case []SRational:
		return slices.Clone(vv)
	case []float32:
		return slices.Clone(vv)
	case []float64:
		return slices.Clone(vv)
	default:
		return val
	}
}

// trimString cuts an Exif ASCII value at its first NUL.
func trimString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
