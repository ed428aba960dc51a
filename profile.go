// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"slices"

	"github.com/disintegration/imaging"
)

// 10 MB should be plenty for an Exif profile.
const maxProfileSize = 10 * 1024 * 1024

type profileState int

const (
	// No backing bytes and nothing decoded.
	stateUnloaded profileState = iota
	// Backing bytes, not yet decoded.
	stateLoaded
	// Values decoded, in sync with the backing bytes.
	stateDecoded
	// Values changed since the backing bytes were written.
	stateDirty
)

// Profile is an Exif profile. The backing bytes are decoded on first access
// to any of the value-bearing methods and re-encoded when the bytes
// are requested after a change.
//
// A Profile is not safe for concurrent use. Once decoded, concurrent calls to
// the read-only methods are safe.
type Profile struct {
	state profileState
	opts  Options

	data []byte

	// Byte order of the decoded bytes, used to decode UTF-16 UserComments.
	sourceByteOrder binary.ByteOrder

	values          []*Value
	invalidTags     []Tag
	thumbnailOffset uint32
	thumbnailLength uint32
}

// NewProfile creates an empty profile.
func NewProfile(opts Options) *Profile {
	opts = opts.init()
	return &Profile{
		state:           stateUnloaded,
		opts:            opts,
		sourceByteOrder: opts.ByteOrder,
	}
}

// NewProfileFromBytes creates a profile backed by a copy of b.
// b may start with "Exif\x00\x00" or directly with the TIFF header.
func NewProfileFromBytes(b []byte, opts Options) *Profile {
	p := NewProfile(opts)
	if len(b) > 0 {
		p.data = bytes.Clone(b)
		p.state = stateLoaded
	}
	return p
}

// NewProfileFromReader creates a profile backed by all of r.
func NewProfileFromReader(r io.Reader, opts Options) (*Profile, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxProfileSize+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxProfileSize {
		return nil, newInvalidFormatErrorf("profile exceeds max size %d", maxProfileSize)
	}
	p := NewProfile(opts)
	if len(b) > 0 {
		p.data = b
		p.state = stateLoaded
	}
	return p, nil
}

func (p *Profile) initialize() {
	switch p.state {
	case stateUnloaded:
		p.state = stateDecoded
	case stateLoaded:
		result := decode(p.data, p.opts)
		if result.byteOrder != nil {
			p.sourceByteOrder = result.byteOrder
		}
		p.values = result.values
		p.invalidTags = result.invalidTags
		p.thumbnailOffset = result.thumbnailOffset
		p.thumbnailLength = result.thumbnailLength
		p.state = stateDecoded
	}
}

// Values returns copies of all values in the profile.
// Use SetValue to change a value.
func (p *Profile) Values() []*Value {
	p.initialize()
	values := make([]*Value, len(p.values))
	for i, v := range p.values {
		values[i] = v.clone()
	}
	return values
}

// InvalidTags returns the tags whose header could be read but whose value could not.
// These are never written back.
func (p *Profile) InvalidTags() []Tag {
	p.initialize()
	return slices.Clone(p.invalidTags)
}

// ThumbnailOffset returns the offset of the embedded JPEG thumbnail in the profile bytes,
// 0 if there is none.
func (p *Profile) ThumbnailOffset() int {
	p.initialize()
	return int(p.thumbnailOffset)
}

// ThumbnailLength returns the length of the embedded JPEG thumbnail, 0 if there is none.
func (p *Profile) ThumbnailLength() int {
	p.initialize()
	return int(p.thumbnailLength)
}

// Thumbnail returns a copy of the embedded JPEG thumbnail, nil if there is none.
func (p *Profile) Thumbnail() []byte {
	p.initialize()
	if p.thumbnailLength == 0 {
		return nil
	}
	start, end := uint64(p.thumbnailOffset), uint64(p.thumbnailOffset)+uint64(p.thumbnailLength)
	if end > uint64(len(p.data)) {
		return nil
	}
	return bytes.Clone(p.data[start:end])
}

// ThumbnailImage decodes the embedded JPEG thumbnail.
// It returns nil and no error if there is no thumbnail.
func (p *Profile) ThumbnailImage() (image.Image, error) {
	b := p.Thumbnail()
	if b == nil {
		return nil, nil
	}
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("exif: decode thumbnail: %w", err)
	}
	return img, nil
}

// RemoveThumbnail drops the thumbnail. Note that the thumbnail is never
// written back, so this is mostly useful to force a rewrite.
func (p *Profile) RemoveThumbnail() {
	p.initialize()
	p.thumbnailOffset = 0
	p.thumbnailLength = 0
	p.state = stateDirty
}

// GetValue returns a copy of the value for tag.
func (p *Profile) GetValue(tag Tag) (*Value, bool) {
	p.initialize()
	if i := p.indexOf(tag); i >= 0 {
		return p.values[i].clone(), true
	}
	return nil, false
}

// SetValue sets the payload of tag, adding the value if it does not exist.
// The data type is that of the existing value, else the one registered for the tag,
// else derived from the Go type of val. See Value for the payload types.
// Known tags registered as arrays must be set to a slice, even with one element,
// and the other known tags to a single value.
func (p *Profile) SetValue(tag Tag, val any) error {
	if isNilPayload(val) {
		return fmt.Errorf("%w: %s", ErrNilValue, tag)
	}
	if tag.isPointer() {
		return fmt.Errorf("%w: %s", ErrReservedTag, tag)
	}

	p.initialize()

	dataType := tag.DataType()
	i := p.indexOf(tag)
	if i >= 0 {
		dataType = p.values[i].dataType
	}

	v, err := newValueForPayload(tag, dataType, val)
	if err != nil {
		return err
	}
	if def, found := tagDefinitions[tag]; found && v.dataType != DataTypeString && v.isArray != def.isArray {
		// The decoder shapes known tags by the registry.
		if def.isArray {
			return fmt.Errorf("%w: %s must be set to a slice", ErrTypeMismatch, tag)
		}
		return fmt.Errorf("%w: %s must be set to a single value", ErrTypeMismatch, tag)
	}

	if i >= 0 {
		v.part = p.values[i].part
		p.values[i] = v
	} else {
		p.values = append(p.values, v)
	}

	p.state = stateDirty
	return nil
}

// RemoveValue removes the value for tag and reports whether it existed.
func (p *Profile) RemoveValue(tag Tag) bool {
	p.initialize()
	i := p.indexOf(tag)
	if i < 0 {
		return false
	}
	p.values = slices.Delete(p.values, i, i+1)
	p.state = stateDirty
	return true
}

// Parts returns the parts written on the next encode.
func (p *Profile) Parts() Part {
	return p.opts.Parts
}

// SetParts sets the parts written on the next encode.
func (p *Profile) SetParts(parts Part) {
	if parts == p.opts.Parts {
		return
	}
	p.initialize()
	p.opts.Parts = parts
	p.state = stateDirty
}

// Rewrite re-encodes the profile even if nothing has changed.
// This normalizes a malformed or unusual source profile.
// The thumbnail is not written back.
func (p *Profile) Rewrite() error {
	p.initialize()
	values := p.valuesInByteOrder(p.opts.ByteOrder)
	b, err := encode(values, p.opts)
	if err != nil {
		return err
	}
	p.values = values
	p.data = b
	p.sourceByteOrder = p.opts.ByteOrder
	p.thumbnailOffset = 0
	p.thumbnailLength = 0
	p.state = stateDecoded
	return nil
}

// Bytes returns a copy of the encoded profile, nil if there is nothing to write.
// The profile is re-encoded if it has changed.
func (p *Profile) Bytes() ([]byte, error) {
	if p.state == stateDirty {
		if err := p.Rewrite(); err != nil {
			return nil, err
		}
	}
	return bytes.Clone(p.data), nil
}

// WriteTo writes the encoded profile to w.
func (p *Profile) WriteTo(w io.Writer) (int64, error) {
	b, err := p.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	p2 := *p
	p2.data = bytes.Clone(p.data)
	p2.invalidTags = slices.Clone(p.invalidTags)
	p2.values = make([]*Value, len(p.values))
	for i, v := range p.values {
		p2.values[i] = v.clone()
	}
	return &p2
}

// IsEmpty reports whether the profile has no values.
func (p *Profile) IsEmpty() bool {
	p.initialize()
	return len(p.values) == 0
}

// valuesInByteOrder returns p.values with the byte order dependent
// Undefined payloads converted from the source byte order to byteOrder.
// p.values is left untouched.
func (p *Profile) valuesInByteOrder(byteOrder binary.ByteOrder) []*Value {
	i := p.indexOf(TagUserComment)
	if i < 0 || isLittleEndian(p.sourceByteOrder) == isLittleEndian(byteOrder) {
		return p.values
	}
	b, ok := p.values[i].value.([]uint8)
	if !ok {
		return p.values
	}
	values := slices.Clone(p.values)
	v := values[i].clone()
	v.value = transcodeUserComment(b, p.sourceByteOrder, byteOrder)
	values[i] = v
	return values
}

func (p *Profile) indexOf(tag Tag) int {
	return slices.IndexFunc(p.values, func(v *Value) bool {
		return v.tag == tag
	})
}
