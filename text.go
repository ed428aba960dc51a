// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Character codes of the first 8 bytes of a UserComment.
var (
	userCommentASCII     = []byte("ASCII\x00\x00\x00")
	userCommentJIS       = []byte("JIS\x00\x00\x00\x00\x00")
	userCommentUnicode   = []byte("UNICODE\x00")
	userCommentUndefined = make([]byte, 8)
)

const userCommentCodeLen = 8

// DecodeUserComment decodes the UserComment payload b.
// The first 8 bytes identify the character code: ASCII, JIS, UNICODE or undefined (all zeros).
// UNICODE text is UTF-16 in byteOrder unless it starts with a byte order mark.
func DecodeUserComment(b []byte, byteOrder binary.ByteOrder) string {
	if len(b) < userCommentCodeLen {
		return printableText(b)
	}

	code, text := b[:userCommentCodeLen], b[userCommentCodeLen:]

	var dec *encoding.Decoder
	switch {
	case bytes.Equal(code, userCommentASCII), bytes.Equal(code, userCommentUndefined):
		if !utf8.Valid(text) {
			// Not really ASCII, Latin-1 is the most likely candidate.
			dec = charmap.ISO8859_1.NewDecoder()
		}
	case bytes.Equal(code, userCommentUnicode):
		dec = utf16Encoding(byteOrder, unicode.UseBOM).NewDecoder()
	case bytes.Equal(code, userCommentJIS):
		dec = japanese.ISO2022JP.NewDecoder()
	default:
		// Unknown code, keep it all.
		return printableText(b)
	}

	if dec != nil {
		decoded, err := dec.Bytes(text)
		if err == nil {
			text = decoded
		}
	}

	return printableText(text)
}

// EncodeUserComment encodes s as a UserComment payload.
// ASCII text gets the ASCII character code, anything else is written as UNICODE in byteOrder.
func EncodeUserComment(s string, byteOrder binary.ByteOrder) []byte {
	if isASCII(s) {
		return append(bytes.Clone(userCommentASCII), s...)
	}
	b, err := utf16Encoding(byteOrder, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		// Invalid UTF-8 in s, store the raw bytes.
		return append(bytes.Clone(userCommentUndefined), s...)
	}
	return append(bytes.Clone(userCommentUnicode), b...)
}

// transcodeUserComment converts a UNICODE UserComment payload from one byte order to another.
// Other character codes and text starting with a byte order mark are returned as is.
func transcodeUserComment(b []byte, from, to binary.ByteOrder) []byte {
	if isLittleEndian(from) == isLittleEndian(to) || len(b) < userCommentCodeLen ||
		!bytes.Equal(b[:userCommentCodeLen], userCommentUnicode) {
		return b
	}
	text := b[userCommentCodeLen:]
	if bytes.HasPrefix(text, []byte{0xfe, 0xff}) || bytes.HasPrefix(text, []byte{0xff, 0xfe}) {
		return b
	}
	decoded, err := utf16Encoding(from, unicode.IgnoreBOM).NewDecoder().Bytes(text)
	if err != nil {
		return b
	}
	encoded, err := utf16Encoding(to, unicode.IgnoreBOM).NewEncoder().Bytes(decoded)
	if err != nil {
		return b
	}
	return append(bytes.Clone(userCommentUnicode), encoded...)
}

// DecodeXPString decodes the payload of one of the Windows XP tags (XPTitle, XPComment etc.),
// which is NUL terminated UTF-16LE.
func DecodeXPString(b []byte) string {
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(decoded), "\x00")
}

// EncodeXPString encodes s as the payload of one of the Windows XP tags.
func EncodeXPString(s string) []byte {
	b, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return append(b, 0, 0)
}

func isXPTag(tag Tag) bool {
	switch tag {
	case TagXPTitle, TagXPComment, TagXPAuthor, TagXPKeywords, TagXPSubject:
		return true
	}
	return false
}

// GetString returns the text of tag. Besides plain String values this decodes
// the character code of UserComment and the UTF-16 of the Windows XP tags.
func (p *Profile) GetString(tag Tag) (string, bool) {
	p.initialize()
	i := p.indexOf(tag)
	if i < 0 {
		return "", false
	}
	v := p.values[i]
	switch vv := v.value.(type) {
	case string:
		return vv, true
	case []uint8:
		switch {
		case tag == TagUserComment:
			return DecodeUserComment(vv, p.sourceByteOrder), true
		case isXPTag(tag):
			return DecodeXPString(vv), true
		case v.dataType == DataTypeByte || v.dataType == DataTypeUndefined:
			return printableText(vv), true
		}
	}
	return "", false
}

// SetString sets the text of tag, encoding it as GetString decodes it.
func (p *Profile) SetString(tag Tag, s string) error {
	switch {
	case tag == TagUserComment:
		// Stored in the byte order GetString decodes with until the next rewrite.
		return p.SetValue(tag, EncodeUserComment(s, p.sourceByteOrder))
	case isXPTag(tag):
		return p.SetValue(tag, EncodeXPString(s))
	}
	dataType := tag.DataType()
	if v, found := p.GetValue(tag); found {
		dataType = v.dataType
	}
	if dataType != DataTypeString && dataType != DataTypeUnknown {
		return fmt.Errorf("%w: %s (%s) cannot hold a string", ErrTypeMismatch, tag, dataType)
	}
	return p.SetValue(tag, s)
}

func utf16Encoding(byteOrder binary.ByteOrder, bom unicode.BOMPolicy) encoding.Encoding {
	if isLittleEndian(byteOrder) {
		return unicode.UTF16(unicode.LittleEndian, bom)
	}
	return unicode.UTF16(unicode.BigEndian, bom)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// printableText trims NUL and space padding.
func printableText(b []byte) string {
	return strings.TrimRight(string(b), "\x00 ")
}
