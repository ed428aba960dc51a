// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"encoding"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	_ encoding.TextUnmarshaler = (*Rational[int32])(nil)
	_ encoding.TextMarshaler   = Rational[int32]{}
)

// URational is the payload type of DataTypeRational.
type URational = Rational[uint32]

// SRational is the payload type of DataTypeSignedRational.
type SRational = Rational[int32]

// Rational is a numerator/denominator pair as stored in Exif.
// Unlike math/big.Rat, the pair is kept verbatim: it is never reduced
// and a zero denominator is allowed, so decoded values write back unchanged.
type Rational[T int32 | uint32] struct {
	num T
	den T
}

// NewRational returns a new Rational with the given numerator and denominator.
func NewRational[T int32 | uint32](num, den T) Rational[T] {
	return Rational[T]{num: num, den: den}
}

// Num returns the numerator of the rational number.
func (r Rational[T]) Num() T {
	return r.num
}

// Den returns the denominator of the rational number.
func (r Rational[T]) Den() T {
	return r.den
}

// Float64 returns the float64 representation of the rational number.
// A zero denominator gives ±Inf, or NaN for 0/0.
func (r Rational[T]) Float64() float64 {
	if r.den == 0 {
		switch {
		case r.num == 0:
			return math.NaN()
		case r.num > 0:
			return math.Inf(1)
		default:
			return math.Inf(-1)
		}
	}
	return float64(r.num) / float64(r.den)
}

// String returns the string representation of the rational number.
// If the denominator is 1, the string will be the numerator only.
func (r Rational[T]) String() string {
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// Format implements fmt.Formatter so %f and friends print the float value.
func (r Rational[T]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'f', 'F', 'g', 'G', 'e', 'E':
		prec, ok := f.Precision()
		if !ok {
			prec = -1
		}
		fmt.Fprint(f, strconv.FormatFloat(r.Float64(), byte(verb), prec, 64))
	default:
		fmt.Fprint(f, r.String())
	}
}

func (r *Rational[T]) UnmarshalText(text []byte) error {
	s := string(text)
	if !strings.Contains(s, "/") {
		num, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
		}
		r.num = T(num)
		r.den = 1
		return nil
	}
	if _, err := fmt.Sscanf(s, "%d/%d", &r.num, &r.den); err != nil {
		return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
	}
	return nil
}

func (r Rational[T]) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}
