// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform parses camera transforms and derives camera centers.
//
// A transform is a 4x4 row-major matrix written as 16 whitespace-separated
// numbers. It maps world coordinates into the camera frame, so its
// translation column is not the camera position; Center recovers that.
package transform

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// transformValues is the number of values in a serialized 4x4 transform.
const transformValues = 16

// Rotation is a row-major 3x3 rotation matrix.
type Rotation [3][3]float64

// Vec3 is a 3-component vector.
type Vec3 [3]float64

var (
	errNonFinite = errors.New("value is not finite")
	errHexFloat  = errors.New("hexadecimal values are not accepted")
	errUnderline = errors.New("underscore must separate digits")
)

// MalformedTransformError reports a transform string that could not be
// turned into a 4x4 matrix.
type MalformedTransformError struct {
	// Count is the number of whitespace-separated tokens found.
	Count int
	// Token is the offending token when a value failed to parse.
	Token string
	Err   error
}

func (e *MalformedTransformError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("malformed transform: invalid value %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("malformed transform: expected %d values, got %d", transformValues, e.Count)
}

func (e *MalformedTransformError) Unwrap() error { return e.Err }

// Parse splits s on whitespace, parses exactly 16 floating-point values in
// row-major order, and returns the top-left 3x3 block as the rotation and
// rows 0-2 of column 3 as the translation. The bottom row is ignored.
func Parse(s string) (Rotation, Vec3, error) {
	fields := strings.Fields(s)

	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseValue(f)
		if err != nil {
			return Rotation{}, Vec3{}, &MalformedTransformError{Count: len(fields), Token: f, Err: err}
		}
		// JSON has no encoding for NaN or Inf.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Rotation{}, Vec3{}, &MalformedTransformError{Count: len(fields), Token: f, Err: errNonFinite}
		}
		values = append(values, v)
	}

	if len(values) != transformValues {
		return Rotation{}, Vec3{}, &MalformedTransformError{Count: len(values)}
	}

	var r Rotation
	var t Vec3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row][col] = values[row*4+col]
		}
		t[row] = values[row*4+3]
	}
	return r, t, nil
}

// parseValue parses a decimal float. Underscores are allowed only between
// two digits and are dropped; hexadecimal floats are refused.
func parseValue(tok string) (float64, error) {
	unsigned := strings.TrimLeft(tok, "+-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, errHexFloat
	}
	if strings.Contains(tok, "_") {
		for i := 0; i < len(tok); i++ {
			if tok[i] != '_' {
				continue
			}
			if i == 0 || i == len(tok)-1 || !isDigit(tok[i-1]) || !isDigit(tok[i+1]) {
				return 0, errUnderline
			}
		}
		tok = strings.ReplaceAll(tok, "_", "")
	}
	return strconv.ParseFloat(tok, 64)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Center returns the camera center in world coordinates, C = -R^T * t.
// R is assumed orthonormal; no validation is done.
func Center(r Rotation, t Vec3) Vec3 {
	var c Vec3
	for i := 0; i < 3; i++ {
		var sum float64
		for j := 0; j < 3; j++ {
			sum += r[j][i] * t[j]
		}
		c[i] = -sum
	}
	return c
}

// Homogeneous rebuilds the 4x4 transform from r and t with a bottom row of
// [0 0 0 1].
func Homogeneous(r Rotation, t Vec3) [4][4]float64 {
	var m [4][4]float64
	for row := 0; row < 3; row++ {
		copy(m[row][:3], r[row][:])
		m[row][3] = t[row]
	}
	m[3] = [4]float64{0, 0, 0, 1}
	return m
}
