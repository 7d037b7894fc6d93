// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pllsim

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidParameter is the cause of all configuration errors. Use
	// IsInvalidParameter to test for it.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericOverflow is the cause of errors returned by the Overflow method
	// of simulation results.
	ErrNumericOverflow = errors.New("numeric overflow")
)

// ParamError reports an invalid configuration field.
//
type ParamError struct {
	Model  string // model name: "loop", "delay", "cdr"
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return e.Model + ": " + ErrInvalidParameter.Error() + " " + e.Field + " = " +
		strconv.FormatFloat(e.Value, 'g', -1, 64) + ": " + e.Reason
}

// Cause returns ErrInvalidParameter.
//
func (e *ParamError) Cause() error { return ErrInvalidParameter }

// Unwrap returns ErrInvalidParameter.
//
func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// IsInvalidParameter returns true if the cause of err is ErrInvalidParameter.
//
func IsInvalidParameter(err error) bool {
	return err != nil && errors.Cause(err) == ErrInvalidParameter
}

// OverflowError reports the first non-finite sample of a result sequence.
//
type OverflowError struct {
	Sequence string
	Step     int
	Value    float64
}

func (e *OverflowError) Error() string {
	return ErrNumericOverflow.Error() + ": " + e.Sequence + "[" + strconv.Itoa(e.Step) + "] = " +
		strconv.FormatFloat(e.Value, 'g', -1, 64)
}

// Cause returns ErrNumericOverflow.
//
func (e *OverflowError) Cause() error { return ErrNumericOverflow }

// Unwrap returns ErrNumericOverflow.
//
func (e *OverflowError) Unwrap() error { return ErrNumericOverflow }

// validator collects the first configuration error for a model.
type validator struct {
	model string
	err   error
}

func (v *validator) fail(field string, value float64, reason string) {
	if v.err == nil {
		v.err = &ParamError{Model: v.model, Field: field, Value: value, Reason: reason}
	}
}

func (v *validator) finite(field string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.fail(field, value, "not a finite number")
		return false
	}
	return true
}

func (v *validator) nonNegative(field string, value float64) {
	if v.finite(field, value) && value < 0 {
		v.fail(field, value, "must be >= 0")
	}
}

func (v *validator) positive(field string, value float64) {
	if v.finite(field, value) && value <= 0 {
		v.fail(field, value, "must be > 0")
	}
}

func (v *validator) steps(n int) {
	if n <= 0 {
		v.fail("steps", float64(n), "must be > 0")
	}
}

func (v *validator) source(src Source) {
	if src == nil {
		v.err = &ParamError{Model: v.model, Field: "source", Reason: "nil random source"}
	}
}
