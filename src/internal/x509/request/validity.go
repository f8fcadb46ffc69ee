// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509request

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrDateArithmetic indicates that a validity window could not be computed
	// within the range of representable certificate times.
	ErrDateArithmetic = errors.New("x509request: validity window out of range")

	// ErrInvalidValidity indicates a window whose NotBefore is not strictly before NotAfter.
	ErrInvalidValidity = errors.New("x509request: not before must precede not after")
)

// Day is the unit validity windows are expressed in.
const Day = 24 * time.Hour

// X.509 GeneralizedTime cannot encode years outside this range.
var (
	minCertTime = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxCertTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// Validity is the window during which a certificate is valid.
type Validity struct {
	NotBefore time.Time
	NotAfter  time.Time
}

// Duration returns the length of the window.
func (v Validity) Duration() time.Duration { return v.NotAfter.Sub(v.NotBefore) }

// Check returns [ErrInvalidValidity] unless NotBefore is strictly before NotAfter.
func (v Validity) Check() error {
	if !v.NotBefore.Before(v.NotAfter) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidValidity,
			v.NotBefore.Format(time.RFC3339), v.NotAfter.Format(time.RFC3339))
	}
	return nil
}

// Expired reports whether the window ended before t.
func (v Validity) Expired(t time.Time) bool { return v.NotAfter.Before(t) }

// ValidityPolicy configures the two windows the builder can produce.
//
// The normal window is [now, now+Days]. The expired window is
// [now-ExpiredNotBefore, now-ExpiredNotAfter], which is entirely in the past.
type ValidityPolicy struct {
	Days             int
	ExpiredNotBefore int
	ExpiredNotAfter  int
}

// DefaultValidityPolicy returns a one year normal window and an expired
// window of [now-30d, now-1d].
func DefaultValidityPolicy() ValidityPolicy {
	return ValidityPolicy{
		Days:             365,
		ExpiredNotBefore: 30,
		ExpiredNotAfter:  1,
	}
}

// Window computes the validity window for now.
func (p ValidityPolicy) Window(now time.Time, expired bool) (Validity, error) {
	var (
		v   Validity
		err error
	)

	if expired {
		if v.NotBefore, err = addDays(now, -p.ExpiredNotBefore); err != nil {
			return Validity{}, err
		}
		if v.NotAfter, err = addDays(now, -p.ExpiredNotAfter); err != nil {
			return Validity{}, err
		}
	} else {
		v.NotBefore = now
		if v.NotAfter, err = addDays(now, p.Days); err != nil {
			return Validity{}, err
		}
	}

	if err := v.Check(); err != nil {
		return Validity{}, err
	}
	return v, nil
}

// addDays adds days to t, failing instead of wrapping around on overflow or
// when the result leaves the range a certificate can encode.
func addDays(t time.Time, days int) (time.Time, error) {
	if int64(days) > maxDays || int64(days) < -maxDays {
		return time.Time{}, fmt.Errorf("%w: %d days", ErrDateArithmetic, days)
	}

	d := time.Duration(days) * Day
	out := t.Add(d)
	if (d > 0 && !out.After(t)) || (d < 0 && !out.Before(t)) {
		return time.Time{}, fmt.Errorf("%w: %s %+d days", ErrDateArithmetic, t.Format(time.RFC3339), days)
	}
	if out.Before(minCertTime) || out.After(maxCertTime) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrDateArithmetic, out.Format(time.RFC3339))
	}
	return out, nil
}

// maxDays is the largest day count a time.Duration can hold.
const maxDays = math.MaxInt64 / int64(Day)
