// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509request

import (
	"crypto/x509"
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"time"
)

// ErrUnknownRole indicates a role outside the four supported ones.
var ErrUnknownRole = errors.New("x509request: unknown certificate role")

// ErrUnknownUsage indicates a key usage name without an X.509 mapping.
var ErrUnknownUsage = errors.New("x509request: unknown key usage")

// Clock reads the current time.
type Clock interface {
	Now() time.Time
}

// RandomSource draws uniform unsigned 64-bit values for serial numbers.
// Uniqueness is what matters, not unpredictability.
type RandomSource interface {
	Uint64() uint64
}

// ClockFunc adapts a function to [Clock].
type ClockFunc func() time.Time

// Now implements [Clock].
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock { return ClockFunc(func() time.Time { return t }) }

// defaultRandom wraps the process-wide math/rand/v2 generator.
type defaultRandom struct{}

func (defaultRandom) Uint64() uint64 { return rand.Uint64() }

// DefaultRandom is the process-wide pseudo-random source.
var DefaultRandom RandomSource = defaultRandom{}

// Request is a fully specified certificate request for a single entity.
// It is built once and consumed once by the signing engine.
type Request struct {
	Role         Role
	Subject      Subject
	Validity     Validity
	SerialNumber uint64
	KeyUsages    []KeyUsage
	ExtKeyUsages []ExtKeyUsage
	IsCA         bool
}

// Serial returns the serial number as a [big.Int] for certificate encoding.
func (r *Request) Serial() *big.Int { return new(big.Int).SetUint64(r.SerialNumber) }

// X509KeyUsage folds the key usage set into its bit mask.
// An unknown usage name returns [ErrUnknownUsage].
func (r *Request) X509KeyUsage() (x509.KeyUsage, error) {
	var ku x509.KeyUsage
	for _, u := range r.KeyUsages {
		bit, ok := u.X509()
		if !ok {
			return 0, fmt.Errorf("%w: key usage %q", ErrUnknownUsage, u)
		}
		ku |= bit
	}
	return ku, nil
}

// X509ExtKeyUsages maps the extended key usage set to [x509.ExtKeyUsage] values.
// An unknown usage name returns [ErrUnknownUsage].
func (r *Request) X509ExtKeyUsages() ([]x509.ExtKeyUsage, error) {
	out := make([]x509.ExtKeyUsage, 0, len(r.ExtKeyUsages))
	for _, u := range r.ExtKeyUsages {
		eku, ok := u.X509()
		if !ok {
			return nil, fmt.Errorf("%w: extended key usage %q", ErrUnknownUsage, u)
		}
		out = append(out, eku)
	}
	return out, nil
}

// Builder creates requests per role.
type Builder struct {
	clock  Clock
	random RandomSource
	policy ValidityPolicy
}

// Option configures a [Builder].
type Option func(*Builder)

// WithClock overrides the time source.
func WithClock(c Clock) Option { return func(b *Builder) { b.clock = c } }

// WithRandom overrides the serial number source.
func WithRandom(r RandomSource) Option { return func(b *Builder) { b.random = r } }

// WithValidityPolicy overrides the validity windows.
func WithValidityPolicy(p ValidityPolicy) Option { return func(b *Builder) { b.policy = p } }

// NewBuilder creates a Builder using the system clock, the default random
// source and [DefaultValidityPolicy] unless overridden.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		clock:  SystemClock,
		random: DefaultRandom,
		policy: DefaultValidityPolicy(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates the request for role and subject.
//
// The expired flag only applies to leaf roles. Root and intermediate CAs
// always get the normal window so the chain above an expired leaf is still
// valid.
//
// Parameters:
//   - role: Position of the certificate in the chain
//   - subject: Distinguished name attributes
//   - expired: Whether a leaf should get the already-expired window
//
// Returns:
//   - *Request: The request, ready for signing
//   - error: [ErrUnknownRole], [ErrDateArithmetic] or [ErrInvalidValidity]
func (b *Builder) Build(role Role, subject Subject, expired bool) (*Request, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, role)
	}

	validity, err := b.policy.Window(b.clock.Now(), expired && role.IsLeaf())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", role, err)
	}

	return &Request{
		Role:         role,
		Subject:      subject,
		Validity:     validity,
		SerialNumber: b.random.Uint64(),
		KeyUsages:    role.KeyUsages(),
		ExtKeyUsages: role.ExtKeyUsages(),
		IsCA:         role.IsCA(),
	}, nil
}
