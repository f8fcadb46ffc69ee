// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package generator

import (
	"context"
	"errors"

	"github.com/H0llyW00dzZ/x509-certgen/src/internal/layout"
	x509certs "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/certs"
	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
	x509signer "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/signer"
	"github.com/H0llyW00dzZ/x509-certgen/src/logger"
)

// Default common names of the CA certificates.
const (
	DefaultRootCN    = "Root ca"
	DefaultSigningCN = "Intermediate Signing ca"
)

// ErrNoSubjectSource is returned when [Options.Subjects] is nil.
var ErrNoSubjectSource = errors.New("generator: no subject source")

// SubjectSource supplies the distinguished name of a leaf.
// It is asked for [x509request.ServerLeaf] first, then [x509request.ClientLeaf].
type SubjectSource interface {
	Subject(ctx context.Context, role x509request.Role) (x509request.Subject, error)
}

// SubjectFunc adapts a function to [SubjectSource].
type SubjectFunc func(ctx context.Context, role x509request.Role) (x509request.Subject, error)

// Subject implements [SubjectSource].
func (f SubjectFunc) Subject(ctx context.Context, role x509request.Role) (x509request.Subject, error) {
	return f(ctx, role)
}

// Options configures a run. Zero values select the defaults.
type Options struct {
	RootCN    string
	SigningCN string
	Expired   bool
	OutDir    string

	Subjects SubjectSource
	Clock    x509request.Clock
	Random   x509request.RandomSource
	Policy   *x509request.ValidityPolicy
	Key      x509signer.KeyConfig
	Encoder  x509signer.Encoder
	Logger   logger.Logger
}

// Result describes a completed run.
type Result struct {
	Layout  *layout.Layout
	Root    *x509signer.SignedCertificate
	Signing *x509signer.SignedCertificate
	Server  *x509signer.SignedCertificate
	Client  *x509signer.SignedCertificate
	Paths   map[x509request.Role]layout.Paths
}

// Files lists every written file in write order.
func (r *Result) Files() []string {
	var files []string
	for _, role := range chainOrder {
		p := r.Paths[role]
		files = append(files, p.Cert, p.Key)
		if p.Bundle != "" {
			files = append(files, p.Bundle)
		}
	}
	return files
}

var chainOrder = []x509request.Role{
	x509request.RootCA,
	x509request.IntermediateCA,
	x509request.ServerLeaf,
	x509request.ClientLeaf,
}

// Run generates the chain and writes it to disk.
//
// Parameters:
//   - ctx: Checked between steps; cancellation stops the run
//   - opts: Run configuration
//
// Returns:
//   - *Result: Signed certificates and written paths
//   - error: The first failure, wrapping the sentinel of the failing package
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Subjects == nil {
		return nil, ErrNoSubjectSource
	}
	opts.applyDefaults()

	now := opts.Clock.Now()
	policy := x509request.DefaultValidityPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	builder := x509request.NewBuilder(
		x509request.WithClock(x509request.FixedClock(now)),
		x509request.WithRandom(opts.Random),
		x509request.WithValidityPolicy(policy),
	)

	subjects := make(map[x509request.Role]x509request.Subject, len(chainOrder))
	subjects[x509request.RootCA] = x509request.CommonNameOnly(opts.RootCN)
	subjects[x509request.IntermediateCA] = x509request.CommonNameOnly(opts.SigningCN)
	for _, role := range []x509request.Role{x509request.ServerLeaf, x509request.ClientLeaf} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := opts.Subjects.Subject(ctx, role)
		if err != nil {
			return nil, err
		}
		subjects[role] = s
	}

	r := &Result{
		Layout: layout.New(opts.OutDir, now.Unix()),
		Paths:  make(map[x509request.Role]layout.Paths, len(chainOrder)),
	}
	g := &run{
		ctx:      ctx,
		builder:  builder,
		engine:   x509signer.New(opts.Encoder),
		expired:  opts.Expired,
		subjects: subjects,
	}

	var err error
	if r.Root, err = g.sign(x509request.RootCA, nil); err != nil {
		return nil, err
	}
	if r.Signing, err = g.sign(x509request.IntermediateCA, r.Root); err != nil {
		return nil, err
	}
	if r.Server, err = g.sign(x509request.ServerLeaf, r.Signing); err != nil {
		return nil, err
	}
	if r.Client, err = g.sign(x509request.ClientLeaf, r.Signing); err != nil {
		return nil, err
	}

	certs := map[x509request.Role]*x509signer.SignedCertificate{
		x509request.RootCA:         r.Root,
		x509request.IntermediateCA: r.Signing,
		x509request.ServerLeaf:     r.Server,
		x509request.ClientLeaf:     r.Client,
	}
	for _, role := range chainOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := r.Layout.For(role)
		if err != nil {
			return nil, err
		}
		if err := r.write(role, p, certs[role]); err != nil {
			return nil, err
		}
		r.Paths[role] = p
		opts.Logger.Printf("%s certificate written to %s", role, p.Cert)
	}

	return r, nil
}

func (r *Result) write(role x509request.Role, p layout.Paths, sc *x509signer.SignedCertificate) error {
	if err := r.Layout.WriteCertificate(p, sc); err != nil {
		return err
	}
	if !role.IsLeaf() {
		return nil
	}
	bundle := x509certs.AssembleBundle(sc.CertPEM, r.Signing.CertPEM, r.Root.CertPEM)
	return r.Layout.WriteBundle(p.Bundle, bundle)
}

func (o *Options) applyDefaults() {
	if o.RootCN == "" {
		o.RootCN = DefaultRootCN
	}
	if o.SigningCN == "" {
		o.SigningCN = DefaultSigningCN
	}
	if o.OutDir == "" {
		o.OutDir = "certs"
	}
	if o.Clock == nil {
		o.Clock = x509request.SystemClock
	}
	if o.Random == nil {
		o.Random = x509request.DefaultRandom
	}
	if o.Encoder == nil {
		o.Encoder = x509signer.NewCFSSLEncoder(o.Key)
	}
	if o.Logger == nil {
		o.Logger = logger.NewJSONLogger(nil, logger.LevelInfo)
	}
}

type run struct {
	ctx      context.Context
	builder  *x509request.Builder
	engine   *x509signer.Engine
	expired  bool
	subjects map[x509request.Role]x509request.Subject
}

func (g *run) sign(role x509request.Role, issuer *x509signer.SignedCertificate) (*x509signer.SignedCertificate, error) {
	if err := g.ctx.Err(); err != nil {
		return nil, err
	}
	req, err := g.builder.Build(role, g.subjects[role], g.expired)
	if err != nil {
		return nil, err
	}
	if issuer == nil {
		return g.engine.SelfSign(req)
	}
	return g.engine.SignWithIssuer(req, issuer)
}
