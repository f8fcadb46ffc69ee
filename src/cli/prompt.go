// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
)

// ErrInput indicates that a subject field could not be read.
var ErrInput = errors.New("cli: failed to read input")

// Prompter asks for leaf subject fields on a line oriented stream.
// It implements the generator's SubjectSource.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	title       cases.Caser
	notice      sync.Once
}

// NewPrompter creates a Prompter reading answers from in and writing
// prompts to out. Input is treated as interactive only when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
		title:       cases.Title(language.English),
	}
}

// Subject reads the common name, organization, organizational unit and
// country of role, one line each and in that order.
//
// A line without a trailing newline at end of input is accepted. Running out
// of input before all four fields are read returns [ErrInput].
func (p *Prompter) Subject(ctx context.Context, role x509request.Role) (x509request.Subject, error) {
	if !p.interactive {
		p.notice.Do(func() {
			fmt.Fprintln(p.out, "stdin is not a terminal, reading subject fields line by line")
		})
	}
	fmt.Fprintf(p.out, "%s certificate\n", p.title.String(role.String()))

	var s x509request.Subject
	fields := []struct {
		label string
		dst   *string
	}{
		{"common name", &s.CommonName},
		{"organization", &s.Organization},
		{"organizational unit", &s.OrganizationalUnit},
		{"country", &s.Country},
	}
	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return x509request.Subject{}, err
		}
		fmt.Fprintf(p.out, "Enter %s %s: ", role, f.label)

		line, err := p.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return x509request.Subject{}, fmt.Errorf("%w: %s %s: %w", ErrInput, role, f.label, err)
		}
		*f.dst = strings.TrimSpace(line)
	}
	return s, nil
}
