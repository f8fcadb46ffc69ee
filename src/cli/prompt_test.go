// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-certgen/src/cli"
	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
)

func TestPrompter(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Prompt order",
			testFunc: func(t *testing.T) {
				var out bytes.Buffer
				p := cli.NewPrompter(strings.NewReader(subjectInput), &out)

				server, err := p.Subject(context.Background(), x509request.ServerLeaf)
				require.NoError(t, err)
				assert.Equal(t, x509request.Subject{CommonName: "srv1", Organization: "Acme", OrganizationalUnit: "Eng", Country: "US"}, server)

				client, err := p.Subject(context.Background(), x509request.ClientLeaf)
				require.NoError(t, err)
				assert.Equal(t, "cli1", client.CommonName)

				assert.Equal(t, "stdin is not a terminal, reading subject fields line by line\n"+
					"Server certificate\n"+
					"Enter server common name: Enter server organization: Enter server organizational unit: Enter server country: "+
					"Client certificate\n"+
					"Enter client common name: Enter client organization: Enter client organizational unit: Enter client country: ",
					out.String())
			},
		},
		{
			name: "Trims whitespace and CRLF",
			testFunc: func(t *testing.T) {
				p := cli.NewPrompter(strings.NewReader("  srv1 \r\nAcme\r\n\r\nUS"), &bytes.Buffer{})

				s, err := p.Subject(context.Background(), x509request.ServerLeaf)
				require.NoError(t, err)
				assert.Equal(t, x509request.Subject{CommonName: "srv1", Organization: "Acme", Country: "US"}, s)
			},
		},
		{
			name: "End of input",
			testFunc: func(t *testing.T) {
				p := cli.NewPrompter(strings.NewReader("srv1\nAcme\nEng\n"), &bytes.Buffer{})

				_, err := p.Subject(context.Background(), x509request.ServerLeaf)
				assert.ErrorIs(t, err, cli.ErrInput)
				assert.ErrorContains(t, err, "server country")
			},
		},
		{
			name: "Read error",
			testFunc: func(t *testing.T) {
				boom := errors.New("boom")
				p := cli.NewPrompter(errReader{err: boom}, &bytes.Buffer{})

				_, err := p.Subject(context.Background(), x509request.ClientLeaf)
				assert.ErrorIs(t, err, cli.ErrInput)
				assert.ErrorIs(t, err, boom)
			},
		},
		{
			name: "Cancelled",
			testFunc: func(t *testing.T) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				p := cli.NewPrompter(strings.NewReader(subjectInput), &bytes.Buffer{})

				_, err := p.Subject(ctx, x509request.ServerLeaf)
				assert.ErrorIs(t, err, context.Canceled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
