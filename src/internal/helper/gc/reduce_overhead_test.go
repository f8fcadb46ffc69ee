// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// foreignBuffer satisfies Buffer without coming from bytebufferpool.
type foreignBuffer struct{ bytes.Buffer }

// errorReader is an io.Reader that always fails.
type errorReader struct{ err error }

func (e *errorReader) Read([]byte) (int, error) { return 0, e.err }

func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		check func(t *testing.T, buf Buffer)
	}{
		{
			name: "Write PEM blocks",
			setup: func(buf Buffer) {
				buf.Write([]byte("-----BEGIN CERTIFICATE-----\n"))
				buf.Write([]byte("-----END CERTIFICATE-----\n"))
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "-----BEGIN CERTIFICATE-----\n-----END CERTIFICATE-----\n", buf.String())
			},
		},
		{
			name: "Mixed writes",
			setup: func(buf Buffer) {
				buf.WriteString(`{"level":"info"`)
				buf.WriteByte('}')
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, []byte(`{"level":"info"}`), buf.Bytes())
				assert.Equal(t, 16, buf.Len())
			},
		},
		{
			name: "Reset clears buffer",
			setup: func(buf Buffer) {
				buf.WriteString("data to clear")
				buf.Reset()
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, 0, buf.Len(), "Reset() failed, buffer still contains data: %q", buf.Bytes())
			},
		},
		{
			name: "ReadFrom file-like reader",
			setup: func(buf Buffer) {
				buf.ReadFrom(strings.NewReader("bundle contents"))
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "bundle contents", buf.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.setup(buf)
			tt.check(t, buf)
		})
	}
}

func TestReadFromError(t *testing.T) {
	buf := Default.Get()
	defer func() {
		buf.Reset()
		Default.Put(buf)
	}()

	readErr := errors.New("disk gone")
	_, err := buf.ReadFrom(&errorReader{err: readErr})
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}

func TestPutForeignBuffer(t *testing.T) {
	// Buffers from elsewhere are dropped rather than panicking.
	assert.NotPanics(t, func() { Default.Put(&foreignBuffer{}) })
}

func TestPoolConcurrentUse(t *testing.T) {
	const workers = 32

	var wg sync.WaitGroup
	results := make([]string, workers)

	for i := range workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			buf.WriteString(strings.Repeat("x", id))
			results[id] = buf.String()
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Len(t, got, i)
	}
}
