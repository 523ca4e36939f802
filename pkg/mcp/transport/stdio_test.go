// Copyright 2026 Lakedeck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdioReceiveLines(t *testing.T) {
	in := strings.NewReader("{\"a\":1}\n{\"b\":2}\r\n")
	tr := NewStdioServerTransport(in, &bytes.Buffer{})

	msg, err := tr.Receive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(msg))

	// Carriage return is stripped too.
	msg, err = tr.Receive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(msg))

	_, err = tr.Receive(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestStdioReceiveSkipsEmptyLines(t *testing.T) {
	in := strings.NewReader("\n\n{\"a\":1}\n")
	tr := NewStdioServerTransport(in, &bytes.Buffer{})

	msg, err := tr.Receive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(msg))
}

func TestStdioSendAppendsNewline(t *testing.T) {
	var out bytes.Buffer
	tr := NewStdioServerTransport(strings.NewReader(""), &out)

	require.NoError(t, tr.Send(context.Background(), []byte(`{"ok":true}`)))
	require.NoError(t, tr.Send(context.Background(), []byte(`{"ok":false}`)))

	assert.Equal(t, "{\"ok\":true}\n{\"ok\":false}\n", out.String())
}

func TestStdioReceiveContextCancelled(t *testing.T) {
	// A reader that never produces data.
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	tr := NewStdioServerTransport(pr, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tr.Receive(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStdioClosedTransport(t *testing.T) {
	tr := NewStdioServerTransport(strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, tr.Close())

	err := tr.Send(context.Background(), []byte("{}"))
	require.Error(t, err)

	_, err = tr.Receive(context.Background())
	require.Error(t, err)
}
