package carray

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func encode(t *testing.T, symbol string, data []byte) string {
	t.Helper()

	var out bytes.Buffer

	enc := NewEncoder(&out, symbol)
	_, err := enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	return out.String()
}

func TestEncoder(t *testing.T) {
	t.Run("three bytes", func(t *testing.T) {
		got := encode(t, "test_asset", []byte{0x01, 0xFF, 0x00})
		require.Equal(t,
			"#include <stdint.h>\n\nconst uint8_t g_test_asset[] = {0x01, 0xFF, 0x00, 0x00};\n",
			got,
		)
	})

	t.Run("empty input emits only the sentinel", func(t *testing.T) {
		var out bytes.Buffer

		enc := NewEncoder(&out, "empty")
		require.NoError(t, enc.Close())
		assert.Equal(t, "#include <stdint.h>\n\nconst uint8_t g_empty[] = {0x00};\n", out.String())
		assert.Equal(t, uint64(0), enc.Len())
	})

	t.Run("uppercase hex digits", func(t *testing.T) {
		got := encode(t, "x", []byte{0xAB, 0x0c, 0xde})
		assert.Contains(t, got, "{0xAB, 0x0C, 0xDE, 0x00};")
	})

	t.Run("multiple writes are concatenated", func(t *testing.T) {
		var out bytes.Buffer

		enc := NewEncoder(&out, "chunks")
		_, err := enc.Write([]byte{0x10})
		require.NoError(t, err)
		_, err = enc.Write([]byte{0x20, 0x30})
		require.NoError(t, err)
		require.NoError(t, enc.Close())

		assert.Contains(t, out.String(), "{0x10, 0x20, 0x30, 0x00};")
		assert.Equal(t, uint64(3), enc.Len())
	})

	t.Run("works with io.Copy", func(t *testing.T) {
		var out bytes.Buffer

		enc := NewEncoder(&out, "copied")
		n, err := io.Copy(enc, bytes.NewReader([]byte{1, 2, 3, 4}))
		require.NoError(t, err)
		require.NoError(t, enc.Close())

		assert.Equal(t, int64(4), n)
		assert.Contains(t, out.String(), "{0x01, 0x02, 0x03, 0x04, 0x00};")
	})

	t.Run("close is idempotent", func(t *testing.T) {
		var out bytes.Buffer

		enc := NewEncoder(&out, "twice")
		require.NoError(t, enc.Close())
		require.NoError(t, enc.Close())
		assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("};")))
	})

	t.Run("write after close fails", func(t *testing.T) {
		enc := NewEncoder(io.Discard, "closed")
		require.NoError(t, enc.Close())

		_, err := enc.Write([]byte{1})
		require.ErrorIs(t, err, ErrClosed)
	})

	t.Run("flush error is reported on close", func(t *testing.T) {
		enc := NewEncoder(failingWriter{}, "broken")
		_, err := enc.Write([]byte{1, 2, 3})
		require.NoError(t, err)

		err = enc.Close()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestDecode(t *testing.T) {
	t.Run("every byte value round trips", func(t *testing.T) {
		data := make([]byte, 256)
		for i := range data {
			data[i] = byte(i)
		}

		arr, err := Decode([]byte(encode(t, "all_bytes", data)))
		require.NoError(t, err)

		assert.Equal(t, "all_bytes", arr.Symbol)
		assert.Equal(t, append(data, Sentinel), arr.Data)
	})

	t.Run("empty array", func(t *testing.T) {
		arr, err := Decode([]byte(encode(t, "empty", nil)))
		require.NoError(t, err)
		assert.Equal(t, []byte{Sentinel}, arr.Data)
	})

	t.Run("malformed input", func(t *testing.T) {
		tests := []struct {
			name     string
			fragment string
		}{
			{"no declaration", "int main() {}"},
			{"no opener", "const uint8_t g_x = 1;"},
			{"unterminated", "const uint8_t g_x[] = {0x01, "},
			{"not hex", "const uint8_t g_x[] = {12, 0x00};"},
			{"out of range", "const uint8_t g_x[] = {0x100, 0x00};"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Decode([]byte(tt.fragment))
				require.Error(t, err)
			})
		}
	})
}
