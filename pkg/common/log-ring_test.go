package common

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRing_Write(t *testing.T) {
	instance := NewLogRing(3, 16)

	n, err := instance.Write([]byte("a\nb\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, instance.Lines())

	_, err = instance.Write([]byte("d\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("b"), []byte("c"), []byte("d")}, instance.Lines())

	_, err = instance.Write([]byte("e\nf\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("d"), []byte("e"), []byte("f")}, instance.Lines())
	assert.Equal(t, uint32(3), instance.NumberOfLines())
}

func TestLogRing_Write_partialLines(t *testing.T) {
	instance := NewLogRing(3, 16)

	_, err := instance.Write([]byte("hello, "))
	require.NoError(t, err)
	assert.Empty(t, instance.Lines())

	_, err = instance.Write([]byte("world\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("hello, world")}, instance.Lines())
}

func TestLogRing_Write_tooLongLine(t *testing.T) {
	instance := NewLogRing(3, 8)

	_, err := instance.Write([]byte("0123456789\n"))
	assert.ErrorIs(t, err, ErrLineTooLong)

	instance = NewLogRing(3, 8)
	instance.TruncateLongLines = true
	_, err = instance.Write([]byte("0123456789\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("01234567")}, instance.Lines())
}

func TestLogRing_WriteTo(t *testing.T) {
	instance := NewLogRing(5, 16)
	require.NoError(t, instance.AddLine([]byte("foo")))
	require.NoError(t, instance.AddLine([]byte("bar")))

	var buf bytes.Buffer
	n, err := instance.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, "foo\nbar\n", buf.String())
}

func TestWriterFacade_Set(t *testing.T) {
	var a, b strings.Builder
	instance := NewWriterFacade(&a)

	_, err := instance.Write([]byte("1"))
	require.NoError(t, err)

	instance.Set([]io.Writer{&a, &b})
	_, err = instance.Write([]byte("2"))
	require.NoError(t, err)

	assert.Equal(t, "12", a.String())
	assert.Equal(t, "2", b.String())
}
