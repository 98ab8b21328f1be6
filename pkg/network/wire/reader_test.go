package wire

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_BigEndian(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{
		0x01, 0x02, // int16
		0x00, 0x00, 0x01, 0x00, // int32 256
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE, // int64 -2
		0x3F, 0x80, 0x00, 0x00, // float32 1.0
		0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // float64 2.0
	}))

	i16, err := r.ReadInt16()
	require.NoError(t, err)
	assert.Equal(t, int16(0x0102), i16)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(256), i32)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-2), i64)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), f32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, 2.0, f64)

	assert.EqualValues(t, 26, r.Consumed())
}

func TestReader_Bool(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00, 0x01, 0x7F}))
	for _, want := range []bool{false, true, true} {
		got, err := r.ReadBool()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReader_String(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"empty", 0},
		{"one", 1},
		{"max", MaxStringLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := strings.Repeat("a", tt.n)
			data := append([]byte{byte(tt.n >> 8), byte(tt.n)}, s...)

			got, err := NewReader(bytes.NewReader(data)).ReadString()
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}
}

func TestReader_StringNegativeLength(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0xFF, 0xFF})).ReadString()
	assert.True(t, errors.Is(err, ErrInvalidLength))
}

func TestReader_ShortReads(t *testing.T) {
	data := []byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0x00, 0x00, 0x00, 0x2A}
	r := NewReader(iotest.OneByteReader(bytes.NewReader(data)))

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	v, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)
}

func TestReader_EndOfStream(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(nil)).ReadByte()
		assert.True(t, errors.Is(err, ErrConnectionClosed))
		assert.True(t, IsTransportFault(err))
	})

	t.Run("mid value", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader([]byte{0x00, 0x01})).ReadInt32()
		assert.True(t, errors.Is(err, ErrConnectionClosed))
	})

	t.Run("mid string", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader([]byte{0x00, 0x05, 'h', 'i'})).ReadString()
		assert.True(t, errors.Is(err, ErrConnectionClosed))
	})
}

func TestReader_TransportError(t *testing.T) {
	boom := errors.New("reset by peer")
	_, err := NewReader(iotest.ErrReader(boom)).ReadByte()

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, boom))
	assert.False(t, errors.Is(err, ErrConnectionClosed))
}

func TestReader_Arrays(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00, 0x01, 0xFF, 0xFF, 0xAA, 0xBB}))

	vs, err := r.ReadInt16s(2)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, -1}, vs)

	b, err := r.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, b)

	empty, err := r.ReadBytes(0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = r.ReadBytes(-1)
	assert.True(t, errors.Is(err, ErrInvalidLength))

	_, err = r.ReadByte()
	assert.True(t, errors.Is(err, ErrConnectionClosed))
}
