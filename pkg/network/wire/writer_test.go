package wire

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_BigEndian(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.PutInt16(0x0102)
	w.PutInt32(0x01020304)
	w.PutInt64(0x0102030405060708)

	assert.Equal(t, []byte{
		0x01, 0x02,
		0x01, 0x02, 0x03, 0x04,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}, w.Bytes())
}

func TestWriter_Negative(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.PutInt16(-1)
	w.PutInt32(-2)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE}, w.Bytes())
}

func TestWriter_Floats(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.PutFloat32(1.0)
	w.PutFloat64(-2.5)

	r := NewReader(bytes.NewReader(w.Bytes()))
	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), f32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, -2.5, f64)
}

func TestWriter_FloatSpecials(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.PutFloat64(math.Inf(-1))
	w.PutFloat32(float32(math.NaN()))

	r := NewReader(bytes.NewReader(w.Bytes()))
	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.True(t, math.IsInf(f64, -1))

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(f32)))
}

func TestWriter_Bool(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.PutBool(true)
	w.PutBool(false)
	assert.Equal(t, []byte{0x01, 0x00}, w.Bytes())
}

func TestWriter_String(t *testing.T) {
	for _, n := range []int{0, 1, MaxStringLength} {
		s := strings.Repeat("x", n)

		w := NewWriter()
		require.NoError(t, w.PutString(s))

		got := w.Bytes()
		require.Len(t, got, 2+n)
		assert.Equal(t, byte(n>>8), got[0])
		assert.Equal(t, byte(n), got[1])

		back, err := NewReader(bytes.NewReader(got)).ReadString()
		require.NoError(t, err)
		assert.Equal(t, s, back)
		w.Release()
	}
}

func TestWriter_StringMultiByte(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	require.NoError(t, w.PutString("方块"))
	assert.Equal(t, []byte{0x00, 0x06}, w.Bytes()[:2])
}

func TestWriter_StringTooLong(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	err := w.PutString(strings.Repeat("x", MaxStringLength+1))
	assert.True(t, errors.Is(err, ErrStringTooLong))
	assert.Equal(t, 0, w.Len())
}

func TestWriter_Arrays(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.PutInt16s([]int16{1, -1})
	w.PutBytes([]byte{0xAA})
	w.PutInt16s(nil)
	w.PutBytes(nil)
	assert.Equal(t, []byte{0x00, 0x01, 0xFF, 0xFF, 0xAA}, w.Bytes())
}

func TestWriter_ChatFrame(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.PutByte(0x03)
	require.NoError(t, w.PutString("hello"))
	assert.Equal(t, []byte{0x03, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}, w.Bytes())
}
