package wire

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"
)

const blockChunk = 64 << 10

// Reader 从字节流读取基础类型
// 每次读取都会循环直到凑满所需字节，短读是正常现象
type Reader struct {
	r        io.Reader
	scratch  [8]byte
	consumed uint64
}

// NewReader 包装 r，调用方通常传入 bufio.Reader
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Consumed 已读取的字节总数
func (r *Reader) Consumed() uint64 {
	return r.consumed
}

func (r *Reader) fill(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.consumed += uint64(n)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrapf(ErrConnectionClosed, "read %d of %d bytes", n, len(buf))
	}
	return errors.Mark(errors.Wrap(err, "read"), ErrTransport)
}

func (r *Reader) ReadByte() (byte, error) {
	if err := r.fill(r.scratch[:1]); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

// ReadBool 0 为 false，其余为 true
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

func (r *Reader) ReadInt16() (int16, error) {
	if err := r.fill(r.scratch[:2]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(r.scratch[:2])), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	if err := r.fill(r.scratch[:4]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(r.scratch[:4])), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	if err := r.fill(r.scratch[:8]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(r.scratch[:8])), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	if err := r.fill(r.scratch[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(r.scratch[:4])), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	if err := r.fill(r.scratch[:8]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(r.scratch[:8])), nil
}

// ReadString 读取 int16 字节长度前缀 + UTF-8 字节
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadInt16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", errors.Wrapf(ErrInvalidLength, "string length %d", n)
	}
	if n == 0 {
		return "", nil
	}
	buf, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadBytes 读取 n 字节的原始块
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "byte block length %d", n)
	}
	if n <= blockChunk {
		buf := make([]byte, n)
		if err := r.fill(buf); err != nil {
			return nil, err
		}
		return buf, nil
	}

	// 按块读取，已分配内存不超过已收到的数据加一个块
	buf := make([]byte, 0, blockChunk)
	for len(buf) < n {
		step := min(n-len(buf), blockChunk)
		start := len(buf)
		buf = append(buf, make([]byte, step)...)
		if err := r.fill(buf[start:]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// ReadInt16s 逐个读取 n 个 int16
func (r *Reader) ReadInt16s(n int) ([]int16, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "int16 array length %d", n)
	}
	out := make([]int16, n)
	for i := range out {
		v, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
