package wire

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/pool/bytebuff"
	"github.com/valyala/bytebufferpool"
)

// Writer 单个出站包的追加式缓冲
// 写入方法不返回错误的部分不会失败；字符串超长时 PutString 返回错误
type Writer struct {
	buf *bytebufferpool.ByteBuffer
}

// NewWriter 从默认缓冲池取得底层 buffer，用完调用 Release
func NewWriter() *Writer {
	return &Writer{buf: bytebuff.Get()}
}

// Release 归还底层 buffer，之后 Bytes 返回的切片不可再用
func (w *Writer) Release() {
	if w.buf != nil {
		bytebuff.Put(w.buf)
		w.buf = nil
	}
}

// Bytes 已累积的帧
func (w *Writer) Bytes() []byte {
	return w.buf.B
}

func (w *Writer) Len() int {
	return len(w.buf.B)
}

func (w *Writer) PutByte(v byte) {
	w.buf.B = append(w.buf.B, v)
}

func (w *Writer) PutBool(v bool) {
	w.buf.B = append(w.buf.B, boolToByte(v))
}

func (w *Writer) PutInt16(v int16) {
	w.buf.B = binary.BigEndian.AppendUint16(w.buf.B, uint16(v))
}

func (w *Writer) PutInt32(v int32) {
	w.buf.B = binary.BigEndian.AppendUint32(w.buf.B, uint32(v))
}

func (w *Writer) PutInt64(v int64) {
	w.buf.B = binary.BigEndian.AppendUint64(w.buf.B, uint64(v))
}

func (w *Writer) PutFloat32(v float32) {
	w.buf.B = binary.BigEndian.AppendUint32(w.buf.B, math.Float32bits(v))
}

func (w *Writer) PutFloat64(v float64) {
	w.buf.B = binary.BigEndian.AppendUint64(w.buf.B, math.Float64bits(v))
}

// PutString 写入 int16 字节长度前缀 + UTF-8 字节
func (w *Writer) PutString(s string) error {
	if len(s) > MaxStringLength {
		return errors.Wrapf(ErrStringTooLong, "%d bytes", len(s))
	}
	w.PutInt16(int16(len(s)))
	w.buf.B = append(w.buf.B, s...)
	return nil
}

// PutBytes 原样追加字节块，不带长度前缀
func (w *Writer) PutBytes(b []byte) {
	w.buf.B = append(w.buf.B, b...)
}

// PutInt16s 逐个写入 int16，不带数量前缀
func (w *Writer) PutInt16s(vs []int16) {
	for _, v := range vs {
		w.PutInt16(v)
	}
}
