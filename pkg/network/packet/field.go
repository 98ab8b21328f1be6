package packet

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/wire"
)

// Kind 字段的线上类型
type Kind uint8

const (
	KindByte Kind = iota
	KindInt8
	KindBool
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindString
	// KindBytes 原始字节块，长度来自前面的字段
	KindBytes
	// KindInt16s int16 数组，元素个数来自前面的字段
	KindInt16s
)

var kindNames = [...]string{
	KindByte:    "byte",
	KindInt8:    "int8",
	KindBool:    "bool",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
	KindBytes:   "bytes",
	KindInt16s:  "int16s",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Field 单个字段的描述符，持有指向包结构体字段的指针
type Field struct {
	Name   string
	Kind   Kind
	target any
	length func() int
}

// 基础类型字段描述符
func Byte(name string, v *byte) Field       { return Field{Name: name, Kind: KindByte, target: v} }
func Int8(name string, v *int8) Field       { return Field{Name: name, Kind: KindInt8, target: v} }
func Bool(name string, v *bool) Field       { return Field{Name: name, Kind: KindBool, target: v} }
func Int16(name string, v *int16) Field     { return Field{Name: name, Kind: KindInt16, target: v} }
func Int32(name string, v *int32) Field     { return Field{Name: name, Kind: KindInt32, target: v} }
func Int64(name string, v *int64) Field     { return Field{Name: name, Kind: KindInt64, target: v} }
func Float32(name string, v *float32) Field { return Field{Name: name, Kind: KindFloat32, target: v} }
func Float64(name string, v *float64) Field { return Field{Name: name, Kind: KindFloat64, target: v} }
func String(name string, v *string) Field   { return Field{Name: name, Kind: KindString, target: v} }

// Bytes 长度由 length 给出的原始字节块
// length 在解码到该字段时才求值，可以引用前面已解码的字段
func Bytes(name string, v *[]byte, length func() int) Field {
	return Field{Name: name, Kind: KindBytes, target: v, length: length}
}

// Int16s 元素个数由 length 给出的 int16 数组
func Int16s(name string, v *[]int16, length func() int) Field {
	return Field{Name: name, Kind: KindInt16s, target: v, length: length}
}

func (f Field) decode(r *wire.Reader) (err error) {
	switch p := f.target.(type) {
	case *byte:
		*p, err = r.ReadByte()
	case *int8:
		var b byte
		b, err = r.ReadByte()
		*p = int8(b)
	case *bool:
		*p, err = r.ReadBool()
	case *int16:
		*p, err = r.ReadInt16()
	case *int32:
		*p, err = r.ReadInt32()
	case *int64:
		*p, err = r.ReadInt64()
	case *float32:
		*p, err = r.ReadFloat32()
	case *float64:
		*p, err = r.ReadFloat64()
	case *string:
		*p, err = r.ReadString()
	case *[]byte:
		*p, err = r.ReadBytes(f.length())
	case *[]int16:
		*p, err = r.ReadInt16s(f.length())
	default:
		return errors.AssertionFailedf("field %s: unsupported target %T", f.Name, f.target)
	}
	return err
}

func (f Field) encode(w *wire.Writer) error {
	switch p := f.target.(type) {
	case *byte:
		w.PutByte(*p)
	case *int8:
		w.PutByte(byte(*p))
	case *bool:
		w.PutBool(*p)
	case *int16:
		w.PutInt16(*p)
	case *int32:
		w.PutInt32(*p)
	case *int64:
		w.PutInt64(*p)
	case *float32:
		w.PutFloat32(*p)
	case *float64:
		w.PutFloat64(*p)
	case *string:
		return w.PutString(*p)
	case *[]byte:
		if n := f.length(); n != len(*p) {
			return errors.Wrapf(ErrFieldLength, "field %s: length field says %d, have %d", f.Name, n, len(*p))
		}
		w.PutBytes(*p)
	case *[]int16:
		if n := f.length(); n != len(*p) {
			return errors.Wrapf(ErrFieldLength, "field %s: length field says %d, have %d", f.Name, n, len(*p))
		}
		w.PutInt16s(*p)
	default:
		return errors.AssertionFailedf("field %s: unsupported target %T", f.Name, f.target)
	}
	return nil
}

// DecodeFields 按顺序解码字段，自定义 DecodePayload 用它处理定长前缀
func DecodeFields(r *wire.Reader, fields []Field) error {
	for _, f := range fields {
		if err := f.decode(r); err != nil {
			return errors.Wrapf(err, "decode field %s", f.Name)
		}
	}
	return nil
}

// EncodeFields 按顺序编码字段
func EncodeFields(w *wire.Writer, fields []Field) error {
	for _, f := range fields {
		if err := f.encode(w); err != nil {
			return errors.Wrapf(err, "encode field %s", f.Name)
		}
	}
	return nil
}
