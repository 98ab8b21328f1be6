package packet

import (
	"bytes"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/wire"
)

// Decode 解码 p 的负载，opcode 已由调用方读走
func Decode(r *wire.Reader, p Packet) error {
	var err error
	if d, ok := p.(Decoder); ok {
		err = d.DecodePayload(r)
	} else {
		err = DecodeFields(r, p.Fields())
	}
	if err != nil {
		return errors.Wrapf(err, "decode %s (%s)", Name(p), p.Opcode())
	}
	return nil
}

// Encode 编码 p 的负载，不含 opcode
func Encode(w *wire.Writer, p Packet) error {
	var err error
	if e, ok := p.(Encoder); ok {
		err = e.EncodePayload(w)
	} else {
		err = EncodeFields(w, p.Fields())
	}
	if err != nil {
		return errors.Wrapf(err, "encode %s (%s)", Name(p), p.Opcode())
	}
	return nil
}

// MarshalTo 把 opcode 和负载写入 w
func MarshalTo(w *wire.Writer, p Packet) error {
	w.PutByte(byte(p.Opcode()))
	return Encode(w, p)
}

// Marshal 返回完整帧的副本
func Marshal(p Packet) ([]byte, error) {
	w := wire.NewWriter()
	defer w.Release()

	if err := MarshalTo(w, p); err != nil {
		return nil, err
	}
	return append([]byte(nil), w.Bytes()...), nil
}

// Unmarshal 从完整帧解出 author 发送的包，帧必须被恰好消费完
func (c *Catalog) Unmarshal(frame []byte, author Role) (Packet, error) {
	br := bytes.NewReader(frame)
	r := wire.NewReader(br)

	op, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	p, err := c.Lookup(Opcode(op), author)
	if err != nil {
		return nil, err
	}
	if err := Decode(r, p); err != nil {
		return nil, err
	}
	if br.Len() > 0 {
		return nil, errors.Wrapf(ErrTrailingBytes, "%s: %d bytes left", Name(p), br.Len())
	}
	return p, nil
}

// Name 返回包的类型名，用于日志与指标
func Name(p Packet) string {
	t := reflect.TypeOf(p)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
