package packet

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/wire"
)

// PreChunk Load 为 true 时客户端准备区块，false 时卸载
type PreChunk struct {
	X, Z int32
	Load bool
}

func (*PreChunk) Opcode() Opcode { return OpPreChunk }
func (*PreChunk) Side() Side     { return SideServerToClient }
func (p *PreChunk) Fields() []Field {
	return []Field{Int32("x", &p.X), Int32("z", &p.Z), Bool("load", &p.Load)}
}

// MapChunk 区块数据，Data 为压缩后的原始字节，本包不解压
type MapChunk struct {
	X                   int32
	Y                   int16
	Z                   int32
	SizeX, SizeY, SizeZ byte
	Data                []byte
}

func (*MapChunk) Opcode() Opcode { return OpMapChunk }
func (*MapChunk) Side() Side     { return SideServerToClient }

// Fields 描述 int32 长度前缀之前的定长部分
func (p *MapChunk) Fields() []Field {
	return []Field{
		Int32("x", &p.X),
		Int16("y", &p.Y),
		Int32("z", &p.Z),
		Byte("size_x", &p.SizeX),
		Byte("size_y", &p.SizeY),
		Byte("size_z", &p.SizeZ),
	}
}

func (p *MapChunk) DecodePayload(r *wire.Reader) error {
	if err := DecodeFields(r, p.Fields()); err != nil {
		return err
	}
	n, err := r.ReadInt32()
	if err != nil {
		return errors.Wrap(err, "decode field data_length")
	}
	if p.Data, err = r.ReadBytes(int(n)); err != nil {
		return errors.Wrap(err, "decode field data")
	}
	return nil
}

func (p *MapChunk) EncodePayload(w *wire.Writer) error {
	if err := EncodeFields(w, p.Fields()); err != nil {
		return err
	}
	w.PutInt32(int32(len(p.Data)))
	w.PutBytes(p.Data)
	return nil
}

// MultiBlockChange 同一区块内的批量方块变化
// Coordinates 每个元素打包了区块内坐标 (x<<12 | z<<8 | y)
type MultiBlockChange struct {
	ChunkX, ChunkZ int32
	Size           int16
	Coordinates    []int16
	Types          []byte
	Metadata       []byte
}

func (*MultiBlockChange) Opcode() Opcode { return OpMultiBlockChange }
func (*MultiBlockChange) Side() Side     { return SideServerToClient }
func (p *MultiBlockChange) Fields() []Field {
	size := func() int { return int(p.Size) }
	return []Field{
		Int32("chunk_x", &p.ChunkX),
		Int32("chunk_z", &p.ChunkZ),
		Int16("size", &p.Size),
		Int16s("coordinates", &p.Coordinates, size),
		Bytes("types", &p.Types, size),
		Bytes("metadata", &p.Metadata, size),
	}
}

type BlockChange struct {
	X        int32
	Y        byte
	Z        int32
	Type     byte
	Metadata byte
}

func (*BlockChange) Opcode() Opcode { return OpBlockChange }
func (*BlockChange) Side() Side     { return SideServerToClient }
func (p *BlockChange) Fields() []Field {
	return []Field{
		Int32("x", &p.X),
		Byte("y", &p.Y),
		Int32("z", &p.Z),
		Byte("type", &p.Type),
		Byte("metadata", &p.Metadata),
	}
}

// ExplosionRecord 被炸毁方块相对爆炸中心的偏移
type ExplosionRecord struct {
	DX, DY, DZ int8
}

type Explosion struct {
	X, Y, Z float64
	Radius  float32
	Records []ExplosionRecord
}

func (*Explosion) Opcode() Opcode { return OpExplosion }
func (*Explosion) Side() Side     { return SideServerToClient }

// Fields 描述记录数之前的定长部分
func (p *Explosion) Fields() []Field {
	return []Field{
		Float64("x", &p.X),
		Float64("y", &p.Y),
		Float64("z", &p.Z),
		Float32("radius", &p.Radius),
	}
}

func (p *Explosion) DecodePayload(r *wire.Reader) error {
	if err := DecodeFields(r, p.Fields()); err != nil {
		return err
	}
	n, err := r.ReadInt32()
	if err != nil {
		return errors.Wrap(err, "decode field count")
	}
	raw, err := r.ReadBytes(int(n) * 3)
	if err != nil {
		return errors.Wrap(err, "decode field records")
	}
	p.Records = make([]ExplosionRecord, n)
	for i := range p.Records {
		p.Records[i] = ExplosionRecord{DX: int8(raw[i*3]), DY: int8(raw[i*3+1]), DZ: int8(raw[i*3+2])}
	}
	return nil
}

func (p *Explosion) EncodePayload(w *wire.Writer) error {
	if err := EncodeFields(w, p.Fields()); err != nil {
		return err
	}
	w.PutInt32(int32(len(p.Records)))
	for _, rec := range p.Records {
		w.PutByte(byte(rec.DX))
		w.PutByte(byte(rec.DY))
		w.PutByte(byte(rec.DZ))
	}
	return nil
}
