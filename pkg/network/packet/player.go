package packet

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/wire"
)

// EntityEquipment 实体手持物品与装备
type EntityEquipment struct {
	EntityID int32
	Slot     int16
	ItemID   int16
}

func (*EntityEquipment) Opcode() Opcode { return OpEntityEquipment }
func (*EntityEquipment) Side() Side     { return SideShared }
func (p *EntityEquipment) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Int16("slot", &p.Slot),
		Int16("item_id", &p.ItemID),
	}
}

type UseEntity struct {
	User      int32
	Target    int32
	LeftClick bool
}

func (*UseEntity) Opcode() Opcode { return OpUseEntity }
func (*UseEntity) Side() Side     { return SideClientToServer }
func (p *UseEntity) Fields() []Field {
	return []Field{
		Int32("user", &p.User),
		Int32("target", &p.Target),
		Bool("left_click", &p.LeftClick),
	}
}

// PlayerFlying 仅更新着地状态
type PlayerFlying struct {
	OnGround bool
}

func (*PlayerFlying) Opcode() Opcode { return OpPlayerFlying }
func (*PlayerFlying) Side() Side     { return SideClientToServer }
func (p *PlayerFlying) Fields() []Field {
	return []Field{Bool("on_ground", &p.OnGround)}
}

type PlayerPosition struct {
	X, Stance, Y, Z float64
	OnGround        bool
}

func (*PlayerPosition) Opcode() Opcode { return OpPlayerPosition }
func (*PlayerPosition) Side() Side     { return SideClientToServer }
func (p *PlayerPosition) Fields() []Field {
	return []Field{
		Float64("x", &p.X),
		Float64("stance", &p.Stance),
		Float64("y", &p.Y),
		Float64("z", &p.Z),
		Bool("on_ground", &p.OnGround),
	}
}

type PlayerLook struct {
	Yaw, Pitch float32
	OnGround   bool
}

func (*PlayerLook) Opcode() Opcode { return OpPlayerLook }
func (*PlayerLook) Side() Side     { return SideClientToServer }
func (p *PlayerLook) Fields() []Field {
	return []Field{
		Float32("yaw", &p.Yaw),
		Float32("pitch", &p.Pitch),
		Bool("on_ground", &p.OnGround),
	}
}

// PlayerPositionLook 客户端上报位置与朝向，Y 在 Stance 之前
type PlayerPositionLook struct {
	X, Y, Stance, Z float64
	Yaw, Pitch      float32
	OnGround        bool
}

func (*PlayerPositionLook) Opcode() Opcode { return OpPlayerPositionLook }
func (*PlayerPositionLook) Side() Side     { return SideClientToServer }
func (p *PlayerPositionLook) Fields() []Field {
	return []Field{
		Float64("x", &p.X),
		Float64("y", &p.Y),
		Float64("stance", &p.Stance),
		Float64("z", &p.Z),
		Float32("yaw", &p.Yaw),
		Float32("pitch", &p.Pitch),
		Bool("on_ground", &p.OnGround),
	}
}

// PlayerPositionLookServer 服务端校正位置，Stance 在 Y 之前
// 客户端收到后需要原样回送一个 PlayerPositionLook
type PlayerPositionLookServer struct {
	X, Stance, Y, Z float64
	Yaw, Pitch      float32
	OnGround        bool
}

func (*PlayerPositionLookServer) Opcode() Opcode { return OpPlayerPositionLook }
func (*PlayerPositionLookServer) Side() Side     { return SideServerToClient }
func (p *PlayerPositionLookServer) Fields() []Field {
	return []Field{
		Float64("x", &p.X),
		Float64("stance", &p.Stance),
		Float64("y", &p.Y),
		Float64("z", &p.Z),
		Float32("yaw", &p.Yaw),
		Float32("pitch", &p.Pitch),
		Bool("on_ground", &p.OnGround),
	}
}

// Echo 转换为客户端方向的确认包
func (p *PlayerPositionLookServer) Echo() *PlayerPositionLook {
	return &PlayerPositionLook{
		X: p.X, Y: p.Y, Stance: p.Stance, Z: p.Z,
		Yaw: p.Yaw, Pitch: p.Pitch, OnGround: p.OnGround,
	}
}

// PlayerDigging 挖掘进度，持续发送
type PlayerDigging struct {
	Status byte
	X      int32
	Y      byte
	Z      int32
	Face   byte
}

func (*PlayerDigging) Opcode() Opcode { return OpPlayerDigging }
func (*PlayerDigging) Side() Side     { return SideClientToServer }
func (p *PlayerDigging) Fields() []Field {
	return []Field{
		Byte("status", &p.Status),
		Int32("x", &p.X),
		Byte("y", &p.Y),
		Int32("z", &p.Z),
		Byte("face", &p.Face),
	}
}

// PlayerBlockPlace 放置方块或使用物品
// 物品 ID 为 -1 时负载止于物品 ID，否则再带 1 字节数量和 1 字节耐久
type PlayerBlockPlace struct {
	X         int32
	Y         byte
	Z         int32
	Direction byte
	Item      Slot
}

func (*PlayerBlockPlace) Opcode() Opcode { return OpPlayerBlockPlace }
func (*PlayerBlockPlace) Side() Side     { return SideClientToServer }

// Fields 描述定长前缀，物品槽位由 DecodePayload/EncodePayload 处理
func (p *PlayerBlockPlace) Fields() []Field {
	return []Field{
		Int32("x", &p.X),
		Byte("y", &p.Y),
		Int32("z", &p.Z),
		Byte("direction", &p.Direction),
	}
}

func (p *PlayerBlockPlace) DecodePayload(r *wire.Reader) error {
	if err := DecodeFields(r, p.Fields()); err != nil {
		return err
	}
	item, err := readSlot(r)
	if err != nil {
		return errors.Wrap(err, "decode field item")
	}
	p.Item = item
	return nil
}

func (p *PlayerBlockPlace) EncodePayload(w *wire.Writer) error {
	if err := EncodeFields(w, p.Fields()); err != nil {
		return err
	}
	writeSlot(w, p.Item)
	return nil
}

// HoldingChange 切换快捷栏
type HoldingChange struct {
	SlotID int16
}

func (*HoldingChange) Opcode() Opcode { return OpHoldingChange }
func (*HoldingChange) Side() Side     { return SideShared }
func (p *HoldingChange) Fields() []Field {
	return []Field{Int16("slot_id", &p.SlotID)}
}

// Animation 挥手等动作
type Animation struct {
	EntityID int32
	Stage    byte
}

func (*Animation) Opcode() Opcode { return OpAnimation }
func (*Animation) Side() Side     { return SideShared }
func (p *Animation) Fields() []Field {
	return []Field{Int32("entity_id", &p.EntityID), Byte("stage", &p.Stage)}
}

// SignUpdate 告示牌四行文字
type SignUpdate struct {
	X     int32
	Y     int16
	Z     int32
	Lines [4]string
}

func (*SignUpdate) Opcode() Opcode { return OpSignUpdate }
func (*SignUpdate) Side() Side     { return SideShared }
func (p *SignUpdate) Fields() []Field {
	return []Field{
		Int32("x", &p.X),
		Int16("y", &p.Y),
		Int32("z", &p.Z),
		String("line1", &p.Lines[0]),
		String("line2", &p.Lines[1]),
		String("line3", &p.Lines[2]),
		String("line4", &p.Lines[3]),
	}
}
