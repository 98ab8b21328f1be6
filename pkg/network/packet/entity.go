package packet

// NamedEntitySpawn 其他玩家进入视野
type NamedEntitySpawn struct {
	EntityID    int32
	Name        string
	X, Y, Z     int32
	Rotation    byte
	Pitch       byte
	CurrentItem int16
}

func (*NamedEntitySpawn) Opcode() Opcode { return OpNamedEntitySpawn }
func (*NamedEntitySpawn) Side() Side     { return SideServerToClient }
func (p *NamedEntitySpawn) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		String("name", &p.Name),
		Int32("x", &p.X),
		Int32("y", &p.Y),
		Int32("z", &p.Z),
		Byte("rotation", &p.Rotation),
		Byte("pitch", &p.Pitch),
		Int16("current_item", &p.CurrentItem),
	}
}

// PickupSpawn 掉落物生成；客户端丢弃物品时也发送
type PickupSpawn struct {
	EntityID              int32
	ItemID                int16
	Count                 byte
	X, Y, Z               int32
	Rotation, Pitch, Roll byte
}

func (*PickupSpawn) Opcode() Opcode { return OpPickupSpawn }
func (*PickupSpawn) Side() Side     { return SideShared }
func (p *PickupSpawn) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Int16("item_id", &p.ItemID),
		Byte("count", &p.Count),
		Int32("x", &p.X),
		Int32("y", &p.Y),
		Int32("z", &p.Z),
		Byte("rotation", &p.Rotation),
		Byte("pitch", &p.Pitch),
		Byte("roll", &p.Roll),
	}
}

type CollectItem struct {
	Collected int32
	Collector int32
}

func (*CollectItem) Opcode() Opcode { return OpCollectItem }
func (*CollectItem) Side() Side     { return SideServerToClient }
func (p *CollectItem) Fields() []Field {
	return []Field{Int32("collected", &p.Collected), Int32("collector", &p.Collector)}
}

// AddObject 矿车、船等非生物实体
type AddObject struct {
	EntityID int32
	Type     byte
	X, Y, Z  int32
}

func (*AddObject) Opcode() Opcode { return OpAddObject }
func (*AddObject) Side() Side     { return SideServerToClient }
func (p *AddObject) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Byte("type", &p.Type),
		Int32("x", &p.X),
		Int32("y", &p.Y),
		Int32("z", &p.Z),
	}
}

type MobSpawn struct {
	EntityID   int32
	Type       byte
	X, Y, Z    int32
	Yaw, Pitch byte
}

func (*MobSpawn) Opcode() Opcode { return OpMobSpawn }
func (*MobSpawn) Side() Side     { return SideServerToClient }
func (p *MobSpawn) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Byte("type", &p.Type),
		Int32("x", &p.X),
		Int32("y", &p.Y),
		Int32("z", &p.Z),
		Byte("yaw", &p.Yaw),
		Byte("pitch", &p.Pitch),
	}
}

type EntityVelocity struct {
	EntityID int32
	X, Y, Z  int16
}

func (*EntityVelocity) Opcode() Opcode { return OpEntityVelocity }
func (*EntityVelocity) Side() Side     { return SideServerToClient }
func (p *EntityVelocity) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Int16("x", &p.X),
		Int16("y", &p.Y),
		Int16("z", &p.Z),
	}
}

type DestroyEntity struct {
	EntityID int32
}

func (*DestroyEntity) Opcode() Opcode { return OpDestroyEntity }
func (*DestroyEntity) Side() Side     { return SideServerToClient }
func (p *DestroyEntity) Fields() []Field {
	return []Field{Int32("entity_id", &p.EntityID)}
}

// Entity 实体存在性通知，无其他字段
type Entity struct {
	EntityID int32
}

func (*Entity) Opcode() Opcode { return OpEntity }
func (*Entity) Side() Side     { return SideServerToClient }
func (p *Entity) Fields() []Field {
	return []Field{Int32("entity_id", &p.EntityID)}
}

// EntityRelativeMove 相对位移，单位为 1/32 方块
type EntityRelativeMove struct {
	EntityID   int32
	DX, DY, DZ int8
}

func (*EntityRelativeMove) Opcode() Opcode { return OpEntityRelativeMove }
func (*EntityRelativeMove) Side() Side     { return SideServerToClient }
func (p *EntityRelativeMove) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Int8("dx", &p.DX),
		Int8("dy", &p.DY),
		Int8("dz", &p.DZ),
	}
}

type EntityLook struct {
	EntityID   int32
	Yaw, Pitch byte
}

func (*EntityLook) Opcode() Opcode { return OpEntityLook }
func (*EntityLook) Side() Side     { return SideServerToClient }
func (p *EntityLook) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Byte("yaw", &p.Yaw),
		Byte("pitch", &p.Pitch),
	}
}

type EntityLookRelativeMove struct {
	EntityID   int32
	DX, DY, DZ int8
	Yaw, Pitch byte
}

func (*EntityLookRelativeMove) Opcode() Opcode { return OpEntityLookRelativeMove }
func (*EntityLookRelativeMove) Side() Side     { return SideServerToClient }
func (p *EntityLookRelativeMove) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Int8("dx", &p.DX),
		Int8("dy", &p.DY),
		Int8("dz", &p.DZ),
		Byte("yaw", &p.Yaw),
		Byte("pitch", &p.Pitch),
	}
}

// EntityTeleport 绝对位置，单位为 1/32 方块
type EntityTeleport struct {
	EntityID   int32
	X, Y, Z    int32
	Yaw, Pitch byte
}

func (*EntityTeleport) Opcode() Opcode { return OpEntityTeleport }
func (*EntityTeleport) Side() Side     { return SideServerToClient }
func (p *EntityTeleport) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		Int32("x", &p.X),
		Int32("y", &p.Y),
		Int32("z", &p.Z),
		Byte("yaw", &p.Yaw),
		Byte("pitch", &p.Pitch),
	}
}

type EntityStatus struct {
	EntityID int32
	Status   byte
}

func (*EntityStatus) Opcode() Opcode { return OpEntityStatus }
func (*EntityStatus) Side() Side     { return SideServerToClient }
func (p *EntityStatus) Fields() []Field {
	return []Field{Int32("entity_id", &p.EntityID), Byte("status", &p.Status)}
}

// AttachEntity VehicleID 为 -1 表示下车
type AttachEntity struct {
	EntityID  int32
	VehicleID int32
}

func (*AttachEntity) Opcode() Opcode { return OpAttachEntity }
func (*AttachEntity) Side() Side     { return SideServerToClient }
func (p *AttachEntity) Fields() []Field {
	return []Field{Int32("entity_id", &p.EntityID), Int32("vehicle_id", &p.VehicleID)}
}
