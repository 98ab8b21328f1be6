package packet

// 协议 opcode
const (
	OpKeepAlive              Opcode = 0x00
	OpLogin                  Opcode = 0x01
	OpHandshake              Opcode = 0x02
	OpChatMessage            Opcode = 0x03
	OpTimeUpdate             Opcode = 0x04
	OpEntityEquipment        Opcode = 0x05
	OpSpawnPosition          Opcode = 0x06
	OpUseEntity              Opcode = 0x07
	OpUpdateHealth           Opcode = 0x08
	OpRespawn                Opcode = 0x09
	OpPlayerFlying           Opcode = 0x0A
	OpPlayerPosition         Opcode = 0x0B
	OpPlayerLook             Opcode = 0x0C
	OpPlayerPositionLook     Opcode = 0x0D
	OpPlayerDigging          Opcode = 0x0E
	OpPlayerBlockPlace       Opcode = 0x0F
	OpHoldingChange          Opcode = 0x10
	OpAnimation              Opcode = 0x12
	OpNamedEntitySpawn       Opcode = 0x14
	OpPickupSpawn            Opcode = 0x15
	OpCollectItem            Opcode = 0x16
	OpAddObject              Opcode = 0x17
	OpMobSpawn               Opcode = 0x18
	OpEntityVelocity         Opcode = 0x1C
	OpDestroyEntity          Opcode = 0x1D
	OpEntity                 Opcode = 0x1E
	OpEntityRelativeMove     Opcode = 0x1F
	OpEntityLook             Opcode = 0x20
	OpEntityLookRelativeMove Opcode = 0x21
	OpEntityTeleport         Opcode = 0x22
	OpEntityStatus           Opcode = 0x26
	OpAttachEntity           Opcode = 0x27
	OpPreChunk               Opcode = 0x32
	OpMapChunk               Opcode = 0x33
	OpMultiBlockChange       Opcode = 0x34
	OpBlockChange            Opcode = 0x35
	OpExplosion              Opcode = 0x3C
	OpWindowOpen             Opcode = 0x64
	OpWindowClose            Opcode = 0x65
	OpWindowClick            Opcode = 0x66
	OpSetSlot                Opcode = 0x67
	OpWindowItems            Opcode = 0x68
	OpUpdateProgressBar      Opcode = 0x69
	OpTransaction            Opcode = 0x6A
	OpSignUpdate             Opcode = 0x82
	OpDisconnect             Opcode = 0xFF
)

// Constructors 返回全部包类型的构造函数，用于构建默认目录
func Constructors() []Constructor {
	return []Constructor{
		func() Packet { return &KeepAlive{} },
		func() Packet { return &LoginRequest{} },
		func() Packet { return &LoginResponse{} },
		func() Packet { return &Handshake{} },
		func() Packet { return &HandshakeResponse{} },
		func() Packet { return &ChatMessage{} },
		func() Packet { return &TimeUpdate{} },
		func() Packet { return &EntityEquipment{} },
		func() Packet { return &SpawnPosition{} },
		func() Packet { return &UseEntity{} },
		func() Packet { return &UpdateHealth{} },
		func() Packet { return &Respawn{} },
		func() Packet { return &PlayerFlying{} },
		func() Packet { return &PlayerPosition{} },
		func() Packet { return &PlayerLook{} },
		func() Packet { return &PlayerPositionLook{} },
		func() Packet { return &PlayerPositionLookServer{} },
		func() Packet { return &PlayerDigging{} },
		func() Packet { return &PlayerBlockPlace{} },
		func() Packet { return &HoldingChange{} },
		func() Packet { return &Animation{} },
		func() Packet { return &NamedEntitySpawn{} },
		func() Packet { return &PickupSpawn{} },
		func() Packet { return &CollectItem{} },
		func() Packet { return &AddObject{} },
		func() Packet { return &MobSpawn{} },
		func() Packet { return &EntityVelocity{} },
		func() Packet { return &DestroyEntity{} },
		func() Packet { return &Entity{} },
		func() Packet { return &EntityRelativeMove{} },
		func() Packet { return &EntityLook{} },
		func() Packet { return &EntityLookRelativeMove{} },
		func() Packet { return &EntityTeleport{} },
		func() Packet { return &EntityStatus{} },
		func() Packet { return &AttachEntity{} },
		func() Packet { return &PreChunk{} },
		func() Packet { return &MapChunk{} },
		func() Packet { return &MultiBlockChange{} },
		func() Packet { return &BlockChange{} },
		func() Packet { return &Explosion{} },
		func() Packet { return &WindowOpen{} },
		func() Packet { return &WindowClose{} },
		func() Packet { return &WindowClick{} },
		func() Packet { return &SetSlot{} },
		func() Packet { return &WindowItems{} },
		func() Packet { return &UpdateProgressBar{} },
		func() Packet { return &Transaction{} },
		func() Packet { return &SignUpdate{} },
		func() Packet { return &Disconnect{} },
	}
}
