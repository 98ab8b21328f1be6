package packet

// KeepAlive 连接保活，无负载
type KeepAlive struct{}

func (*KeepAlive) Opcode() Opcode  { return OpKeepAlive }
func (*KeepAlive) Side() Side      { return SideShared }
func (*KeepAlive) Fields() []Field { return nil }

// LoginRequest 握手完成后客户端发起登录
type LoginRequest struct {
	Protocol  int32
	Username  string
	Password  string // 服务器口令，与账号密码无关
	MapSeed   int64
	Dimension byte
}

func (*LoginRequest) Opcode() Opcode { return OpLogin }
func (*LoginRequest) Side() Side     { return SideClientToServer }
func (p *LoginRequest) Fields() []Field {
	return []Field{
		Int32("protocol", &p.Protocol),
		String("username", &p.Username),
		String("password", &p.Password),
		Int64("map_seed", &p.MapSeed),
		Byte("dimension", &p.Dimension),
	}
}

// LoginResponse 服务端接受登录
type LoginResponse struct {
	EntityID   int32
	ServerName string
	Motd       string
	MapSeed    int64
	Dimension  byte
}

func (*LoginResponse) Opcode() Opcode { return OpLogin }
func (*LoginResponse) Side() Side     { return SideServerToClient }
func (p *LoginResponse) Fields() []Field {
	return []Field{
		Int32("entity_id", &p.EntityID),
		String("server_name", &p.ServerName),
		String("motd", &p.Motd),
		Int64("map_seed", &p.MapSeed),
		Byte("dimension", &p.Dimension),
	}
}

// Handshake 客户端连接后的第一个包
type Handshake struct {
	Username string
}

func (*Handshake) Opcode() Opcode { return OpHandshake }
func (*Handshake) Side() Side     { return SideClientToServer }
func (p *Handshake) Fields() []Field {
	return []Field{String("username", &p.Username)}
}

// HandshakeResponse ConnectionHash 为 "-" 时表示不需要验证
type HandshakeResponse struct {
	ConnectionHash string
}

func (*HandshakeResponse) Opcode() Opcode { return OpHandshake }
func (*HandshakeResponse) Side() Side     { return SideServerToClient }
func (p *HandshakeResponse) Fields() []Field {
	return []Field{String("connection_hash", &p.ConnectionHash)}
}

type ChatMessage struct {
	Message string
}

func (*ChatMessage) Opcode() Opcode { return OpChatMessage }
func (*ChatMessage) Side() Side     { return SideShared }
func (p *ChatMessage) Fields() []Field {
	return []Field{String("message", &p.Message)}
}

// Disconnect 任一方主动断开，Reason 为原因
type Disconnect struct {
	Reason string
}

func (*Disconnect) Opcode() Opcode { return OpDisconnect }
func (*Disconnect) Side() Side     { return SideShared }
func (p *Disconnect) Fields() []Field {
	return []Field{String("reason", &p.Reason)}
}

type Respawn struct{}

func (*Respawn) Opcode() Opcode  { return OpRespawn }
func (*Respawn) Side() Side      { return SideShared }
func (*Respawn) Fields() []Field { return nil }

// TimeUpdate 世界时间，0-24000，每秒增加 20
type TimeUpdate struct {
	Time int64
}

func (*TimeUpdate) Opcode() Opcode { return OpTimeUpdate }
func (*TimeUpdate) Side() Side     { return SideServerToClient }
func (p *TimeUpdate) Fields() []Field {
	return []Field{Int64("time", &p.Time)}
}

type UpdateHealth struct {
	Health int16
}

func (*UpdateHealth) Opcode() Opcode { return OpUpdateHealth }
func (*UpdateHealth) Side() Side     { return SideServerToClient }
func (p *UpdateHealth) Fields() []Field {
	return []Field{Int16("health", &p.Health)}
}

// SpawnPosition 出生点，登录后发送
type SpawnPosition struct {
	X, Y, Z int32
}

func (*SpawnPosition) Opcode() Opcode { return OpSpawnPosition }
func (*SpawnPosition) Side() Side     { return SideServerToClient }
func (p *SpawnPosition) Fields() []Field {
	return []Field{Int32("x", &p.X), Int32("y", &p.Y), Int32("z", &p.Z)}
}
