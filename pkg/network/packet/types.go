// Package packet 定义协议包的字段描述、编解码入口和按方向区分的包目录。
//
// 帧格式为 1 字节 opcode 加按 Fields() 顺序拼接的字段，没有外层长度前缀；
// 字符串长度和显式计数字段是唯一的分帧依据。
package packet

import (
	"fmt"

	"github.com/lk2023060901/voxelnet/pkg/network/wire"
)

// Opcode 包类型标识
type Opcode uint8

func (o Opcode) String() string {
	return fmt.Sprintf("0x%02X", uint8(o))
}

// Side 包的合法发送方向
type Side uint8

const (
	// SideShared 双方都可发送，且两个方向的负载格式相同
	SideShared Side = iota
	// SideClientToServer 仅客户端发送
	SideClientToServer
	// SideServerToClient 仅服务端发送
	SideServerToClient
)

func (s Side) String() string {
	switch s {
	case SideShared:
		return "shared"
	case SideClientToServer:
		return "client_to_server"
	case SideServerToClient:
		return "server_to_client"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// AuthoredBy 判断 role 能否发送该方向的包
func (s Side) AuthoredBy(r Role) bool {
	switch s {
	case SideShared:
		return true
	case SideClientToServer:
		return r == RoleClient
	case SideServerToClient:
		return r == RoleServer
	default:
		return false
	}
}

// Role 会话在连接中扮演的角色
type Role uint8

const (
	RoleClient Role = iota
	RoleServer
)

// Peer 返回对端角色，接收方按对端角色的表解码
func (r Role) Peer() Role {
	if r == RoleClient {
		return RoleServer
	}
	return RoleClient
}

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleServer:
		return "server"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Packet 所有协议包实现的接口
// Fields 返回按线序排列、绑定到自身字段的描述符，线序与结构体声明顺序无关
type Packet interface {
	Opcode() Opcode
	Side() Side
	Fields() []Field
}

// Decoder 需要自定义解码的包实现此接口
// 自定义实现必须和 Encoder 成对出现，且读取的字节与写出的字节一一对应
type Decoder interface {
	DecodePayload(r *wire.Reader) error
}

// Encoder 需要自定义编码的包实现此接口
type Encoder interface {
	EncodePayload(w *wire.Writer) error
}
