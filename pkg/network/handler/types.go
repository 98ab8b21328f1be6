package handler

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
)

// Mode 投递模式，运行时可切换
type Mode uint8

const (
	// ModePull 包进入队列，由 ReceiveNext 取出
	ModePull Mode = iota
	// ModePush 包在读协程上直接分发给回调
	ModePush
)

func (m Mode) String() string {
	switch m {
	case ModePull:
		return "pull"
	case ModePush:
		return "push"
	default:
		return "unknown"
	}
}

// ParseMode 解析 "pull" / "push"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pull", "":
		return ModePull, nil
	case "push":
		return ModePush, nil
	default:
		return ModePull, errors.Wrapf(ErrInvalidMode, "%q", s)
	}
}

// State 会话状态
type State int32

const (
	// StateConnecting 建立连接中
	StateConnecting State = iota
	// StateActive 读协程运行中
	StateActive
	// StateDisconnected 已结束，不可恢复
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Callback 推送模式的包回调
// 回调在读协程 (或切换模式的调用方) 上执行，不得调用 SetDeliveryMode 或 ReceiveNext。
// 回调中可以调用 Send 和 Disconnect；此时 Disconnect 不等待读协程，回调返回后会话结束
type Callback func(p packet.Packet)

// Stats 会话统计
type Stats struct {
	PacketsReceived uint64 `json:"packets_received"`
	PacketsSent     uint64 `json:"packets_sent"`
	KeepAlivesSent  uint64 `json:"keepalives_sent"`
	BytesReceived   uint64 `json:"bytes_received"`
	BytesSent       uint64 `json:"bytes_sent"`
}
