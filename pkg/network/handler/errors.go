package handler

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
)

var (
	// ErrUnhandledPacket 推送模式下收到的包既没有订阅者也没有兜底回调
	ErrUnhandledPacket = errors.New("handler: unhandled packet")

	// ErrInvalidModeUse 在推送模式下调用了拉取接口
	ErrInvalidModeUse = errors.New("handler: receive is only valid in pull mode")

	// ErrSessionClosed 会话已结束且队列为空
	ErrSessionClosed = errors.New("handler: session closed")

	// ErrUnexpectedPacket ReceiveAs 收到的包类型不符
	ErrUnexpectedPacket = errors.New("handler: unexpected packet")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("handler: invalid config")

	// ErrInvalidMode 未知的投递模式
	ErrInvalidMode = errors.New("handler: invalid delivery mode")
)

// UnhandledError 描述无人处理的包
type UnhandledError struct {
	Opcode packet.Opcode
	Name   string
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("handler: unhandled packet %s (%s)", e.Name, e.Opcode)
}

func (e *UnhandledError) Is(target error) bool {
	return target == ErrUnhandledPacket
}
