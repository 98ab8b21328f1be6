package packet

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrProtocolDesync 收到了当前方向的表里不存在的 opcode，流已无法继续解析
	ErrProtocolDesync = errors.New("packet: protocol desync")

	// ErrDuplicatePacket 同一张表内 opcode 重复注册
	ErrDuplicatePacket = errors.New("packet: duplicate packet")

	// ErrFieldLength 变长字段的实际长度与长度字段不一致
	ErrFieldLength = errors.New("packet: field length mismatch")

	// ErrTrailingBytes 整帧解码后仍有剩余字节
	ErrTrailingBytes = errors.New("packet: trailing bytes after payload")
)

// DesyncError 描述无法识别的 opcode
type DesyncError struct {
	Opcode Opcode
	Author Role
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("packet: protocol desync: unknown opcode %s authored by %s", e.Opcode, e.Author)
}

func (e *DesyncError) Is(target error) bool {
	return target == ErrProtocolDesync
}
