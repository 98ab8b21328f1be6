package wire

import "github.com/cockroachdb/errors"

var (
	// ErrConnectionClosed 对端关闭连接，包括读到一半时遇到 EOF
	ErrConnectionClosed = errors.New("wire: connection closed")

	// ErrTransport 底层读写失败
	ErrTransport = errors.New("wire: transport fault")

	// ErrInvalidLength 长度前缀为负数或超出范围
	ErrInvalidLength = errors.New("wire: invalid length")

	// ErrStringTooLong 字符串字节数超过 int16 上限
	ErrStringTooLong = errors.New("wire: string too long")
)

// IsTransportFault 判断错误是否来自传输层 (连接关闭或读写失败)
func IsTransportFault(err error) bool {
	return errors.Is(err, ErrConnectionClosed) || errors.Is(err, ErrTransport)
}
