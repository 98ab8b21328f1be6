package client

import "github.com/cockroachdb/errors"

var (
	// ErrAuthRequired 服务器要求在线验证，bot 不支持
	ErrAuthRequired = errors.New("bot: server requires authentication")

	// ErrKicked 登录阶段被服务器断开
	ErrKicked = errors.New("bot: kicked by server")

	// ErrNotOnline 尚未完成登录
	ErrNotOnline = errors.New("bot: not online")
)
