package session

import "github.com/cockroachdb/errors"

var (
	// ErrSessionNotFound 会话不存在
	ErrSessionNotFound = errors.New("session: not found")

	// ErrAlreadyLoggedIn 会话已登录
	ErrAlreadyLoggedIn = errors.New("session: already logged in")

	// ErrServerFull 在线人数已满
	ErrServerFull = errors.New("session: server full")
)
