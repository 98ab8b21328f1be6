package app

import "github.com/cockroachdb/errors"

var (
	// ErrAppAlreadyRunning Run 被重复调用
	ErrAppAlreadyRunning = errors.New("app: application is already running")

	// ErrConfigNotFound 显式指定的配置文件不存在
	ErrConfigNotFound = errors.New("app: config file not found")
)
