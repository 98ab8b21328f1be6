package config

import "github.com/cockroachdb/errors"

var (
	// ErrValidationFailed 配置验证失败
	ErrValidationFailed = errors.New("config: validation failed")

	// ErrNilConfig 配置为 nil
	ErrNilConfig = errors.New("config: config cannot be nil")

	// ErrMergeFailed 配置合并失败
	ErrMergeFailed = errors.New("config: merge failed")

	// ErrReadFailed 配置文件读取失败
	ErrReadFailed = errors.New("config: read failed")
)
