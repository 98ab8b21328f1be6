package logger

import "context"

// Logger 日志接口，键值对形式记录字段
// 其他 pkg 模块依赖此接口而不是具体实现
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})

	DebugContext(ctx context.Context, msg string, keysAndValues ...interface{})
	InfoContext(ctx context.Context, msg string, keysAndValues ...interface{})
	WarnContext(ctx context.Context, msg string, keysAndValues ...interface{})
	ErrorContext(ctx context.Context, msg string, keysAndValues ...interface{})

	// Named 派生具名 logger
	Named(name string) Logger
	// WithFields 派生携带固定字段的 logger
	WithFields(keysAndValues ...interface{}) Logger

	Sync() error
}
