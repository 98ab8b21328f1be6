package logger

import (
	"io"

	"go.uber.org/zap/zapcore"
)

// Option 日志选项
type Option func(*BaseLogger)

// WithName 设置 logger 名称
func WithName(name string) Option {
	return func(l *BaseLogger) {
		l.name = name
	}
}

// WithContextExtractor 设置 *Context 方法使用的字段提取器
func WithContextExtractor(fn ContextFieldExtractor) Option {
	return func(l *BaseLogger) {
		if fn != nil {
			l.contextExtractor = fn
		}
	}
}

// WithWriter 追加一个输出目标
func WithWriter(w io.Writer) Option {
	return func(l *BaseLogger) {
		l.extraSinks = append(l.extraSinks, zapcore.AddSync(w))
	}
}
