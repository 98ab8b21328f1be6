package logger

import (
	"context"

	"go.uber.org/zap"
)

// ContextFieldExtractor 从 context 提取日志字段
type ContextFieldExtractor func(ctx context.Context) []zap.Field

// DefaultContextExtractor 不提取任何字段
func DefaultContextExtractor(context.Context) []zap.Field {
	return nil
}

type sessionKey struct{}

// WithSessionID 在 context 中记录会话 ID
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionExtractor 提取 WithSessionID 记录的会话 ID
func SessionExtractor(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
		return []zap.Field{zap.String("session_id", id)}
	}
	return nil
}
