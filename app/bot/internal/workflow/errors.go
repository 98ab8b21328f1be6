package workflow

import "github.com/cockroachdb/errors"

var (
	// ErrStepFailed 步骤重试耗尽
	ErrStepFailed = errors.New("workflow: step failed")

	// ErrStepTimeout 单次执行超时
	ErrStepTimeout = errors.New("workflow: step timeout")

	// ErrPermanent 标记不应重试的错误
	ErrPermanent = errors.New("workflow: permanent failure")
)

// Permanent 标记 err 为不可重试
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, ErrPermanent)
}
