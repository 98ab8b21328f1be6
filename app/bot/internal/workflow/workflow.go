package workflow

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/logger"
	"github.com/lk2023060901/voxelnet/pkg/util/conc"
)

// Status 工作流状态
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusFailure
	StatusRetrying
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusRunning:
		return "Running"
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusRetrying:
		return "Retrying"
	default:
		return "Unknown"
	}
}

// StepFunc 步骤执行函数
type StepFunc func(ctx context.Context) error

// Step 工作流步骤
type Step struct {
	Name       string
	Func       StepFunc
	MaxRetries int           // 最大重试次数
	RetryDelay time.Duration // 重试延迟
	Timeout    time.Duration // 单次执行超时

	attempts     int
	status       Status
	err          error
	startTime    time.Time
	completeTime time.Time
}

// StepOption 步骤选项
type StepOption func(*Step)

// WithRetries 设置重试次数与间隔
func WithRetries(n int, delay time.Duration) StepOption {
	return func(s *Step) {
		s.MaxRetries = n
		s.RetryDelay = delay
	}
}

// WithTimeout 设置单次执行超时
func WithTimeout(d time.Duration) StepOption {
	return func(s *Step) {
		s.Timeout = d
	}
}

// Workflow 顺序执行的步骤列表，失败的步骤按配置重试
type Workflow struct {
	id      string
	steps   []*Step
	current int
	logger  logger.Logger
	status  Status
}

// New 创建工作流
func New(id string, l logger.Logger) *Workflow {
	if l == nil {
		l = logger.NewNoop()
	}
	return &Workflow{
		id:     id,
		logger: l.Named("workflow").WithFields("workflow", id),
		status: StatusPending,
	}
}

// AddStep 添加步骤，默认不重试、超时 30s
func (w *Workflow) AddStep(name string, fn StepFunc, opts ...StepOption) *Workflow {
	step := &Step{
		Name:    name,
		Func:    fn,
		Timeout: 30 * time.Second,
		status:  StatusPending,
	}
	for _, opt := range opts {
		opt(step)
	}
	w.steps = append(w.steps, step)
	return w
}

// Run 运行工作流
func (w *Workflow) Run(ctx context.Context) error {
	w.status = StatusRunning
	w.logger.Debug("workflow started", "total_steps", len(w.steps))

	for w.current < len(w.steps) {
		step := w.steps[w.current]
		w.logger.Debug("executing step",
			"step", step.Name,
			"index", w.current+1,
			"total", len(w.steps),
		)

		err := w.executeStep(ctx, step)
		if err != nil {
			w.logger.Warn("step failed", "step", step.Name, "attempt", step.attempts, "error", err)

			retryable := !errors.Is(err, ErrPermanent) && ctx.Err() == nil
			if retryable && step.attempts <= step.MaxRetries {
				step.status = StatusRetrying
				if werr := sleep(ctx, step.RetryDelay); werr == nil {
					continue
				}
			}

			step.status = StatusFailure
			step.err = err
			w.status = StatusFailure
			return errors.Mark(errors.Wrapf(err, "step %s failed after %d attempts", step.Name, step.attempts), ErrStepFailed)
		}

		step.status = StatusSuccess
		step.completeTime = time.Now()
		w.logger.Debug("step completed",
			"step", step.Name,
			"duration", step.completeTime.Sub(step.startTime),
		)

		w.current++
	}

	w.status = StatusSuccess
	w.logger.Debug("workflow completed")
	return nil
}

// executeStep 执行单次尝试
func (w *Workflow) executeStep(ctx context.Context, step *Step) error {
	step.attempts++
	step.startTime = time.Now()
	step.status = StatusRunning

	stepCtx, cancel := context.WithTimeout(ctx, step.Timeout)
	defer cancel()

	f := conc.Go(func() (struct{}, error) {
		return struct{}{}, step.Func(stepCtx)
	})

	select {
	case <-f.Inner():
		return f.Err()
	case <-stepCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrapf(ErrStepTimeout, "%s after %v", step.Name, step.Timeout)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status 工作流状态
func (w *Workflow) Status() Status {
	return w.status
}

// Current 当前步骤索引
func (w *Workflow) Current() int {
	return w.current
}

// Steps 所有步骤
func (w *Workflow) Steps() []*Step {
	return w.steps
}

func (s *Step) Status() Status {
	return s.status
}

func (s *Step) Err() error {
	return s.err
}

// Attempts 已执行次数
func (s *Step) Attempts() int {
	return s.attempts
}

// Reset 重置工作流
func (w *Workflow) Reset() {
	w.current = 0
	w.status = StatusPending
	for _, step := range w.steps {
		step.status = StatusPending
		step.attempts = 0
		step.err = nil
	}
}
