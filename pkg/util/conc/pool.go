package conc

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
)

type poolOption struct {
	preAlloc    bool
	nonBlocking bool
}

// PoolOption 协程池选项
type PoolOption func(*poolOption)

// WithPreAlloc 预分配 worker 队列
func WithPreAlloc(v bool) PoolOption {
	return func(o *poolOption) { o.preAlloc = v }
}

// WithNonBlocking worker 耗尽时 Submit 立即失败而不是等待
func WithNonBlocking(v bool) PoolOption {
	return func(o *poolOption) { o.nonBlocking = v }
}

// Pool 基于 ants 的泛型协程池
type Pool[T any] struct {
	inner *ants.Pool
}

// NewPool 创建容量为 size 的协程池
func NewPool[T any](size int, opts ...PoolOption) *Pool[T] {
	o := &poolOption{}
	for _, opt := range opts {
		opt(o)
	}

	p, err := ants.NewPool(size,
		ants.WithPreAlloc(o.preAlloc),
		ants.WithNonblocking(o.nonBlocking),
	)
	if err != nil {
		panic(err)
	}
	return &Pool[T]{inner: p}
}

// NewDefaultPool 创建容量为 GOMAXPROCS 的协程池
func NewDefaultPool[T any]() *Pool[T] {
	return NewPool[T](runtime.GOMAXPROCS(0))
}

// Submit 提交任务；若池已关闭或已满 (非阻塞模式)，返回的 Future 携带该错误
func (p *Pool[T]) Submit(fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	if err := p.inner.Submit(func() { f.run(fn) }); err != nil {
		f.err = errors.Wrap(err, "submit task")
		close(f.ch)
	}
	return f
}

// Running 正在运行的 worker 数量
func (p *Pool[T]) Running() int {
	return p.inner.Running()
}

// Cap 池容量
func (p *Pool[T]) Cap() int {
	return p.inner.Cap()
}

// Release 关闭协程池，已提交的任务继续执行
func (p *Pool[T]) Release() {
	p.inner.Release()
}
