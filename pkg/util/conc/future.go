package conc

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrPanicked 任务 panic 时 Future 返回的错误
var ErrPanicked = errors.New("conc: task panicked")

// Future 异步任务的结果
type Future[T any] struct {
	ch    chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{ch: make(chan struct{})}
}

// Await 阻塞直到任务结束，返回任务结果
func (f *Future[T]) Await() (T, error) {
	<-f.ch
	return f.value, f.err
}

// Value 等待并返回结果值
func (f *Future[T]) Value() T {
	<-f.ch
	return f.value
}

// Err 等待并返回任务错误
func (f *Future[T]) Err() error {
	<-f.ch
	return f.err
}

// Done 任务是否已结束，不阻塞
func (f *Future[T]) Done() bool {
	select {
	case <-f.ch:
		return true
	default:
		return false
	}
}

// Inner 返回任务结束时关闭的 channel，用于 select
func (f *Future[T]) Inner() <-chan struct{} {
	return f.ch
}

func (f *Future[T]) run(fn func() (T, error)) {
	defer close(f.ch)
	defer func() {
		if r := recover(); r != nil {
			f.err = errors.Wrap(ErrPanicked, fmt.Sprint(r))
		}
	}()
	f.value, f.err = fn()
}

// Go 在新 goroutine 中执行 fn，panic 会被转换为 ErrPanicked
func Go[T any](fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go f.run(fn)
	return f
}

// AwaitAll 等待全部 Future，返回遇到的第一个错误
func AwaitAll[T any](futures ...*Future[T]) error {
	var first error
	for _, f := range futures {
		if _, err := f.Await(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
