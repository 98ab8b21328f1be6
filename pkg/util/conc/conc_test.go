package conc

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGo(t *testing.T) {
	f := Go(func() (int, error) {
		return 42, nil
	})

	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, f.Done())
	assert.Equal(t, 42, f.Value())
}

func TestGo_Error(t *testing.T) {
	boom := errors.New("boom")
	f := Go(func() (struct{}, error) {
		return struct{}{}, boom
	})
	assert.ErrorIs(t, f.Err(), boom)
}

func TestGo_Panic(t *testing.T) {
	f := Go(func() (struct{}, error) {
		panic("reader exploded")
	})

	err := f.Err()
	assert.ErrorIs(t, err, ErrPanicked)
	assert.Contains(t, err.Error(), "reader exploded")
}

func TestFuture_Inner(t *testing.T) {
	release := make(chan struct{})
	f := Go(func() (struct{}, error) {
		<-release
		return struct{}{}, nil
	})

	assert.False(t, f.Done())
	close(release)

	select {
	case <-f.Inner():
	case <-time.After(time.Second):
		t.Fatal("future did not finish")
	}
}

func TestAwaitAll(t *testing.T) {
	boom := errors.New("boom")
	futures := []*Future[int]{
		Go(func() (int, error) { return 1, nil }),
		Go(func() (int, error) { return 0, boom }),
		Go(func() (int, error) { return 3, nil }),
	}
	assert.ErrorIs(t, AwaitAll(futures...), boom)
	assert.NoError(t, AwaitAll(Go(func() (int, error) { return 1, nil })))
}

func TestPool_Submit(t *testing.T) {
	p := NewPool[int](2, WithPreAlloc(true))
	defer p.Release()
	assert.Equal(t, 2, p.Cap())

	var n atomic.Int32
	futures := make([]*Future[int], 0, 10)
	for i := 0; i < 10; i++ {
		i := i
		futures = append(futures, p.Submit(func() (int, error) {
			n.Add(1)
			return i * i, nil
		}))
	}

	require.NoError(t, AwaitAll(futures...))
	assert.EqualValues(t, 10, n.Load())
	assert.Equal(t, 81, futures[9].Value())
}

func TestPool_SubmitAfterRelease(t *testing.T) {
	p := NewDefaultPool[struct{}]()
	p.Release()

	f := p.Submit(func() (struct{}, error) { return struct{}{}, nil })
	assert.Error(t, f.Err())
}
