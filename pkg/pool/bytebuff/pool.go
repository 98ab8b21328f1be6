// Package bytebuff 出站帧使用的缓冲池，底层为 valyala/bytebufferpool
package bytebuff

import (
	"sync/atomic"

	"github.com/valyala/bytebufferpool"
)

// Pool 带统计的 ByteBuffer 池
type Pool struct {
	pool bytebufferpool.Pool

	gets atomic.Uint64
	puts atomic.Uint64
}

// Stats 池统计信息
type Stats struct {
	Gets uint64
	Puts uint64
}

// InUse 已取出但未归还的数量
func (s Stats) InUse() uint64 {
	if s.Puts > s.Gets {
		return 0
	}
	return s.Gets - s.Puts
}

var defaultPool = NewPool()

// NewPool 创建 buffer 池
func NewPool() *Pool {
	return &Pool{}
}

// Get 取出一个已清空的 ByteBuffer
func (p *Pool) Get() *bytebufferpool.ByteBuffer {
	p.gets.Add(1)
	return p.pool.Get()
}

// Put 归还 ByteBuffer，归还后调用方不得再持有 buf.B
func (p *Pool) Put(buf *bytebufferpool.ByteBuffer) {
	if buf == nil {
		return
	}
	p.puts.Add(1)
	p.pool.Put(buf)
}

// Stats 返回统计快照
func (p *Pool) Stats() Stats {
	return Stats{Gets: p.gets.Load(), Puts: p.puts.Load()}
}

// Get 从默认池取出
func Get() *bytebufferpool.ByteBuffer {
	return defaultPool.Get()
}

// Put 归还到默认池
func Put(buf *bytebufferpool.ByteBuffer) {
	defaultPool.Put(buf)
}

// Default 返回默认池
func Default() *Pool {
	return defaultPool
}
