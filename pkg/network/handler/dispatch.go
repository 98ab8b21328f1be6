package handler

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
)

// Subscribe 为 op 追加一个回调，同一 opcode 的回调按注册顺序依次调用
func (h *Handler) Subscribe(op packet.Opcode, cb Callback) {
	if cb == nil {
		return
	}
	h.subsMu.Lock()
	h.subs[op] = append(h.subs[op], cb)
	h.subsMu.Unlock()
}

// SetFallback 设置兜底回调，处理没有订阅者的包
func (h *Handler) SetFallback(cb Callback) {
	h.subsMu.Lock()
	h.fallback = cb
	h.subsMu.Unlock()
}

// On 按包类型订阅
// 同一 opcode 在两个方向上可能是不同的类型，类型不匹配的包不会传给 fn
func On[T packet.Packet](h *Handler, fn func(T)) {
	var zero T
	h.Subscribe(zero.Opcode(), func(p packet.Packet) {
		if v, ok := p.(T); ok {
			fn(v)
		}
	})
}

func (h *Handler) dispatch(p packet.Packet) error {
	h.subsMu.RLock()
	cbs := h.subs[p.Opcode()]
	fallback := h.fallback
	h.subsMu.RUnlock()

	if len(cbs) == 0 && fallback == nil {
		return &UnhandledError{Opcode: p.Opcode(), Name: packet.Name(p)}
	}

	h.inCallback.Add(1)
	defer h.inCallback.Add(-1)

	if len(cbs) == 0 {
		fallback(p)
		return nil
	}
	for _, cb := range cbs {
		cb(p)
	}
	return nil
}

// deliver 按当前模式投递，读协程调用
func (h *Handler) deliver(p packet.Packet) error {
	h.mu.Lock()
	if h.mode == ModePull {
		h.queue = append(h.queue, p)
		h.mu.Unlock()
		h.wakeConsumer()
		return nil
	}
	h.mu.Unlock()
	return h.dispatch(p)
}

func (h *Handler) wakeConsumer() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Mode 当前投递模式
func (h *Handler) Mode() Mode {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mode
}

// Pending 队列中尚未取出的包数
func (h *Handler) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// SetDeliveryMode 切换投递模式
// 从拉取切到推送时，队列中已有的包先按顺序分发，之后读协程才会分发新包；
// 分发中出现无人处理的包时会话终止，剩余的包留在队列中；回调断开会话时同样停止分发
func (h *Handler) SetDeliveryMode(mode Mode) error {
	if mode != ModePull && mode != ModePush {
		return errors.Wrapf(ErrInvalidMode, "%d", mode)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.mode
	h.mode = mode
	if prev == mode {
		return nil
	}
	h.logger.Debug("delivery mode changed", "from", prev.String(), "to", mode.String(), "pending", len(h.queue))

	if mode == ModePush {
		for len(h.queue) > 0 && h.active.Load() {
			p := h.queue[0]
			h.queue[0] = nil
			h.queue = h.queue[1:]
			if err := h.dispatch(p); err != nil {
				h.terminate(err)
				return err
			}
		}
		h.queue = nil
	}
	// 唤醒阻塞在 ReceiveNext 上的调用方，让其看到新模式
	h.wakeConsumer()
	return nil
}

// ReceiveNext 拉取模式下取出下一个包，队列为空时阻塞
// 会话结束且队列已空时返回 ErrSessionClosed，错误链中带有结束原因
func (h *Handler) ReceiveNext(ctx context.Context) (packet.Packet, error) {
	for {
		finished := h.readerTask.Done()

		h.mu.Lock()
		if h.mode != ModePull {
			h.mu.Unlock()
			return nil, ErrInvalidModeUse
		}
		if len(h.queue) > 0 {
			p := h.queue[0]
			h.queue[0] = nil
			h.queue = h.queue[1:]
			h.mu.Unlock()
			return p, nil
		}
		h.mu.Unlock()

		if finished {
			if cause := h.failure(); cause != nil {
				return nil, errors.Mark(errors.Wrap(cause, "session closed"), ErrSessionClosed)
			}
			return nil, ErrSessionClosed
		}

		select {
		case <-h.wake:
		case <-h.readerTask.Inner():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ReceiveAs 取出下一个包并断言为 T
func ReceiveAs[T packet.Packet](ctx context.Context, h *Handler) (T, error) {
	var zero T
	p, err := h.ReceiveNext(ctx)
	if err != nil {
		return zero, err
	}
	v, ok := p.(T)
	if !ok {
		return zero, errors.Wrapf(ErrUnexpectedPacket, "want %s, got %s (%s)", packet.Name(zero), packet.Name(p), p.Opcode())
	}
	return v, nil
}
