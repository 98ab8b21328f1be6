package handler

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
	"github.com/lk2023060901/voxelnet/pkg/network/wire"
	"github.com/lk2023060901/voxelnet/pkg/util/conc"
)

// readLoop 读协程主循环，返回值即会话结束原因
func (h *Handler) readLoop() (_ struct{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(conc.ErrPanicked, fmt.Sprint(r))
		}
		h.terminate(err)
		h.state.Store(int32(StateDisconnected))

		cause := h.failure()
		h.metrics.sessionEnded(errorType(cause))
		h.wakeConsumer()

		if cause != nil {
			h.logger.Warn("session terminated", "error", cause, "type", errorType(cause))
		} else {
			h.logger.Info("session closed")
		}
	}()

	for h.active.Load() {
		p, err := h.readPacket()
		if err != nil {
			if !h.active.Load() {
				// 主动断开后关闭连接导致的读错误
				return struct{}{}, nil
			}
			return struct{}{}, err
		}

		if err := h.deliver(p); err != nil {
			return struct{}{}, err
		}

		h.sinceKeepAlive++
		if h.sinceKeepAlive > h.config.KeepAliveThreshold && h.active.Load() {
			h.sinceKeepAlive = 0
			if err := h.Send(&packet.KeepAlive{}); err != nil {
				return struct{}{}, errors.Wrap(err, "send keep-alive")
			}
			h.keepAlivesSent.Add(1)
			h.metrics.recordKeepAlive()
		}
	}
	return struct{}{}, nil
}

// readPacket 读取并解码下一个完整的包
func (h *Handler) readPacket() (packet.Packet, error) {
	before := h.reader.Consumed()

	b, err := h.reader.ReadByte()
	if err != nil {
		return nil, err
	}
	op := packet.Opcode(b)

	p, err := h.catalog.LookupIncoming(op, h.role)
	if err != nil {
		return nil, err
	}
	if err := packet.Decode(h.reader, p); err != nil {
		return nil, err
	}

	n := h.reader.Consumed() - before
	h.packetsReceived.Add(1)
	h.bytesReceived.Add(n)
	h.metrics.recordReceived(op, n)
	return p, nil
}

func errorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, wire.ErrConnectionClosed):
		return "connection_closed"
	case errors.Is(err, packet.ErrProtocolDesync):
		return "desync"
	case errors.Is(err, ErrUnhandledPacket):
		return "unhandled"
	case errors.Is(err, conc.ErrPanicked):
		return "panic"
	case wire.IsTransportFault(err):
		return "transport"
	default:
		return "decode"
	}
}
