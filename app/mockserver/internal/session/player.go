package session

import (
	"sync"

	"github.com/lk2023060901/voxelnet/pkg/logger"
	"github.com/lk2023060901/voxelnet/pkg/network/handler"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
	"github.com/lk2023060901/voxelnet/pkg/util/conc"
)

// Player 服务端的一条客户端会话，登录后带有用户名与实体 ID
type Player struct {
	*handler.Handler

	mu       sync.RWMutex
	username string
	entityID int32
	loggedIn bool
	position packet.PlayerPositionLook

	// 广播消息队列，由写协程串行发送
	outbox  chan packet.Packet
	started bool
}

// NewPlayer 包装会话，outboxSize 为广播队列长度
func NewPlayer(h *handler.Handler, outboxSize int) *Player {
	if outboxSize <= 0 {
		outboxSize = 1
	}
	return &Player{
		Handler: h,
		outbox:  make(chan packet.Packet, outboxSize),
	}
}

// StartWriter 启动广播写协程，会话结束时退出
func (p *Player) StartWriter(l logger.Logger) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	conc.Go(func() (struct{}, error) {
		for {
			select {
			case pk := <-p.outbox:
				if err := p.Send(pk); err != nil {
					l.Warn("broadcast send failed", "session_id", p.ID(), "error", err)
					return struct{}{}, err
				}
			case <-p.Done():
				return struct{}{}, nil
			}
		}
	})
}

// Push 投递一个广播包；队列已满时返回 false
func (p *Player) Push(pk packet.Packet) bool {
	select {
	case p.outbox <- pk:
		return true
	default:
		return false
	}
}

// Username 登录用户名，未登录时为握手阶段声明的名字
func (p *Player) Username() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.username
}

// SetUsername 记录握手用户名
func (p *Player) SetUsername(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.username = name
}

// EntityID 登录分配的实体 ID
func (p *Player) EntityID() int32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.entityID
}

// LoggedIn 是否已登录
func (p *Player) LoggedIn() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loggedIn
}

// Position 最近一次上报的位置
func (p *Player) Position() packet.PlayerPositionLook {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.position
}

// UpdatePosition 通过 fn 修改位置
func (p *Player) UpdatePosition(fn func(pos *packet.PlayerPositionLook)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.position)
}
