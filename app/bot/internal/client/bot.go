package client

import (
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/app/bot/internal/workflow"
	"github.com/lk2023060901/voxelnet/pkg/config"
	"github.com/lk2023060901/voxelnet/pkg/logger"
	"github.com/lk2023060901/voxelnet/pkg/network/handler"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
	"github.com/lk2023060901/voxelnet/pkg/util/conc"
)

// Bot 以客户端身份登录服务器
// 登录阶段使用拉取模式按顺序等待应答，进入世界后切换到推送模式
type Bot struct {
	cfg     *Config
	logger  logger.Logger
	metrics *handler.Metrics

	mu       sync.RWMutex
	session  *handler.Handler
	entityID int32
	spawn    packet.SpawnPosition
	position packet.PlayerPositionLook

	worldTime atomic.Int64
	health    atomic.Int32
	online    atomic.Bool
	done      chan struct{}

	// 收到的聊天，供上层订阅
	chatMu    sync.Mutex
	chatHooks []func(string)
}

// Option bot 选项
type Option func(*Bot)

// WithLogger 设置日志
func WithLogger(l logger.Logger) Option {
	return func(b *Bot) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics 设置会话指标
func WithMetrics(m *handler.Metrics) Option {
	return func(b *Bot) {
		b.metrics = m
	}
}

// New 创建 bot，cfg 未填写的字段取默认值
func New(cfg *Config, opts ...Option) (*Bot, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	b := &Bot{
		cfg:    merged,
		logger: logger.NewNoop(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.Named("bot").WithFields("username", merged.Username)
	return b, nil
}

// OnChat 注册聊天回调
func (b *Bot) OnChat(fn func(msg string)) {
	b.chatMu.Lock()
	b.chatHooks = append(b.chatHooks, fn)
	b.chatMu.Unlock()
}

// Login 连接、握手、登录，然后切换到推送模式
func (b *Bot) Login(ctx context.Context) error {
	w := workflow.New("login", b.logger).
		AddStep("connect", b.connect,
			workflow.WithRetries(b.cfg.ConnectRetries, b.cfg.RetryDelay),
			workflow.WithTimeout(b.cfg.StepTimeout)).
		AddStep("handshake", b.handshake, workflow.WithTimeout(b.cfg.StepTimeout)).
		AddStep("login", b.login, workflow.WithTimeout(b.cfg.StepTimeout)).
		AddStep("enter_world", b.enterWorld, workflow.WithTimeout(b.cfg.StepTimeout))

	if err := w.Run(ctx); err != nil {
		if s := b.current(); s != nil {
			_ = s.Disconnect(ctx)
		}
		return err
	}
	return nil
}

func (b *Bot) connect(ctx context.Context) error {
	host, portStr, err := net.SplitHostPort(b.cfg.Addr)
	if err != nil {
		return workflow.Permanent(errors.Wrapf(err, "parse addr %s", b.cfg.Addr))
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return workflow.Permanent(errors.Wrapf(err, "parse port %s", portStr))
	}

	// 登录阶段按顺序取应答
	hcfg := *b.cfg.Handler
	hcfg.Mode = handler.ModePull.String()

	s, err := handler.Connect(ctx, host, port, packet.RoleClient,
		handler.WithConfig(&hcfg),
		handler.WithLogger(b.logger),
		handler.WithMetrics(b.metrics),
	)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.session = s
	b.mu.Unlock()

	conc.Go(func() (struct{}, error) {
		<-s.Done()
		b.online.Store(false)
		close(b.done)
		return struct{}{}, nil
	})

	b.logger.Info("connected", "addr", b.cfg.Addr, "session_id", s.ID())
	return nil
}

func (b *Bot) handshake(ctx context.Context) error {
	s := b.current()
	if err := s.Send(&packet.Handshake{Username: b.cfg.Username}); err != nil {
		return err
	}

	resp, err := handler.ReceiveAs[*packet.HandshakeResponse](ctx, s)
	if err != nil {
		return workflow.Permanent(err)
	}
	if resp.ConnectionHash != "-" {
		return workflow.Permanent(errors.Wrapf(ErrAuthRequired, "connection hash %q", resp.ConnectionHash))
	}
	return nil
}

func (b *Bot) login(ctx context.Context) error {
	s := b.current()
	err := s.Send(&packet.LoginRequest{
		Protocol: b.cfg.Protocol,
		Username: b.cfg.Username,
		Password: b.cfg.Password,
	})
	if err != nil {
		return err
	}

	for {
		p, err := s.ReceiveNext(ctx)
		if err != nil {
			return workflow.Permanent(err)
		}

		switch v := p.(type) {
		case *packet.LoginResponse:
			b.mu.Lock()
			b.entityID = v.EntityID
			b.mu.Unlock()
			b.logger.Info("logged in", "entity_id", v.EntityID, "server", v.ServerName, "motd", v.Motd)
			return nil
		case *packet.Disconnect:
			return workflow.Permanent(errors.Wrapf(ErrKicked, "%s", v.Reason))
		case *packet.KeepAlive:
		default:
			b.logger.Debug("packet before login response", "packet", packet.Name(p))
		}
	}
}

// enterWorld 注册回调并切到推送模式，队列中已到达的包按顺序先行分发
func (b *Bot) enterWorld(context.Context) error {
	s := b.current()

	handler.On(s, func(p *packet.ChatMessage) {
		b.logger.Info("chat", "message", p.Message)
		b.chatMu.Lock()
		hooks := append([]func(string){}, b.chatHooks...)
		b.chatMu.Unlock()
		for _, fn := range hooks {
			fn(p.Message)
		}
	})
	handler.On(s, func(p *packet.TimeUpdate) {
		b.worldTime.Store(p.Time)
	})
	handler.On(s, func(p *packet.SpawnPosition) {
		b.mu.Lock()
		b.spawn = *p
		b.mu.Unlock()
		b.logger.Debug("spawn position", "x", p.X, "y", p.Y, "z", p.Z)
	})
	handler.On(s, func(p *packet.UpdateHealth) {
		b.health.Store(int32(p.Health))
		if p.Health <= 0 {
			b.logger.Info("died, respawning")
			_ = s.Send(&packet.Respawn{})
		}
	})
	handler.On(s, func(p *packet.PlayerPositionLookServer) {
		// 服务器要求客户端回显位置后才会继续发送区块
		echo := p.Echo()
		b.mu.Lock()
		b.position = *echo
		b.mu.Unlock()
		if err := s.Send(echo); err != nil {
			b.logger.Warn("echo position failed", "error", err)
		}
	})
	handler.On(s, func(p *packet.Disconnect) {
		b.logger.Warn("kicked", "reason", p.Reason)
		_ = s.Disconnect(context.Background())
	})
	s.Subscribe(packet.OpKeepAlive, func(packet.Packet) {})
	s.SetFallback(func(p packet.Packet) {
		b.logger.Debug("unsubscribed packet", "packet", packet.Name(p), "opcode", p.Opcode().String())
	})

	if err := s.SetDeliveryMode(handler.ModePush); err != nil {
		return workflow.Permanent(err)
	}
	b.online.Store(true)

	if b.cfg.Greeting != "" {
		return b.Say(b.cfg.Greeting)
	}
	return nil
}

func (b *Bot) current() *handler.Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session
}

// Say 发送聊天
func (b *Bot) Say(msg string) error {
	s := b.current()
	if s == nil {
		return ErrNotOnline
	}
	return s.Send(&packet.ChatMessage{Message: msg})
}

// Online 是否已进入世界
func (b *Bot) Online() bool {
	return b.online.Load()
}

// EntityID 登录后分配的实体 ID
func (b *Bot) EntityID() int32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.entityID
}

// Position 最近一次回显给服务器的位置
func (b *Bot) Position() packet.PlayerPositionLook {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.position
}

// Spawn 出生点
func (b *Bot) Spawn() packet.SpawnPosition {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.spawn
}

// WorldTime 最近一次收到的世界时间
func (b *Bot) WorldTime() int64 {
	return b.worldTime.Load()
}

// Done 会话结束时关闭；Login 成功连接之前不会关闭
func (b *Bot) Done() <-chan struct{} {
	return b.done
}

// Err 会话结束原因
func (b *Bot) Err() error {
	if s := b.current(); s != nil {
		return s.Err()
	}
	return nil
}

// Quit 发送 Disconnect 并断开
func (b *Bot) Quit(ctx context.Context, reason string) error {
	s := b.current()
	if s == nil {
		return nil
	}
	if err := s.Send(&packet.Disconnect{Reason: reason}); err != nil {
		b.logger.Warn("send disconnect failed", "error", err)
	}
	return s.Disconnect(ctx)
}
