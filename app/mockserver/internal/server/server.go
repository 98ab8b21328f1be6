package server

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/app/mockserver/internal/session"
	"github.com/lk2023060901/voxelnet/pkg/config"
	"github.com/lk2023060901/voxelnet/pkg/logger"
	"github.com/lk2023060901/voxelnet/pkg/network/handler"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
	"github.com/lk2023060901/voxelnet/pkg/util/conc"
)

// ErrServerClosed Stop 之后再次 Start
var ErrServerClosed = errors.New("mockserver: server closed")

// dayLength 一天的 tick 数
const dayLength = 24000

// Server 以服务端身份接受客户端连接，应答握手与登录并转发聊天
type Server struct {
	config  *Config
	logger  logger.Logger
	metrics *handler.Metrics

	sessions  *session.Manager
	pool      *conc.Pool[struct{}]
	worldTime atomic.Int64

	mu      sync.Mutex
	ln      net.Listener
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   []*conc.Future[struct{}]
	running bool
	stopped bool
}

// Option 服务器选项
type Option func(*Server)

// WithLogger 设置日志
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics 设置会话指标
func WithMetrics(m *handler.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New 创建服务器
func New(cfg *Config, opts ...Option) (*Server, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		config:   merged,
		logger:   logger.NewNoop(),
		sessions: session.NewManager(merged.MaxPlayers),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("mockserver")
	s.worldTime.Store(6000)
	return s, nil
}

// Start 开始监听，不阻塞
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrServerClosed
	}
	if s.running {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.config.Addr)
	}

	s.ln = ln
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.pool = conc.NewPool[struct{}](s.config.Workers, conc.WithPreAlloc(false))
	s.running = true

	s.tasks = append(s.tasks, conc.Go(s.acceptLoop))
	if s.config.TimeInterval > 0 {
		s.tasks = append(s.tasks, conc.Go(s.tickLoop))
	}

	s.logger.Info("server listening", "addr", ln.Addr().String())
	return nil
}

// Addr 实际监听地址，Start 之前为 nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Sessions 在线会话
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// WorldTime 当前世界时间
func (s *Server) WorldTime() int64 {
	return s.worldTime.Load()
}

// Stop 停止监听并断开所有会话
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.stopped = true
	s.cancel()
	err := s.ln.Close()
	tasks := s.tasks
	s.mu.Unlock()

	_ = conc.AwaitAll(tasks...)

	var futures []*conc.Future[struct{}]
	for _, p := range s.sessions.All() {
		futures = append(futures, s.kick(p, "Server closed"))
	}
	_ = conc.AwaitAll(futures...)
	s.pool.Release()

	s.logger.Info("server stopped")
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) acceptLoop() (struct{}, error) {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return struct{}{}, nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			s.logger.Error("accept failed", "error", err)
			return struct{}{}, err
		}

		if err := s.serve(conn); err != nil {
			s.logger.Warn("session setup failed", "remote_addr", conn.RemoteAddr().String(), "error", err)
			_ = conn.Close()
		}
	}
}

func (s *Server) tickLoop() (struct{}, error) {
	ticker := time.NewTicker(s.config.TimeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t := (s.worldTime.Load() + 20) % dayLength
			s.worldTime.Store(t)
			s.Broadcast(&packet.TimeUpdate{Time: t})
		case <-s.ctx.Done():
			return struct{}{}, nil
		}
	}
}

// Broadcast 把 pk 投递给所有已登录玩家；队列满的玩家被踢出
func (s *Server) Broadcast(pk packet.Packet) {
	for _, p := range s.sessions.Online() {
		if !p.Push(pk) {
			s.logger.Warn("outbox full, kicking", "session_id", p.ID(), "username", p.Username())
			s.kick(p, "Too slow")
		}
	}
}

// kick 发送 Disconnect 并在协程池中断开，可以在会话自己的读协程上调用
func (s *Server) kick(p *session.Player, reason string) *conc.Future[struct{}] {
	return s.pool.Submit(func() (struct{}, error) {
		if err := p.Send(&packet.Disconnect{Reason: reason}); err != nil {
			s.logger.Debug("send disconnect failed", "session_id", p.ID(), "error", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.config.KickTimeout)
		defer cancel()
		return struct{}{}, p.Disconnect(ctx)
	})
}
