package handler

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/lk2023060901/voxelnet/pkg/config"
	"github.com/lk2023060901/voxelnet/pkg/logger"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
	"github.com/lk2023060901/voxelnet/pkg/network/wire"
	"github.com/lk2023060901/voxelnet/pkg/util/conc"
)

// Handler 一条连接上的协议会话
//
// 每个会话一个读协程：从连接读 opcode，按对端身份查目录，解码后按当前模式投递。
// 拉取模式下包进入 FIFO 队列，推送模式下在读协程上直接调用回调。
// Send 可被任意协程调用，写入互斥。
type Handler struct {
	id      string
	role    packet.Role
	conn    net.Conn
	reader  *wire.Reader
	catalog *packet.Catalog
	config  *Config
	logger  logger.Logger
	metrics *Metrics

	active atomic.Bool
	state  atomic.Int32

	// mu 保护 mode 与 queue，切换到推送模式时持锁排空队列
	mu    sync.Mutex
	mode  Mode
	queue []packet.Packet
	wake  chan struct{}

	subsMu   sync.RWMutex
	subs     map[packet.Opcode][]Callback
	fallback Callback

	writeMu sync.Mutex

	// 正在执行的回调数，回调内调用 Disconnect 时不等待读协程
	inCallback atomic.Int32

	// 只由读协程访问
	sinceKeepAlive int

	packetsReceived atomic.Uint64
	packetsSent     atomic.Uint64
	keepAlivesSent  atomic.Uint64
	bytesReceived   atomic.Uint64
	bytesSent       atomic.Uint64

	errMu sync.Mutex
	err   error

	readerTask *conc.Future[struct{}]
}

// Connect 建立 TCP 连接并启动会话
func Connect(ctx context.Context, host string, port int, role packet.Role, opts ...Option) (*Handler, error) {
	o := newOptions(opts)
	cfg, err := resolveConfig(o.cfg)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "dial %s", addr), wire.ErrTransport)
	}

	o.cfg = cfg
	return start(conn, role, o)
}

// New 在已建立的连接上启动会话，会话结束时关闭 conn
func New(conn net.Conn, role packet.Role, opts ...Option) (*Handler, error) {
	o := newOptions(opts)
	cfg, err := resolveConfig(o.cfg)
	if err != nil {
		return nil, err
	}

	o.cfg = cfg
	return start(conn, role, o)
}

func resolveConfig(cfg *Config) (*Config, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidConfig)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func start(conn net.Conn, role packet.Role, o *options) (*Handler, error) {
	mode, err := ParseMode(o.cfg.Mode)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidConfig)
	}

	id := uuid.NewString()
	h := &Handler{
		id:      id,
		role:    role,
		conn:    conn,
		reader:  wire.NewReader(bufio.NewReaderSize(conn, o.cfg.ReadBufferSize)),
		catalog: o.catalog,
		config:  o.cfg,
		metrics: o.metrics,
		mode:    mode,
		wake:    make(chan struct{}, 1),
		subs:    make(map[packet.Opcode][]Callback),
		logger: o.logger.Named("handler").WithFields(
			"session_id", id,
			"role", role.String(),
			"remote_addr", remoteAddr(conn),
		),
	}

	h.state.Store(int32(StateConnecting))
	h.active.Store(true)
	h.metrics.sessionStarted()
	h.state.Store(int32(StateActive))
	h.readerTask = conc.Go(h.readLoop)

	h.logger.Info("session started", "mode", mode.String())
	return h, nil
}

func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// Send 编码并写出一个包
// 会话已结束时静默丢弃并返回 nil
func (h *Handler) Send(p packet.Packet) error {
	if !h.active.Load() {
		return nil
	}

	w := wire.NewWriter()
	defer w.Release()

	if err := packet.MarshalTo(w, p); err != nil {
		return err
	}

	h.writeMu.Lock()
	if h.config.WriteTimeout > 0 {
		_ = h.conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
	}
	_, err := h.conn.Write(w.Bytes())
	h.writeMu.Unlock()

	if err != nil {
		if !h.active.Load() {
			return nil
		}
		return errors.Mark(errors.Wrapf(err, "write %s", packet.Name(p)), wire.ErrTransport)
	}

	h.packetsSent.Add(1)
	h.bytesSent.Add(uint64(w.Len()))
	h.metrics.recordSent(p.Opcode(), w.Len())
	return nil
}

// Disconnect 请求读协程退出并等待
// 读协程阻塞在读上时要等下一个包到达；ctx 或 ShutdownTimeout 先到期则直接关闭连接。
// 有回调正在执行时只标记会话结束并立即返回，读协程在回调返回后退出，可用 Done 等待
func (h *Handler) Disconnect(ctx context.Context) error {
	if h.active.CompareAndSwap(true, false) {
		h.logger.Debug("disconnect requested")
	}

	if h.inCallback.Load() > 0 {
		return nil
	}

	if h.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.ShutdownTimeout)
		defer cancel()
	}

	select {
	case <-h.readerTask.Inner():
	case <-ctx.Done():
		h.logger.Debug("reader did not stop in time, closing connection")
		_ = h.conn.Close()
		<-h.readerTask.Inner()
	}
	return nil
}

// terminate 记录第一个错误并关闭连接，可重复调用
func (h *Handler) terminate(err error) {
	if err != nil {
		h.errMu.Lock()
		if h.err == nil {
			h.err = err
		}
		h.errMu.Unlock()
	}
	h.active.Store(false)
	_ = h.conn.Close()
}

func (h *Handler) failure() error {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	return h.err
}

// Done 会话结束时关闭
func (h *Handler) Done() <-chan struct{} {
	return h.readerTask.Inner()
}

// Err 会话结束的原因；会话仍在运行或正常断开时返回 nil
func (h *Handler) Err() error {
	if !h.readerTask.Done() {
		return nil
	}
	return h.failure()
}

// ID 会话 ID
func (h *Handler) ID() string {
	return h.id
}

// Role 本端身份
func (h *Handler) Role() packet.Role {
	return h.role
}

// RemoteAddr 对端地址
func (h *Handler) RemoteAddr() net.Addr {
	return h.conn.RemoteAddr()
}

// State 当前状态
func (h *Handler) State() State {
	return State(h.state.Load())
}

// Active 读协程是否仍在工作
func (h *Handler) Active() bool {
	return h.active.Load()
}

// Stats 统计快照
func (h *Handler) Stats() Stats {
	return Stats{
		PacketsReceived: h.packetsReceived.Load(),
		PacketsSent:     h.packetsSent.Load(),
		KeepAlivesSent:  h.keepAlivesSent.Load(),
		BytesReceived:   h.bytesReceived.Load(),
		BytesSent:       h.bytesSent.Load(),
	}
}
