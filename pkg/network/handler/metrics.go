package handler

import (
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 会话指标；nil 指针上的方法均为空操作
type Metrics struct {
	packetsReceived *prometheus.CounterVec
	packetsSent     *prometheus.CounterVec
	keepAlivesSent  prometheus.Counter
	bytesReceived   prometheus.Counter
	bytesSent       prometheus.Counter
	sessionsActive  prometheus.Gauge
	sessionErrors   *prometheus.CounterVec
}

// NewMetrics 创建指标并注册到 registerer，registerer 为 nil 时只创建不注册
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		packetsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxelnet",
			Subsystem: "handler",
			Name:      "packets_received_total",
			Help:      "Total number of packets received",
		}, []string{"opcode"}),
		packetsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxelnet",
			Subsystem: "handler",
			Name:      "packets_sent_total",
			Help:      "Total number of packets sent",
		}, []string{"opcode"}),
		keepAlivesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelnet",
			Subsystem: "handler",
			Name:      "keepalives_sent_total",
			Help:      "Total number of keep-alive packets sent by the handler",
		}),
		bytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelnet",
			Subsystem: "handler",
			Name:      "bytes_received_total",
			Help:      "Total bytes received",
		}),
		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelnet",
			Subsystem: "handler",
			Name:      "bytes_sent_total",
			Help:      "Total bytes sent",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelnet",
			Subsystem: "handler",
			Name:      "sessions_active",
			Help:      "Number of active sessions",
		}),
		sessionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxelnet",
			Subsystem: "handler",
			Name:      "session_errors_total",
			Help:      "Total number of sessions terminated by an error",
		}, []string{"type"}),
	}

	if registerer != nil {
		registerer.MustRegister(
			m.packetsReceived,
			m.packetsSent,
			m.keepAlivesSent,
			m.bytesReceived,
			m.bytesSent,
			m.sessionsActive,
			m.sessionErrors,
		)
	}
	return m
}

func (m *Metrics) recordReceived(op packet.Opcode, n uint64) {
	if m == nil {
		return
	}
	m.packetsReceived.WithLabelValues(op.String()).Inc()
	m.bytesReceived.Add(float64(n))
}

func (m *Metrics) recordSent(op packet.Opcode, n int) {
	if m == nil {
		return
	}
	m.packetsSent.WithLabelValues(op.String()).Inc()
	m.bytesSent.Add(float64(n))
}

func (m *Metrics) recordKeepAlive() {
	if m == nil {
		return
	}
	m.keepAlivesSent.Inc()
}

func (m *Metrics) sessionStarted() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
}

func (m *Metrics) sessionEnded(errType string) {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
	if errType != "" {
		m.sessionErrors.WithLabelValues(errType).Inc()
	}
}
