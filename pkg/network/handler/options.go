package handler

import (
	"github.com/lk2023060901/voxelnet/pkg/logger"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
)

type options struct {
	cfg     *Config
	logger  logger.Logger
	metrics *Metrics
	catalog *packet.Catalog
}

// Option 会话选项
type Option func(*options)

// WithConfig 设置配置，未填写的字段取 DefaultConfig
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger 设置日志，默认不输出
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics 设置指标，多个会话可共享同一个 Metrics
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCatalog 设置包目录，默认 packet.Default()
func WithCatalog(c *packet.Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.catalog = c
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  logger.NewNoop(),
		catalog: packet.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
