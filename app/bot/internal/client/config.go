package client

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/config"
	"github.com/lk2023060901/voxelnet/pkg/network/handler"
)

// ProtocolVersion 登录包中的协议版本
const ProtocolVersion = 14

// Config bot 配置
type Config struct {
	// 服务器地址 host:port
	Addr string `mapstructure:"addr" json:"addr" yaml:"addr" validate:"required,hostname_port"`

	Username string `mapstructure:"username" json:"username" yaml:"username" validate:"required,max=16"`

	// 服务器口令，多数服务器留空
	Password string `mapstructure:"password" json:"password" yaml:"password"`

	Protocol int32 `mapstructure:"protocol" json:"protocol" yaml:"protocol" validate:"gte=0"`

	// 登录后发送的聊天内容，空则不发
	Greeting string `mapstructure:"greeting" json:"greeting" yaml:"greeting" validate:"max=100"`

	// 连接重试次数与间隔
	ConnectRetries int           `mapstructure:"connect_retries" json:"connect_retries" yaml:"connect_retries" validate:"gte=0"`
	RetryDelay     time.Duration `mapstructure:"retry_delay" json:"retry_delay" yaml:"retry_delay"`

	// 登录每一步的超时
	StepTimeout time.Duration `mapstructure:"step_timeout" json:"step_timeout" yaml:"step_timeout" validate:"gt=0"`

	Handler *handler.Config `mapstructure:"handler" json:"handler" yaml:"handler"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Addr:           "127.0.0.1:25565",
		Username:       "voxelbot",
		Protocol:       ProtocolVersion,
		Greeting:       "hello",
		ConnectRetries: 3,
		RetryDelay:     time.Second,
		StepTimeout:    10 * time.Second,
		Handler:        handler.DefaultConfig(),
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if err := config.NewValidator().Validate(c); err != nil {
		return err
	}
	if c.Handler != nil {
		if err := c.Handler.Validate(); err != nil {
			return errors.Wrap(err, "handler")
		}
	}
	return nil
}
