package handler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/config"
)

// NoTimeout 用于 WriteTimeout 与 ShutdownTimeout，表示不设上限
// 零值取默认值
const NoTimeout time.Duration = -1

// Config 会话配置
type Config struct {
	// 收到的包数超过该值时发送一次 KeepAlive 并清零计数
	KeepAliveThreshold int `mapstructure:"keepalive_threshold" json:"keepalive_threshold" yaml:"keepalive_threshold" validate:"min=1"`

	// 读缓冲区大小
	ReadBufferSize int `mapstructure:"read_buffer_size" json:"read_buffer_size" yaml:"read_buffer_size" validate:"min=16"`

	// 连接超时
	DialTimeout time.Duration `mapstructure:"dial_timeout" json:"dial_timeout" yaml:"dial_timeout" validate:"gte=0"`

	// 单次写超时，负数不设写超时
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout"`

	// Disconnect 等待读协程自行退出的最长时间，超时后关闭连接；
	// 负数表示只协作退出，不主动关闭连接 (ctx 到期仍会关闭)
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`

	// 初始投递模式 pull / push
	Mode string `mapstructure:"mode" json:"mode" yaml:"mode" validate:"oneof=pull push"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		KeepAliveThreshold: 50,
		ReadBufferSize:     4096,
		DialTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		Mode:               ModePull.String(),
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if err := config.NewValidator().Validate(c); err != nil {
		return errors.Mark(err, ErrInvalidConfig)
	}
	return nil
}
