package server

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/config"
	"github.com/lk2023060901/voxelnet/pkg/network/handler"
)

// SpawnConfig 出生点
type SpawnConfig struct {
	X int32 `mapstructure:"x" json:"x" yaml:"x"`
	Y int32 `mapstructure:"y" json:"y" yaml:"y"`
	Z int32 `mapstructure:"z" json:"z" yaml:"z"`
}

// Config 模拟服务器配置
type Config struct {
	Addr       string `mapstructure:"addr" json:"addr" yaml:"addr" validate:"required,hostname_port"`
	ServerName string `mapstructure:"server_name" json:"server_name" yaml:"server_name"`
	Motd       string `mapstructure:"motd" json:"motd" yaml:"motd" validate:"max=64"`
	MapSeed    int64  `mapstructure:"map_seed" json:"map_seed" yaml:"map_seed"`

	// 接受的登录协议版本
	Protocol int32 `mapstructure:"protocol" json:"protocol" yaml:"protocol" validate:"gte=0"`

	// 在线人数上限，0 不限制
	MaxPlayers int `mapstructure:"max_players" json:"max_players" yaml:"max_players" validate:"gte=0"`

	Spawn SpawnConfig `mapstructure:"spawn" json:"spawn" yaml:"spawn"`

	// 世界时间广播间隔，每次推进 20 tick
	TimeInterval time.Duration `mapstructure:"time_interval" json:"time_interval" yaml:"time_interval" validate:"gte=0"`

	// 每个玩家的广播队列长度，满了会被踢出
	OutboxSize int `mapstructure:"outbox_size" json:"outbox_size" yaml:"outbox_size" validate:"gte=1"`

	// 踢人、停服时并发断开会话的协程数
	Workers int `mapstructure:"workers" json:"workers" yaml:"workers" validate:"gte=1"`

	// 断开会话的等待时间
	KickTimeout time.Duration `mapstructure:"kick_timeout" json:"kick_timeout" yaml:"kick_timeout" validate:"gt=0"`

	Handler *handler.Config `mapstructure:"handler" json:"handler" yaml:"handler"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Addr:         "0.0.0.0:25565",
		ServerName:   "voxelnet",
		Motd:         "A voxelnet mock server",
		Protocol:     14,
		MaxPlayers:   20,
		Spawn:        SpawnConfig{X: 0, Y: 64, Z: 0},
		TimeInterval: time.Second,
		OutboxSize:   256,
		Workers:      16,
		KickTimeout:  time.Second,
		Handler:      handler.DefaultConfig(),
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
