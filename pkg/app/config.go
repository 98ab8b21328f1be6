package app

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/config"
	"github.com/spf13/pflag"
)

// EnvPrefix 环境变量前缀，VOXELNET_BOT_ADDR 对应 bot.addr
const EnvPrefix = "VOXELNET"

// Loader 合并命令行、环境变量与配置文件
// 优先级：1. 显式命令行参数 > 2. 环境变量 > 3. 配置文件 > 4. 结构体默认值
type Loader struct {
	fs         *pflag.FlagSet
	configPath string
	bindings   [][2]string
}

// NewLoader 创建 Loader，并注册 --config/-c
func NewLoader(name, defaultConfig string) *Loader {
	l := &Loader{fs: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	l.fs.StringVarP(&l.configPath, "config", "c", defaultConfig, "path to config file")
	return l
}

// Flags 返回参数集合，用于注册应用自己的参数
func (l *Loader) Flags() *pflag.FlagSet {
	return l.fs
}

// Bind 把参数 flag 映射到配置路径 key
func (l *Loader) Bind(flag, key string) *Loader {
	l.bindings = append(l.bindings, [2]string{flag, key})
	return l
}

// ConfigPath 最终使用的配置文件路径，未加载文件时为空
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load 解析 args 并把配置解到 target
func (l *Loader) Load(args []string, target any) (config.Manager, error) {
	if !l.fs.Parsed() {
		if err := l.fs.Parse(args); err != nil {
			return nil, errors.Wrap(err, "parse flags")
		}
	}

	explicit := l.fs.Changed("config")
	if !explicit {
		if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
			l.configPath = env
			explicit = true
		}
	}

	mgr := config.NewManager(config.WithEnvPrefix(EnvPrefix))

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err == nil {
			if err := mgr.LoadFile(l.configPath); err != nil {
				return nil, err
			}
		} else if explicit {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s", l.configPath)
		} else {
			// 默认路径不存在时只用默认值
			l.configPath = ""
		}
	}

	for _, b := range l.bindings {
		if err := mgr.BindFlag(b[1], l.fs.Lookup(b[0])); err != nil {
			return nil, err
		}
	}

	if err := mgr.Unmarshal(target); err != nil {
		return nil, err
	}
	return mgr, nil
}
