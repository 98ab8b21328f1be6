package main

import (
	"fmt"
	"os"

	"github.com/lk2023060901/voxelnet/app/mockserver/internal/server"
	"github.com/lk2023060901/voxelnet/pkg/app"
	"github.com/lk2023060901/voxelnet/pkg/logger"
	"github.com/lk2023060901/voxelnet/pkg/network/handler"
	"github.com/lk2023060901/voxelnet/pkg/prometheus"
)

// appConfig 配置文件根节点
type appConfig struct {
	Server  *server.Config     `mapstructure:"server"`
	Log     *logger.Config     `mapstructure:"log"`
	Metrics *prometheus.Config `mapstructure:"metrics"`
}

func main() {
	loader := app.NewLoader("mockserver", "config.yaml")
	fs := loader.Flags()
	fs.String("addr", "", "listen address host:port")
	fs.String("motd", "", "message of the day")
	fs.Int("max-players", 0, "online player limit")
	fs.Bool("metrics", false, "expose prometheus metrics over http")
	fs.String("metrics-addr", "", "metrics listen address")
	showVersion := fs.BoolP("version", "v", false, "print version and exit")
	loader.
		Bind("addr", "server.addr").
		Bind("motd", "server.motd").
		Bind("max-players", "server.max_players").
		Bind("metrics", "metrics.http_server.enabled").
		Bind("metrics-addr", "metrics.http_server.addr")

	var cfg appConfig
	if _, err := loader.Load(os.Args[1:], &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *showVersion {
		fmt.Println(app.GetInfo().String())
		return
	}

	if err := logger.InitDefault(cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l := logger.Default()
	if path := loader.ConfigPath(); path != "" {
		l.Info("config loaded", "path", path)
	}

	prom, err := prometheus.New(cfg.Metrics, prometheus.WithLogger(l))
	if err != nil {
		l.Error("create metrics failed", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg.Server,
		server.WithLogger(l),
		server.WithMetrics(handler.NewMetrics(prom.Registry())),
	)
	if err != nil {
		l.Error("create server failed", "error", err)
		os.Exit(1)
	}

	a := app.NewBaseApp(app.WithName("mockserver"), app.WithLogger(l))
	a.AppendServer(prom, srv)

	if err := a.Run(); err != nil {
		l.Error("mockserver exited", "error", err)
		os.Exit(1)
	}
}
