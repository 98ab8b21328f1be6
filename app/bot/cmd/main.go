package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lk2023060901/voxelnet/app/bot/internal/client"
	"github.com/lk2023060901/voxelnet/pkg/app"
	"github.com/lk2023060901/voxelnet/pkg/logger"
	"github.com/lk2023060901/voxelnet/pkg/network/handler"
	"github.com/lk2023060901/voxelnet/pkg/prometheus"
	"github.com/lk2023060901/voxelnet/pkg/util/conc"
)

// appConfig 配置文件根节点
type appConfig struct {
	Bot     *client.Config     `mapstructure:"bot"`
	Log     *logger.Config     `mapstructure:"log"`
	Metrics *prometheus.Config `mapstructure:"metrics"`
}

// botServer 把 bot 接入 BaseApp 的启停
type botServer struct {
	bot *client.Bot
	app *app.BaseApp
}

func (s *botServer) Start() error {
	if err := s.bot.Login(s.app.Context()); err != nil {
		return err
	}

	// 被踢或连接断开时退出进程
	conc.Go(func() (struct{}, error) {
		select {
		case <-s.bot.Done():
			s.app.Logger().Warn("session ended", "error", s.bot.Err())
			s.app.Stop()
		case <-s.app.Context().Done():
		}
		return struct{}{}, nil
	})
	return nil
}

func (s *botServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.bot.Quit(ctx, "Quitting")
}

func main() {
	loader := app.NewLoader("bot", "config.yaml")
	fs := loader.Flags()
	fs.String("addr", "", "server address host:port")
	fs.StringP("username", "u", "", "login name")
	fs.Bool("metrics", false, "expose prometheus metrics over http")
	fs.String("metrics-addr", "", "metrics listen address")
	showVersion := fs.BoolP("version", "v", false, "print version and exit")
	loader.
		Bind("addr", "bot.addr").
		Bind("username", "bot.username").
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

	bot, err := client.New(cfg.Bot,
		client.WithLogger(l),
		client.WithMetrics(handler.NewMetrics(prom.Registry())),
	)
	if err != nil {
		l.Error("create bot failed", "error", err)
		os.Exit(1)
	}
	bot.OnChat(func(msg string) {
		fmt.Println(msg)
	})

	a := app.NewBaseApp(app.WithName("bot"), app.WithLogger(l))
	a.AppendServer(prom, &botServer{bot: bot, app: a})

	if err := a.Run(); err != nil {
		l.Error("bot exited", "error", err)
		os.Exit(1)
	}
}
