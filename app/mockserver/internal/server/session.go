package server

import (
	"fmt"
	"net"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/app/mockserver/internal/session"
	"github.com/lk2023060901/voxelnet/pkg/network/handler"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
	"github.com/lk2023060901/voxelnet/pkg/util/conc"
)

// serve 为新连接建立服务端会话
// 会话先以拉取模式启动，注册完回调后再切到推送模式，期间到达的包按顺序补发
func (s *Server) serve(conn net.Conn) error {
	hcfg := *s.config.Handler
	hcfg.Mode = handler.ModePull.String()

	h, err := handler.New(conn, packet.RoleServer,
		handler.WithConfig(&hcfg),
		handler.WithLogger(s.logger),
		handler.WithMetrics(s.metrics),
	)
	if err != nil {
		return err
	}

	p := session.NewPlayer(h, s.config.OutboxSize)
	s.sessions.Register(p)
	s.bind(p)
	p.StartWriter(s.logger)

	conc.Go(func() (struct{}, error) {
		<-p.Done()
		s.closed(p)
		return struct{}{}, nil
	})

	if err := h.SetDeliveryMode(handler.ModePush); err != nil {
		return errors.Wrap(err, "enter push mode")
	}
	s.logger.Debug("client connected", "session_id", p.ID(), "remote_addr", conn.RemoteAddr().String())
	return nil
}

func (s *Server) bind(p *session.Player) {
	handler.On(p.Handler, func(pk *packet.Handshake) {
		p.SetUsername(pk.Username)
		if err := p.Send(&packet.HandshakeResponse{ConnectionHash: "-"}); err != nil {
			s.logger.Warn("send handshake response failed", "session_id", p.ID(), "error", err)
		}
	})
	handler.On(p.Handler, func(pk *packet.LoginRequest) {
		s.login(p, pk)
	})
	handler.On(p.Handler, func(pk *packet.ChatMessage) {
		if !p.LoggedIn() {
			return
		}
		s.logger.Info("chat", "username", p.Username(), "message", pk.Message)
		s.Broadcast(&packet.ChatMessage{Message: fmt.Sprintf("<%s> %s", p.Username(), pk.Message)})
	})
	handler.On(p.Handler, func(pk *packet.PlayerPositionLook) {
		p.UpdatePosition(func(pos *packet.PlayerPositionLook) { *pos = *pk })
	})
	handler.On(p.Handler, func(pk *packet.PlayerPosition) {
		p.UpdatePosition(func(pos *packet.PlayerPositionLook) {
			pos.X, pos.Y, pos.Stance, pos.Z, pos.OnGround = pk.X, pk.Y, pk.Stance, pk.Z, pk.OnGround
		})
	})
	handler.On(p.Handler, func(pk *packet.PlayerLook) {
		p.UpdatePosition(func(pos *packet.PlayerPositionLook) {
			pos.Yaw, pos.Pitch, pos.OnGround = pk.Yaw, pk.Pitch, pk.OnGround
		})
	})
	handler.On(p.Handler, func(pk *packet.PlayerFlying) {
		p.UpdatePosition(func(pos *packet.PlayerPositionLook) { pos.OnGround = pk.OnGround })
	})
	handler.On(p.Handler, func(pk *packet.Disconnect) {
		s.logger.Info("client quit", "username", p.Username(), "reason", pk.Reason)
		s.kick(p, "Quitting")
	})
	p.Subscribe(packet.OpKeepAlive, func(packet.Packet) {})
	p.SetFallback(func(pk packet.Packet) {
		s.logger.Debug("ignored packet", "session_id", p.ID(), "packet", packet.Name(pk))
	})
}

func (s *Server) login(p *session.Player, req *packet.LoginRequest) {
	switch {
	case req.Protocol < s.config.Protocol:
		s.kick(p, "Outdated client!")
		return
	case req.Protocol > s.config.Protocol:
		s.kick(p, "Outdated server!")
		return
	}

	entityID, replaced, err := s.sessions.Login(p.ID(), req.Username)
	if err != nil {
		s.logger.Warn("login rejected", "username", req.Username, "error", err)
		if errors.Is(err, session.ErrServerFull) {
			s.kick(p, "The server is full!")
		}
		return
	}
	if replaced != nil {
		s.kick(replaced, "You logged in from another location")
	}

	spawn := s.config.Spawn
	replies := []packet.Packet{
		&packet.LoginResponse{
			EntityID:   entityID,
			ServerName: s.config.ServerName,
			Motd:       s.config.Motd,
			MapSeed:    s.config.MapSeed,
		},
		&packet.SpawnPosition{X: spawn.X, Y: spawn.Y, Z: spawn.Z},
		&packet.TimeUpdate{Time: s.worldTime.Load()},
		&packet.PlayerPositionLookServer{
			X:      float64(spawn.X) + 0.5,
			Stance: float64(spawn.Y) + 1.62,
			Y:      float64(spawn.Y),
			Z:      float64(spawn.Z) + 0.5,
		},
	}
	for _, r := range replies {
		if err := p.Send(r); err != nil {
			s.logger.Warn("send login reply failed", "session_id", p.ID(), "error", err)
			return
		}
	}

	s.logger.Info("player joined", "username", req.Username, "entity_id", entityID)
	s.Broadcast(&packet.ChatMessage{Message: req.Username + " joined the game"})
}

func (s *Server) closed(p *session.Player) {
	_, wasOnline := s.sessions.Unregister(p.ID())
	if err := p.Err(); err != nil {
		s.logger.Debug("session ended with error", "session_id", p.ID(), "error", err)
	}
	if wasOnline {
		s.logger.Info("player left", "username", p.Username())
		s.Broadcast(&packet.ChatMessage{Message: p.Username() + " left the game"})
	}
}
