package server

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/lk2023060901/voxelnet/pkg/network/handler"
	"github.com/lk2023060901/voxelnet/pkg/network/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 3 * time.Second

func startServer(t *testing.T, cfg *Config) *Server {
	t.Helper()
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.Addr = "127.0.0.1:0"
	if cfg.TimeInterval == 0 {
		cfg.TimeInterval = time.Hour
	}
	cfg.KickTimeout = 100 * time.Millisecond

	s, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func dial(t *testing.T, s *Server) *handler.Handler {
	t.Helper()
	host, portStr, err := net.SplitHostPort(s.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	c, err := handler.Connect(ctx, host, port, packet.RoleClient)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = c.Disconnect(ctx)
	})
	return c
}

func receive[T packet.Packet](t *testing.T, c *handler.Handler) T {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	p, err := handler.ReceiveAs[T](ctx, c)
	require.NoError(t, err)
	return p
}

// join 完成握手与登录，并读掉登录应答
func join(t *testing.T, s *Server, name string) (*handler.Handler, *packet.LoginResponse) {
	t.Helper()
	c := dial(t, s)

	require.NoError(t, c.Send(&packet.Handshake{Username: name}))
	assert.Equal(t, "-", receive[*packet.HandshakeResponse](t, c).ConnectionHash)

	require.NoError(t, c.Send(&packet.LoginRequest{Protocol: 14, Username: name}))
	resp := receive[*packet.LoginResponse](t, c)
	receive[*packet.SpawnPosition](t, c)
	receive[*packet.TimeUpdate](t, c)
	receive[*packet.PlayerPositionLookServer](t, c)
	assert.Equal(t, name+" joined the game", receive[*packet.ChatMessage](t, c).Message)
	return c, resp
}

func TestServer_LoginFlow(t *testing.T) {
	s := startServer(t, &Config{ServerName: "mock", Spawn: SpawnConfig{X: 10, Y: 70, Z: -3}})

	c := dial(t, s)
	require.NoError(t, c.Send(&packet.Handshake{Username: "alex"}))
	assert.Equal(t, "-", receive[*packet.HandshakeResponse](t, c).ConnectionHash)

	require.NoError(t, c.Send(&packet.LoginRequest{Protocol: 14, Username: "alex"}))
	resp := receive[*packet.LoginResponse](t, c)
	assert.Equal(t, int32(1), resp.EntityID)
	assert.Equal(t, "mock", resp.ServerName)

	spawn := receive[*packet.SpawnPosition](t, c)
	assert.Equal(t, packet.SpawnPosition{X: 10, Y: 70, Z: -3}, *spawn)
	assert.Equal(t, int64(6000), receive[*packet.TimeUpdate](t, c).Time)

	pos := receive[*packet.PlayerPositionLookServer](t, c)
	assert.Equal(t, 10.5, pos.X)
	assert.Equal(t, 70.0, pos.Y)
	assert.InDelta(t, 71.62, pos.Stance, 1e-9)

	assert.Equal(t, "alex joined the game", receive[*packet.ChatMessage](t, c).Message)
	assert.Equal(t, 1, s.Sessions().OnlineCount())

	// 回显位置
	require.NoError(t, c.Send(pos.Echo()))
	require.NoError(t, c.Send(&packet.ChatMessage{Message: "hello"}))
	assert.Equal(t, "<alex> hello", receive[*packet.ChatMessage](t, c).Message)

	p, ok := s.Sessions().GetByName("alex")
	require.True(t, ok)
	assert.Equal(t, 70.0, p.Position().Y)
}

func TestServer_OutdatedClient(t *testing.T) {
	s := startServer(t, nil)
	c := dial(t, s)

	require.NoError(t, c.Send(&packet.Handshake{Username: "old"}))
	receive[*packet.HandshakeResponse](t, c)
	require.NoError(t, c.Send(&packet.LoginRequest{Protocol: 13, Username: "old"}))

	assert.Equal(t, "Outdated client!", receive[*packet.Disconnect](t, c).Reason)
	assert.Equal(t, 0, s.Sessions().OnlineCount())
}

func TestServer_ChatBroadcast(t *testing.T) {
	s := startServer(t, nil)

	alex, _ := join(t, s, "alex")
	bob, resp := join(t, s, "bob")
	assert.Equal(t, int32(2), resp.EntityID)
	assert.Equal(t, "bob joined the game", receive[*packet.ChatMessage](t, alex).Message)

	require.NoError(t, bob.Send(&packet.ChatMessage{Message: "hi alex"}))
	assert.Equal(t, "<bob> hi alex", receive[*packet.ChatMessage](t, alex).Message)
	assert.Equal(t, "<bob> hi alex", receive[*packet.ChatMessage](t, bob).Message)

	require.NoError(t, bob.Send(&packet.Disconnect{Reason: "Quitting"}))
	assert.Equal(t, "bob left the game", receive[*packet.ChatMessage](t, alex).Message)
	require.Eventually(t, func() bool { return s.Sessions().Count() == 1 }, waitTimeout, 10*time.Millisecond)
}

func TestServer_DuplicateLoginKicksOld(t *testing.T) {
	s := startServer(t, nil)

	first, _ := join(t, s, "alex")
	second, _ := join(t, s, "alex")

	assert.Equal(t, "You logged in from another location", receive[*packet.Disconnect](t, first).Reason)
	assert.Equal(t, 1, s.Sessions().OnlineCount())

	cur, ok := s.Sessions().GetByName("alex")
	require.True(t, ok)
	assert.Equal(t, int32(2), cur.EntityID())
	assert.True(t, second.Active())
}

func TestServer_TimeBroadcast(t *testing.T) {
	s := startServer(t, &Config{TimeInterval: 10 * time.Millisecond})
	c := dial(t, s)

	// 时间广播可能穿插在登录应答之间，这里不按顺序断言
	require.NoError(t, c.Send(&packet.Handshake{Username: "alex"}))
	receive[*packet.HandshakeResponse](t, c)
	require.NoError(t, c.Send(&packet.LoginRequest{Protocol: 14, Username: "alex"}))

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	for {
		p, err := c.ReceiveNext(ctx)
		require.NoError(t, err)
		if tu, ok := p.(*packet.TimeUpdate); ok && tu.Time > 6000 {
			assert.Equal(t, int64(0), tu.Time%20)
			return
		}
	}
}

func TestServer_StopDisconnectsClients(t *testing.T) {
	s := startServer(t, nil)
	c, _ := join(t, s, "alex")

	require.NoError(t, s.Stop())
	assert.Equal(t, "Server closed", receive[*packet.Disconnect](t, c).Reason)

	select {
	case <-c.Done():
	case <-time.After(waitTimeout):
		t.Fatal("client session still active")
	}
	assert.NoError(t, s.Stop())
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(&Config{Addr: "bad"})
	assert.Error(t, err)

	_, err = New(&Config{Motd: string(make([]byte, 65))})
	assert.Error(t, err)
}

func TestServer_StartAfterStop(t *testing.T) {
	s := startServer(t, nil)
	require.NoError(t, s.Stop())
	assert.ErrorIs(t, s.Start(), ErrServerClosed)
}
