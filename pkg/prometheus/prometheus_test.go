package prometheus

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.HTTPServer.Enabled)
	assert.Equal(t, ":9090", cfg.HTTPServer.Addr)
	assert.Equal(t, "/metrics", cfg.HTTPServer.Path)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.Timeout)
	assert.True(t, cfg.EnableGoCollector)
	assert.True(t, cfg.EnableProcessCollector)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"valid config", DefaultConfig(), false},
		{"disabled without addr", &Config{}, false},
		{"enabled without addr", &Config{HTTPServer: HTTPServerConfig{Enabled: true}}, true},
		{"relative path", &Config{HTTPServer: HTTPServerConfig{Addr: ":1", Path: "metrics"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			assert.NoError(t, err)
		})
	}

	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/metrics", cfg.HTTPServer.Path)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.Timeout)
}

func TestNewClient(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, c.Registry())
	assert.False(t, c.IsClosed())

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "default collectors registered")

	_, err = New(&Config{HTTPServer: HTTPServerConfig{Path: "bad"}})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestClient_StartDisabled(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	require.NoError(t, c.Start())
	assert.Nil(t, c.Addr())
	require.NoError(t, c.Stop())
	assert.True(t, errors.Is(c.Stop(), ErrClientClosed))
	assert.True(t, errors.Is(c.Start(), ErrClientClosed))
}

func TestClient_ServeMetrics(t *testing.T) {
	c, err := New(&Config{HTTPServer: HTTPServerConfig{
		Enabled: true,
		Addr:    "127.0.0.1:0",
		Path:    "/metrics",
	}})
	require.NoError(t, err)

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "voxelnet_test_total",
		Help: "test counter",
	})
	c.Registry().MustRegister(counter)
	counter.Add(3)

	require.NoError(t, c.Start())
	t.Cleanup(func() { _ = c.Stop() })
	require.NotNil(t, c.Addr())

	resp, err := http.Get("http://" + c.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "voxelnet_test_total 3")

	require.NoError(t, c.Stop())
	assert.True(t, c.IsClosed())
}
