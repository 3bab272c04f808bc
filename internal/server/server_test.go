package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myeasyserver/myeasyserver/internal/config"
	"github.com/myeasyserver/myeasyserver/internal/handler"
	"github.com/myeasyserver/myeasyserver/internal/logger"
	"github.com/myeasyserver/myeasyserver/internal/service"
	"github.com/myeasyserver/myeasyserver/models"
)

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

func newTestConfig(t *testing.T, application map[string]any) *config.Config {
	t.Helper()

	schema, err := config.BuildSchema(config.Applications()...)
	require.NoError(t, err)
	tree, err := config.Override(nil, schema, config.NewDefaultSource(schema), true)
	require.NoError(t, err)
	if application != nil {
		tree, err = config.Override(tree, schema, config.MapSource{"application": application}, true)
		require.NoError(t, err)
	}

	return config.NewConfig(schema, tree)
}

func newTestServer(t *testing.T, listen ListenConfig) *server {
	t.Helper()

	cfg := newTestConfig(t, nil)
	services, err := service.NewServices(models.NewAppBuildInfo("0.1.0", "", ""), cfg, logger.Nop())
	require.NoError(t, err)
	handlers, err := handler.NewHandlers(services, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, listen, logger.Nop())
	require.NoError(t, err)
	return srv.(*server)
}

// freeTCPAddress reserves an ephemeral port and releases it for the server.
func freeTCPAddress(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen(networkTCP, "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func waitForHealth(t *testing.T, client *http.Client, url string) string {
	t.Helper()

	var body string
	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	return body
}

// ─────────────────────────────────────────────
// ListenConfig
// ─────────────────────────────────────────────

func TestNewListenConfig(t *testing.T) {
	tests := []struct {
		name        string
		application map[string]any
		deployment  models.Deployment
		want        ListenConfig
		wantErr     error
	}{
		{
			name:       "defaults",
			deployment: models.DeploymentUser,
			want:       ListenConfig{Network: "tcp", Address: "127.0.0.1:8080"},
		},
		{
			name:        "custom address",
			application: map[string]any{"ip_address": "10.1.2.3", "port": "9000"},
			deployment:  models.DeploymentSystem,
			want:        ListenConfig{Network: "tcp", Address: "10.1.2.3:9000"},
		},
		{
			name:        "ipv6 address",
			application: map[string]any{"ip_address": "::1", "port": 9000},
			deployment:  models.DeploymentUser,
			want:        ListenConfig{Network: "tcp", Address: "[::1]:9000"},
		},
		{
			name:        "socket wins",
			application: map[string]any{"socket": "/run/myeasyserver.sock", "port": 9000},
			deployment:  models.DeploymentDocker,
			want:        ListenConfig{Network: "unix", Address: "/run/myeasyserver.sock"},
		},
		{
			name:        "debug binds every interface",
			application: map[string]any{"socket": "/run/myeasyserver.sock"},
			deployment:  models.DeploymentDebug,
			want:        ListenConfig{Network: "tcp", Address: "0.0.0.0:8080"},
		},
		{
			name:        "no port",
			application: map[string]any{"port": 0},
			deployment:  models.DeploymentUser,
			wantErr:     ErrNoListenAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewListenConfig(newTestConfig(t, tt.application), tt.deployment)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListenConfig_String(t *testing.T) {
	assert.Equal(t, "unix:///tmp/s.sock", ListenConfig{Network: "unix", Address: "/tmp/s.sock"}.String())
}

// ─────────────────────────────────────────────
// Server lifecycle
// ─────────────────────────────────────────────

func TestNewServer_NoHandlers(t *testing.T) {
	srv, err := NewServer(nil, ListenConfig{}, logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)

	srv, err = NewServer(&handler.Handlers{}, ListenConfig{}, logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestServer_RunTCP(t *testing.T) {
	addr := freeTCPAddress(t)
	srv := newTestServer(t, ListenConfig{Network: networkTCP, Address: addr})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.run(ctx) }()

	body := waitForHealth(t, http.DefaultClient, "http://"+addr+"/api/health")
	assert.Equal(t, "ok", body)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunUnixSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "srv.sock")
	srv := newTestServer(t, ListenConfig{Network: networkUnix, Address: socket})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.run(ctx) }()

	client := &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, networkUnix, socket)
		},
	}}
	body := waitForHealth(t, client, "http://unix/api/version")
	assert.Equal(t, "0.1.0", body)

	cancel()
	require.NoError(t, <-done)
}

func TestServer_ListenError(t *testing.T) {
	ln, err := net.Listen(networkTCP, "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	srv := newTestServer(t, ListenConfig{Network: networkTCP, Address: ln.Addr().String()})

	err = srv.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error listening on")
}
