package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:8080", cfg.ServerEndpointAddr)
	assert.Equal(t, "cardkeep.db", cfg.DatabaseFile)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseJson_OverridesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	payload := map[string]any{
		"server_endpoint_addr": "http://cards.example.com",
		"database_file":        "/tmp/cards.db",
		"request_timeout":      "30s",
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, b, 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-c", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://cards.example.com", cfg.ServerEndpointAddr)
	assert.Equal(t, "/tmp/cards.db", cfg.DatabaseFile)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-a", "http://127.0.0.1:9090", "-t", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://127.0.0.1:9090", cfg.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}
