package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8080/api/v1.0", c.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Empty(t, c.StateFile)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8080/api/v1.0", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}
