package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen.RemVSPAddr)
	assert.Equal(t, 1400, cfg.Listen.FragmentSize)
	assert.Equal(t, uint64(100), cfg.DropPolicy.MaxFrameDelayMillis)
	assert.Equal(t, "remotia.feedback", cfg.Feedback.Topic)
}

func TestLoadServerConfigReadsOverrides(t *testing.T) {
	t.Setenv("REMVSP_FRAGMENT_SIZE", "512")
	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Listen.FragmentSize)
}

func TestLoadClientConfigRequiresServerAddr(t *testing.T) {
	os.Unsetenv("REMVSP_SERVER_ADDR")
	_, err := LoadClientConfig()
	assert.Error(t, err)
}

func TestLoadClientConfigSucceedsWhenServerAddrSet(t *testing.T) {
	t.Setenv("REMVSP_SERVER_ADDR", "127.0.0.1:9000")
	cfg, err := LoadClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.RemVSPServerAddr)
	assert.Equal(t, ":0", cfg.RemVSPLocalAddr)
}
