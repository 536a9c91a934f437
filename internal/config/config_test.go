package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qirt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-qubits", 0, "")
	flags.Int("port", 0, "")
	flags.String("notation", "", "")
	flags.Bool("watch", false, "")
	flags.String("log-level", "", "")
	return flags
}

// TestLoadDefaults tests the built-in configuration
func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.MaxQubits)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Hour, cfg.StateTTL)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, log.InfoLevel, cfg.Level())
	assert.Empty(t, cfg.File)
	assert.False(t, cfg.WatchNotation)
}

// TestLoadPrecedence tests file < env < flags
func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `
max_qubits: 12
notation_file: ket.ini
log_level: debug
server:
  port: 9000
  write_timeout: 1m
state_ttl: 2h
seed: 99
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MaxQubits)
	assert.Equal(t, "ket.ini", cfg.NotationFile)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 2*time.Hour, cfg.StateTTL)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, path, cfg.File)

	t.Setenv("QIRT_MAX_QUBITS", "10")
	t.Setenv("QIRT_SERVER__PORT", "9100")
	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxQubits)
	assert.Equal(t, 9100, cfg.Server.Port)

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--max-qubits=6", "--notation=other.ini", "--watch"}))
	cfg, err = Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.MaxQubits)
	assert.Equal(t, "other.ini", cfg.NotationFile)
	assert.True(t, cfg.WatchNotation)
	assert.Equal(t, 9100, cfg.Server.Port, "unset flags must not override")
}

// TestLoadInvalid tests validation of loaded values
func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too many qubits", "max_qubits: 31\n"},
		{"zero qubits", "max_qubits: 0\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad level", "log_level: loud\n"},
		{"negative ttl", "state_ttl: -1m\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
