package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Scanning.ProbeWorkers)
	assert.Equal(t, 50, cfg.Scanning.ResolveWorkers)
	assert.Equal(t, 100, cfg.Scanning.ScanWorkers)
	assert.Equal(t, time.Second, cfg.Scanning.ProbeTimeout)
	assert.Equal(t, time.Second, cfg.Scanning.ConnectTimeout)
	assert.Equal(t, "reports", cfg.Reports.Dir)
	assert.Equal(t, 30, cfg.Reports.DetailMaxLen)
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
scanning:
  probe_workers: 25
  reverse_dns: false
reports:
  dir: /tmp/scans
  html: false
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Scanning.ProbeWorkers)
		assert.False(t, cfg.Scanning.ReverseDNS)
		assert.Equal(t, "/tmp/scans", cfg.Reports.Dir)
		assert.False(t, cfg.Reports.HTML)
		// untouched values keep their defaults
		assert.Equal(t, 50, cfg.Scanning.ResolveWorkers)
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
scanning:
  probe_workers: 0
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scanning: ["), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	original := Default()
	original.Scanning.ScanWorkers = 42

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestValidate(t *testing.T) {
	t.Run("rejects a zero timeout", func(t *testing.T) {
		cfg := Default()
		cfg.Scanning.ConnectTimeout = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects an unknown log level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "loud"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects worker counts above the ceiling", func(t *testing.T) {
		cfg := Default()
		cfg.Scanning.ScanWorkers = 4096
		assert.Error(t, cfg.Validate())
	})
}
