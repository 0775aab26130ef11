package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG", "PASSPORT_DATA_DIR", "PASSPORT_LOG_LEVEL", "PASSPORT_LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, &Options{DataDir: ".", LogLevel: "warn", LogFile: "stderr"}, opts)
}

func TestParse_Flags(t *testing.T) {
	clearEnv(t)

	opts, err := Parse([]string{"-data", "/var/passports", "-log-level", "debug", "-log-file", "out.log", "-version"})
	require.NoError(t, err)
	assert.Equal(t, "/var/passports", opts.DataDir)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, "out.log", opts.LogFile)
	assert.True(t, opts.ShowVersion)
}

func TestParse_ConfigFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data_dir":"/from/file","log_level":"info"}`), 0o600))

	opts, err := Parse([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, "/from/file", opts.DataDir)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, "stderr", opts.LogFile)

	t.Setenv("PASSPORT_DATA_DIR", "/from/env")
	t.Setenv("CONFIG", path)
	opts, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, path, opts.Config)
	assert.Equal(t, "/from/env", opts.DataDir)
	assert.Equal(t, "info", opts.LogLevel)
}

func TestParse_MissingConfigFileIgnored(t *testing.T) {
	clearEnv(t)

	opts, err := Parse([]string{"-config", filepath.Join(t.TempDir(), "nope.json")})
	require.NoError(t, err)
	assert.Equal(t, ".", opts.DataDir)
}

func TestParse_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Parse([]string{"-unknown"})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = Parse([]string{"-config", path})
	assert.Error(t, err)
}
