package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetForTest clears key for the duration of the test and restores it after.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadDotEnvOnlyDotEnvPresent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SALES_REPORT_DOTENV_PROJECT=from-dotenv\n"), 0o644))
	t.Chdir(dir)
	unsetForTest(t, "SALES_REPORT_DOTENV_PROJECT")

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "from-dotenv", os.Getenv("SALES_REPORT_DOTENV_PROJECT"))
}

func TestLoadDotEnvLocalTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("SALES_REPORT_DOTENV_TITLE=local\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SALES_REPORT_DOTENV_TITLE=shared\nSALES_REPORT_DOTENV_TOP=7\n"), 0o644))
	t.Chdir(dir)
	unsetForTest(t, "SALES_REPORT_DOTENV_TITLE")
	unsetForTest(t, "SALES_REPORT_DOTENV_TOP")

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "local", os.Getenv("SALES_REPORT_DOTENV_TITLE"))
	assert.Equal(t, "7", os.Getenv("SALES_REPORT_DOTENV_TOP"))
}

func TestLoadDotEnvNoFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, LoadDotEnv())
}

func TestLoadDotEnvUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o755))
	t.Chdir(dir)

	assert.Error(t, LoadDotEnv())
}
