package logging

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points logging at a temp directory and restores state afterwards.
func setupTestDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	logDirMu.Lock()
	origDir, origInit := logDir, logDirInit
	logDirMu.Unlock()

	SetDirectory(dir)
	t.Cleanup(func() {
		logDirMu.Lock()
		logDir, logDirInit = origDir, origInit
		logDirMu.Unlock()
	})
	return dir
}

func TestNewLogger(t *testing.T) {
	dir := setupTestDir(t)

	logger, err := NewLogger("test-component")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "test-component", logger.component)
	assert.NotEmpty(t, logger.SessionID())
	assert.True(t, strings.HasPrefix(logger.LogPath(), dir))
	assert.FileExists(t, logger.LogPath())
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("store")
	require.NoError(t, err)

	logger.Infof("loaded %d profiles", 3)
	logger.Warnf("skipped %s", "prfl_9.yaml")
	logger.Debugf("debug")
	logger.Errorf("failed: %v", os.ErrNotExist)
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "[store] [INFO] loaded 3 profiles")
	assert.Contains(t, text, "[store] [WARN] skipped prfl_9.yaml")
	assert.Contains(t, text, "[store] [DEBUG] debug")
	assert.Contains(t, text, "[store] [ERROR] failed: file does not exist")
}

func TestSharedSessionFile(t *testing.T) {
	setupTestDir(t)

	a, err := NewLogger("a")
	require.NoError(t, err)
	defer a.Close()
	b, err := NewLogger("b")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, a.LogPath(), b.LogPath())
	assert.Equal(t, a.SessionID(), GetSessionID())
}

func TestConcurrentWrites(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("concurrent")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Infof("line %d", n)
		}(i)
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(string(content), "[concurrent] [INFO]"))
}

func TestNop(t *testing.T) {
	logger := NewNop()
	logger.Infof("ignored")
	assert.Empty(t, logger.LogPath())
	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}
