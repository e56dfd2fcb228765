package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)

	logger.Debug("page done", "cursor", "5")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page done")
	assert.Contains(t, string(data), "cursor=5")
}
