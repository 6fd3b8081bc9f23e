package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"academy_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
server:
  port: "8080"
database:
  driver: mysql
  host: localhost
  port: 3306
  dbname: academy
jwt:
  secret: watcher-secret
course:
  preview_duration_seconds: %d
`

func writeConfig(t *testing.T, dir string, preview int) {
	t.Helper()
	body := fmt.Sprintf(baseConfig, preview)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, 300)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, func(cfg *config.Config) { reloaded <- cfg })
	}()

	// give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)
	writeConfig(t, dir, 120)

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 120, cfg.Course.PreviewDurationSeconds)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	require.NoError(t, <-done)
}
