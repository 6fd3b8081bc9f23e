package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"academy_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageServiceDefaultsToLocal(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Type: "local", PublicBaseURL: "https://cdn.example.org/"}}

	svc := NewStorageService(cfg)
	require.IsType(t, &LocalStorageProvider{}, svc.Provider)
	assert.Equal(t, 15*time.Minute, svc.SignedTTL)
	assert.Equal(t, "https://cdn.example.org/uploads/lessons/a.mp4", svc.GetURL("/lessons/a.mp4"))
	assert.Empty(t, svc.GetURL(""))

	signed, err := svc.SignedURL(context.Background(), "files/b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/uploads/files/b.pdf", signed)
}

func TestOSSProviderURL(t *testing.T) {
	p := &OSSStorageProvider{Config: &config.StorageConfig{OSSBucket: "academy", OSSEndpoint: "https://oss-cn-hangzhou.aliyuncs.com"}}
	assert.Equal(t, "https://academy.oss-cn-hangzhou.aliyuncs.com/x/y.pdf", p.GetURL("x/y.pdf"))
}

func TestMinioProviderURL(t *testing.T) {
	p, err := NewMinioStorageProvider(&config.StorageConfig{
		MinioEndpoint: "localhost:9000",
		MinioAccessID: "minioadmin",
		MinioSecret:   "minioadmin",
		MinioBucket:   "academy",
	})
	require.NoError(t, err)

	assert.Equal(t, "/academy/lessons/a.mp4", p.GetURL("lessons/a.mp4"))
}

func TestLocalProviderDeleteIgnoresMissing(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("x"), 0o644))

	require.NoError(t, p.Delete(context.Background(), "a.pdf"))
	_, err := os.Stat(filepath.Join(dir, "a.pdf"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, p.Delete(context.Background(), "a.pdf"))
}
