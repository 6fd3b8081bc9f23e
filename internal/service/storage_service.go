package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"academy_backend/internal/config"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider resolves stored lesson media and attachments to URLs.
// Uploads happen out of band; this service only reads and removes objects.
type StorageProvider interface {
	GetURL(path string) string
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, path string) error
}

// LocalStorageProvider serves files from a directory behind the /uploads route.
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) GetURL(path string) string {
	return strings.TrimRight(p.Config.PublicBaseURL, "/") + "/uploads/" + strings.TrimLeft(path, "/")
}

// SignedURL has nothing to sign for local files; the download route is
// already behind the enrollment gate.
func (p *LocalStorageProvider) SignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return p.GetURL(path), nil
}

func (p *LocalStorageProvider) Delete(_ context.Context, path string) error {
	err := os.Remove(filepath.Join(p.Config.LocalPath, filepath.Clean("/"+path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) GetURL(path string) string {
	return strings.TrimRight(p.Config.PublicBaseURL, "/") + "/" + p.Config.MinioBucket + "/" + strings.TrimLeft(path, "/")
}

func (p *MinioStorageProvider) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	u, err := p.Client.PresignedGetObject(ctx, p.Config.MinioBucket, path, ttl, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, path string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, path, minio.RemoveObjectOptions{})
}

type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) GetURL(path string) string {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(p.Config.OSSEndpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, endpoint, strings.TrimLeft(path, "/"))
}

func (p *OSSStorageProvider) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}
	return bucket.SignURL(path, oss.HTTPGet, int64(ttl/time.Second))
}

func (p *OSSStorageProvider) Delete(_ context.Context, path string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(path)
}

type StorageService struct {
	Provider  StorageProvider
	SignedTTL time.Duration
}

// NewStorageService falls back to local storage when the configured remote
// provider cannot be constructed.
func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("minio storage unavailable, using local storage", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("oss storage unavailable, using local storage", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	ttl := time.Duration(cfg.Storage.SignedURLTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &StorageService{Provider: provider, SignedTTL: ttl}
}

func (s *StorageService) GetURL(path string) string {
	if path == "" {
		return ""
	}
	return s.Provider.GetURL(path)
}

func (s *StorageService) SignedURL(ctx context.Context, path string) (string, error) {
	return s.Provider.SignedURL(ctx, path, s.SignedTTL)
}

func (s *StorageService) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	return s.Provider.Delete(ctx, path)
}
