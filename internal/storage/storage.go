package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"sunfutures/internal/config"
	"sunfutures/internal/types"
)

// StoredFile describes one persisted equipment file.
type StoredFile struct {
	FileID    string         `json:"file_id"`
	Filename  string         `json:"filename"`
	Kind      types.FileKind `json:"kind"`
	SizeBytes int            `json:"size_bytes"`
	Backend   string         `json:"backend"`
}

// Service persists uploaded equipment files and serves their bytes back to
// the extraction step. Objects are keyed "{file_id}__{filename}".
type Service interface {
	PutBytes(ctx context.Context, fileID, filename string, data []byte) (StoredFile, error)
	GetBytes(ctx context.Context, fileID, filename string) ([]byte, error)
}

// KindFromFilename classifies an upload by extension.
func KindFromFilename(filename string) types.FileKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pan":
		return types.FileKindPAN
	case ".ond":
		return types.FileKindOND
	default:
		return types.FileKindOther
	}
}

func objectKey(fileID, filename string) string {
	return fileID + "__" + filepath.Base(filename)
}

// NewStorageService picks the MinIO backend when an endpoint is configured
// and the local-directory backend otherwise.
func NewStorageService(cfg config.StorageConfig, logger *slog.Logger) (Service, error) {
	if cfg.MinioEndpoint == "" {
		return newLocalService(cfg.UploadDir, logger)
	}
	return newMinioService(cfg, logger)
}

type localService struct {
	dir    string
	logger *slog.Logger
}

func newLocalService(dir string, logger *slog.Logger) (Service, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "sunfutures-uploads")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &localService{dir: dir, logger: logger.With("component", "storage", "backend", "local")}, nil
}

func (s *localService) PutBytes(_ context.Context, fileID, filename string, data []byte) (StoredFile, error) {
	path := filepath.Join(s.dir, objectKey(fileID, filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return StoredFile{}, fmt.Errorf("writing upload %s: %w", path, err)
	}
	s.logger.Info("stored equipment file", "file_id", fileID, "filename", filename, "size_bytes", len(data))
	return StoredFile{
		FileID:    fileID,
		Filename:  filepath.Base(filename),
		Kind:      KindFromFilename(filename),
		SizeBytes: len(data),
		Backend:   "local",
	}, nil
}

func (s *localService) GetBytes(_ context.Context, fileID, filename string) ([]byte, error) {
	path := filepath.Join(s.dir, objectKey(fileID, filename))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading upload %s: %w", path, err)
	}
	return data, nil
}

type minioService struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

func newMinioService(cfg config.StorageConfig, logger *slog.Logger) (Service, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}
	return &minioService{
		client: client,
		bucket: cfg.MinioBucket,
		logger: logger.With("component", "storage", "backend", "minio"),
	}, nil
}

func (s *minioService) PutBytes(ctx context.Context, fileID, filename string, data []byte) (StoredFile, error) {
	key := objectKey(fileID, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return StoredFile{}, fmt.Errorf("uploading object %s: %w", key, err)
	}
	s.logger.Info("stored equipment file", "file_id", fileID, "filename", filename, "size_bytes", len(data))
	return StoredFile{
		FileID:    fileID,
		Filename:  filepath.Base(filename),
		Kind:      KindFromFilename(filename),
		SizeBytes: len(data),
		Backend:   "minio",
	}, nil
}

func (s *minioService) GetBytes(ctx context.Context, fileID, filename string) ([]byte, error) {
	key := objectKey(fileID, filename)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting object %s: %w", key, err)
	}
	defer func(obj io.ReadCloser) {
		_ = obj.Close()
	}(obj)
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", key, err)
	}
	return data, nil
}
