// Package storage keeps uploaded retouch images in an object store.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/studio-manager/internal/config"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
)

type Storage interface {
	// Put stores body under key and returns its public URL.
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

func New(cfg *config.Config, log *slog.Logger) (Storage, error) {
	log = logger.Component(log, "storage")

	switch strings.ToLower(cfg.StorageDriver) {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("storage: S3_BUCKET is required for the s3 driver")
		}
		log.Info("using s3 storage", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
		return NewS3(cfg), nil
	case "", "local":
		log.Info("using local storage", "dir", cfg.StorageLocalDir)
		return NewLocal(cfg.StorageLocalDir, cfg.StoragePublicURL)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
	}
}

// ObjectKey builds "<prefix>/<yyyy>/<mm>/<uuid><ext>".
func ObjectKey(prefix string, now time.Time, ext string) string {
	return path.Join(prefix, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
