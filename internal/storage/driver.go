package storage

import (
	"context"
	"fmt"

	"audiodrop/internal/config"
)

const (
	DriverMinIO = "minio"
	DriverS3    = "s3"
)

// New builds the Storage selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case DriverMinIO, "":
		return NewMinIO(ctx, cfg.MinIO, cfg.PublicBaseURL)
	case DriverS3:
		return NewS3(ctx, cfg.S3, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
