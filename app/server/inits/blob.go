package inits

import (
	"context"
	"fmt"
	"library-catalog/app/server/blob"
	"library-catalog/app/server/config"
	"time"
)

func Blob(cfg *config.Config) (*blob.S3, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := blob.NewS3(ctx, blob.Options{
		Endpoint:      cfg.Storage.Endpoint,
		Region:        cfg.Storage.Region,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		UsePathStyle:  cfg.Storage.UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init blob storage: %w", err)
	}

	// 容器不存在时创建
	if err = s.EnsureContainer(ctx, cfg.Storage.Container); err != nil {
		return nil, fmt.Errorf("failed to prepare container: %w", err)
	}

	return s, nil
}
