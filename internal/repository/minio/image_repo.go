package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/radhe-vastra/storefront-backend/internal/cfg"
	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo реализует репозиторий изображений продуктов поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

var _ usecase.AssetStore = (*ImageRepo)(nil)

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает изображение в бакет и возвращает его публичный URL.
// Имя объекта выводится из временной метки и случайного суффикса,
// исходное имя файла участвует только расширением.
func (i *ImageRepo) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", e.ErrNoFile
	}
	if int64(len(data)) > i.cfg.MaxObjectSize {
		return "", e.Wrap(filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data)
	if !isSupportedImageMIME(mimeType) {
		return "", e.Wrap(mimeType, e.ErrUnsupportedMediaType)
	}

	objectKey := newObjectKey(filename, mimeType)

	reader := bytes.NewReader(data)
	_, err := i.mc.PutObject(ctx, i.cfg.BucketName, objectKey, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(i.cfg.PublicBaseURL, "/"), i.cfg.BucketName, objectKey), nil
}

// Delete удаляет объект из бакета по указанному ключу.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// newObjectKey собирает ключ объекта: {timestamp}_{random}{ext}.
// Коллизии исключаются случайным суффиксом, а не исходным именем файла.
func newObjectKey(filename, mimeType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = "." + extensionFromMIME(mimeType)
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), suffix, ext)
}

func isSupportedImageMIME(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif":
		return true
	default:
		return false
	}
}

// extensionFromMIME возвращает расширение файла по MIME-типу изображения.
func extensionFromMIME(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "bin"
	}
}
