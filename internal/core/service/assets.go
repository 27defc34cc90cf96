package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedwire/feed-service/internal/api/metrics"
	"github.com/feedwire/feed-service/internal/core/ports"
)

// PlaceholderImage is the reserved default asset assigned to posts published
// without an upload. It must never reach the deletion primitive.
const PlaceholderImage = "/image/dummy.png"

// publicPrefix maps stored blob names onto their served URL path.
const publicPrefix = "/image/"

// allowedImageTypes is the content-type allow-list applied at upload intake.
var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpg":  {},
	"image/jpeg": {},
}

// AssetManager owns the lifecycle of uploaded image files: intake filtering,
// name generation, and deletion of superseded assets.
type AssetManager struct {
	store  ports.BlobStore
	logger zerolog.Logger
}

func NewAssetManager(store ports.BlobStore, logger zerolog.Logger) *AssetManager {
	return &AssetManager{store: store, logger: logger}
}

// Store writes an uploaded file to the content store and returns its public
// path. A nil upload, or one whose content type is outside the image
// allow-list, is silently excluded and resolves to the placeholder asset
// rather than failing the request.
func (m *AssetManager) Store(ctx context.Context, upload *ports.Upload) (string, error) {
	if upload == nil {
		return PlaceholderImage, nil
	}
	if _, ok := allowedImageTypes[strings.ToLower(upload.ContentType)]; !ok {
		m.logger.Debug().Str("content_type", upload.ContentType).Msg("upload excluded by type filter")
		return PlaceholderImage, nil
	}

	name := generateAssetName(upload.Filename, time.Now())
	if err := m.store.Put(ctx, name, *upload); err != nil {
		return "", fmt.Errorf("store asset: %w", err)
	}
	return publicPrefix + name, nil
}

// Reconcile deletes the asset behind oldPath after it has been superseded by
// newPath. The placeholder is never deleted, and a deletion failure is logged
// but never surfaces to the owning domain operation: a dangling file must not
// block a successful mutation.
func (m *AssetManager) Reconcile(ctx context.Context, oldPath, newPath string) {
	if oldPath == "" || oldPath == newPath || oldPath == PlaceholderImage {
		return
	}

	name := strings.TrimPrefix(oldPath, publicPrefix)
	if err := m.store.Remove(ctx, name); err != nil {
		metrics.AssetDeleteFailuresTotal.Inc()
		m.logger.Warn().Err(err).Str("asset", oldPath).Msg("failed to delete superseded asset")
		return
	}
	metrics.AssetsDeletedTotal.Inc()
	m.logger.Debug().Str("asset", oldPath).Msg("superseded asset deleted")
}

// generateAssetName derives the stored blob name from the original file name:
// {basename}-{issue-timestamp}{ext}.
func generateAssetName(original string, now time.Time) string {
	ext := path.Ext(original)
	base := strings.TrimSuffix(path.Base(original), ext)
	return fmt.Sprintf("%s-%d%s", base, now.UnixMilli(), ext)
}
