// Package media relays uploaded images to a remote image host and releases
// remote assets that are no longer referenced.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrUnsupportedImage = errors.New("file is not a supported image")
)

// Asset describes one file handed to an ImageHost.
type Asset struct {
	ID          string
	Ext         string
	ContentType string
	Size        int64
}

type ImageHost interface {
	Upload(ctx context.Context, asset Asset, body io.Reader) (string, error)
	Destroy(ctx context.Context, assetID string) error
}

type Relay struct {
	host ImageHost
}

func NewRelay(host ImageHost) *Relay {
	return &Relay{host: host}
}

// Upload sends the file at localPath to the image host and returns its public
// URL. The local file is removed on every return path.
func (r *Relay) Upload(ctx context.Context, localPath string) (remoteURL string, err error) {
	defer func() {
		if rmErr := os.Remove(localPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			slog.WarnContext(ctx, "Failed to remove temporary upload", slog.String("path", localPath), slog.String("error", rmErr.Error()))
		}
	}()

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat upload: %w", err)
	}

	contentType, err := sniffContentType(f, localPath)
	if err != nil {
		return "", err
	}
	// Anything but a raster image would be served from the public bucket
	// as-is, scripts included.
	if !strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "image/svg") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	asset := Asset{
		ID:          uuid.NewString(),
		Ext:         strings.ToLower(filepath.Ext(localPath)),
		ContentType: contentType,
		Size:        info.Size(),
	}

	remoteURL, err = r.host.Upload(ctx, asset, f)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	slog.InfoContext(ctx, "Image uploaded", slog.String("asset_id", asset.ID), slog.String("url", remoteURL))

	return remoteURL, nil
}

// DeleteByURL asks the host to drop the asset behind remoteURL. Empty URLs are
// ignored and host failures are only logged.
func (r *Relay) DeleteByURL(ctx context.Context, remoteURL string) {
	if remoteURL == "" {
		return
	}

	assetID := AssetID(remoteURL)
	if assetID == "" {
		slog.WarnContext(ctx, "Cannot derive asset id from image URL", slog.String("url", remoteURL))
		return
	}

	if err := r.host.Destroy(ctx, assetID); err != nil {
		slog.WarnContext(ctx, "Failed to delete remote image",
			slog.String("asset_id", assetID),
			slog.String("error", err.Error()),
		)
		return
	}

	slog.InfoContext(ctx, "Remote image deleted", slog.String("asset_id", assetID))
}

// AssetID returns the last path segment of u without its extension, e.g.
// https://host/image/upload/abc123.png -> abc123.
func AssetID(u string) string {
	p := u
	if parsed, err := url.Parse(u); err == nil && parsed.Path != "" {
		p = parsed.Path
	}

	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}

	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}

	return base
}

func sniffContentType(f *os.File, name string) (string, error) {
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	if contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
			contentType = byExt
		}
	}

	return contentType, nil
}
