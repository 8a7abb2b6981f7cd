package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PhotoField is the multipart field carrying an image for every resource.
const PhotoField = "photo"

// tempUpload is a file accepted from a request and parked on local disk until
// the handler returns.
type tempUpload struct {
	path string
}

// acquireUpload saves the file sent under field into dir. It returns nil when
// the request carries no such file. Callers must defer Release.
func acquireUpload(c *fiber.Ctx, dir, field string) (*tempUpload, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("read multipart form: %w", err)
	}

	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	localPath := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveFile(fh, localPath); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	return &tempUpload{path: localPath}, nil
}

// Path is empty for a nil upload so it can be handed straight to a service.
func (u *tempUpload) Path() string {
	if u == nil {
		return ""
	}
	return u.path
}

func (u *tempUpload) Release() {
	if u == nil {
		return
	}
	if err := os.Remove(u.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove temporary upload", slog.String("path", u.path), slog.String("error", err.Error()))
	}
}
