package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrPasswordNotFound   = errors.New("password not found")
	ErrFileRequired       = errors.New("a photo file is required")
)

// MediaRelay moves uploaded files to the image host and releases remote
// assets that are no longer referenced.
type MediaRelay interface {
	Upload(ctx context.Context, localPath string) (string, error)
	DeleteByURL(ctx context.Context, remoteURL string)
}

type Credentials interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
	IssueToken(userID uuid.UUID) (string, error)
}

// relayIfPresent uploads localPath when it is set and returns the remote URL,
// or nil when there was nothing to upload.
func relayIfPresent(ctx context.Context, relay MediaRelay, localPath string) (*string, error) {
	if localPath == "" {
		return nil, nil
	}

	remoteURL, err := relay.Upload(ctx, localPath)
	if err != nil {
		return nil, err
	}

	return &remoteURL, nil
}

// settleReplacement releases the losing side of a photo replacement: the new
// upload when persisting failed, otherwise the previous asset.
func settleReplacement(ctx context.Context, relay MediaRelay, uploaded, previous *string, persistErr error) {
	if uploaded == nil {
		return
	}

	if persistErr != nil {
		relay.DeleteByURL(ctx, *uploaded)
		return
	}

	if previous != nil && *previous != *uploaded {
		relay.DeleteByURL(ctx, *previous)
	}
}

func logPublishError(ctx context.Context, subject string, err error) {
	if err != nil {
		slog.WarnContext(ctx, "Failed to publish event", slog.String("subject", subject), slog.String("error", err.Error()))
	}
}
