// Package upload implements the receive → relay → persist pipeline for
// incoming images.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"imagefolio/internal/media"
	"imagefolio/internal/models"
	"imagefolio/internal/storage"
)

var (
	ErrUnsupportedMediaType = errors.New("upload: unsupported file type")
	ErrPayloadTooLarge      = errors.New("upload: file exceeds the size limit")
	ErrRelayFailed          = errors.New("upload: media host upload failed")
	ErrPersistFailed        = errors.New("upload: saving image record failed")
)

const (
	DefaultMaxSize = 5 << 20

	relayFolder    = "uploads"
	relayMaxWidth  = 800
	relayMaxHeight = 800
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Pipeline owns one upload end to end: validation, the temporary file, the
// relay round trip and the catalog write. The temporary file never outlives
// the request, whichever way it ends.
type Pipeline struct {
	relay   media.Relay
	images  storage.ImageStore
	tempDir string
	maxSize int64
}

func NewPipeline(relay media.Relay, images storage.ImageStore, tempDir string, maxSize int64) *Pipeline {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Pipeline{
		relay:   relay,
		images:  images,
		tempDir: tempDir,
		maxSize: maxSize,
	}
}

// Process validates and relays one upload. declaredType and declaredSize come
// from the request metadata; the size is re-checked while the body is read,
// so a lying client cannot exceed the cap.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, declaredType string, declaredSize int64) (models.ImageReference, error) {
	if !allowedTypes[declaredType] {
		return models.ImageReference{}, ErrUnsupportedMediaType
	}
	if declaredSize > p.maxSize {
		return models.ImageReference{}, ErrPayloadTooLarge
	}

	tmp, err := os.CreateTemp(p.tempDir, "upload-*")
	if err != nil {
		return models.ImageReference{}, fmt.Errorf("creating temp file: %w", err)
	}
	path := tmp.Name()
	defer p.cleanup(path)

	n, copyErr := io.Copy(tmp, io.LimitReader(r, p.maxSize+1))
	closeErr := tmp.Close()
	if copyErr != nil {
		return models.ImageReference{}, fmt.Errorf("receiving upload: %w", copyErr)
	}
	if closeErr != nil {
		return models.ImageReference{}, fmt.Errorf("flushing temp file: %w", closeErr)
	}
	if n > p.maxSize {
		return models.ImageReference{}, ErrPayloadTooLarge
	}

	result, err := p.relay.Upload(ctx, path, media.UploadOptions{
		Folder:    relayFolder,
		MaxWidth:  relayMaxWidth,
		MaxHeight: relayMaxHeight,
	})
	if err != nil {
		return models.ImageReference{}, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	ref, err := p.images.CreateImage(ctx, result.PublicID, result.SecureURL)
	if err != nil {
		// The remote asset stays behind; this is a single-attempt pipeline
		// with no compensating delete.
		slog.Error("Image record write failed after relay success",
			"public_id", result.PublicID,
			"error", err,
		)
		return models.ImageReference{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	return ref, nil
}

// cleanup removes the temporary file. A removal failure is logged and never
// replaces the pipeline's primary outcome.
func (p *Pipeline) cleanup(path string) {
	if err := os.Remove(path); err != nil {
		slog.Error("Temp file cleanup failed", "path", path, "error", err)
	}
}
