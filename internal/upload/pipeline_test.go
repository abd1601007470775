package upload

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagefolio/internal/media"
	"imagefolio/internal/models"
)

type fakeRelay struct {
	result media.UploadResult
	err    error

	calls    int
	lastOpts media.UploadOptions
}

func (f *fakeRelay) Upload(_ context.Context, localPath string, opts media.UploadOptions) (media.UploadResult, error) {
	f.calls++
	f.lastOpts = opts

	// The temp file must exist while the relay runs.
	if _, err := os.Stat(localPath); err != nil {
		return media.UploadResult{}, err
	}

	return f.result, f.err
}

type fakeImageStore struct {
	refs []models.ImageReference
	err  error
}

func (f *fakeImageStore) CreateImage(_ context.Context, publicID, url string) (models.ImageReference, error) {
	if f.err != nil {
		return models.ImageReference{}, f.err
	}
	ref := models.ImageReference{PublicID: publicID, URL: url, CreatedAt: time.Now()}
	f.refs = append(f.refs, ref)
	return ref, nil
}

func (f *fakeImageStore) ListImages(_ context.Context) ([]models.ImageReference, error) {
	return f.refs, f.err
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary upload files left behind")
}

func TestProcessRejectsUnsupportedTypeBeforeRelay(t *testing.T) {
	relay := &fakeRelay{}
	p := NewPipeline(relay, &fakeImageStore{}, t.TempDir(), DefaultMaxSize)

	for _, mime := range []string{"text/plain", "application/pdf", "image/webp", ""} {
		_, err := p.Process(context.Background(), strings.NewReader("data"), mime, 4)
		assert.ErrorIs(t, err, ErrUnsupportedMediaType, mime)
	}

	assert.Equal(t, 0, relay.calls)
}

func TestProcessRejectsDeclaredOversize(t *testing.T) {
	relay := &fakeRelay{}
	dir := t.TempDir()
	p := NewPipeline(relay, &fakeImageStore{}, dir, DefaultMaxSize)

	_, err := p.Process(context.Background(), strings.NewReader("data"), "image/png", 10<<20)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Equal(t, 0, relay.calls)
	assertNoTempFiles(t, dir)
}

func TestProcessRejectsOversizeDuringReceipt(t *testing.T) {
	relay := &fakeRelay{}
	dir := t.TempDir()
	p := NewPipeline(relay, &fakeImageStore{}, dir, 1<<10)

	// Declared size lies; the body is bigger than the 1KiB cap.
	body := bytes.NewReader(make([]byte, 4<<10))
	_, err := p.Process(context.Background(), body, "image/jpeg", 512)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Equal(t, 0, relay.calls)
	assertNoTempFiles(t, dir)
}

func TestProcessSuccess(t *testing.T) {
	relay := &fakeRelay{result: media.UploadResult{
		PublicID:  "uploads/abc123",
		SecureURL: "https://host/abc123.jpg",
	}}
	store := &fakeImageStore{}
	dir := t.TempDir()
	p := NewPipeline(relay, store, dir, DefaultMaxSize)

	ref, err := p.Process(context.Background(), strings.NewReader("jpeg bytes"), "image/jpeg", 10)
	require.NoError(t, err)

	assert.Equal(t, "uploads/abc123", ref.PublicID)
	assert.Equal(t, "https://host/abc123.jpg", ref.URL)
	require.Len(t, store.refs, 1)
	assert.Equal(t, "uploads/abc123", store.refs[0].PublicID)

	assert.Equal(t, "uploads", relay.lastOpts.Folder)
	assert.Equal(t, 800, relay.lastOpts.MaxWidth)
	assert.Equal(t, 800, relay.lastOpts.MaxHeight)

	assertNoTempFiles(t, dir)
}

func TestProcessRelayFailureCleansUp(t *testing.T) {
	relay := &fakeRelay{err: errors.New("quota exceeded")}
	store := &fakeImageStore{}
	dir := t.TempDir()
	p := NewPipeline(relay, store, dir, DefaultMaxSize)

	_, err := p.Process(context.Background(), strings.NewReader("data"), "image/png", 4)
	assert.ErrorIs(t, err, ErrRelayFailed)
	assert.Empty(t, store.refs)
	assertNoTempFiles(t, dir)
}

func TestProcessPersistFailureCleansUp(t *testing.T) {
	relay := &fakeRelay{result: media.UploadResult{PublicID: "uploads/x", SecureURL: "https://host/x"}}
	store := &fakeImageStore{err: errors.New("connection reset")}
	dir := t.TempDir()
	p := NewPipeline(relay, store, dir, DefaultMaxSize)

	_, err := p.Process(context.Background(), strings.NewReader("data"), "image/gif", 4)
	assert.ErrorIs(t, err, ErrPersistFailed)
	assert.Equal(t, 1, relay.calls)
	assertNoTempFiles(t, dir)
}

func TestProcessNoDeduplication(t *testing.T) {
	relay := &fakeRelay{result: media.UploadResult{PublicID: "uploads/a", SecureURL: "https://host/a"}}
	store := &fakeImageStore{}
	p := NewPipeline(relay, store, t.TempDir(), DefaultMaxSize)

	for i := 0; i < 2; i++ {
		_, err := p.Process(context.Background(), strings.NewReader("same bytes"), "image/png", 10)
		require.NoError(t, err)
	}

	assert.Len(t, store.refs, 2)
}
