// Package media relays local files to the external media host.
package media

import "context"

// UploadOptions control where the asset lands and how it is transformed.
// MaxWidth/MaxHeight bound the image to fit within that box, preserving the
// aspect ratio; images already inside the box are left alone.
type UploadOptions struct {
	Folder    string
	MaxWidth  int
	MaxHeight int
}

// UploadResult is the durable reference the host hands back.
type UploadResult struct {
	PublicID  string
	SecureURL string
}

// Relay is the media-host contract consumed by the upload pipeline.
type Relay interface {
	Upload(ctx context.Context, localPath string, opts UploadOptions) (UploadResult, error)
}
