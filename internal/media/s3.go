package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"imagefolio/internal/config"
)

// S3Relay uploads transformed images to an S3-compatible bucket and derives
// public URLs from the endpoint. Works against MinIO and AWS alike.
type S3Relay struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Relay(ctx context.Context, cfg config.MediaConfig) (*S3Relay, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimSuffix(cfg.Endpoint, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	} else {
		baseURL += "/" + cfg.Bucket
	}

	return &S3Relay{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload applies the fit-within transform locally, then does a single
// PutObject. The object key doubles as the public id.
func (r *S3Relay) Upload(ctx context.Context, localPath string, opts UploadOptions) (UploadResult, error) {
	img, format, err := decodeFile(localPath)
	if err != nil {
		return UploadResult{}, fmt.Errorf("decoding image: %w", err)
	}

	if opts.MaxWidth > 0 && opts.MaxHeight > 0 {
		img = fitWithin(img, opts.MaxWidth, opts.MaxHeight)
	}

	var buf bytes.Buffer
	if err := encodeImage(&buf, img, format); err != nil {
		return UploadResult{}, err
	}

	key := storageKey(opts.Folder, format)

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/" + format),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("putting object %s: %w", key, err)
	}

	return UploadResult{
		PublicID:  key,
		SecureURL: r.baseURL + "/" + key,
	}, nil
}

func storageKey(folder, format string) string {
	key := uuid.NewString() + "." + format
	if folder != "" {
		key = folder + "/" + key
	}
	return key
}
