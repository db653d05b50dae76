// Package storage uploads images to S3-compatible object storage and
// produces the public URLs persisted on items and profiles.  The
// workflows treat it as opaque: a failed upload never corrupts a
// listing, it just leaves the image reference unset.
package storage

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

	"github.com/iliyamo/lost-and-found/internal/config"
)

// Client wraps an S3 client with the bucket and public URL settings
// from the application config.
type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

// New builds a storage client from the application config.  It
// returns nil when no bucket is configured so the caller can degrade
// to rejecting uploads instead of failing at boot.
func New(ctx context.Context, cfg config.Config) (*Client, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3Access, cfg.S3Secret, "",
		)))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // MinIO serves buckets by path, not subdomain
		}
	})
	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	return &Client{s3: client, bucket: cfg.S3Bucket, publicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

// ItemImageKey returns a fresh object key for an item photo.
func ItemImageKey() string { return fmt.Sprintf("items/%s.jpg", uuid.New()) }

// AvatarKey returns a fresh object key for a profile avatar.
func AvatarKey() string { return fmt.Sprintf("avatars/%s.jpg", uuid.New()) }

// Upload stores the given bytes under key and returns the key as the
// stored reference.
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// PublicURL converts a stored reference into the URL served to
// clients.
func (c *Client) PublicURL(key string) string {
	return c.publicURL + "/" + key
}
