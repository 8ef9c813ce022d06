package minio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/projectopen-signup/internal/model"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PresignHeader(ctx context.Context, method, bucketName, objectName string, expires time.Duration, reqParams url.Values, extraHeaders http.Header) (*url.URL, error)
}

var _ model.BlobStore = (*Client)(nil)

type Client struct {
	api    minioAPI
	bucket string
	region string
}

// NewClient creates a new MinIO storage client using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, bucket, region string) (*Client, error) {
	return NewClientWithAPI(ctx, client, bucket, region)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket, region string) (*Client, error) {
	c := &Client{
		api:    api,
		bucket: bucket,
		region: region,
	}

	err := c.ensureBucketExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: c.region})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// PresignUpload returns a PUT URL for key. The Content-Type header is part of
// the signature, so the upload must send exactly contentType.
func (c *Client) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (model.UploadGrant, error) {
	headers := http.Header{}
	headers.Set("Content-Type", contentType)

	u, err := c.api.PresignHeader(ctx, http.MethodPut, c.bucket, key, ttl, nil, headers)
	if err != nil {
		return model.UploadGrant{}, fmt.Errorf("failed to presign upload: %w", err)
	}

	return model.UploadGrant{
		URL:         u.String(),
		Key:         key,
		ContentType: contentType,
		ExpiresAt:   time.Now().Add(ttl),
	}, nil
}

// Bucket returns the target bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
