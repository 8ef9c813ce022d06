package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dtroode/projectopen-signup/internal/model"
)

// presignAPI is the subset of *s3.PresignClient used by Client.
type presignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var _ model.BlobStore = (*Client)(nil)

// Client issues presigned uploads against an AWS S3 bucket.
type Client struct {
	api    presignAPI
	bucket string
}

// NewClient creates a Client from an AWS config.
func NewClient(cfg aws.Config, bucket string, optFns ...func(*s3.Options)) *Client {
	return NewClientWithAPI(s3.NewPresignClient(s3.NewFromConfig(cfg, optFns...)), bucket)
}

// NewClientWithAPI allows injecting a mockable presigner (used in tests).
func NewClientWithAPI(api presignAPI, bucket string) *Client {
	return &Client{
		api:    api,
		bucket: bucket,
	}
}

// PresignUpload returns a PUT URL for key with contentType pinned.
func (c *Client) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (model.UploadGrant, error) {
	req, err := c.api.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return model.UploadGrant{}, fmt.Errorf("failed to presign upload: %w", err)
	}

	return model.UploadGrant{
		URL:         req.URL,
		Key:         key,
		ContentType: contentType,
		ExpiresAt:   time.Now().Add(ttl),
	}, nil
}

// Bucket returns the target bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
