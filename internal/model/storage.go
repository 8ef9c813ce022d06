package model

import (
	"context"
	"fmt"
	"time"
)

// UploadGrantTTL is how long an issued upload URL stays valid.
const UploadGrantTTL = 60 * time.Second

// BlobStore issues direct-upload credentials for an object storage bucket.
type BlobStore interface {
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (UploadGrant, error)
	Bucket() string
}

// UploadGrant is a signed URL allowing a single PUT of Key with ContentType.
type UploadGrant struct {
	URL         string
	Key         string
	ContentType string
	ExpiresAt   time.Time
}

// PublicObjectURL returns the public virtual-hosted URL of key in bucket.
func PublicObjectURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}
