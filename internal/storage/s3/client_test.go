package s3

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	input   *s3.PutObjectInput
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.input = params
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://b.s3.amazonaws.com/" + *params.Key + "?X-Amz-Signature=sig", Method: "PUT"}, nil
}

func TestClient_PresignUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakePresigner{}
		c := NewClientWithAPI(api, "b")

		grant, err := c.PresignUpload(ctx, "f.png", "image/png", time.Minute)
		require.NoError(t, err)

		assert.Equal(t, "https://b.s3.amazonaws.com/f.png?X-Amz-Signature=sig", grant.URL)
		assert.Equal(t, "f.png", grant.Key)
		assert.Equal(t, "image/png", grant.ContentType)
		assert.Equal(t, "b", aws.ToString(api.input.Bucket))
		assert.Equal(t, "f.png", aws.ToString(api.input.Key))
		assert.Equal(t, "image/png", aws.ToString(api.input.ContentType))
		assert.Equal(t, time.Minute, api.expires)
	})

	t.Run("error", func(t *testing.T) {
		c := NewClientWithAPI(&fakePresigner{err: errors.New("no creds")}, "b")

		_, err := c.PresignUpload(ctx, "f.png", "image/png", time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to presign upload")
	})
}

// Presigning is a local computation, no network is involved.
func TestClient_PresignUpload_RealSigner(t *testing.T) {
	cfg := aws.Config{
		Region:      "us-east-2",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
	c := NewClient(cfg, "project-open-media")
	assert.Equal(t, "project-open-media", c.Bucket())

	grant, err := c.PresignUpload(context.Background(), "f.png", "image/png", 60*time.Second)
	require.NoError(t, err)

	u, err := url.Parse(grant.URL)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Contains(t, u.Host, "project-open-media")
	assert.Contains(t, u.Path, "f.png")
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
