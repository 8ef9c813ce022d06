package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/projectopen-signup/internal/config"
	"github.com/dtroode/projectopen-signup/internal/model"
	"github.com/dtroode/projectopen-signup/internal/repository/dynamodb"
	"github.com/dtroode/projectopen-signup/internal/repository/memory"
	s3storage "github.com/dtroode/projectopen-signup/internal/storage/s3"
	"github.com/dtroode/projectopen-signup/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		StoreDriver:   config.StoreMemory,
		StorageDriver: config.StorageS3,
		Registration: config.Registration{
			Bucket:     "project-open-media",
			BcryptCost: 4,
		},
		DynamoDB: config.DynamoDB{Table: "ProjectOpen", Region: "us-east-2"},
		S3: config.S3{
			Region:       "us-east-2",
			Endpoint:     "http://localhost:4566",
			AccessKey:    "test-access",
			SecretKey:    "test-secret",
			UsePathStyle: true,
		},
	}
}

func TestNew_MemoryAndS3(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, testConfig(), testutil.MakeNoopLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &memory.UserRepository{}, a.UserStore)
	assert.IsType(t, &s3storage.Client{}, a.BlobStore)
	assert.Equal(t, "project-open-media", a.BlobStore.Bucket())

	res, err := a.Registration.Register(ctx, model.RegisterParams{
		Name:        "Ada",
		Email:       "ada@example.com",
		Address:     "1 Main St",
		Password:    "secret",
		FileName:    "ada.png",
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.UploadURL, "http://localhost:4566/project-open-media/ada.png?"))
	assert.Equal(t, "https://project-open-media.s3.amazonaws.com/ada.png", res.User.ImageURL)
}

func TestNew_DynamoDB(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = config.StoreDynamoDB
	cfg.DynamoDB.Endpoint = "http://localhost:8000"

	a, err := New(context.Background(), cfg, testutil.MakeNoopLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &dynamodb.UserRepository{}, a.UserStore)
}

func TestNew_UnknownDrivers(t *testing.T) {
	t.Run("store", func(t *testing.T) {
		cfg := testConfig()
		cfg.StoreDriver = "cassandra"

		_, err := New(context.Background(), cfg, testutil.MakeNoopLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize user store")
	})

	t.Run("storage", func(t *testing.T) {
		cfg := testConfig()
		cfg.StorageDriver = "gcs"

		_, err := New(context.Background(), cfg, testutil.MakeNoopLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize blob store")
	})
}

func TestApp_Close(t *testing.T) {
	var order []int
	a := &App{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return assert.AnError },
	}}

	assert.ErrorIs(t, a.Close(), assert.AnError)
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, a.Close())
}
