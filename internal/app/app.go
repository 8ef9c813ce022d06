// Package app builds the registration workflow and its stores from config.
package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/projectopen-signup/internal/config"
	"github.com/dtroode/projectopen-signup/internal/logger"
	"github.com/dtroode/projectopen-signup/internal/model"
	"github.com/dtroode/projectopen-signup/internal/repository/dynamodb"
	"github.com/dtroode/projectopen-signup/internal/repository/memory"
	"github.com/dtroode/projectopen-signup/internal/repository/postgres"
	"github.com/dtroode/projectopen-signup/internal/service"
	s3storage "github.com/dtroode/projectopen-signup/internal/storage/s3"
	miniostorage "github.com/dtroode/projectopen-signup/internal/storage/minio"
)

// App holds the constructed workflow and the resources it owns.
type App struct {
	Registration *service.Registration
	UserStore    model.UserStore
	BlobStore    model.BlobStore

	closers []func() error
}

// New builds the stores selected by cfg and the registration workflow on top of them.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{}

	userStore, err := a.newUserStore(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize user store: %w", err)
	}
	a.UserStore = userStore

	blobStore, err := newBlobStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	a.BlobStore = blobStore

	a.Registration = service.NewRegistration(userStore, blobStore, service.RegistrationOptions{
		UploadTTL:           cfg.Registration.UploadTTL,
		RequireConfirmation: cfg.Registration.RequireConfirmation,
		BcryptCost:          cfg.Registration.BcryptCost,
	}, log)

	return a, nil
}

// Close releases the resources opened by New.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) newUserStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (model.UserStore, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("using in-memory user store, records are lost on restart")
		return memory.NewUserRepository(), nil
	case config.StorePostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return postgres.NewUserRepository(db), nil
	case config.StoreDynamoDB:
		awsCfg, err := loadAWSConfig(ctx, cfg.DynamoDB.Region, "", "")
		if err != nil {
			return nil, err
		}
		var opts []func(*awsdynamodb.Options)
		if cfg.DynamoDB.Endpoint != "" {
			opts = append(opts, func(o *awsdynamodb.Options) {
				o.BaseEndpoint = aws.String(cfg.DynamoDB.Endpoint)
			})
		}
		return dynamodb.NewUserRepository(awsCfg, cfg.DynamoDB.Table, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newBlobStore(ctx context.Context, cfg *config.Config) (model.BlobStore, error) {
	bucket := cfg.Registration.Bucket

	switch cfg.StorageDriver {
	case config.StorageS3:
		awsCfg, err := loadAWSConfig(ctx, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
		if err != nil {
			return nil, err
		}
		return s3storage.NewClient(awsCfg, bucket, func(o *awss3.Options) {
			if cfg.S3.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			}
			o.UsePathStyle = cfg.S3.UsePathStyle
		}), nil
	case config.StorageMinio:
		client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  miniocreds.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
			Region: cfg.Minio.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return miniostorage.NewClient(ctx, client, bucket, cfg.Minio.Region)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// loadAWSConfig uses static credentials when both keys are set and the default chain otherwise.
func loadAWSConfig(ctx context.Context, region, accessKey, secretKey string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}
