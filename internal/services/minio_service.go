package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"movie-loader/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const presignExpiry = 15 * time.Minute

// MinIOService serves import files out of a bucket. It satisfies
// source.Opener so the import pipeline can read objects like local files.
type MinIOService struct {
	client *minio.Client
	bucket string
	region string
	logger *logrus.Logger
}

func NewMinIOService(cfg config.MinIOConfig, bucket string, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   bucket,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	return &MinIOService{
		client: minioClient,
		bucket: bucket,
		region: cfg.Region,
		logger: logger,
	}, nil
}

// EnsureBucket creates the import bucket when it does not exist yet.
func (s *MinIOService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}
	return nil
}

// Open streams an object. The object is stat'ed first so a missing key fails
// here instead of on the first read.
func (s *MinIOService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}

	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	s.logger.WithFields(logrus.Fields{
		"bucket": s.bucket,
		"key":    key,
	}).Info("Opened import object")

	return obj, nil
}

func (s *MinIOService) Describe(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}

// PresignUpload returns a PUT URL for a new import file and the object key
// it will be stored under. Keys get a short random suffix so uploads never
// overwrite each other.
func (s *MinIOService) PresignUpload(ctx context.Context, filename string) (string, string, error) {
	filename = filepath.Base(filename)
	ext := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filename, ext)
	objectKey := fmt.Sprintf("%s_%s%s", nameWithoutExt, uuid.New().String()[:8], ext)

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, presignExpiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"object_key": objectKey,
		"expires_in": presignExpiry.String(),
	}).Info("Presigned upload URL generated")

	return presignedURL.String(), objectKey, nil
}
