package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"inkwell/internal/config"
)

// S3Store implements ObjectStore against any S3-compatible endpoint.
type S3Store struct {
	client    *s3.S3
	publicURL string
	logger    *slog.Logger
}

// NewS3Store builds a store from config. Credentials may be omitted for
// instance-profile setups; a custom endpoint covers non-AWS providers.
func NewS3Store(cfg *config.Config, logger *slog.Logger) (*S3Store, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.StorageRegion),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.StorageEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.StorageEndpoint)
	}
	if cfg.StorageAccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.StorageAccessKey, cfg.StorageSecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create storage session: %w", err)
	}

	publicURL := cfg.StoragePublicURL
	if publicURL == "" {
		publicURL = cfg.StorageEndpoint
	}

	return &S3Store{
		client:    s3.New(sess),
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}, nil
}

// Put stores the asset with a public-read ACL and returns its public URL.
func (s *S3Store) Put(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		ACL:           aws.String("public-read"),
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, key)
	s.logger.Info("asset stored", "bucket", bucket, "key", key, "bytes", len(data))
	return url, nil
}
