package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Store implements Store over AWS S3.
type s3Store struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed image store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-store").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 store initialised")

	return &s3Store{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Upload writes the object under key and returns its public URL.
func (s *s3Store) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	fullKey := s.prefix + key

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", fullKey).
			Msg("failed to upload object")
		return "", fmt.Errorf("failed to upload object (bucket=%s, key=%s): %w", s.bucket, fullKey, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, fullKey)

	s.logger.Debug().
		Str("key", fullKey).
		Str("url", url).
		Msg("object uploaded")

	return url, nil
}
