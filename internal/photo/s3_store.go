package photo

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Store implements Store for product photos kept in an AWS S3 bucket.
type s3Store struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates a new S3-backed photo store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-photo-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 photo store initialised")

	return &s3Store{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Save uploads the photo to S3 and returns its public object URL.
func (s *s3Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	key := path.Join(s.prefix, storedName(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to upload photo")
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	s.logger.Debug().Str("key", key).Msg("photo uploaded")

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Delete removes a previously uploaded photo by its object URL.
func (s *s3Store) Delete(ctx context.Context, photoURL string) error {
	if photoURL == "" {
		return nil
	}

	parsed, err := url.Parse(photoURL)
	if err != nil {
		return fmt.Errorf("invalid photo URL: %w", err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to delete photo")
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	return nil
}
