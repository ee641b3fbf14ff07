package object

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/exp/slog"
)

// S3Store writes photos to a bucket. BaseURL is what clients see; it may
// point at the bucket itself or a CDN in front of it.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
	log     *slog.Logger
}

func NewS3Store(ctx context.Context, bucket, region, baseURL string, log *slog.Logger) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3Store{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log.With("component", "s3_store"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.log.Error("failed to put object", "name", name, "error", err)
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	return s.baseURL + "/" + name, nil
}
