package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Uploader copies backup archives to an S3-compatible bucket.
type S3Uploader struct {
	s3     *s3.Client
	bucket string

	ensureOnce sync.Once
	ensureErr  error
}

// NewS3Uploader builds an uploader for an S3-compatible endpoint
// (MinIO, Hetzner Object Storage, AWS).
func NewS3Uploader(endpoint, region, bucket, accessKey, secretKey string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		// Path-style keeps self-hosted stores like MinIO working without
		// wildcard DNS.
		o.UsePathStyle = true
	})

	return &S3Uploader{s3: client, bucket: bucket}, nil
}

// EnsureBucket creates the backup bucket if it does not exist yet.
func (u *S3Uploader) EnsureBucket(ctx context.Context) error {
	_, err := u.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(u.bucket),
	})
	if err != nil && !isBucketAlreadyOwnedByYou(err) {
		return fmt.Errorf("failed to create bucket %s: %w", u.bucket, err)
	}
	return nil
}

// Upload implements Uploader. The bucket is created on first use.
func (u *S3Uploader) Upload(ctx context.Context, key, path string) error {
	u.ensureOnce.Do(func() { u.ensureErr = u.EnsureBucket(ctx) })
	if u.ensureErr != nil {
		return u.ensureErr
	}

	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening backup archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, err = u.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", key, u.bucket, err)
	}
	return nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket exists and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	// that may not return the exact SDK error types
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}

	return false
}
