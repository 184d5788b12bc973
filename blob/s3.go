package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the slice of the S3 client used here.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store implements Store for s3://bucket/key references.
type S3Store struct {
	client s3API
}

// NewS3Store loads the default AWS configuration, pinning region when given.
func NewS3Store(ctx context.Context, region string) (*S3Store, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(cfg)}, nil
}

// ParseS3URL splits s3://bucket/key into its bucket and key.
func ParseS3URL(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 URL: %s", ref)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 URL must be s3://bucket/key: %s", ref)
	}
	return bucket, key, nil
}

// Get downloads the object named by ref.
func (s *S3Store) Get(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := ParseS3URL(ref)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Put uploads data to ref and returns its URL.
func (s *S3Store) Put(ctx context.Context, ref string, data []byte) (string, error) {
	bucket, key, err := ParseS3URL(ref)
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}
