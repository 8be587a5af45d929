package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/techagentng/studyfocus/config"
)

// ObjectStorage keeps uploaded files and hands back their public URL.
type ObjectStorage interface {
	PutObject(key, contentType string, body []byte) (string, error)
}

type S3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Storage(conf *config.Config) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(conf.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.AWSAccessKeyID,
			conf.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: conf.AWSBucket,
		region: conf.AWSRegion,
	}, nil
}

func (s *S3Storage) PutObject(key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return s.ObjectURL(key), nil
}

func (s *S3Storage) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
