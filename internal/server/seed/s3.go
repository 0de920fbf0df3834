package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/bookmarks/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the catalog from Bucket/Key on an S3-compatible endpoint
// (MinIO in development).
type S3Source struct {
	Bucket string
	Key    string
	config *sc.Config
}

func NewS3Source(c *sc.Config, key string) *S3Source {
	return &S3Source{Bucket: c.S3Bucket, Key: key, config: c}
}

func (s *S3Source) client(ctx context.Context) (objectGetter, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	c, err := s.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	out, err := c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func (s *S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }
