package s3_agent

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const defaultRegion = "us-east-1"

// Options locate the S3 service and the credentials used against it.
type Options struct {
	AccessKey      string
	SecretKey      string
	Endpoint       string
	Region         string
	ForcePathStyle bool
	Timeout        time.Duration
}

// BucketEnsurer creates buckets on demand.
type BucketEnsurer interface {
	EnsureBucket(ctx context.Context, name string) error
}

// Factory builds a BucketEnsurer for one set of credentials.
type Factory func(opts Options) (BucketEnsurer, error)

// S3Agent wraps the s3.S3 structure to allow for wrapper methods
type S3Agent struct {
	Client *s3.S3
}

var _ BucketEnsurer = &S3Agent{}

func NewS3Agent(opts Options) (BucketEnsurer, error) {
	region := opts.Region
	if region == "" {
		region = defaultRegion
	}
	client := http.Client{
		Timeout: opts.Timeout,
	}

	cfg := aws.NewConfig().
		WithRegion(region).
		WithCredentials(credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, "")).
		WithS3ForcePathStyle(opts.ForcePathStyle).
		WithMaxRetries(0).
		WithHTTPClient(&client).
		WithLogLevel(aws.LogOff)
	if opts.Endpoint != "" {
		cfg = cfg.WithEndpoint(opts.Endpoint)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &S3Agent{
		Client: s3.New(sess),
	}, nil
}

// EnsureBucket creates the bucket, treating an existing one as success.
func (s *S3Agent) EnsureBucket(ctx context.Context, name string) error {
	bucketInput := &s3.CreateBucketInput{
		Bucket: aws.String(name),
	}
	_, err := s.Client.CreateBucketWithContext(ctx, bucketInput)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeBucketAlreadyExists:
				return nil
			case s3.ErrCodeBucketAlreadyOwnedByYou:
				return nil
			}
		}
		return fmt.Errorf("failed to create bucket %q. %w", name, err)
	}
	return nil
}
