package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Service stores book covers. UploadBlob returns the public URL of the blob;
// the last path segment of that URL is the blob name.
type Service interface {
	UploadBlob(ctx context.Context, name, container string, body io.Reader, contentType string) (string, error)
	DeleteBlob(ctx context.Context, name, container string) error
}

// s3API is the part of *s3.Client we use.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

type Options struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
}

var _ Service = (*S3)(nil)

type S3 struct {
	client        s3API
	publicBaseURL string
}

func NewS3(ctx context.Context, opts Options) (*S3, error) {
	var (
		awsConfig aws.Config
		err       error
	)

	if opts.AccessKey != "" && opts.SecretKey != "" {
		// 固定凭据（MinIO 或显式指定的 AWS 密钥）
		awsConfig, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(opts.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				opts.AccessKey,
				opts.SecretKey,
				"",
			)),
		)
	} else {
		// 默认凭据链（IAM 角色、环境变量等）
		awsConfig, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(opts.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return newS3(client, publicBaseURL(opts)), nil
}

func newS3(client s3API, publicBaseURL string) *S3 {
	return &S3{client: client, publicBaseURL: publicBaseURL}
}

func publicBaseURL(opts Options) string {
	switch {
	case opts.PublicBaseURL != "":
		return opts.PublicBaseURL
	case opts.Endpoint != "":
		return opts.Endpoint
	default:
		return fmt.Sprintf("https://s3.%s.amazonaws.com", opts.Region)
	}
}

// EnsureContainer creates the bucket when it does not exist yet.
func (s *S3) EnsureContainer(ctx context.Context, container string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(container)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("head bucket %s: %w", container, err)
	}

	if _, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(container)}); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", container, err)
	}
	return nil
}

func (s *S3) UploadBlob(ctx context.Context, name, container string, body io.Reader, contentType string) (string, error) {
	// 读取完整内容，签名需要可重复读取的 body
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read blob content: %w", err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(container),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", container, name, err)
	}

	blobURL, err := url.JoinPath(s.publicBaseURL, container, name)
	if err != nil {
		return "", fmt.Errorf("join blob url: %w", err)
	}
	return blobURL, nil
}

func (s *S3) DeleteBlob(ctx context.Context, name, container string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(name),
	}); err != nil {
		return fmt.Errorf("delete object %s/%s: %w", container, name, err)
	}
	return nil
}

// NameFromURL returns the blob name of a URL produced by UploadBlob.
func NameFromURL(blobURL string) string {
	if blobURL == "" {
		return ""
	}
	if u, err := url.Parse(blobURL); err == nil {
		return path.Base(u.Path)
	}
	return path.Base(blobURL)
}
