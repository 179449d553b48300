package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/taibui324/la-gougah/backend/models"
)

// ErrInvalidStorageID is returned for identifiers this service never issued.
var ErrInvalidStorageID = errors.New("invalid storage id")

const uploadPrefix = "uploads/"

type S3Options struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint targets an S3-compatible server such as MinIO; empty means AWS.
	Endpoint    string
	UploadTTL   time.Duration
	DownloadTTL time.Duration
}

type S3Service struct {
	client      *s3.Client
	presigner   *s3.PresignClient
	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration
}

func NewS3Service(ctx context.Context, o S3Options) (*S3Service, error) {
	if o.Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required")
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKeyID != "" && o.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	if o.UploadTTL <= 0 {
		o.UploadTTL = 15 * time.Minute
	}
	if o.DownloadTTL <= 0 {
		o.DownloadTTL = time.Hour
	}
	return &S3Service{
		client:      client,
		presigner:   s3.NewPresignClient(client),
		bucket:      o.Bucket,
		uploadTTL:   o.UploadTTL,
		downloadTTL: o.DownloadTTL,
	}, nil
}

// PresignUpload issues a one-time PUT URL for a new object. The returned
// storage id is the only handle callers keep.
func (s *S3Service) PresignUpload(ctx context.Context, contentType string) (*models.UploadTicket, error) {
	id := uuid.New().String()
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(id)),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := s.presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = s.uploadTTL
	})
	if err != nil {
		return nil, err
	}
	return &models.UploadTicket{
		UploadURL: req.URL,
		StorageID: id,
		ExpiresAt: time.Now().Add(s.uploadTTL),
	}, nil
}

// ResolveURL returns a temporary GET URL for a stored object. It checks that
// the object exists so dangling ids fail here rather than in the browser.
func (s *S3Service) ResolveURL(ctx context.Context, storageID string) (string, error) {
	if _, err := uuid.Parse(storageID); err != nil {
		return "", ErrInvalidStorageID
	}
	key := objectKey(storageID)
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return "", err
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.downloadTTL
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func objectKey(storageID string) string {
	return uploadPrefix + storageID
}
