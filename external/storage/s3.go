// Package storage uploads public assets (product images, avatars) to S3.
package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Storage reads AWS_REGION, AWS_S3_BUCKET and AWS_S3_URL from the
// environment. Credentials come from the default chain.
func NewS3Storage(ctx context.Context) (*S3Storage, error) {
	bucket := os.Getenv("AWS_S3_BUCKET")
	baseURL := os.Getenv("AWS_S3_URL")
	if bucket == "" || baseURL == "" {
		return nil, errors.New("AWS_S3_BUCKET and AWS_S3_URL must be set")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// UploadFile stores data under <folder>/<uuid>-<unix>.<ext> and returns the
// public URL.
func (s *S3Storage) UploadFile(ctx context.Context, data []byte, filename, contentType, folder string) (string, error) {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	key := folder + "/" + uuid.NewString() + "-" + strconv.FormatInt(time.Now().Unix(), 10)
	if ext != "" {
		key += "." + ext
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

// DeleteFile removes the object a previously returned public URL points at.
// URLs outside this bucket's base URL are ignored.
func (s *S3Storage) DeleteFile(ctx context.Context, fileURL string) error {
	if !strings.HasPrefix(fileURL, s.baseURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(fileURL, s.baseURL+"/")

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
