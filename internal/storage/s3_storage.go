package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/bitebakers/brownie-backend/config"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds the maximum upload size")
	ErrInvalidContentType = errors.New("content type is not allowed for upload")
)

// MaxUploadSize caps product image uploads at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// S3Storage hands out presigned PUT URLs so product images upload
// straight from the admin browser to the bucket.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

func NewS3Storage(cfg config.S3Config) *S3Storage {
	var awsCfg aws.Config

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		}
	} else {
		loaded, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region))
		if err != nil {
			awsCfg = aws.Config{Region: cfg.Region}
		} else {
			awsCfg = loaded
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: cfg.BaseURL,
	}
}

// PresignUpload validates the upload and returns a 15-minute PUT URL
// plus the final public file URL.
func (s *S3Storage) PresignUpload(ctx context.Context, filename, contentType string, size int64) (*PresignedUpload, error) {
	if size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	if !allowedType(contentType) {
		return nil, ErrInvalidContentType
	}

	key := fmt.Sprintf("products/%s%s", uuid.New().String(), filepath.Ext(filename))

	presignClient := s3.NewPresignClient(s.client)
	presigned, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
	if s.baseURL != "" {
		fileURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(s.baseURL, "/"), key)
	}

	return &PresignedUpload{
		UploadURL: presigned.URL,
		FileURL:   fileURL,
		Key:       key,
	}, nil
}

func allowedType(contentType string) bool {
	for _, allowed := range allowedImageTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
