package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"fittrack/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

// NewAwsS3 returns nil when no bucket is configured; callers treat a nil
// AwsS3 as "photo archive disabled".
func NewAwsS3(ctx context.Context, bucket, region, accessKey, secretKey string) (AwsS3, error) {
	if bucket == "" {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	contentType := ContentType(file)
	if len(allowedTypes) > 0 && !IsAllowed(contentType, allowedTypes...) {
		return "", domain.ErrInvalidImageFormat
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectKey := path.Join(folder, fileName+strings.ToLower(filepath.Ext(file.Filename)))
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

// PhotoFolder is the folder holding userID's meal photos.
func PhotoFolder(userID string) string {
	return path.Join("food-photos", userID)
}

// InFolder reports whether objectKey is a clean key strictly inside folder.
func InFolder(objectKey, folder string) bool {
	return objectKey != "" && path.Clean(objectKey) == objectKey && strings.HasPrefix(objectKey, folder+"/")
}

// ContentType uses the part header and falls back to the file extension.
func ContentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}

	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func IsAllowed(contentType string, allowedTypes ...string) bool {
	for _, t := range allowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}
