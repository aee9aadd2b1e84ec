package storage

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/internal/utils"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

var (
	AllowImage = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

	ErrStorageDisabled    = errors.New("file storage is not configured")
	ErrFileTypeNotAllowed = fmt.Errorf("file type not allowed: %w", domain.ErrValidation)
	ErrFailedOpenFile     = errors.New("failed to open uploaded file")
	ErrFailedUploadToS3   = errors.New("failed to upload file to s3")
	ErrFailedDeleteFromS3 = errors.New("failed to delete file from s3")
)

type (
	AwsS3 interface {
		Enabled() bool
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

// NewAwsS3 builds the uploader from config. An empty bucket yields a disabled
// store whose uploads fail with ErrStorageDisabled.
func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" {
		return &awsS3{}
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if ak, sk := utils.GetConfig("AWS_ACCESS_KEY"), utils.GetConfig("AWS_SECRET_KEY"); ak != "" && sk != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(ak, sk, "")))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Errorf("failed to load aws config, uploads disabled: %v", err)
		return &awsS3{}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *awsS3) Enabled() bool {
	return a.client != nil
}

func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if !a.Enabled() {
		return "", ErrStorageDisabled
	}

	contentType := file.Header.Get("Content-Type")
	if !isAllowed(contentType, allowed) {
		return "", ErrFileTypeNotAllowed
	}

	src, err := file.Open()
	if err != nil {
		return "", ErrFailedOpenFile
	}
	defer src.Close()

	objectKey := buildObjectKey(folder, fileName, file.Filename)
	if _, err := a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(contentType),
	}); err != nil {
		log.Errorf("s3 put %s: %v", objectKey, err)
		return "", ErrFailedUploadToS3
	}

	return objectKey, nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	if !a.Enabled() {
		return ErrStorageDisabled
	}
	if _, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		log.Errorf("s3 delete %s: %v", objectKey, err)
		return ErrFailedDeleteFromS3
	}
	return nil
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	if a.bucket == "" || !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func buildObjectKey(folder, fileName, original string) string {
	return folder + "/" + fileName + strings.ToLower(filepath.Ext(original))
}

func isAllowed(contentType string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, contentType) {
			return true
		}
	}
	return false
}
