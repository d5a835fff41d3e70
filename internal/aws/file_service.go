package aws

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "clearance/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// FileService stores generated export workbooks
type FileService interface {
	UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	TestConnection(ctx context.Context) error
}

type fileService struct {
	s3     *s3.Client
	bucket string
	region string
}

func NewFileService(cfg appconfig.AWSConfig) (FileService, error) {
	credProvider := aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     cfg.AccessKey,
			SecretAccessKey: cfg.SecretKey,
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credProvider),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &fileService{
		s3:     s3.NewFromConfig(awsCfg),
		bucket: cfg.BucketName,
		region: cfg.Region,
	}, nil
}

func (s *fileService) UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	uploader := manager.NewUploader(s.s3)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", s.bucket).Str("key", key).Msg("Failed to upload file")
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return ObjectURL(s.bucket, s.region, key), nil
}

func (s *fileService) TestConnection(ctx context.Context) error {
	_, err := s.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", s.bucket).Msg("AWS S3 test connection failed")
	}
	return err
}

// ObjectURL is the public virtual-hosted URL of an object
func ObjectURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, strings.TrimPrefix(key, "/"))
}

// ExportKey names the object an export of one listing is stored under
func ExportKey(partition, year, status, stamp string) string {
	return fmt.Sprintf("exports/%s/%s/%s-%s.xlsx", partition, year, status, stamp)
}
