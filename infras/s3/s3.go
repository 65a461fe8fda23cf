package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"keel/config"
	"keel/infras/otel"
	"keel/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// Attachments is the blob store facade for todo attachments. Object keys are
// opaque ids; callers never see bucket layout.
type Attachments interface {
	PublicURL(objectKey string) string
	PresignUpload(ctx context.Context, objectKey string) (url string, err error)
	DeleteObject(ctx context.Context, objectKey string) error
	ObjectKeyFromURL(url string) (objectKey string)
}

type attachmentsImpl struct {
	client  *s3.Client
	presign *s3.PresignClient
	config  *config.Config
	otel    otel.Otel
}

// PublicURL returns the stable read URL persisted on a todo item once the
// object has been uploaded.
func (svc *attachmentsImpl) PublicURL(objectKey string) string {
	return fmt.Sprintf("%s/%s", svc.config.External.S3.PublicDomain, objectKey)
}

// PresignUpload returns a short-lived write-capable PUT URL for the object.
func (svc *attachmentsImpl) PresignUpload(ctx context.Context, objectKey string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PresignUpload")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := svc.config.External.S3.BucketName
	expiry := time.Duration(svc.config.External.S3.PresignExpirySeconds) * time.Second

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucketName,
	})

	req, err := svc.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to presign upload URL")

		return constant.Empty, fmt.Errorf("failed to presign upload URL: %w", err)
	}

	return req.URL, nil
}

func (svc *attachmentsImpl) DeleteObject(ctx context.Context, objectKey string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteObject")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := svc.config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucketName,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

// ObjectKeyFromURL recovers the object key from a persisted public URL.
// Returns the empty string when the URL is not under the public domain.
func (svc *attachmentsImpl) ObjectKeyFromURL(url string) (objectKey string) {
	prefix := svc.config.External.S3.PublicDomain + "/"
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}

	return constant.Empty
}

func New(config *config.Config, otel otel.Otel) Attachments {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &attachmentsImpl{
		client:  s3Client,
		presign: s3.NewPresignClient(s3Client),
		config:  config,
		otel:    otel,
	}
}
