package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"backoffice/config"
	"backoffice/infras/otel"
	"backoffice/shared/constant"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// S3 gives the console read access to uploaded media objects.
type S3 interface {
	// PresignGet returns a time-limited URL for key, for previews of media the CDN has not published yet.
	PresignGet(ctx context.Context, key string) (url string, err error)
}

type s3Impl struct {
	presigner *s3.PresignClient
	Config    *config.Config
	otel      otel.Otel
}

func (svc *s3Impl) PresignGet(ctx context.Context, key string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PresignGet")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if svc.presigner == nil {
		return constant.Empty, ErrNotConfigured
	}

	bucketName := svc.Config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    bucketName,
	})

	expires := time.Duration(svc.Config.External.S3.PresignMinutes) * time.Minute

	req, err := svc.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to presign object")

		return constant.Empty, fmt.Errorf("failed to presign object: %w", err)
	}

	return req.URL, nil
}

func New(config *config.Config, otel otel.Otel) S3 {
	svc := &s3Impl{
		Config: config,
		otel:   otel,
	}

	s3Config := config.External.S3
	if s3Config.BucketName == "" || s3Config.AccessKeyID == "" {
		log.Warn().Msg("No S3 bucket configured, media previews rely on the CDN URL only")

		return svc
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Config.AccessKeyID,
		s3Config.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(s3Config.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")

		return svc
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Config.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Config.APIEndpoint)
			o.UsePathStyle = true
		}
	})

	svc.presigner = s3.NewPresignClient(s3Client)

	return svc
}
