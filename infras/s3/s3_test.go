package s3_test

import (
	"backoffice/config"
	"backoffice/infras/otel/mocks"
	"backoffice/infras/s3"
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignGet_NotConfigured(t *testing.T) {
	svc := s3.New(&config.Config{}, mocks.NewOtel())

	_, err := svc.PresignGet(context.Background(), "media/cat.png")
	assert.ErrorIs(t, err, s3.ErrNotConfigured)
}

func TestPresignGet_SignsPathStyleURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.APIEndpoint = "https://storage.example.com"
	cfg.External.S3.AccessKeyID = "key"
	cfg.External.S3.SecretAccessKey = "secret"
	cfg.External.S3.BucketName = "media"
	cfg.External.S3.Region = "auto"
	cfg.External.S3.PresignMinutes = 15

	svc := s3.New(cfg, mocks.NewOtel())

	signed, err := svc.PresignGet(context.Background(), "uploads/cat.png")
	require.NoError(t, err)

	parsed, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "storage.example.com", parsed.Host)
	assert.Equal(t, "/media/uploads/cat.png", parsed.Path)
	assert.Equal(t, "900", parsed.Query().Get("X-Amz-Expires"))
}
