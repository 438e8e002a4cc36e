package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com",
		publicBaseURL(Config{PublicBaseURL: "https://cdn.example.com/", Bucket: "b"}))
	assert.Equal(t, "http://minio:9000/fund",
		publicBaseURL(Config{Endpoint: "http://minio:9000/", Bucket: "fund"}))
	assert.Equal(t, "https://fund.s3.eu-west-1.amazonaws.com",
		publicBaseURL(Config{Bucket: "fund", Region: "eu-west-1"}))
}

func TestReadLimited(t *testing.T) {
	b, err := readLimited(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(b))

	_, err = readLimited(strings.NewReader("123456"), 5)
	assert.True(t, errors.Is(err, domain.ErrUploadTooLarge))

	b, err = readLimited(strings.NewReader("unbounded"), 0)
	require.NoError(t, err)
	assert.Equal(t, "unbounded", string(b))
}

func TestPut_RejectsDeclaredOversize(t *testing.T) {
	// The size check runs before any network call, so no client is needed.
	s := &S3Store{maxSize: 4}
	_, err := s.Put(context.Background(), "k", ports.Upload{Size: 10, Body: strings.NewReader("0123456789")})
	assert.ErrorIs(t, err, domain.ErrUploadTooLarge)

	_, err = s.Put(context.Background(), "k", ports.Upload{Body: strings.NewReader("0123456789")})
	assert.ErrorIs(t, err, domain.ErrUploadTooLarge)
}
