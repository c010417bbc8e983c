package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiodrop/internal/config"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/audio/u1/a.mp3", joinURL("https://cdn.example.com/audio/", "u1/a.mp3"))
	assert.Equal(t, "http://localhost:9000/audio/u1/my%20clip.mp3", joinURL("http://localhost:9000/audio", "/u1/my clip.mp3"))
}

func TestS3PublicBase(t *testing.T) {
	cfg := config.S3Config{Region: "eu-west-1", Bucket: "audio"}
	assert.Equal(t, "https://audio.s3.eu-west-1.amazonaws.com", s3PublicBase(cfg, ""))
	assert.Equal(t, "https://cdn.example.com", s3PublicBase(cfg, "https://cdn.example.com"))

	cfg.Endpoint = "http://localhost:4566"
	assert.Equal(t, "http://localhost:4566/audio", s3PublicBase(cfg, ""))
}

func TestS3Storage_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		fake := &fakeS3{}
		s := &s3Storage{client: fake, bucket: "audio", publicBase: "https://cdn"}

		info, err := s.Put(ctx, "u1/x.mp3", strings.NewReader("abc"), PutObjectOptions{Size: 3, ContentType: "audio/mpeg"})

		require.NoError(t, err)
		assert.Equal(t, "u1/x.mp3", info.Key)
		assert.Equal(t, int64(3), info.Size)
		assert.Equal(t, `"etag"`, info.ETag)
		assert.Equal(t, "audio", aws.ToString(fake.input.Bucket))
		assert.Equal(t, "audio/mpeg", aws.ToString(fake.input.ContentType))
		assert.Equal(t, int64(3), aws.ToInt64(fake.input.ContentLength))
		assert.Equal(t, "abc", fake.body)
		assert.Equal(t, "https://cdn/u1/x.mp3", s.PublicURL("u1/x.mp3"))
	})

	t.Run("unknown size leaves content length unset", func(t *testing.T) {
		fake := &fakeS3{}
		s := &s3Storage{client: fake, bucket: "audio"}

		_, err := s.Put(ctx, "k", strings.NewReader("abc"), PutObjectOptions{Size: -1})

		require.NoError(t, err)
		assert.Nil(t, fake.input.ContentLength)
		assert.Nil(t, fake.input.ContentType)
	})

	t.Run("error", func(t *testing.T) {
		s := &s3Storage{client: &fakeS3{err: errors.New("access denied")}, bucket: "audio"}

		_, err := s.Put(ctx, "k", strings.NewReader("abc"), PutObjectOptions{Size: 3})

		assert.EqualError(t, err, "access denied")
	})
}

func TestNew_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, config.StorageConfig{Driver: "ftp"})
	assert.EqualError(t, err, "unsupported storage driver: ftp")

	_, err = New(ctx, config.StorageConfig{Driver: DriverMinIO})
	assert.EqualError(t, err, "minio endpoint is required")

	_, err = New(ctx, config.StorageConfig{Driver: DriverMinIO, MinIO: config.MinIOConfig{Endpoint: "localhost:9000"}})
	assert.EqualError(t, err, "minio credentials are required")

	_, err = New(ctx, config.StorageConfig{Driver: DriverS3})
	assert.EqualError(t, err, "s3 region and bucket are required")
}
