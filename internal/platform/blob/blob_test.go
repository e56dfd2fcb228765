package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostOnly(t *testing.T) {
	assert.Equal(t, "s3.example.com", hostOnly("https://s3.example.com/"))
	assert.Equal(t, "localhost:9000", hostOnly("http://localhost:9000"))
	assert.Equal(t, "s3.example.com:443", hostOnly("s3.example.com:443"))
}

func TestNewS3Sink(t *testing.T) {
	_, err := NewS3Sink(Options{Endpoint: "s3.example.com"})
	assert.Error(t, err, "bucket is required")

	sink, err := NewS3Sink(Options{
		Endpoint:     "https://s3.example.com",
		AccessKey:    "key",
		AccessSecret: "secret",
		Bucket:       "ayobaca",
		Region:       "apac",
		UseSSL:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ayobaca", sink.bucket)
}

func TestS3Sink_PutRejectsEmptyObject(t *testing.T) {
	sink, err := NewS3Sink(Options{Endpoint: "localhost:9000", Bucket: "b"})
	require.NoError(t, err)

	err = sink.Put(context.Background(), "book/1.webp", nil, "image/webp")
	assert.Error(t, err)
}
