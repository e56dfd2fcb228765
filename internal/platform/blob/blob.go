// Package blob writes objects to a put-only, S3-compatible sink.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Sink stores a whole object under key, replacing any existing object.
type Sink interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

type Options struct {
	Endpoint     string
	AccessKey    string
	AccessSecret string
	Bucket       string
	Region       string
	UseSSL       bool
}

// S3Sink is a Sink backed by an S3-compatible bucket using path-style addressing.
type S3Sink struct {
	client *minio.Client
	bucket string
}

func NewS3Sink(opts Options) (*S3Sink, error) {
	if opts.Bucket == "" {
		return nil, errors.New("blob: bucket is required")
	}
	client, err := minio.New(hostOnly(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.AccessSecret, ""),
		Secure:       opts.UseSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("blob: create client: %w", err)
	}
	return &S3Sink{client: client, bucket: opts.Bucket}, nil
}

// Put uploads data in a single request. S3 never exposes a partially
// written object, so a failed Put leaves the previous object (or none).
func (s *S3Sink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if len(data) == 0 {
		return fmt.Errorf("blob: refusing to store empty object %s", key)
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("blob: put %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// hostOnly strips a scheme and trailing slash; minio expects host[:port].
func hostOnly(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimSuffix(endpoint, "/")
}
