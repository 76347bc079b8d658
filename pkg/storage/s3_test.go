package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// fakeS3 records PutObject calls; other S3API methods panic if used
type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Publisher_Publish(t *testing.T) {
	tests := []struct {
		name        string
		config      S3Config
		key         string
		expectedKey string
		expectedURL string
		expectedACL string
	}{
		{
			name:        "bucket url",
			config:      S3Config{Bucket: "renders"},
			key:         "default/a.png",
			expectedKey: "default/a.png",
			expectedURL: "s3://renders/default/a.png",
		},
		{
			name:        "prefix and public url",
			config:      S3Config{Bucket: "renders", Prefix: "whitted", PublicURL: "https://cdn.example.com/", ACL: "public-read"},
			key:         "default/a.png",
			expectedKey: "whitted/default/a.png",
			expectedURL: "https://cdn.example.com/whitted/default/a.png",
			expectedACL: "public-read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeS3{}
			publisher := NewS3PublisherWithClient(client, tt.config)
			data := []byte{0x89, 'P', 'N', 'G'}

			url, err := publisher.Publish(context.Background(), tt.key, data)
			if err != nil {
				t.Fatalf("Publish failed: %v", err)
			}
			if url != tt.expectedURL {
				t.Errorf("Expected URL %q, got %q", tt.expectedURL, url)
			}
			if got := aws.StringValue(client.input.Key); got != tt.expectedKey {
				t.Errorf("Expected key %q, got %q", tt.expectedKey, got)
			}
			if got := aws.StringValue(client.input.Bucket); got != tt.config.Bucket {
				t.Errorf("Expected bucket %q, got %q", tt.config.Bucket, got)
			}
			if got := aws.StringValue(client.input.ContentType); got != "image/png" {
				t.Errorf("Expected content type image/png, got %q", got)
			}
			if got := aws.StringValue(client.input.ACL); got != tt.expectedACL {
				t.Errorf("Expected ACL %q, got %q", tt.expectedACL, got)
			}
			if aws.Int64Value(client.input.ContentLength) != int64(len(data)) || string(client.body) != string(data) {
				t.Errorf("Uploaded body does not match")
			}
		})
	}
}

func TestS3Publisher_UploadError(t *testing.T) {
	uploadErr := errors.New("access denied")
	publisher := NewS3PublisherWithClient(&fakeS3{err: uploadErr}, S3Config{Bucket: "renders"})

	_, err := publisher.Publish(context.Background(), "x.png", []byte("data"))
	if !errors.Is(err, uploadErr) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestNewS3Publisher_NotConfigured(t *testing.T) {
	if _, err := NewS3Publisher(S3Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestNewS3Publisher_Configured(t *testing.T) {
	publisher, err := NewS3Publisher(S3Config{
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "renders",
	})
	if err != nil {
		t.Fatalf("NewS3Publisher failed: %v", err)
	}
	if publisher.client == nil {
		t.Error("Expected an S3 client")
	}
}

func TestS3ConfigFromEnv(t *testing.T) {
	t.Setenv("S3_BUCKET", "bucket")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_PREFIX", "p")
	t.Setenv("CDN_URL", "https://cdn")

	config := S3ConfigFromEnv()
	if !config.Enabled() || config.Bucket != "bucket" || config.Region != "eu-west-1" ||
		config.Prefix != "p" || config.PublicURL != "https://cdn" {
		t.Errorf("Unexpected config %+v", config)
	}
}

func TestObjectKey(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	if got := ObjectKey("mirrors", 640, 480, ts); got != "mirrors/640x480_20240102T150405.png" {
		t.Errorf("Unexpected key %q", got)
	}
}
