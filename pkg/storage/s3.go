package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single publish
const UploadTimeout = 30 * time.Second

// ErrNotConfigured is returned when publishing is requested without a bucket
var ErrNotConfigured = errors.New("storage not configured")

// Publisher stores rendered images and returns where they can be fetched
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte) (string, error)
}

// S3Config holds the connection settings for an S3-compatible store
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders"
	PublicURL string // Base URL objects are served from; empty means none
	ACL       string // Canned ACL, e.g. "public-read"; empty leaves the bucket default
}

// S3ConfigFromEnv reads S3_* variables from the environment
func S3ConfigFromEnv() S3Config {
	return S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
		PublicURL: os.Getenv("CDN_URL"),
		ACL:       os.Getenv("S3_ACL"),
	}
}

// Enabled reports whether enough settings are present to publish
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// S3Publisher uploads PNGs to a bucket
type S3Publisher struct {
	client s3iface.S3API
	config S3Config
}

// NewS3Publisher opens a session against the configured endpoint
func NewS3Publisher(config S3Config) (*S3Publisher, error) {
	if !config.Enabled() {
		return nil, ErrNotConfigured
	}

	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3PublisherWithClient(s3.New(sess), config), nil
}

// NewS3PublisherWithClient uses an existing client, such as a test double
func NewS3PublisherWithClient(client s3iface.S3API, config S3Config) *S3Publisher {
	return &S3Publisher{client: client, config: config}
}

// Publish uploads data under the configured prefix and returns its URL.
// Without a public URL the returned location is s3://bucket/key.
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	fullKey := p.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(fullKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	}
	if p.config.ACL != "" {
		input.ACL = aws.String(p.config.ACL)
	}

	if _, err := p.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}

	if p.config.PublicURL != "" {
		return strings.TrimSuffix(p.config.PublicURL, "/") + "/" + fullKey, nil
	}
	return "s3://" + p.config.Bucket + "/" + fullKey, nil
}

func (p *S3Publisher) objectKey(key string) string {
	if p.config.Prefix == "" {
		return key
	}
	return path.Join(p.config.Prefix, key)
}

// ObjectKey names a render by scene, size and time, e.g.
// "default/400x300_20240102T150405.png"
func ObjectKey(sceneName string, width, height int, t time.Time) string {
	return fmt.Sprintf("%s/%dx%d_%s.png", sceneName, width, height, t.UTC().Format("20060102T150405"))
}
