package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"alcyxob/fitplan/internal/config"
	"alcyxob/fitplan/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// s3SnapshotStore implements repository.SnapshotRepository on an S3-compatible
// bucket, one object per key.
type s3SnapshotStore struct {
	client     *s3.Client
	bucketName string
	prefix     string
	logger     *zap.Logger
}

var ErrInsecureEndpoint = errors.New("s3 endpoint uses http while use_ssl is enabled")

// endpointURL applies UseSSL to a configured endpoint: a bare host gets the
// matching scheme, and an http:// endpoint is refused when SSL is required.
func endpointURL(endpoint string, useSSL bool) (string, error) {
	switch {
	case endpoint == "":
		return "", nil
	case strings.HasPrefix(endpoint, "https://"):
		return endpoint, nil
	case strings.HasPrefix(endpoint, "http://"):
		if useSSL {
			return "", fmt.Errorf("%w: %s", ErrInsecureEndpoint, endpoint)
		}
		return endpoint, nil
	case useSSL:
		return "https://" + endpoint, nil
	default:
		return "http://" + endpoint, nil
	}
}

// NewS3SnapshotStore creates a snapshot store backed by cfg.BucketName.
func NewS3SnapshotStore(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (repository.SnapshotRepository, error) {
	endpoint, err := endpointURL(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	// Custom resolver for S3-compatible endpoints (like MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		// Fall back to default AWS endpoint resolution
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx,
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		logger.Error("failed to load AWS SDK config for S3", zap.Error(err))
		return nil, err
	}

	// Path-style addressing is required by most S3-compatible services.
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	logger.Info("S3 snapshot store initialized",
		zap.String("endpoint", endpoint),
		zap.String("bucket", cfg.BucketName))

	return newS3SnapshotStore(s3Client, cfg.BucketName, cfg.Prefix, logger), nil
}

func newS3SnapshotStore(client *s3.Client, bucket, prefix string, logger *zap.Logger) *s3SnapshotStore {
	return &s3SnapshotStore{
		client:     client,
		bucketName: bucket,
		prefix:     strings.Trim(prefix, "/"),
		logger:     logger,
	}
}

// objectKey maps a snapshot key to its object name.
func (s *s3SnapshotStore) objectKey(key string) string {
	return path.Join(s.prefix, key) + ".json"
}

// Load downloads the object for key.
func (s *s3SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()

	doc, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", key, err)
	}
	return doc, nil
}

// Save uploads doc, replacing any existing object.
func (s *s3SnapshotStore) Save(ctx context.Context, key string, doc []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// Delete removes the objects for keys in one batch request.
func (s *s3SnapshotStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]types.ObjectIdentifier, len(keys))
	for i, k := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(s.objectKey(k))}
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucketName),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		s.logger.Warn("some snapshot objects were not deleted",
			zap.Int("failed", len(out.Errors)),
			zap.String("key", aws.ToString(first.Key)),
			zap.String("code", aws.ToString(first.Code)))
		return repository.ErrDeleteFailed
	}

	s.logger.Debug("deleted snapshot objects", zap.Int("count", len(keys)), zap.String("bucket", s.bucketName))
	return nil
}
