package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/NeuralTrust/TrustImage/pkg/domain/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
)

const DefaultMaxObjectSize = 32 << 20

var ErrObjectTooLarge = errors.New("object exceeds size limit")

type Config struct {
	// "http://127.0.0.1:9000" for MinIO; empty for AWS.
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UsePathStyle  bool
	MaxObjectSize int64
}

// api is the subset of the S3 client the store needs.
type api interface {
	GetObject(ctx context.Context, params *awsS3.GetObjectInput, optFns ...func(*awsS3.Options)) (*awsS3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *awsS3.DeleteObjectInput, optFns ...func(*awsS3.Options)) (*awsS3.DeleteObjectOutput, error)
}

// Connect builds a client for an S3 compatible endpoint with static
// credentials.
func Connect(cfg Config) *awsS3.Client {
	return awsS3.NewFromConfig(aws.Config{Region: cfg.Region}, func(o *awsS3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	})
}

type objectStore struct {
	logger  *logrus.Logger
	client  api
	bucket  string
	maxSize int64
}

func NewObjectStore(logger *logrus.Logger, client api, bucket string, maxObjectSize int64) storage.ObjectStore {
	if maxObjectSize <= 0 {
		maxObjectSize = DefaultMaxObjectSize
	}
	return &objectStore{
		logger:  logger,
		client:  client,
		bucket:  bucket,
		maxSize: maxObjectSize,
	}
}

func (s *objectStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &awsS3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", key, storage.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%s: %w", key, ErrObjectTooLarge)
	}
	return data, nil
}

func (s *objectStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &awsS3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			s.logger.WithField("key", key).Debug("object already gone")
			return nil
		}
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	s.logger.WithFields(logrus.Fields{
		"bucket": s.bucket,
		"key":    key,
	}).Debug("object deleted")
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
