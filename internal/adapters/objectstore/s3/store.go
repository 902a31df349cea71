// Package s3 implementa objectstore.Store sobre Amazon S3 (o compatible).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petpatrol/internal/platform/httpclient"
	"petpatrol/internal/platform/logger"
	"petpatrol/internal/ports/objectstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// API es el subconjunto del cliente S3 que usamos.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Config struct {
	Bucket   string
	Region   string
	Endpoint string // vacío = AWS
	// PublicBaseURL reemplaza https://{bucket}.s3.amazonaws.com en las URLs.
	PublicBaseURL string
	UsePathStyle  bool

	AccessKeyID     string // vacío = cadena de credenciales por defecto
	SecretAccessKey string

	UploadTimeout time.Duration
}

type Store struct {
	api     API
	bucket  string
	baseURL string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[any]
	log     logger.Logger
}

var _ objectstore.Store = (*Store)(nil)

// New arma el cliente S3 desde cfg.
func New(ctx context.Context, cfg Config, log logger.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithHTTPClient(httpclient.New(uploadTimeout(cfg) * 2)),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client, cfg, log), nil
}

func NewWithClient(api API, cfg Config, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = "https://" + cfg.Bucket + ".s3.amazonaws.com"
	}
	timeout := uploadTimeout(cfg)

	s := &Store{
		api:     api,
		bucket:  cfg.Bucket,
		baseURL: base,
		timeout: timeout,
		log:     log,
	}
	s.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "s3:" + cfg.Bucket,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("object store circuit breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return s
}

// Put sube el objeto con ACL public-read.
func (s *Store) Put(ctx context.Context, obj objectstore.Object) error {
	meta := map[string]string{"upload-id": uuid.NewString()}
	for k, v := range obj.Metadata {
		meta[k] = v
	}

	_, err := s.cb.Execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		return s.api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(obj.Key),
			Body:          bytes.NewReader(obj.Body),
			ContentLength: aws.Int64(int64(len(obj.Body))),
			ContentType:   aws.String(obj.ContentType),
			ACL:           types.ObjectCannedACLPublicRead,
			Metadata:      meta,
		})
	})
	if err != nil {
		return fmt.Errorf("s3 put %s/%s: %w", s.bucket, obj.Key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + "/" + key
}

func uploadTimeout(cfg Config) time.Duration {
	if cfg.UploadTimeout <= 0 {
		return 10 * time.Second
	}
	return cfg.UploadTimeout
}
