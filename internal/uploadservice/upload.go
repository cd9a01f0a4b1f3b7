package uploadservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sushihentaime/inkpost/internal/common"
)

const (
	DefaultURLExpiry = 1000 * time.Second
	imageContentType = "image/jpeg"
)

// Presigner is the part of the S3 presign client the service needs.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type UploadService struct {
	p      Presigner
	bucket string
	expiry time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewPresigner builds an S3 presign client. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewPresigner(ctx context.Context, cfg Config) (*s3.PresignClient, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}

	return s3.NewPresignClient(s3.NewFromConfig(awsCfg)), nil
}

func NewUploadService(p Presigner, bucket string, expiry time.Duration, logger *slog.Logger) *UploadService {
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}

	return &UploadService{
		p:      p,
		bucket: bucket,
		expiry: expiry,
		logger: logger,
		now:    time.Now,
	}
}

// IssueUploadURL returns a presigned PUT URL for a new jpeg object. Every call
// names a fresh object.
func (s *UploadService) IssueUploadURL(ctx context.Context) (string, error) {
	key := s.objectKey()

	req, err := s.p.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(imageContentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", common.UpstreamError{Op: "presign upload url", Err: err}
	}

	s.logger.Debug("issued upload url", slog.String("key", key))

	return req.URL, nil
}

func (s *UploadService) objectKey() string {
	return fmt.Sprintf("%s-%d.jpeg", uuid.NewString(), s.now().UnixMilli())
}
