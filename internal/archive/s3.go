// Package archive uploads raw combat logs to S3 after ingestion.
package archive

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
)

// Archiver stores the raw text of an ingested combat log
type Archiver interface {
	Archive(ctx context.Context, matchID, combatLog string, ingestedAt time.Time) error
}

// ObjectPutter is the subset of the S3 client the archiver needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes gzip-compressed combat logs to a bucket
type S3Archiver struct {
	client  ObjectPutter
	bucket  string
	prefix  string
	timeout time.Duration
	log     *zap.Logger
}

// NewS3Archiver creates an archiver backed by a new S3 client
func NewS3Archiver(ctx context.Context, cfg config.Archive, log *zap.Logger) (*S3Archiver, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	log.Info("S3 archive configured",
		zap.String("bucket", cfg.Bucket),
		zap.String("prefix", cfg.Prefix),
		zap.String("region", cfg.Region))

	return NewS3ArchiverWithClient(s3.NewFromConfig(awsCfg, s3Opts...), cfg, log), nil
}

// NewS3ArchiverWithClient creates an archiver around an existing client
func NewS3ArchiverWithClient(client ObjectPutter, cfg config.Archive, log *zap.Logger) *S3Archiver {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &S3Archiver{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		timeout: timeout,
		log:     log,
	}
}

// ObjectKey returns <prefix>/<yyyy>/<mm>/<dd>/<matchID>.log.gz
func ObjectKey(prefix, matchID string, ingestedAt time.Time) string {
	return path.Join(prefix, ingestedAt.UTC().Format("2006/01/02"), matchID+".log.gz")
}

// Checksum returns the hex SHA-256 digest of the raw combat log
func Checksum(combatLog string) string {
	hash := sha256.Sum256([]byte(combatLog))
	return hex.EncodeToString(hash[:])
}

// Archive compresses combatLog and uploads it under ObjectKey
func (a *S3Archiver) Archive(ctx context.Context, matchID, combatLog string, ingestedAt time.Time) error {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(combatLog)); err != nil {
		return fmt.Errorf("failed to compress combat log: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip writer: %w", err)
	}

	key := ObjectKey(a.prefix, matchID, ingestedAt)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(a.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(buf.Bytes()),
		ContentLength:   aws.Int64(int64(buf.Len())),
		ContentType:     aws.String("text/plain; charset=utf-8"),
		ContentEncoding: aws.String("gzip"),
		Metadata: map[string]string{
			"sha256":   Checksum(combatLog),
			"match-id": matchID,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload combat log to s3://%s/%s: %w", a.bucket, key, err)
	}

	a.log.Debug("Combat log archived",
		zap.String("match_id", matchID),
		zap.String("key", key),
		zap.Int("compressed_bytes", buf.Len()))

	return nil
}
