// Package publish uploads run outputs to S3-compatible object storage.
package publish

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/site-metrics/internal/config"
)

const csvContentType = "text/csv"

// PutObjectAPI is the part of the S3 client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads files under a key prefix of one bucket.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// New creates a Publisher from the output S3 settings using the default AWS
// credential chain.
func New(ctx context.Context, cfg config.S3Config, optFns ...func(*awsconfig.LoadOptions) error) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, eris.New("publish: s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := append([]func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}, optFns...)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, eris.Wrap(err, "publish: load aws config")
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient creates a Publisher around an existing client.
func NewWithClient(client PutObjectAPI, bucket, prefix string) *Publisher {
	return &Publisher{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for a local file.
func (p *Publisher) Key(file string) string {
	return path.Join(p.prefix, filepath.Base(file))
}

// Publish uploads each file and returns the object keys written. It stops at
// the first failure.
func (p *Publisher) Publish(ctx context.Context, files []string) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, file := range files {
		key := p.Key(file)
		if err := p.put(ctx, file, key); err != nil {
			return keys, err
		}
		zap.L().Info("publish: uploaded",
			zap.String("file", file),
			zap.String("bucket", p.bucket),
			zap.String("key", key),
		)
		keys = append(keys, key)
	}
	return keys, nil
}

func (p *Publisher) put(ctx context.Context, file, key string) error {
	f, err := os.Open(file)
	if err != nil {
		return eris.Wrapf(err, "publish: open %s", file)
	}
	defer f.Close() //nolint:errcheck

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(csvContentType),
	})
	if err != nil {
		return eris.Wrapf(err, "publish: put s3://%s/%s", p.bucket, key)
	}
	return nil
}
