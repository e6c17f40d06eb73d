// Package publish uploads rendered documents to S3.
//
// Example usage:
//
//	p, err := publish.NewFromConfig(ctx, "my-bucket", "pages", "eu-west-1")
//	if err != nil {
//	    return err
//	}
//	key, err := p.Publish(ctx, "docs/card.yaml", html)
package publish

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ContentType is the content type of published objects.
const ContentType = "text/html; charset=utf-8"

// PutObjectAPI is the part of the S3 client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher stores rendered HTML under a bucket prefix.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// New creates a publisher on an existing client.
func New(client PutObjectAPI, bucket, prefix string) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: zap.NewNop(),
		now:    time.Now,
	}
}

// NewFromConfig creates a publisher from the default AWS credential chain.
// An empty region falls back to the environment and shared config.
func NewFromConfig(ctx context.Context, bucket, prefix, region string) (*Publisher, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("publish: load aws config: %w", err)
	}
	return New(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// WithLogger sets the logger used to report uploads.
func (p *Publisher) WithLogger(l *zap.Logger) *Publisher {
	p.logger = l
	return p
}

// Key returns the object key a document is published under: the prefix
// followed by the document base name with an .html extension.
func (p *Publisher) Key(doc string) string {
	base := filepath.Base(doc)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish uploads html for doc and returns the object key.
func (p *Publisher) Publish(ctx context.Context, doc, html string) (string, error) {
	if p.bucket == "" {
		return "", fmt.Errorf("publish: bucket is required")
	}
	key := p.Key(doc)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(html),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"source-document": filepath.Base(doc),
			"publish-time":    p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("publish: put s3://%s/%s: %w", p.bucket, key, err)
	}

	p.logger.Info("published document",
		zap.String("doc", doc),
		zap.String("bucket", p.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(html)),
	)
	return key, nil
}
