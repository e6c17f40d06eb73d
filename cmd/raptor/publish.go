package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raptor-dev/raptor/internal/errors"
	"github.com/raptor-dev/raptor/pkg/publish"
)

// publisher is the part of publish.Publisher the command uses.
type publisher interface {
	Publish(ctx context.Context, doc, html string) (string, error)
}

// newPublisher creates the S3 publisher. Replaced in tests.
var newPublisher = func(ctx context.Context, bucket, prefix, region string, logger *zap.Logger) (publisher, error) {
	p, err := publish.NewFromConfig(ctx, bucket, prefix, region)
	if err != nil {
		return nil, err
	}
	return p.WithLogger(logger), nil
}

func publishCmd(a *app) *cobra.Command {
	var (
		bucket string
		prefix string
		region string
	)

	cmd := &cobra.Command{
		Use:   "publish <document>",
		Short: "Render a document and upload it to S3",
		Long: `Render a tree document and store the HTML in an S3 bucket.

The object key is the prefix followed by the document name with
an .html extension. Credentials come from the default AWS chain.

Examples:
  raptor publish docs/card.yaml --bucket my-site
  raptor publish docs/card.yaml --bucket my-site --prefix pages --region eu-west-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			override(cmd, overrides, "bucket", "publish.bucket", bucket)
			override(cmd, overrides, "prefix", "publish.prefix", prefix)
			override(cmd, overrides, "region", "publish.region", region)

			cfg, logger, err := a.setup(cmd.ErrOrStderr(), overrides)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cfg.Publish.Bucket == "" {
				return errors.New(errors.CodeMissingArgument).
					WithDetail("No bucket configured.").
					WithSuggestion("Pass --bucket or set publish.bucket in raptor.yaml")
			}

			html, err := renderFile(cfg, args[0])
			if err != nil {
				return err
			}

			p, err := newPublisher(cmd.Context(), cfg.Publish.Bucket, cfg.Publish.Prefix, cfg.Publish.Region, logger)
			if err != nil {
				return errors.New(errors.CodeUploadFailed).Wrap(err)
			}
			key, err := p.Publish(cmd.Context(), args[0], html)
			if err != nil {
				return errors.New(errors.CodeUploadFailed).Wrap(err)
			}

			success(cmd.ErrOrStderr(), "Published %s", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s\n", cfg.Publish.Bucket, key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Target bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from the environment)")

	return cmd
}
