package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raptor-dev/raptor/internal/config"
	"github.com/raptor-dev/raptor/internal/errors"
	"github.com/raptor-dev/raptor/pkg/engine"
	"github.com/raptor-dev/raptor/pkg/render"
	"github.com/raptor-dev/raptor/pkg/vtree"
)

func renderCmd(a *app) *cobra.Command {
	var (
		pretty bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a tree document to HTML",
		Long: `Render a YAML or JSON tree document to HTML.

The document is validated, built and serialized. Output goes to
stdout unless --out is given.

Examples:
  raptor render docs/card.yaml
  raptor render docs/card.yaml --pretty --out card.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			override(cmd, overrides, "pretty", "render.pretty", pretty)

			cfg, logger, err := a.setup(cmd.ErrOrStderr(), overrides)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			html, err := renderFile(cfg, args[0])
			if err != nil {
				return err
			}
			logger.Debug("rendered document", zap.String("doc", args[0]), zap.Int("bytes", len(html)))

			if out == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), html+"\n")
				return err
			}
			if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
				return errors.Newf(errors.CategoryCLI, "write %s: %v", out, err)
			}
			success(cmd.ErrOrStderr(), "Rendered %s to %s", args[0], out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the HTML output")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write HTML to a file instead of stdout")

	return cmd
}

// renderFile loads and renders the document at path.
func renderFile(cfg *config.Config, path string) (string, error) {
	doc, err := vtree.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.CategoryCLI, "document %s not found", path).Wrap(err)
		}
		return "", errors.FromError(err)
	}
	html, err := doc.Render(render.NewRenderer(render.RendererConfig{
		Pretty: cfg.Render.Pretty,
		Indent: cfg.Render.Indent,
	}), engine.NodeLimit(cfg.Server.MaxNodes))
	if err != nil {
		return "", errors.FromError(err)
	}
	return html, nil
}
