package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raptor-dev/raptor/pkg/render"
	"github.com/raptor-dev/raptor/pkg/server"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr  string
		docs  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered documents over HTTP",
		Long: `Start the render server.

Documents can be posted to /render, fetched from the docs
directory under /docs/{name}, or rendered over the /ws
WebSocket. With --watch, changes in the docs directory are
pushed to WebSocket clients as reload messages.

Examples:
  raptor serve
  raptor serve --addr=:8080 --docs=site --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			override(cmd, overrides, "addr", "server.addr", addr)
			override(cmd, overrides, "docs", "server.docs_dir", docs)
			override(cmd, overrides, "watch", "server.watch", watch)

			cfg, logger, err := a.setup(cmd.ErrOrStderr(), overrides)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv := server.New(server.Config{
				Addr:        cfg.Server.Addr,
				DocsDir:     cfg.Server.DocsDir,
				Watch:       cfg.Server.Watch,
				ReadTimeout: cfg.Server.ReadTimeout,
				MetricsPath: cfg.Server.MetricsPath,
				MaxNodes:    cfg.Server.MaxNodes,
				Render: render.RendererConfig{
					Pretty: cfg.Render.Pretty,
					Indent: cfg.Render.Indent,
				},
			}, server.WithLogger(logger))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd.ErrOrStderr(), "Serving %s on http://%s", cfg.Server.DocsDir, cfg.Server.Addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from raptor.yaml)")
	cmd.Flags().StringVarP(&docs, "docs", "d", "", "Documents directory")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Push reloads when documents change")

	return cmd
}
