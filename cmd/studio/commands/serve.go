package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haivivi/studio/cmd/studio/internal/server"
	"github.com/haivivi/studio/pkg/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the modes over HTTP",
	Long: `Serve the modes over HTTP with server-sent progress events.

Endpoints:
  GET  /v1/modes            list the modes
  POST /v1/runs             run {"mode": "...", "input": "..."}
  GET  /v1/artifacts/:id    download a generated image or audio clip
  GET  /health              liveness
  GET  /metrics             Prometheus metrics

Examples:
  studio serve --addr :8080
  curl -N -d '{"mode":"story","input":"a red fox"}' localhost:8080/v1/runs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")
		ttl, _ := cmd.Flags().GetDuration("artifact-ttl")

		c, err := getContext()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		o, closeStudio, err := openStudio(ctx, c)
		if err != nil {
			return err
		}
		defer closeStudio()

		cli.PrintInfo("Listening on %s", addr)
		return server.New(o, server.Config{
			Addr:           addr,
			AllowedOrigins: origins,
			ArtifactTTL:    ttl,
		}).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origins (default all)")
	serveCmd.Flags().Duration("artifact-ttl", server.DefaultArtifactTTL, "How long generated media stays downloadable")
}
