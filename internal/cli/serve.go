// internal/cli/serve.go
package lrmeval

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/lrmeval/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveNoBuild bool
	servePort    int
	serveHost    string
)

// runServer is swapped in tests.
var runServer = func(ctx context.Context, srv *server.Server) error {
	return srv.ListenAndServe(ctx)
}

// serveCmd implements 'serve', which builds the site and previews it locally
// under the configured base path.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and preview it over HTTP",
	Long:  `The 'serve' command builds the static export (unless --no-build is given) and serves it under the configured base path, with /healthz and Prometheus /metrics endpoints. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig(cmd)
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		if !serveNoBuild {
			res, err := runBuild(cmd, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d files into %s\n", len(res.Files), cfg.OutputPath())
		}

		srv, err := server.New(server.Config{
			Dir:      cfg.OutputPath(),
			BasePath: cfg.SiteBasePath(),
			Host:     serveHost,
			Port:     cfg.ListenPort(),
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, srv)
	},
}

func init() {
	addBuildFlags(serveCmd)
	serveCmd.Flags().BoolVar(&serveNoBuild, "no-build", false, "serve the existing output directory without rebuilding")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default 3000)")
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "listen address")
	rootCmd.AddCommand(serveCmd)
}
