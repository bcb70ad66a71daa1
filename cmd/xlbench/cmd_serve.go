package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tjc-lp/xlbench/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port int
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved benchmark runs over HTTP",
		Long: `Serve starts a local web server that lists saved benchmark records
and renders each one as an HTML report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommandE(port, dir)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	cmd.Flags().StringVar(&dir, "results-dir", "results", "directory holding benchmark records")
	return cmd
}

func serveCommandE(port int, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("results directory %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := webserver.New(webserver.Config{Port: port, ResultsDir: dir})
	fmt.Printf("Serving %s on http://127.0.0.1:%d (Ctrl+C to stop)\n", dir, port)
	return srv.ListenAndServe(ctx)
}
