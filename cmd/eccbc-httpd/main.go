// ECCBC stock management server - HTTP front-end.
// Serves the reduced tool profile over REST-style endpoints plus a protocol
// dispatch endpoint at POST /mcp.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
	"github.com/xandys/eccbc-mcp/internal/infra/config"
	"github.com/xandys/eccbc-mcp/internal/server"
	"github.com/xandys/eccbc-mcp/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("eccbc-httpd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "", "Path to a YAML configuration file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	return serve(*configPath)
}

func serve(configPath string) int {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		slog.Error("loading configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverCfg := server.DefaultConfig()
	serverCfg.Host = cfg.HTTPHost
	serverCfg.Port = cfg.HTTPPort

	srv := server.NewServer(catalog.NewClient(cfg.APIBaseURL), serverCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("HTTP server stopped", "error", err)
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
			return 1
		}
	}
	return 0
}

func printHelp(out io.Writer) {
	helpText := `ECCBC stock management server (HTTP)

Usage:
  eccbc-httpd [options]

Options:
  --version        Show version information
  --help           Show this help message
  --config PATH    Load configuration from a YAML file

Environment:
  ECCBC_API_BASE_URL   Upstream catalog API root
  ECCBC_HTTP_HOST      Listen address
  ECCBC_HTTP_PORT      Listen port

Examples:
  eccbc-httpd
  eccbc-httpd --config /etc/eccbc/config.yaml
  ECCBC_HTTP_PORT=9090 eccbc-httpd`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
