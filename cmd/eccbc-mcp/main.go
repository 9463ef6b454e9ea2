// ECCBC stock management server - stdio front-end.
// Serves the full tool set over the model context protocol on stdin/stdout.
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

	"github.com/xandys/eccbc-mcp/internal/domain/resources"
	"github.com/xandys/eccbc-mcp/internal/domain/tools"
	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
	"github.com/xandys/eccbc-mcp/internal/infra/config"
	"github.com/xandys/eccbc-mcp/internal/mcp"
	"github.com/xandys/eccbc-mcp/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("eccbc-mcp", flag.ContinueOnError)
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
	// Protocol traffic owns stdout; all logging goes to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		slog.Error("loading configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := catalog.NewClient(cfg.APIBaseURL)
	res := resources.NewRegistry(client)
	reg := tools.MustBuiltinRegistry(client, tools.FullProfile)

	slog.Info("starting stdio server", "upstream", cfg.APIBaseURL)
	if err := mcp.RunStdio(ctx, res, reg); err != nil {
		slog.Error("stdio server stopped", "error", err)
		return 1
	}
	return 0
}

func printHelp(out io.Writer) {
	helpText := `ECCBC stock management server (stdio)

Usage:
  eccbc-mcp [options]

Options:
  --version        Show version information
  --help           Show this help message
  --config PATH    Load configuration from a YAML file

Environment:
  ECCBC_API_BASE_URL   Upstream catalog API root

Examples:
  eccbc-mcp
  eccbc-mcp --config /etc/eccbc/config.yaml
  eccbc-mcp --version`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
