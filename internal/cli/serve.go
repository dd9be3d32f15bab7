package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mark-chris/prodcat/internal/httpapi"
	"github.com/mark-chris/prodcat/internal/keywords"
	"github.com/mark-chris/prodcat/internal/mcp"
)

// Transports
const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

var (
	serveTransport string
	servePort      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP or HTTP server",
	Long: `Start a server over the catalog.

The stdio transport speaks the Model Context Protocol (MCP) on stdin/stdout
and exposes the catalog_search and catalog_keywords tools to AI assistants.
The http transport serves the REST API and Prometheus metrics.

Examples:
  # MCP server for an AI assistant
  prodcat serve --transport stdio

  # HTTP API on a custom port
  prodcat serve --transport http --port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", transportStdio,
		"Transport: stdio (MCP) or http")
	serveCmd.Flags().IntVar(&servePort, "port", 0,
		"HTTP port (default: http.port from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	strategy, err := keywords.ParseStrategy(cfg.Keywords.Strategy)
	if err != nil {
		return err
	}

	switch serveTransport {
	case transportStdio:
		srv := mcp.NewServer(cat, extractor, mcp.Options{
			Threshold:   cfg.SearchThreshold(),
			Limit:       cfg.Search.Limit,
			Strategy:    strategy,
			MaxKeywords: cfg.Keywords.MaxResults,
		}, zlog)
		zlog.Info("Starting MCP server on stdio")
		return srv.ServeStdio(ctx, os.Stdin, os.Stdout)

	case transportHTTP:
		httpCfg := cfg.HTTP
		if servePort > 0 {
			httpCfg.Port = servePort
		}
		srv := httpapi.NewServer(cat, extractor, httpapi.Options{
			Threshold:   cfg.SearchThreshold(),
			Limit:       cfg.Search.Limit,
			Strategy:    strategy,
			MaxKeywords: cfg.Keywords.MaxResults,
		}, zlog)
		zlog.Info("Starting HTTP API", zap.Int("port", httpCfg.Port))
		return httpapi.Run(ctx, httpCfg, srv.Routes(), zlog)

	default:
		return fmt.Errorf("unknown transport %q (expected stdio or http)", serveTransport)
	}
}
