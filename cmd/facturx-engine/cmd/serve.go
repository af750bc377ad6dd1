package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-engine/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for assembling compliant invoices.

The API provides endpoints for:
  - POST /api/v1/serialize - Serialize an invoice document to XML
  - POST /api/v1/embed     - Embed a payload into a rendered PDF
  - POST /api/v1/generate  - Serialize and embed in one step
  - POST /api/v1/inspect   - Report on a finished container
  - GET  /health           - Health check

Examples:
  # Start server on default port
  facturx-engine serve

  # Start on a custom port
  facturx-engine serve --address :9090

  # Start in debug mode
  facturx-engine serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default \":8080\", env FACTURX_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Fall back to environment variable if flag not set
	if serverAddr == "" {
		serverAddr = os.Getenv("FACTURX_ADDRESS")
	}
	if serverAddr == "" {
		serverAddr = ":8080"
	}

	config := &server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}

	srv := server.NewServer(config)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)

	return srv.Run()
}
