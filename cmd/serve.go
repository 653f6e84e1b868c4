package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailbridge/mailbridge/internal/applescript"
	"github.com/mailbridge/mailbridge/internal/instrumentation"
	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/resources"
	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/internal/tools/mail_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// ServeConfig holds the assembled serve settings after flags and environment
// variables are merged. Flags win; env vars fill in what was not set.
type ServeConfig struct {
	Transport string
	HTTPAddr  string
	DebugMode bool

	// Yolo enables write tools. Default is read-only.
	Yolo bool

	// ToolInstructions is extra text appended to every tool description.
	ToolInstructions string

	// ScriptTimeout bounds one osascript invocation. Zero uses the
	// executor default.
	ScriptTimeout time.Duration

	// ContentLimit truncates message bodies in previews. Zero uses the
	// mail package default.
	ContentLimit int

	Metrics MetricsConfig
}

func newServeCmd() *cobra.Command {
	var (
		debugMode        bool
		transport        string
		httpAddr         string
		yolo             bool
		toolInstructions string
		scriptTimeout    time.Duration
		contentLimit     int
		metricsEnabled   bool
		metricsAddr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Apple Mail tools
for AI assistants. Mail.app must be running on this machine; all operations
go through AppleScript via osascript.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode, providing only safe operations.
  Use --yolo to enable write operations (sending mail, deleting messages, etc.)

Tool Instructions:
  Extra guidance can be appended to every tool description with
  --tool-instructions or the MAILBRIDGE_TOOL_INSTRUCTIONS env var, for
  example "Only operate on the Work account".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := ServeConfig{
				Transport:        transport,
				HTTPAddr:         httpAddr,
				DebugMode:        debugMode,
				Yolo:             yolo,
				ToolInstructions: toolInstructions,
				ScriptTimeout:    scriptTimeout,
				ContentLimit:     contentLimit,
				Metrics: MetricsConfig{
					Enabled: metricsEnabled,
					Addr:    metricsAddr,
				},
			}
			loadServeEnvVars(cmd, &config)
			return runServe(config)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http. Can also use MAILBRIDGE_TRANSPORT env var.")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (sending mail, deleting messages, etc.). Default is read-only mode.")
	cmd.Flags().StringVar(&toolInstructions, "tool-instructions", "", "Extra instructions appended to every tool description. Can also use MAILBRIDGE_TOOL_INSTRUCTIONS env var.")
	cmd.Flags().DurationVar(&scriptTimeout, "script-timeout", 0, "Wall-clock limit for one AppleScript execution (e.g. 90s). Can also use MAILBRIDGE_SCRIPT_TIMEOUT env var. Default: 120s.")
	cmd.Flags().IntVar(&contentLimit, "content-limit", 0, "Character limit for message body previews; 0 disables truncation. Can also use MAILBRIDGE_CONTENT_LIMIT env var. Default: 300.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// loadServeEnvVars fills in serve settings from environment variables.
// Environment variables only apply when the corresponding flag was not
// explicitly set.
func loadServeEnvVars(cmd *cobra.Command, config *ServeConfig) {
	if !cmd.Flags().Changed("transport") {
		if transport := os.Getenv("MAILBRIDGE_TRANSPORT"); transport != "" {
			config.Transport = transport
		}
	}

	if !cmd.Flags().Changed("tool-instructions") {
		if instructions := os.Getenv("MAILBRIDGE_TOOL_INSTRUCTIONS"); instructions != "" {
			config.ToolInstructions = instructions
		}
	}

	if !cmd.Flags().Changed("script-timeout") {
		if raw := os.Getenv("MAILBRIDGE_SCRIPT_TIMEOUT"); raw != "" {
			if d, err := time.ParseDuration(raw); err == nil && d > 0 {
				config.ScriptTimeout = d
			} else {
				log.Printf("Warning: invalid MAILBRIDGE_SCRIPT_TIMEOUT value %q (expected a duration like 90s), using default", raw)
			}
		}
	}

	// An explicit zero (flag or env) disables truncation; an unset limit
	// keeps the mail package default.
	if cmd.Flags().Changed("content-limit") {
		if config.ContentLimit == 0 {
			config.ContentLimit = mail.NoContentLimit
		}
	} else if raw := os.Getenv("MAILBRIDGE_CONTENT_LIMIT"); raw != "" {
		var limit int
		if _, err := fmt.Sscanf(raw, "%d", &limit); err == nil && limit >= 0 {
			if limit == 0 {
				config.ContentLimit = mail.NoContentLimit
			} else {
				config.ContentLimit = limit
			}
		}
	}

	if !cmd.Flags().Changed("metrics-enabled") {
		if os.Getenv("METRICS_ENABLED") == "false" {
			config.Metrics.Enabled = false
		}
	}
	if !cmd.Flags().Changed("metrics-addr") {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			config.Metrics.Addr = addr
		}
	}
}

func runServe(config ServeConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Route logs to stderr so the stdio transport keeps stdout clean.
	logLevel := slog.LevelInfo
	if config.DebugMode {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if config.Transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if config.Transport != "stdio" && config.Metrics.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    config.Metrics.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server failed: %v", err)
			}
		}()
		log.Printf("Metrics server starting on %s", metricsServer.Addr())
	}

	// Assemble the Mail client: osascript runner wrapped by the script
	// generator.
	runner := applescript.NewRunner(config.ScriptTimeout, logger)
	mailClient := mail.NewClient(runner, mail.Options{ContentLimit: config.ContentLimit}, logger)

	serverContext := server.NewServerContext(shutdownCtx, mailClient)

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if config.Transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("mailbridge", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	// readOnly is the inverse of yolo
	readOnly := !config.Yolo

	// Log the mode for visibility (only for non-stdio transports)
	if config.Transport != "stdio" {
		if readOnly {
			log.Println("Starting server in READ-ONLY mode (use --yolo to enable write operations)")
		} else {
			log.Println("Starting server with WRITE operations enabled (--yolo flag is set)")
		}
	}

	// Register all tools and resources
	if err := registerAllTools(mcpSrv, serverContext, readOnly, config.ToolInstructions); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting mailbridge MCP server with %s transport...\n", config.Transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, config)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", config.Transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool, instructions string) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Mail",
			register: func() error {
				return mail_tools.RegisterMailTools(mcpSrv, ctx, readOnly, instructions)
			},
		},
		{
			name: "Mail Resources",
			register: func() error {
				return resources.RegisterMailResources(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

// runStreamableHTTPServer serves the MCP endpoint at /mcp alongside health
// endpoints on the same listener.
func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, config ServeConfig) error {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv)

	healthChecker := server.NewHealthChecker(serverContext)
	healthChecker.SetReady(true)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	healthChecker.RegisterHealthEndpoints(mux)

	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Streamable HTTP server starting on %s\n", config.HTTPAddr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if config.Metrics.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", config.Metrics.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}
