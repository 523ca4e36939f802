// Copyright 2026 Lakedeck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// lakedeck-mcp is an MCP (Model Context Protocol) server exposing a
// Databricks workspace to LLM clients: Lakeview dashboard building with
// automatic widget specification and layout, SQL execution, Unity
// Catalog browsing, and job monitoring.
//
// It communicates with MCP clients over stdio (JSON-RPC) and with the
// workspace over its REST API.
//
// Usage:
//
//	lakedeck-mcp --host https://example.cloud.databricks.com --token dapi...
//
// Claude Desktop configuration (claude_desktop_config.json):
//
//	{
//	  "mcpServers": {
//	    "lakedeck": {
//	      "command": "/path/to/lakedeck-mcp",
//	      "env": {
//	        "DATABRICKS_HOST": "https://example.cloud.databricks.com",
//	        "DATABRICKS_TOKEN": "dapi..."
//	      }
//	    }
//	  }
//	}
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lakedeck/lakedeck/internal/version"
	"github.com/lakedeck/lakedeck/pkg/databricks"
	"github.com/lakedeck/lakedeck/pkg/mcp/server"
	"github.com/lakedeck/lakedeck/pkg/mcp/transport"
	"github.com/lakedeck/lakedeck/pkg/prompts"
	"github.com/lakedeck/lakedeck/pkg/tools"
)

const serverName = "lakedeck-mcp"

const serverInstructions = `This server manages Databricks Lakeview dashboards and the data behind them.
Explore data with the Unity Catalog tools and execute_dbsql, then build
dashboards with create_lakeview_dashboard: pass datasets (name + SQL) and
simplified widget configurations, and the server generates full Lakeview
widget specifications and arranges them on the canvas. Use the
build_lakeview_dashboard prompt for the recommended workflow.`

var rootCmd = &cobra.Command{
	Use:     serverName,
	Short:   "MCP server for Databricks Lakeview dashboards",
	Long:    `lakedeck-mcp serves Databricks workspace operations over the Model Context Protocol: Lakeview dashboard creation with widget building and auto-layout, SQL warehouses, Unity Catalog, and jobs.`,
	Version: version.Get(),
	RunE:    run,
}

func init() {
	rootCmd.Flags().String("host", "", "Databricks workspace URL")
	rootCmd.Flags().String("token", "", "Databricks personal access token")
	rootCmd.Flags().String("warehouse-id", "", "Default SQL warehouse for queries and dashboards")
	rootCmd.Flags().String("log-file", "", "Log file path (defaults to stderr)")
	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")

	_ = viper.BindPFlag("host", rootCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("token", rootCmd.Flags().Lookup("token"))
	_ = viper.BindPFlag("warehouse_id", rootCmd.Flags().Lookup("warehouse-id"))
	_ = viper.BindPFlag("log_file", rootCmd.Flags().Lookup("log-file"))
	_ = viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))

	// DATABRICKS_HOST, DATABRICKS_TOKEN, DATABRICKS_WAREHOUSE_ID, ...
	viper.SetEnvPrefix("databricks")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	// Logging must never touch stdout: that's the MCP transport.
	logger, err := buildLogger(viper.GetString("log_file"), viper.GetString("log_level"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	host := viper.GetString("host")
	token := viper.GetString("token")
	if host == "" || token == "" {
		return fmt.Errorf("workspace host and token are required (--host/--token or DATABRICKS_HOST/DATABRICKS_TOKEN)")
	}

	logger.Info("starting lakedeck-mcp server",
		zap.String("host", host),
		zap.String("version", version.Get()),
	)

	client := databricks.NewClient(databricks.Config{Host: host, Token: token})
	toolProvider := tools.NewProvider(client, tools.Config{
		WarehouseID: viper.GetString("warehouse_id"),
	}, logger)

	mcpServer := server.NewMCPServer(serverName, version.Get(), logger,
		server.WithToolProvider(toolProvider),
		server.WithPromptProvider(prompts.NewProvider()),
		server.WithInstructions(serverInstructions),
	)

	stdioTransport := transport.NewStdioServerTransport(os.Stdin, os.Stdout)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	logger.Info("MCP server ready, awaiting client connections on stdio")
	if err := mcpServer.Serve(ctx, stdioTransport); err != nil {
		if ctx.Err() != nil {
			logger.Info("server stopped gracefully")
			return nil
		}
		logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}

// buildLogger creates a zap logger writing to a file, or stderr when no
// file is given. stdout is reserved for the stdio transport.
func buildLogger(logFile, logLevel string) (*zap.Logger, error) {
	level := parseLogLevel(logLevel)

	var output zapcore.WriteSyncer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 -- log file path from CLI flag
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", logFile, err)
		}
		output = zapcore.AddSync(f)
	} else {
		output = zapcore.AddSync(os.Stderr)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		output,
		level,
	)

	return zap.New(core), nil
}

// parseLogLevel converts a string log level to a zapcore.Level.
func parseLogLevel(logLevel string) zapcore.Level {
	switch logLevel {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
