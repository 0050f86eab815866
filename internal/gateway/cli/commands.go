// Package cli provides the skycast command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Denis-Chistyakov/Skycast/internal/version"
)

var (
	// Global flags
	debug bool

	// Serve flags
	serveTransport string
	servePort      int
	serveOps       bool
)

// RootCmd represents the base command
var RootCmd = &cobra.Command{
	Use:   "skycast",
	Short: "Skycast - OpenWeatherMap MCP server",
	Long: `Skycast exposes weather lookups (current conditions, forecasts, alerts,
city lookup) as MCP tools backed by the OpenWeatherMap APIs.

Requires an OpenWeatherMap API key via OPENWEATHER_API_KEY or the
weather.api_key config entry.`,
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Skycast v%s\n", version.Version)
		fmt.Printf("Build: %s\n", version.BuildTime)
		fmt.Printf("Commit: %s\n", version.GitCommit)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Skycast MCP server",
	Long: `Start the MCP server on the configured transport.

stdio (default) speaks the protocol over stdin/stdout for MCP clients like
Cursor and Claude Desktop; sse serves it over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := serveOverrides{
			opsEnabled: serveOps,
		}
		if cmd.Flags().Changed("transport") {
			overrides.transport = serveTransport
		}
		if cmd.Flags().Changed("port") {
			overrides.port = servePort
		}
		return runServe(overrides)
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "MCP transport: stdio or sse")
	serveCmd.Flags().IntVar(&servePort, "port", 8090, "listen port for the sse transport")
	serveCmd.Flags().BoolVar(&serveOps, "ops", false, "enable the ops HTTP server")

	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(serveCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
