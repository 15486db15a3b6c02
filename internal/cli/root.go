package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-data/catalogd/sdk"
)

var (
	serverURL    string
	socketPath   string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Command line client for the catalogd data catalog",
	Long: `catalogctl talks to a running catalogd daemon over JSON-RPC.
It can list, inspect, store, and delete table entities, and render the
related-tables panel for any table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "json" && outputFormat != "table" {
			return fmt.Errorf("unsupported output format '%s' (json|table)", outputFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:7425", "Base URL of the catalogd server")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Unix domain socket path (overrides --server)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (json, table)")
}

func newClient() *sdk.Client {
	if socketPath != "" {
		return sdk.NewClientUnix(socketPath)
	}
	return sdk.NewClient(serverURL)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
