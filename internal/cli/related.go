package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var relatedCmd = &cobra.Command{
	Use:   "related <fqn>",
	Short: "Render the related-tables panel for a table",
	Long: `Resolves the tables connected to the named table through foreign
keys, in both directions, and prints the panel catalogd renders for it.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the server is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !newClient().Health() {
			return fmt.Errorf("server is not healthy")
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(healthCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
	result, err := newClient().RelatedTables(args[0])
	if err != nil {
		return err
	}
	return writePanel(result)
}
