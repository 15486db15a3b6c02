package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-data/catalogd/sdk"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Manage table entities",
}

var tablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List table entities",
	RunE:  runTablesList,
}

var tablesGetCmd = &cobra.Command{
	Use:   "get <fqn>",
	Short: "Show a table entity by fully qualified name",
	Args:  cobra.ExactArgs(1),
	RunE:  runTablesGet,
}

var tablesPutCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Create or update a table entity from a JSON document",
	Long: `Reads a table entity as JSON from the given file, or from stdin
when no file is named, and stores it in the catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTablesPut,
}

var tablesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a table entity by UUID",
	Args:  cobra.ExactArgs(1),
	RunE:  runTablesDelete,
}

var (
	tablesListLimit int
	tablesListAfter string
)

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.AddCommand(tablesListCmd)
	tablesCmd.AddCommand(tablesGetCmd)
	tablesCmd.AddCommand(tablesPutCmd)
	tablesCmd.AddCommand(tablesDeleteCmd)

	tablesListCmd.Flags().IntVar(&tablesListLimit, "limit", 0, "Maximum number of tables per page")
	tablesListCmd.Flags().StringVar(&tablesListAfter, "after", "", "Pagination cursor from a previous page")
}

func runTablesList(cmd *cobra.Command, args []string) error {
	list, err := newClient().ListTables(tablesListLimit, tablesListAfter)
	if err != nil {
		return err
	}
	return writeTableList(list)
}

func runTablesGet(cmd *cobra.Command, args []string) error {
	table, err := newClient().GetTableByName(args[0])
	if err != nil {
		return err
	}
	return writeTable(table)
}

func runTablesPut(cmd *cobra.Command, args []string) error {
	var (
		doc []byte
		err error
	)
	if len(args) == 1 {
		doc, err = os.ReadFile(args[0])
	} else {
		doc, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read table document: %w", err)
	}

	var table sdk.Table
	if err := json.Unmarshal(doc, &table); err != nil {
		return fmt.Errorf("failed to parse table document: %w", err)
	}

	stored, err := newClient().PutTable(table)
	if err != nil {
		return err
	}
	return writeTable(stored)
}

func runTablesDelete(cmd *cobra.Command, args []string) error {
	if err := newClient().DeleteTable(args[0]); err != nil {
		return err
	}
	if outputFormat == "json" {
		return writeJSON(map[string]bool{"deleted": true})
	}
	fmt.Println("deleted")
	return nil
}
