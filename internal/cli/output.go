package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/meridian-data/catalogd/sdk"
)

func writeJSON(data any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeTableList(list *sdk.TableList) error {
	if outputFormat == "json" {
		return writeJSON(list)
	}
	if len(list.Tables) == 0 {
		fmt.Println("No tables found.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "FQN", "Type", "Columns", "Version"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, t := range list.Tables {
		table.Append([]string{
			t.Name,
			t.FullyQualifiedName,
			t.TableType,
			fmt.Sprintf("%d", len(t.Columns)),
			fmt.Sprintf("%d", t.Version),
		})
	}
	table.Render()

	if list.After != "" {
		fmt.Printf("\n%d total, continue with --after %s\n", list.Total, list.After)
	}
	return nil
}

func writeTable(t *sdk.Table) error {
	if outputFormat == "json" {
		return writeJSON(t)
	}

	fmt.Printf("%s (%s)\n", t.FullyQualifiedName, t.TableType)
	if t.Description != nil {
		fmt.Println(*t.Description)
	}
	if t.Owner != nil {
		fmt.Printf("Owner: %s (%s)\n", t.Owner.Name, t.Owner.Type)
	}

	cols := tablewriter.NewWriter(os.Stdout)
	cols.SetHeader([]string{"#", "Column", "Type", "Constraint"})
	cols.SetBorder(false)
	cols.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	cols.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, c := range t.Columns {
		constraint := ""
		if c.Constraint != nil {
			constraint = *c.Constraint
		}
		cols.Append([]string{
			fmt.Sprintf("%d", c.OrdinalPosition),
			c.Name,
			c.DataType,
			constraint,
		})
	}
	cols.Render()
	return nil
}

func writePanel(result *sdk.RelatedTablesResult) error {
	if outputFormat == "json" {
		return writeJSON(result)
	}

	fmt.Println(result.Panel.Header)
	for _, row := range result.Panel.Rows {
		fmt.Printf("  %s\n", row)
	}
	if len(result.Panel.Rows) == 0 {
		fmt.Println("  (none)")
	}
	return nil
}
