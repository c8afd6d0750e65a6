package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFieldsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fields <table-id>",
		Short: "Show the schema of a table",
		Args:  cobra.ExactArgs(1),
		Example: `  baserow fields 1234
  baserow fields 1234 -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tableID, err := parseTableID(args[0])
			if err != nil {
				return err
			}
			return runFields(cmd, tableID, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml")

	return cmd
}

func runFields(cmd *cobra.Command, tableID int64, output string) error {
	client, err := authedClient(cmd.Context())
	if err != nil {
		return err
	}

	fields, err := client.TableFields(cmd.Context(), tableID)
	if err != nil {
		return fmt.Errorf("fetch fields for table %d: %w", tableID, err)
	}

	if output != "table" {
		return render(cmd.OutOrStdout(), fields, output)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tPRIMARY\tREAD-ONLY")
	for _, f := range fields {
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%v\n", f.ID, f.Name, f.Type, f.Primary, f.ReadOnly)
	}
	return w.Flush()
}
