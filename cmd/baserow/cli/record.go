package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cedricziel/baserow-go"
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Create, read, update and delete rows",
	}

	cmd.AddCommand(newRecordGetCmd())
	cmd.AddCommand(newRecordCreateCmd())
	cmd.AddCommand(newRecordUpdateCmd())
	cmd.AddCommand(newRecordDeleteCmd())

	return cmd
}

// recordFlags are shared by all record subcommands.
type recordFlags struct {
	output         string
	userFieldNames bool
	autoMap        bool
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "json", "Output format: json or yaml")
	cmd.Flags().BoolVar(&f.userFieldNames, "user-field-names", false, "Ask the server for human-readable field names")
	cmd.Flags().BoolVar(&f.autoMap, "auto-map", false, "Fetch the table schema and translate field keys client-side")
}

// recordTable resolves the table handle and options for one invocation.
func (f *recordFlags) recordTable(cmd *cobra.Command, tableID int64) (*baserow.Table, *baserow.RecordOptions, error) {
	client, err := authedClient(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	table := client.Table(tableID)
	if f.autoMap {
		if _, err := table.AutoMap(cmd.Context()); err != nil {
			return nil, nil, fmt.Errorf("map table %d: %w", tableID, err)
		}
	}
	var opts *baserow.RecordOptions
	if cmd.Flags().Changed("user-field-names") {
		opts = &baserow.RecordOptions{UserFieldNames: f.userFieldNames}
	}
	return table, opts, nil
}

func parseRowID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid row id %q", arg)
	}
	return id, nil
}

func parseRecordData(data string) (baserow.Record, error) {
	var record baserow.Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("invalid --data JSON: %w", err)
	}
	return record, nil
}

// ---------- record get ----------

func newRecordGetCmd() *cobra.Command {
	var flags recordFlags

	cmd := &cobra.Command{
		Use:     "get <table-id> <row-id>",
		Short:   "Fetch a single row",
		Args:    cobra.ExactArgs(2),
		Example: `  baserow record get 1234 7 --auto-map`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tableID, err := parseTableID(args[0])
			if err != nil {
				return err
			}
			rowID, err := parseRowID(args[1])
			if err != nil {
				return err
			}

			table, opts, err := flags.recordTable(cmd, tableID)
			if err != nil {
				return err
			}
			record, err := table.GetOne(cmd.Context(), rowID, opts)
			if err != nil {
				return fmt.Errorf("get row %d: %w", rowID, err)
			}
			return render(cmd.OutOrStdout(), record, flags.output)
		},
	}

	flags.register(cmd)
	return cmd
}

// ---------- record create ----------

func newRecordCreateCmd() *cobra.Command {
	var (
		flags recordFlags
		data  string
	)

	cmd := &cobra.Command{
		Use:     "create <table-id>",
		Short:   "Create a row",
		Args:    cobra.ExactArgs(1),
		Example: `  baserow record create 1234 --auto-map --data '{"Name": "Ada", "Age": 36}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tableID, err := parseTableID(args[0])
			if err != nil {
				return err
			}
			record, err := parseRecordData(data)
			if err != nil {
				return err
			}

			table, opts, err := flags.recordTable(cmd, tableID)
			if err != nil {
				return err
			}
			created, err := table.Create(cmd.Context(), record, opts)
			if err != nil {
				return fmt.Errorf("create row: %w", err)
			}
			return render(cmd.OutOrStdout(), created, flags.output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&data, "data", "", "Row contents as a JSON object (required)")
	cmd.MarkFlagRequired("data")
	return cmd
}

// ---------- record update ----------

func newRecordUpdateCmd() *cobra.Command {
	var (
		flags recordFlags
		data  string
	)

	cmd := &cobra.Command{
		Use:     "update <table-id> <row-id>",
		Short:   "Update a row",
		Args:    cobra.ExactArgs(2),
		Example: `  baserow record update 1234 7 --auto-map --data '{"Age": 37}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tableID, err := parseTableID(args[0])
			if err != nil {
				return err
			}
			rowID, err := parseRowID(args[1])
			if err != nil {
				return err
			}
			record, err := parseRecordData(data)
			if err != nil {
				return err
			}

			table, opts, err := flags.recordTable(cmd, tableID)
			if err != nil {
				return err
			}
			updated, err := table.Update(cmd.Context(), rowID, record, opts)
			if err != nil {
				return fmt.Errorf("update row %d: %w", rowID, err)
			}
			return render(cmd.OutOrStdout(), updated, flags.output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&data, "data", "", "Fields to change as a JSON object (required)")
	cmd.MarkFlagRequired("data")
	return cmd
}

// ---------- record delete ----------

func newRecordDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <table-id> <row-id>",
		Short:   "Delete a row",
		Args:    cobra.ExactArgs(2),
		Example: `  baserow record delete 1234 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tableID, err := parseTableID(args[0])
			if err != nil {
				return err
			}
			rowID, err := parseRowID(args[1])
			if err != nil {
				return err
			}

			client, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.Table(tableID).Delete(cmd.Context(), rowID); err != nil {
				return fmt.Errorf("delete row %d: %w", rowID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted row %d from table %d\n", rowID, tableID)
			return nil
		},
	}

	return cmd
}
