package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewOperationsCommand creates the operations command group
func NewOperationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "Inspect long-running operations",
		Long:    "Show the state and result of long-running operations",
	}

	cmd.AddCommand(newOperationsGetCommand())
	cmd.AddCommand(newOperationsResultCommand())

	return cmd
}

func newOperationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OPERATION_ID",
		Short: "Show operation state",
		Long:  "Show the current state of a long-running operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(context.Background())
			if err != nil {
				return err
			}

			state, err := client.Operations().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get operation: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(state)
			case OutputFormatYAML:
				return renderYAML(state)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Status", string(state.Status))
				_ = table.Append("Percent Complete", strconv.Itoa(state.PercentComplete))
				_ = table.Append("Created", state.CreatedTimeUTC.String())
				_ = table.Append("Last Updated", state.LastUpdatedUTC.String())

				if state.Error != nil {
					_ = table.Append("Error Code", state.Error.ErrorCode)
					_ = table.Append("Error Message", state.Error.Message)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newOperationsResultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "result OPERATION_ID",
		Short: "Show operation result",
		Long:  "Fetch the raw result of a completed long-running operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(context.Background())
			if err != nil {
				return err
			}

			result, err := client.Operations().Result(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get operation result: %w", err)
			}

			_, _ = os.Stdout.Write(result)
			_, _ = os.Stdout.WriteString("\n")

			return nil
		},
	}
}
