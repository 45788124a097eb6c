package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewGitCommand creates the git command group
func NewGitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git",
		Short: "Inspect workspace git integration",
		Long:  "Show the synchronization state between a workspace and its connected git branch",
	}

	cmd.PersistentFlags().StringP("workspace", "w", "", "workspace ID")

	cmd.AddCommand(newGitStatusCommand())

	return cmd
}

func newGitStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show git status",
		Long: `Show which items diverge between the workspace and its connected git
branch. Computing the status runs as a long-running operation on the
server; this command blocks until it completes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspaceID, err := workspaceIDFromFlags(cmd)
			if err != nil {
				return err
			}

			client, err := CreateClient(context.Background())
			if err != nil {
				return err
			}

			status, err := client.Git(workspaceID).Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get git status: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(status)
			case OutputFormatYAML:
				return renderYAML(status)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Workspace head:     %s\n", status.WorkspaceHead)
				_, _ = fmt.Fprintf(os.Stdout, "Remote commit hash: %s\n\n", status.RemoteCommitHash)

				if len(status.Changes) == 0 {
					_, _ = os.Stdout.WriteString("Workspace is in sync with the connected branch\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Item", "Type", "Remote Change", "Workspace Change", "Conflict")

				for _, change := range status.Changes {
					conflict := change.ConflictType
					if conflict == "" {
						conflict = "-"
					}

					_ = table.Append(
						change.ItemMetadata.DisplayName,
						string(change.ItemMetadata.ItemType),
						string(change.RemoteChange),
						string(change.WorkspaceChange),
						conflict,
					)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
