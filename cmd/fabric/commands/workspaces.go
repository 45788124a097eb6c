package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// NewWorkspacesCommand creates the workspaces command group
func NewWorkspacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
		Long:    "List workspaces and show workspace details",
	}

	cmd.AddCommand(newWorkspacesListCommand())
	cmd.AddCommand(newWorkspacesGetCommand())

	return cmd
}

func newWorkspacesListCommand() *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Long:  "List all workspaces the caller has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(context.Background())
			if err != nil {
				return err
			}

			var opts *fabric.WorkspaceListOptions
			if len(roles) > 0 {
				opts = &fabric.WorkspaceListOptions{Roles: roles}
			}

			workspaces, err := client.Workspaces().List(context.Background(), opts).All()
			if err != nil {
				return fmt.Errorf("failed to list workspaces: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(workspaces)
			case OutputFormatYAML:
				return renderYAML(workspaces)
			default:
				if len(workspaces) == 0 {
					_, _ = os.Stdout.WriteString("No workspaces found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Type", "Capacity")

				for _, workspace := range workspaces {
					capacity := workspace.CapacityID
					if capacity == "" {
						capacity = "-"
					}

					_ = table.Append(workspace.ID, workspace.DisplayName, string(workspace.Type), capacity)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roles, "roles", nil, "filter by workspace role (Admin, Member, Contributor, Viewer)")

	return cmd
}

func newWorkspacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get WORKSPACE_ID",
		Short: "Show workspace details",
		Long:  "Show detailed information about a single workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(context.Background())
			if err != nil {
				return err
			}

			info, err := client.Workspaces().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get workspace: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(info)
			case OutputFormatYAML:
				return renderYAML(info)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", info.ID)
				_ = table.Append("Name", info.DisplayName)
				_ = table.Append("Description", info.Description)
				_ = table.Append("Type", string(info.Type))
				_ = table.Append("Capacity", info.CapacityID)
				_ = table.Append("Capacity Assignment", string(info.CapacityAssignmentProgress))

				if info.WorkspaceIdentity != nil {
					_ = table.Append("Identity App ID", info.WorkspaceIdentity.ApplicationID)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

// workspaceIDFromFlags resolves the --workspace flag shared by item and git
// commands.
func workspaceIDFromFlags(cmd *cobra.Command) (string, error) {
	workspaceID, _ := cmd.Flags().GetString("workspace")
	if workspaceID == "" {
		workspaceID = viper.GetString("workspace")
	}

	if strings.TrimSpace(workspaceID) == "" {
		return "", ErrWorkspaceArgRequired
	}

	return workspaceID, nil
}
