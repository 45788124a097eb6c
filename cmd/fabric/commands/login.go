package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tidemark-io/fabric-client/pkg/fabric"
	"github.com/tidemark-io/fabric-client/pkg/fabricclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint  string
		tenantID     string
		clientID     string
		clientSecret string
		accessToken  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Microsoft Fabric",
		Long:  "Authenticate against the Fabric API and persist the credentials for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			config := &fabric.Config{APIEndpoint: apiEndpoint}

			if accessToken != "" {
				config.AccessToken = accessToken
			} else {
				reader := bufio.NewReader(os.Stdin)

				if tenantID == "" {
					tenantID = viper.GetString("tenant")
				}

				if tenantID == "" {
					fmt.Print("Tenant ID: ")
					tenantID, _ = reader.ReadString('\n')
					tenantID = strings.TrimSpace(tenantID)
				}

				if clientID == "" {
					fmt.Print("Client ID: ")
					clientID, _ = reader.ReadString('\n')
					clientID = strings.TrimSpace(clientID)
				}

				if clientSecret == "" {
					fmt.Print("Client secret: ")
					byteSecret, err := term.ReadPassword(int(syscall.Stdin))
					if err != nil {
						return fmt.Errorf("failed to read client secret: %w", err)
					}
					clientSecret = string(byteSecret)
					fmt.Println()
				}

				config.TenantID = tenantID
				config.ClientID = clientID
				config.ClientSecret = clientSecret
			}

			client, err := fabricclient.New(context.Background(), config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials with a cheap listing request.
			ctx := context.Background()
			if _, err := client.Workspaces().List(ctx, nil).Next(); err != nil && !errors.Is(err, fabric.ErrNoMoreItems) {
				return fmt.Errorf("authentication check failed: %w", err)
			}

			viper.Set("api", apiEndpoint)
			viper.Set("tenant", config.TenantID)
			viper.Set("client-id", config.ClientID)
			viper.Set("client-secret", config.ClientSecret)
			viper.Set("token", config.AccessToken)

			if err := viper.WriteConfig(); err != nil {
				// First login has no config file yet.
				if err = viper.SafeWriteConfig(); err != nil {
					return fmt.Errorf("failed to save credentials: %w", err)
				}
			}

			fmt.Fprintln(os.Stdout, "Login successful")

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiEndpoint, "api", "a", "", "API endpoint URL")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Entra tenant ID")
	cmd.Flags().StringVar(&clientID, "client-id", "", "service principal client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "service principal client secret")
	cmd.Flags().StringVarP(&accessToken, "token", "t", "", "pre-issued access token")

	return cmd
}
