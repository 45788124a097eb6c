package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tidemark-io/fabric-client/pkg/fabric"
	"github.com/tidemark-io/fabric-client/pkg/fabricclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrWorkspaceArgRequired = errors.New("workspace ID is required (use --workspace)")
	ErrNotLoggedIn          = errors.New("no credentials configured (run 'fabric login' or pass --token)")
)

// CreateClient builds an API client from the effective viper configuration.
func CreateClient(ctx context.Context) (fabric.Client, error) {
	config := &fabric.Config{
		APIEndpoint:  viper.GetString("api"),
		AccessToken:  viper.GetString("token"),
		TenantID:     viper.GetString("tenant"),
		ClientID:     viper.GetString("client-id"),
		ClientSecret: viper.GetString("client-secret"),
		Debug:        viper.GetBool("verbose"),
	}

	if config.AccessToken == "" && (config.ClientID == "" || config.ClientSecret == "") {
		return nil, ErrNotLoggedIn
	}

	if cacheType := viper.GetString("cache.type"); cacheType != "" {
		config.Cache = &fabric.CacheConfig{
			Type: fabric.CacheType(cacheType),
			TTL:  viper.GetDuration("cache.ttl"),
		}

		if natsURL := viper.GetString("cache.nats.url"); natsURL != "" {
			config.Cache.NATS = &fabric.NATSKVConfig{
				URL:    natsURL,
				Bucket: viper.GetString("cache.nats.bucket"),
			}
		}
	}

	client, err := fabricclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderJSON writes data to stdout as indented JSON.
func renderJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// renderYAML writes data to stdout as YAML.
func renderYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return nil
}
