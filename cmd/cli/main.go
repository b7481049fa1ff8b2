package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sync "github.com/silinternational/category-sync"
	"github.com/silinternational/category-sync/internal"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCmd() *cobra.Command {
	var opts sync.Options

	cmd := &cobra.Command{
		Use:   "category-sync",
		Short: "Sync HubSpot product categories into the Products enumeration property",
		Long: `Reads the product category custom object and writes its records as the options of
the product category enumeration property on Products. With --category_id only that
category is created, relabeled or, when it no longer exists, removed.

The HubSpot private app token is read from HUBSPOT_ACCESS_TOKEN.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LogEncoding = internal.EncodingConsole
			result := sync.RunSync(cmd.Context(), opts)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if result.Result != internal.ResultSuccess {
				return fmt.Errorf("sync failed: %s", result.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.CategoryID, "category_id", "", "Sync a specific category by ID.")
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "Path to a JSON config file (default $CONFIG_PATH or ./config.json)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Log the new option list without updating the property")

	return cmd
}
