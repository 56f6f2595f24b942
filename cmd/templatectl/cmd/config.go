package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnkitSingh-ai/templaterepo/internal/cliclient"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the global template configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the global configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getClient().GetConfig(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Allow all users: %v\n", cfg.AllowAllUsers)
		if len(cfg.Admins) == 0 {
			fmt.Println("Admins:          (none)")
		} else {
			fmt.Printf("Admins:          %s\n", strings.Join(cfg.Admins, ", "))
		}
		return nil
	},
}

var (
	setAllowAll bool
	setAdmins   string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the global configuration (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cliclient.GlobalConfig{
			AllowAllUsers: setAllowAll,
			Admins:        splitCSV(setAdmins),
		}
		updated, err := getClient().UpdateConfig(context.Background(), cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Updated: allow_all_users=%v admins=%s\n",
			updated.AllowAllUsers, strings.Join(updated.Admins, ","))
		return nil
	},
}

func init() {
	configSetCmd.Flags().BoolVar(&setAllowAll, "allow-all", false, "Let any authenticated user manage templates")
	configSetCmd.Flags().StringVar(&setAdmins, "admins", "", "Comma-separated admin principal ids")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
