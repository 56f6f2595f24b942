package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AnkitSingh-ai/templaterepo/internal/cliclient"
)

var (
	serverURL string
	authToken string
)

var rootCmd = &cobra.Command{
	Use:   "templatectl",
	Short: "templatectl - manage issue templates from the command line",
	Long: `templatectl administers the issue template server.

Examples:
  # List templates
  templatectl templates list

  # Activate a template (deactivates overlapping ones)
  templatectl templates activate 2f9c…

  # Assign a template to projects
  templatectl templates assign 2f9c… --projects PROJ,OPS

  # Dry-run the prefill match for a project/issue type
  templatectl match PROJ Bug

  # Show or change the global config
  templatectl config get
  templatectl config set --allow-all --admins alice,bob`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", envOr("TEMPLATECTL_SERVER", "http://localhost:8470"), "Server base URL")
	rootCmd.PersistentFlags().StringVarP(&authToken, "token", "t", os.Getenv("TEMPLATECTL_TOKEN"), "Bearer token")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getClient builds an API client from the global flags.
func getClient() *cliclient.Client {
	return cliclient.New(serverURL, authToken)
}

func Execute() error {
	return rootCmd.Execute()
}
