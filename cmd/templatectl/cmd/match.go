package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <project> [issue-type]",
	Short: "Dry-run the prefill match for a project and issue type",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		issueType := ""
		if len(args) == 2 {
			issueType = args[1]
		}

		result, err := getClient().GetPrefill(context.Background(), args[0], issueType)
		if err != nil {
			return err
		}

		if !result.Matched {
			fmt.Println("No active template matches.")
			return nil
		}

		fmt.Printf("Matched: %s (%s)\n", result.TemplateName, result.TemplateID)
		if result.Prefill != nil {
			if result.Prefill.Summary != "" {
				fmt.Printf("Summary:     %s\n", result.Prefill.Summary)
			}
			if result.Prefill.Description != "" {
				fmt.Printf("Description:\n%s\n", result.Prefill.Description)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
