package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage issue templates",
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

// List templates
var (
	listPage  int
	listLimit int
)

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := getClient().ListTemplates(context.Background(), listPage, listLimit)
		if err != nil {
			return err
		}

		if len(page.Templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tACTIVE\tPROJECTS\tISSUE TYPES")
		for _, t := range page.Templates {
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%s\n",
				t.ID,
				t.Name,
				t.Active,
				axisLabel(t.Projects),
				axisLabel(t.IssueTypes),
			)
		}
		w.Flush()
		fmt.Printf("\nPage %d of %d templates total\n", page.Page, page.Total)

		return nil
	},
}

func init() {
	templatesListCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	templatesListCmd.Flags().IntVar(&listLimit, "limit", 20, "Page size")
	templatesCmd.AddCommand(templatesListCmd)
}

// axisLabel renders an axis for display; an empty axis is the wildcard.
func axisLabel(values []string) string {
	if len(values) == 0 {
		return "(all)"
	}
	return strings.Join(values, ",")
}

// Get template
var templatesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := getClient().GetTemplate(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:          %s\n", t.ID)
		fmt.Printf("Name:        %s\n", t.Name)
		fmt.Printf("Active:      %v\n", t.Active)
		fmt.Printf("Projects:    %s\n", axisLabel(t.Projects))
		fmt.Printf("Issue types: %s\n", axisLabel(t.IssueTypes))
		fmt.Printf("Owner:       %s\n", t.Owner)
		fmt.Printf("Updated:     %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))
		if t.Summary != "" {
			fmt.Printf("Summary:     %s\n", t.Summary)
		}
		if t.Content != "" {
			fmt.Printf("Description:\n%s\n", t.Content)
		}
		return nil
	},
}

// Activate / deactivate
var templatesActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Activate a template (deactivates overlapping active templates)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := getClient().SetActive(context.Background(), args[0], true)
		if err != nil {
			return err
		}

		fmt.Printf("Activated %s\n", result.Template.ID)
		for _, id := range result.Deactivated {
			fmt.Printf("Deactivated overlapping template %s\n", id)
		}
		return nil
	},
}

var templatesDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := getClient().SetActive(context.Background(), args[0], false)
		if err != nil {
			return err
		}
		fmt.Printf("Deactivated %s\n", result.Template.ID)
		return nil
	},
}

// Assign scope
var (
	assignProjects   string
	assignIssueTypes string
)

var templatesAssignCmd = &cobra.Command{
	Use:   "assign <id>",
	Short: "Replace a template's assigned projects and/or issue types",
	Long: `Replace the supplied axes of a template's scope. An axis not supplied is
left unchanged; supplying an empty value ("") sets the wildcard (all).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var projects, issueTypes []string
		if cmd.Flags().Changed("projects") {
			projects = splitCSV(assignProjects)
		}
		if cmd.Flags().Changed("issue-types") {
			issueTypes = splitCSV(assignIssueTypes)
		}
		if projects == nil && issueTypes == nil {
			return fmt.Errorf("nothing to assign; pass --projects and/or --issue-types")
		}

		result, err := getClient().AssignScope(context.Background(), args[0], projects, issueTypes)
		if err != nil {
			return err
		}

		fmt.Printf("Assigned %s: projects=%s issue-types=%s\n",
			result.Template.ID,
			axisLabel(result.Template.Projects),
			axisLabel(result.Template.IssueTypes),
		)
		for _, id := range result.Deactivated {
			fmt.Printf("Deactivated overlapping template %s\n", id)
		}
		return nil
	},
}

// splitCSV returns a non-nil slice; an empty input yields an empty slice
// (the wildcard), never nil.
func splitCSV(value string) []string {
	parts := []string{}
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Delete
var deleteHard bool

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Soft-delete a template (use --hard to remove it entirely)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().DeleteTemplate(context.Background(), args[0], deleteHard); err != nil {
			return err
		}
		if deleteHard {
			fmt.Printf("Removed %s\n", args[0])
		} else {
			fmt.Printf("Soft-deleted %s\n", args[0])
		}
		return nil
	},
}

func init() {
	templatesAssignCmd.Flags().StringVar(&assignProjects, "projects", "", "Comma-separated project keys (empty = all)")
	templatesAssignCmd.Flags().StringVar(&assignIssueTypes, "issue-types", "", "Comma-separated issue types (empty = all)")
	templatesDeleteCmd.Flags().BoolVar(&deleteHard, "hard", false, "Remove the record entirely")

	templatesCmd.AddCommand(templatesGetCmd)
	templatesCmd.AddCommand(templatesActivateCmd)
	templatesCmd.AddCommand(templatesDeactivateCmd)
	templatesCmd.AddCommand(templatesAssignCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
}
