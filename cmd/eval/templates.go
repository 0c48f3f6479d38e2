package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/knowmebench/knowme-eval/internal/prompt"
)

func newTemplatesCmd() *cobra.Command {
	var promptFile string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the task types defined in a prompt file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesList(cmd, promptFile)
		},
	}

	cmd.Flags().StringVar(&promptFile, "prompt_file", defaultPromptFile, "path to the prompt template file")
	return cmd
}

func runTemplatesList(cmd *cobra.Command, promptFile string) error {
	set, err := prompt.LoadFromFile(promptFile)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	out := cmd.OutOrStdout()
	if set.Len() == 0 {
		_, _ = fmt.Fprintf(out, "No templates found in %s\n", promptFile)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK_TYPE\tBYTES\tMISSING_PLACEHOLDERS")
	for _, taskType := range set.TaskTypes() {
		tmpl, _ := set.Get(taskType)
		missing := prompt.MissingPlaceholders(tmpl)
		label := "-"
		if len(missing) > 0 {
			label = strings.Join(missing, ",")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", taskType, len(tmpl), label)
	}
	return tw.Flush()
}
