package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikiasgoitom/better-form/flow"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Show how the form splits into steps",
	Long: `List the steps a user walks through, with their progress labels and
fields. Unknown field references are dropped; a form without usable steps
shows a single implicit step.

Examples:
  betterform steps -c signup.json`,
	RunE: runSteps,
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	v, err := loadValidator(w)
	if err != nil {
		return err
	}
	cfg := v.Config()
	steps := flow.PartitionSteps(cfg)

	for i, step := range steps {
		title := step.ID
		if step.Title != nil {
			title = *step.Title
		}
		fmt.Fprintf(w, "%s  %s\n", flow.ProgressLabel(steps, i), title)
		for _, f := range flow.StepFields(cfg, step) {
			extra := []string{string(f.Type), fmt.Sprintf("cols=%d", flow.ColumnSpan(&f))}
			if len(f.VisibleWhen) > 0 {
				extra = append(extra, "conditional")
			}
			fmt.Fprintf(w, "    %-20s %s\n", f.Name, strings.Join(extra, " "))
		}
	}
	return nil
}
