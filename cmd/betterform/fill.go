package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikiasgoitom/better-form/internal/prompt"
	"github.com/mikiasgoitom/better-form/source"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the form interactively",
	Long: `Walk the form step by step on the terminal. Hidden fields are skipped,
each step is validated before moving on, and the validated submission is
printed as JSON at the end.

Examples:
  betterform fill -c signup.json`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	v, err := loadValidator(w)
	if err != nil {
		return err
	}
	if t := v.Config().Title; t != nil {
		fmt.Fprintln(w, *t)
	}

	out, err := prompt.Fill(cmd.Context(), v, prompt.NewSurveyDriver())
	if errors.Is(err, prompt.ErrAborted) {
		return err
	}
	if err != nil {
		return reportError(w, err)
	}

	text, err := source.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	fmt.Fprintln(w, string(text))
	return nil
}
