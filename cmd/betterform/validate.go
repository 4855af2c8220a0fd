package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikiasgoitom/better-form/flow"
	"github.com/mikiasgoitom/better-form/source"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a form configuration",
	Long: `Validate the form configuration and compile its submission validator.

Checks:
  - JSON or YAML syntax is valid
  - Fields, options, data sources and steps are well formed
  - Field names are unique and references resolve
  - Validation patterns compile

Examples:
  betterform validate -c signup.json
  betterform validate -c signup.yaml --print`,
	RunE: runValidate,
}

var validatePrint bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validatePrint, "print", false, "print the normalized configuration as JSON")
}

func runValidate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Fprintf(w, "%s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}

	v, err := loadValidator(w)
	if err != nil {
		return err
	}
	cfg := v.Config()

	if validatePrint {
		out, err := source.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	fmt.Fprintf(w, "%s %s is valid\n", checkMark, cfgFile)
	fmt.Fprintf(w, "  %s Submit: %s %s\n", checkMark, cfg.Method, cfg.Endpoint)
	fmt.Fprintf(w, "  %s Fields: %d\n", checkMark, len(cfg.Fields))
	fmt.Fprintf(w, "  %s Steps: %d\n", checkMark, len(flow.PartitionSteps(cfg)))
	return nil
}
