package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikiasgoitom/better-form/source"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the OpenAPI schema of the submission body",
	Long: `Print the OpenAPI 3 schema object describing valid submissions, for
use in an API description of the form's endpoint.

Examples:
  betterform schema -c signup.json > signup.schema.json`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	v, err := loadValidator(w)
	if err != nil {
		return err
	}
	out, err := source.Marshal(v.OpenAPISchema())
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
