package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikiasgoitom/better-form/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [submission.json]",
	Short: "Validate a submission against the form",
	Long: `Validate a JSON submission record against the compiled form.

The record is read from the named file, from --data, or from stdin when
neither is given. Use --fields to validate only some fields, the way a
multi-step form validates one step.

Examples:
  betterform check -c signup.json submission.json
  betterform check -c signup.json --data '{"email":"a@b.co"}'
  cat submission.json | betterform check -c signup.json --fields email,password`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var (
	checkData   string
	checkFields []string
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkData, "data", "", "submission JSON text")
	checkCmd.Flags().StringSliceVar(&checkFields, "fields", nil, "validate only these fields")
}

func runCheck(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	v, err := loadValidator(w)
	if err != nil {
		return err
	}

	data, err := readSubmission(cmd, args, checkData)
	if err != nil {
		return err
	}

	if len(checkFields) > 0 {
		tree, err := source.JSON(data)
		if err != nil {
			return fmt.Errorf("decode submission: %w", err)
		}
		record, ok := tree.(map[string]any)
		if !ok {
			return fmt.Errorf("submission must be a JSON object")
		}
		if err := v.ValidateFields(record, checkFields); err != nil {
			return reportError(w, err)
		}
		fmt.Fprintf(w, "%s %s valid\n", checkMark, strings.Join(checkFields, ", "))
		return nil
	}

	out, err := v.ValidateJSON(data)
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

// readSubmission reads inline text, the file named by args, or stdin.
func readSubmission(cmd *cobra.Command, args []string, inline string) ([]byte, error) {
	switch {
	case inline != "":
		return []byte(inline), nil
	case len(args) == 1 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read submission: %w", err)
		}
		return data, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read submission: %w", err)
		}
		return data, nil
	}
}
