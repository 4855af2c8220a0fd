package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/remote"
	"github.com/mikiasgoitom/better-form/source"
)

var optionsCmd = &cobra.Command{
	Use:   "options <field> [payload.json]",
	Short: "Map a remote option payload for a field",
	Long: `Read a payload returned by a field's dataSource endpoint and print the
options it yields, using the data source's labelKey and valueKey.

Examples:
  curl -s https://api.example.com/cities | betterform options -c signup.json city`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	v, err := loadValidator(w)
	if err != nil {
		return err
	}
	f, ok := v.Config().FieldByName(args[0])
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}
	if f.DataSource == nil {
		return fmt.Errorf("field %q has no dataSource", f.Name)
	}

	data, err := readSubmission(cmd, args[1:], "")
	if err != nil {
		return err
	}
	opts, err := remote.ExtractJSON(data, f.DataSource)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	out, err := source.Marshal(struct {
		Options []bf.StaticOption `json:"options"`
		HasMore bool              `json:"hasMore"`
	}{opts, hasMore(data, f.DataSource)})
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func hasMore(data []byte, ds *bf.DataSource) bool {
	payload, err := source.JSON(data)
	if err != nil {
		return false
	}
	return remote.HasMore(payload, ds)
}
