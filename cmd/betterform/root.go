package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/schema"
	"github.com/mikiasgoitom/better-form/watch"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
	lang     string
	sanitize bool

	logger = zerolog.Nop()
)

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)

// errReported marks failures whose details were already printed.
var errReported = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "betterform",
	Short: "Validate declarative form configurations and their submissions",
	Long: `betterform checks JSON or YAML form configurations, compiles them
into submission validators and walks multi-step forms.

Examples:
  betterform validate -c signup.json
  betterform check -c signup.json submission.json
  betterform fill -c signup.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
		i18n.SetLanguage(lang)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "form.json", "form configuration file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "message language (en, ja)")
	rootCmd.PersistentFlags().BoolVar(&sanitize, "sanitize", false, "strip markup from display text")
}

func compilerOptions() []compiler.Option {
	opts := []compiler.Option{compiler.WithLogger(logger)}
	if sanitize {
		opts = append(opts, compiler.WithSchemaOptions(schema.WithSanitizedText()))
	}
	return opts
}

// loadValidator compiles --config, printing configuration issues to w.
func loadValidator(w io.Writer) (*compiler.SubmissionValidator, error) {
	v, err := watch.Load(cfgFile, compilerOptions()...)
	if err != nil {
		return nil, reportError(w, err)
	}
	return v, nil
}

// reportError prints the issues carried by err to w and returns
// errReported, or err itself when it carries none.
func reportError(w io.Writer, err error) error {
	if fce, ok := bf.AsFormConfigError(err); ok {
		fmt.Fprintf(w, "%s %s\n", crossMark, fce.Message)
		printIssues(w, fce.Issues)
		return errReported
	}
	if se, ok := compiler.AsSubmissionError(err); ok {
		fmt.Fprintf(w, "%s invalid submission\n", crossMark)
		for _, name := range se.Order {
			for _, iss := range se.Fields[name] {
				fmt.Fprintf(w, "    %s: %s\n", name, iss.Message)
			}
		}
		return errReported
	}
	if iss, ok := bf.AsIssues(err); ok {
		printIssues(w, iss)
		return errReported
	}
	return err
}

func printIssues(w io.Writer, iss bf.Issues) {
	for _, i := range iss {
		fmt.Fprintf(w, "    %s %s [%s]\n", i.Path.Pointer(), i.Message, i.Kind)
	}
}
