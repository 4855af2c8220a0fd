package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate the form whenever its file changes",
	Long: `Watch the configuration file and recompile it on every change. An
invalid edit is reported and the last good validator stays active. SIGHUP
forces a reload; SIGINT or SIGTERM stops watching.

Examples:
  betterform watch -c signup.yaml --log-level info`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	h, err := watch.NewHolder(cfgFile, logger, compilerOptions()...)
	if err != nil {
		return reportError(w, err)
	}
	defer h.Stop()

	h.OnChange(func(v *compiler.SubmissionValidator) {
		cfg := v.Config()
		fmt.Fprintf(w, "%s %s reloaded: %d fields\n", checkMark, cfgFile, len(cfg.Fields))
	})

	if err := h.WatchFile(); err != nil {
		return err
	}
	h.WatchSignals()
	fmt.Fprintf(w, "%s Watching %s\n", checkMark, h.Path())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	case <-cmd.Context().Done():
	}
	return nil
}
