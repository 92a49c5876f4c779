package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/strictcheck/strictcheck/core/checker"
	"github.com/strictcheck/strictcheck/core/config"
	"github.com/strictcheck/strictcheck/core/runlog"
)

// checkCmd runs the checker once with the caller's arguments forwarded.
var checkCmd = &cobra.Command{
	Use:   "check [target]...",
	Short: "Run the type checker with the strict flag set.",
	Long: `Run the configured type checker with the strict flags followed by all
given arguments, verbatim and in order. Use "--" before any argument
that starts with a dash so it is forwarded rather than parsed:

  strictcheck check -- --no-error-summary main.py

The checker inherits stdin, stdout and stderr, and its exit status
becomes this command's exit status. A checker that can't be found
exits 127, one that can't be started exits 126.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		checkerCmd, err := cfg.CheckerCommand()
		if err != nil {
			return err
		}

		stdio := checker.Stdio{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Err: cmd.ErrOrStderr(),
		}

		start := time.Now()
		runErr := checkerCmd.Run(cmd.Context(), args, stdio)
		recordRun(cfg, checkerCmd.Argv(args), checker.ExitCode(runErr), time.Since(start))

		// The checker already wrote its own diagnostics; don't add a
		// second error line for an ordinary failing exit.
		var exitErr *checker.ExitError
		if errors.As(runErr, &exitErr) && exitErr.Unwrap() == nil {
			cmd.SilenceErrors = true
		}

		return runErr
	},
}

// recordRun appends the invocation to the configured run log, if any.
func recordRun(cfg *config.Configuration, argv []string, code int, elapsed time.Duration) {
	if cfg.RunLog == "" {
		return
	}

	w, err := runlog.Open(afero.NewOsFs(), cfg.RunLog)
	if err != nil {
		log.Printf("couldn't open run log: %v", err)
		return
	}
	defer w.Close()

	entry := runlog.Entry{
		Time:       time.Now(),
		Argv:       argv,
		ExitCode:   code,
		DurationMs: elapsed.Milliseconds(),
	}
	if err := w.Record(entry); err != nil {
		log.Printf("couldn't write run log: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
