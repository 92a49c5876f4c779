package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/strictcheck/strictcheck/core/checker"
	"github.com/strictcheck/strictcheck/core/watch"
)

// watchCmd re-runs the checker whenever watched files change.
var watchCmd = &cobra.Command{
	Use:   "watch [target]...",
	Short: "Re-run the type checker when source files change.",
	Long: `Watches the target directories (the current directory by default) and
re-runs the checker after each debounced batch of changes to files
matching the configured include patterns. Arguments are forwarded to
the checker exactly as with "check". Stop with Ctrl-C.`,
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

		printer := &statusPrinter{mode: cfg.Color, out: cmd.OutOrStdout()}
		stdio := checker.Stdio{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Err: cmd.ErrOrStderr(),
		}

		watcher, err := watch.New(watch.Options{
			Roots:         watchRoots(args),
			Include:       cfg.Watch.Include,
			Ignore:        cfg.Watch.Ignore,
			Debounce:      cfg.Debounce(),
			RunsPerMinute: cfg.Watch.RunsPerMinute,
		}, func(ctx context.Context) {
			start := time.Now()
			runErr := checkerCmd.Run(ctx, args, stdio)
			code := checker.ExitCode(runErr)
			recordRun(cfg, checkerCmd.Argv(args), code, time.Since(start))
			printer.status(code, time.Since(start))
		})
		if err != nil {
			return err
		}

		log.Println("Watching for changes, Ctrl-C to stop...")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := watcher.Run(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		log.Println("Stopped.")
		return nil
	},
}

// watchRoots picks the directories to watch from the forwarded
// arguments, falling back to the working directory.
func watchRoots(args []string) []string {
	var roots []string
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			roots = append(roots, arg)
		}
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return roots
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	colorPass = color.New(color.FgGreen, color.Bold)
	colorFail = color.New(color.FgRed, color.Bold)
)

// statusPrinter writes the one-line result summary after each run.
type statusPrinter struct {
	mode string
	out  io.Writer
}

func (p *statusPrinter) shouldColor() bool {
	switch p.mode {
	case colorNever:
		return false
	case colorAlways:
		return true
	default:
		fd, ok := p.out.(*os.File)
		return ok && isatty.IsTerminal(fd.Fd())
	}
}

func (p *statusPrinter) status(code int, elapsed time.Duration) {
	verdict := "ok"
	c := colorPass
	if code != 0 {
		verdict = fmt.Sprintf("failed (status %d)", code)
		c = colorFail
	}
	if p.shouldColor() {
		verdict = c.Sprint(verdict)
	}

	fmt.Fprintf(p.out, "[%s] %s in %s\n",
		time.Now().Format("15:04:05"), verdict, elapsed.Round(time.Millisecond))
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
