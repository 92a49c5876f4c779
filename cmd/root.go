package cmd

import (
	"errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/strictcheck/strictcheck/core/checker"
	"github.com/strictcheck/strictcheck/core/config"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	return config.Load(afero.NewOsFs(), cfgPath)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "strictcheck",
	Short: "Strict static type-check runner",
	Long: `Runs an external static type checker with a fixed set of strictness
flags, forwarding any additional arguments verbatim and exiting with
the checker's own status.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It returns the status
// the process should exit with.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *checker.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
