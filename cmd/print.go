package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// printCmd shows the command line check would execute.
var printCmd = &cobra.Command{
	Use:   "print [target]...",
	Short: "Print the checker command line without running it.",
	Args:  cobra.ArbitraryArgs,
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

		fmt.Fprintln(cmd.OutOrStdout(), checkerCmd.String(args))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}
