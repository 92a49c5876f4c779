package cmd

import (
	"errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/strictcheck/strictcheck/core/runlog"
)

// reportCmd summarizes the invocation log.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize past checker runs from the run log.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.RunLog == "" {
			return errors.New("run_log is not configured, nothing to report")
		}

		fd, err := afero.NewOsFs().Open(cfg.RunLog)
		if err != nil {
			return err
		}
		defer fd.Close()

		report := runlog.NewReport()
		if err := runlog.Read(fd, report.Update); err != nil {
			return err
		}

		report.Render(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
