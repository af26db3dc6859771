package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"shopzone.GO/config"
	"shopzone.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		// Sessions live in the server process, so only db jobs run here.
		deps := cron.Deps{DB: db, RetentionDays: config.App().CartRetentionDays, Log: config.Logger()}

		if jobName != "" {
			name := strings.ToLower(jobName)
			j, ok := cron.AllJobs(deps)[name]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Running cron job: %s\n", name)
			j.Run(args...)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Starting cron scheduler...")
		c, err := cron.StartCron(deps)
		if err != nil {
			return err
		}
		defer c.Stop()
		fmt.Fprintln(cmd.OutOrStdout(), "Cron scheduler started. Press Ctrl+C to exit.")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
