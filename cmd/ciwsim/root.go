package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "ciwsim",
	Short: "Discrete-event simulator for queueing networks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

func init() {
	// A .env file can override defaults such as CIW_MONITOR_DEV.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info",
		"Log verbosity level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Fatal(err)
	}

	atexit.Exit(0)
}
