package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aisurvival",
	Short: "AI survival diagnostic",
	Long: "aisurvival — answers four questions about your work, then asks an LLM " +
		"how exposed it is to AI and which course to take next.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSurvey(cmd)
	},
}

// Execute runs the root command. An interrupt cancels the command context
// so an in-flight diagnosis stops at its next LLM call.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/aisurvival/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides AISURVIVAL_DB env var)")
	rootCmd.PersistentFlags().String("log", "", "Log mode: dev, prod or quiet")

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(surveyCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(documentCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
