package traindiary

import (
	"fmt"
	"os"

	"github.com/Hirosolo/train-diary-cli/internal/logx"
	"github.com/spf13/cobra"
)

var (
	statePath   string
	baseURLFlag string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "traindiary",
	Short: "traindiary tracks workouts, meals and plans from your terminal",
	Long:  "traindiary is a terminal client for the train-diary backend: schedule workouts, log sets and meals, apply workout plans, and view generated summaries.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logx.SetVerbose(verbose)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Path to local state file")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Backend base URL")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
