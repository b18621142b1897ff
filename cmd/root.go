package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "Ethical AI study companion",
	Long:  "StudyBuddy is a terminal study companion: AI-generated quizzes, personalized study plans, ethical AI tips and a progress dashboard.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is normal.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYBUDDY_DB env var)")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for settings and dashboard data (overrides STUDYBUDDY_REDIS_URL env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(tipCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(studyTimeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYBUDDY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
