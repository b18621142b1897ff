package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/dashboard"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		top, _ := cmd.Flags().GetInt("top")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		d := e.agg.Load(cmd.Context())

		fmt.Println("Overview")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-22s %d\n", "Quizzes completed", d.QuizzesCompleted)
		fmt.Printf("%-22s %.2f%%\n", "Average score", dashboard.AverageScore(d.QuizScores))
		fmt.Printf("%-22s %d\n", "Study plans created", d.StudyPlansCreated)
		fmt.Printf("%-22s %.0f min\n", "Study time", d.StudyTime)
		fmt.Printf("%-22s %d day(s)\n", "Current streak", d.StreakDays)
		fmt.Printf("%-22s %s\n", "Last activity", d.LastActivity.Local().Format("2006-01-02 15:04"))

		fmt.Println()
		fmt.Printf("Quiz scores, last %d days\n", days)
		fmt.Println(strings.Repeat("─", 40))
		for _, s := range e.agg.ScoresByDate(d.QuizScores, days) {
			fmt.Printf("%s  %s %6.2f%%\n", s.Date.Format("Mon 01/02"), bar(s.Score/100, 20), s.Score)
		}

		fmt.Println()
		fmt.Printf("Study time, last %d days\n", days)
		fmt.Println(strings.Repeat("─", 40))
		for _, m := range e.agg.StudyTimeByDate(d.StudyTime, days) {
			fmt.Printf("%s  %4d min\n", m.Date.Format("Mon 01/02"), m.Minutes)
		}

		fmt.Println()
		fmt.Println("Top topics")
		fmt.Println(strings.Repeat("─", 40))
		topics := dashboard.TopTopics(d.TopicsCovered, top)
		if len(topics) == 0 {
			fmt.Println("No topics yet.")
		}
		for i, t := range topics {
			fmt.Printf("%2d. %-28s %3d\n", i+1, truncate(t.Name, 28), t.Count)
		}
		return nil
	},
}

// bar renders a fraction in [0, 1] as a fixed-width text bar.
func bar(frac float64, width int) string {
	filled := min(max(int(frac*float64(width)), 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func init() {
	statsCmd.Flags().Int("days", dashboard.DefaultWindowDays, "Days in the per-date series")
	statsCmd.Flags().Int("top", dashboard.DefaultTopTopics, "Number of top topics to list")
}
