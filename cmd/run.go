package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/quiz"
	quizscreen "github.com/abhisek/studybuddy/internal/screens/quiz"
	"github.com/abhisek/studybuddy/internal/screens/home"
	"github.com/abhisek/studybuddy/internal/studyplan"
	"github.com/abhisek/studybuddy/internal/tips"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	if e.provider == nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", e.providerErr)
		fmt.Fprintln(os.Stderr, "Quizzes and study plans will be unavailable.")
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	opts := app.Options{
		HighContrast: e.session.Preferences.HighContrast,
		SkipSplash:   noSplash,
		Home: home.Deps{
			Quiz: quizscreen.Deps{
				Quizzes:   quiz.NewService(e.provider, quiz.DefaultConfig(), e.logger),
				Tips:      tips.NewService(e.provider, tips.DefaultConfig(), e.logger),
				Dashboard: e.agg,
				Timeout:   e.llmCfg.Timeout,
			},
			Plans:       studyplan.NewService(e.provider, studyplan.DefaultConfig(), e.logger),
			Dashboard:   e.agg,
			HasProvider: e.provider != nil,
		},
	}

	return app.Run(opts)
}
