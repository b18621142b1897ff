package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/studyplan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a personalized study plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		styleFlag, _ := cmd.Flags().GetString("style")
		levelFlag, _ := cmd.Flags().GetString("level")

		style, err := studyplan.ParseLearningStyle(styleFlag)
		if err != nil {
			return err
		}
		level, err := studyplan.ParseSkillLevel(levelFlag)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireProvider(); err != nil {
			return err
		}

		svc := studyplan.NewService(e.provider, studyplan.DefaultConfig(), e.logger)
		ctx, cancel := e.callContext(cmd.Context())
		defer cancel()

		plan, err := svc.Generate(ctx, studyplan.Request{
			Subject:       subject,
			LearningStyle: style,
			SkillLevel:    level,
		})
		if err != nil {
			return err
		}

		fmt.Println(plan.Text)
		if plan.Fallback {
			return nil
		}

		data := e.agg.RecordStudyPlan(cmd.Context(), plan.Record(time.Now()))
		fmt.Printf("\nStudy plans created: %d  |  Streak: %d day(s)\n", data.StudyPlansCreated, data.StreakDays)
		return nil
	},
}

func init() {
	planCmd.Flags().StringP("subject", "s", "", "Subject to study")
	planCmd.Flags().String("style", string(studyplan.StyleVisual), "Learning style: visual, text or interactive")
	planCmd.Flags().String("level", string(studyplan.LevelBeginner), "Skill level: beginner, intermediate or advanced")
	_ = planCmd.MarkFlagRequired("subject")
}
