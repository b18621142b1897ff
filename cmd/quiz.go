package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/ui/components"
)

// quizOutput is the --json shape of a generated quiz.
type quizOutput struct {
	Topic     string          `json:"topic"`
	Fallback  bool            `json:"fallback"`
	Questions []quiz.Question `json:"questions"`
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate quiz questions on a topic",
	Long:  "Generate multiple-choice questions and print them with their answers. Nothing is recorded; take quizzes in the interactive app to track progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		difficultyFlag, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		options, _ := cmd.Flags().GetInt("options")
		asJSON, _ := cmd.Flags().GetBool("json")

		difficulty, err := quiz.ParseDifficulty(difficultyFlag)
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

		svc := quiz.NewService(e.provider, quiz.DefaultConfig(), e.logger)
		ctx, cancel := e.callContext(cmd.Context())
		defer cancel()

		q, err := svc.Generate(ctx, quiz.Request{
			Topic:         topic,
			Difficulty:    difficulty,
			QuestionCount: count,
			OptionCount:   options,
		})
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(quizOutput{Topic: q.Topic, Fallback: q.Fallback, Questions: q.Questions})
		}

		if q.Fallback {
			fmt.Println("Could not generate a quiz for that topic. Here are some sample questions instead.")
			fmt.Println()
		}
		fmt.Printf("Quiz: %s\n\n", q.Topic)
		for i, question := range q.Questions {
			fmt.Printf("%d. %s\n", i+1, question.Question)
			for j, opt := range question.Options {
				fmt.Printf("   %s) %s\n", components.OptionLabel(j), opt)
			}
			fmt.Printf("   Answer: %s\n", components.OptionLabel(question.CorrectAnswer))
			if question.Explanation != "" {
				fmt.Printf("   %s\n", question.Explanation)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	quizCmd.Flags().StringP("topic", "t", "", "Quiz topic")
	quizCmd.Flags().StringP("difficulty", "d", string(quiz.DifficultyMedium), "Difficulty: easy, medium or hard")
	quizCmd.Flags().IntP("count", "n", quiz.DefaultQuestions, fmt.Sprintf("Number of questions (%d-%d)", quiz.MinQuestions, quiz.MaxQuestions))
	quizCmd.Flags().Int("options", quiz.DefaultOptions, fmt.Sprintf("Options per question (%d-%d)", quiz.MinOptions, quiz.MaxOptions))
	quizCmd.Flags().Bool("json", false, "Print the quiz as JSON")
	_ = quizCmd.MarkFlagRequired("topic")
}
