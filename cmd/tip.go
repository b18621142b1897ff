package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/tips"
)

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Show an ethical AI tip",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		offline, _ := cmd.Flags().GetBool("offline")

		var tip tips.Tip
		if offline {
			tip = tips.Random(category)
		} else {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			svc := tips.NewService(e.provider, tips.DefaultConfig(), e.logger)
			ctx, cancel := e.callContext(cmd.Context())
			defer cancel()
			tip = svc.Tip(ctx, category)
		}

		if tip.Title != "" {
			fmt.Println(tip.Title)
			fmt.Println(strings.Repeat("─", len([]rune(tip.Title))))
		}
		fmt.Println(tip.Content)
		if tip.Category != "" {
			fmt.Printf("\n[%s]\n", tip.Category)
		}
		return nil
	},
}

func init() {
	tipCmd.Flags().StringP("category", "c", "", "Tip category ("+strings.Join(tips.Categories(), ", ")+")")
	tipCmd.Flags().Bool("offline", false, "Pick a tip from the built-in bank without calling the LLM")
}
