package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/settings"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
	Long:  "The stored key is used for the selected LLM provider (Gemini by default) and takes precedence over environment variables.",
}

var keySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		key, err := settings.SaveAPIKey(cmd.Context(), e.kv, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("API key saved (%s).\n", logging.Redact(key))
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key, redacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.session.HasAPIKey() {
			fmt.Println("No API key stored.")
			return nil
		}
		fmt.Println(logging.Redact(e.session.APIKey))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := settings.ClearAPIKey(cmd.Context(), e.kv); err != nil {
			return fmt.Errorf("clear API key: %w", err)
		}
		fmt.Println("API key removed.")
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}
