package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change accessibility settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		p := e.session.Preferences
		fmt.Printf("%-16s %v\n", "high-contrast", p.HighContrast)
		fmt.Printf("%-16s %.2f\n", "text-size", p.TextSize)
		fmt.Printf("%-16s %v\n", "text-to-speech", p.TextToSpeech)
		fmt.Printf("%-16s %v\n", "api-key", e.session.HasAPIKey())
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <high-contrast|text-size|text-to-speech> <value>",
	Short:     "Change a setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"high-contrast", "text-size", "text-to-speech"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, raw := args[0], args[1]

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		switch name {
		case "high-contrast", "text-to-speech":
			on, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid value %q for %s: want true or false", raw, name)
			}
			if name == "high-contrast" {
				err = settings.SetHighContrast(ctx, e.kv, on)
			} else {
				err = settings.SetTextToSpeech(ctx, e.kv, on)
			}
			if err != nil {
				return fmt.Errorf("save %s: %w", name, err)
			}
		case "text-size":
			size, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid value %q for text-size: %w", raw, err)
			}
			if err := settings.SetTextSize(ctx, e.kv, size); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown setting %q", name)
		}

		fmt.Printf("%s set to %s\n", name, raw)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
