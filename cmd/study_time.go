package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var studyTimeCmd = &cobra.Command{
	Use:   "study-time <minutes>",
	Short: "Record minutes spent studying",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.ParseFloat(args[0], 64)
		if err != nil || minutes <= 0 {
			return fmt.Errorf("invalid minutes %q: want a positive number", args[0])
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		d := e.agg.RecordStudyTime(cmd.Context(), minutes)
		fmt.Printf("Recorded %.0f minutes. Total study time: %.0f min  |  Streak: %d day(s)\n",
			minutes, d.StudyTime, d.StreakDays)
		return nil
	},
}
