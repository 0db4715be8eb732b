package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aisurvival/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past diagnoses",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.RunRepo().ListRuns(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No diagnoses recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-12s  %-18s  %-8s  %s\n",
			"ID", "Timestamp", "Level", "Course", "Ms", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, r := range runs {
			status := "✓"
			if !r.Success {
				status = "✗ " + r.ErrorKind
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-18s  %-8d  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				orDash(r.Level),
				orDash(r.Course),
				r.DurationMs,
				status,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show a past diagnosis with its answers and report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.RunRepo().GetRun(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}
		if r == nil {
			return fmt.Errorf("run %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:          %d\n", r.ID)
		fmt.Fprintf(out, "Time:        %s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Run:         %s\n", r.RunID)
		fmt.Fprintf(out, "Session:     %s\n", r.SessionID)
		fmt.Fprintf(out, "Industry:    %s\n", orDash(r.Industry))
		fmt.Fprintf(out, "Occupation:  %s\n", orDash(r.Occupation))
		fmt.Fprintf(out, "Experience:  %d years\n", r.ExperienceYears)
		fmt.Fprintf(out, "Skills:      %s\n", orDash(strings.Join(r.Skills, ", ")))
		fmt.Fprintf(out, "Duration:    %dms\n", r.DurationMs)
		if !r.Success {
			fmt.Fprintf(out, "Error:       [%s] %s\n", r.ErrorKind, r.ErrorMessage)
		} else {
			fmt.Fprintf(out, "Level:       %s\n", r.Level)
			fmt.Fprintf(out, "Course:      %s\n", orDash(r.Course))
			fmt.Fprintf(out, "Asset:       %s\n", r.AssetPath)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "ANSWERS")
		fmt.Fprintln(out, sep)
		for _, a := range r.Answers {
			fmt.Fprintf(out, "%s\n  %s\n", a.Question, a.Answer)
		}

		if r.Narrative != "" {
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, "REPORT")
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, r.Narrative)
		}
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	historyCmd.AddCommand(historyViewCmd)
}
