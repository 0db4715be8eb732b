package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aisurvival/internal/course"
	"github.com/abhisek/aisurvival/internal/questionnaire"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questions, profile choices and courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintln(out, "Questions")
		fmt.Fprintln(out, sep)
		for _, q := range questionnaire.DefaultCatalog().Questions {
			fmt.Fprintf(out, "%s  %s\n", q.ID, q.Title)
			for _, o := range q.Options {
				fmt.Fprintf(out, "      %s\n", o.Label())
			}
		}

		printList := func(title string, items []string) {
			fmt.Fprintln(out)
			fmt.Fprintln(out, title)
			fmt.Fprintln(out, sep)
			for _, it := range items {
				fmt.Fprintf(out, "  %s\n", it)
			}
		}
		printList("Industries (--industry)", questionnaire.Industries)
		printList("Occupations (--occupation)", questionnaire.Occupations)
		printList("Skills (--skill)", questionnaire.Skills)

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Experience (--experience): %d-%d years, default %d\n",
			questionnaire.MinExperience, questionnaire.MaxExperience, questionnaire.DefaultExperience)

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Courses")
		fmt.Fprintln(out, sep)
		for _, c := range course.Categories() {
			fmt.Fprintf(out, "  %-18s  %s\n", c, course.Info(c).Title)
		}
		return nil
	},
}
