package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/aisurvival/internal/pipeline"
	"github.com/abhisek/aisurvival/internal/survey"
	"github.com/abhisek/aisurvival/internal/ui/components"
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Answer the questionnaire interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSurvey(cmd)
	},
}

// runSurvey launches the interactive questionnaire.
func runSurvey(cmd *cobra.Command) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return survey.Run(ctx, survey.Options{
		Session:       rt.newSession(),
		MarkdownStyle: components.ResolveMarkdownStyle(rt.cfg.Display.Style, os.Stdin, os.Stdout),
		Run: func(ctx context.Context, s *pipeline.Session, observe pipeline.Observer) (*pipeline.Result, error) {
			return rt.orchestrator(pipeline.WithObserver(observe)).Run(ctx, s)
		},
	})
}
