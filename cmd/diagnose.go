package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/aisurvival/internal/pipeline"
	"github.com/abhisek/aisurvival/internal/questionnaire"
	"github.com/abhisek/aisurvival/internal/survey"
	"github.com/abhisek/aisurvival/internal/ui/components"
	"github.com/abhisek/aisurvival/internal/ui/theme"
)

// answersFile is the --answers YAML document.
type answersFile struct {
	Profile questionnaire.Profile `yaml:"profile"`
	Answers map[string]string     `yaml:"answers"` // question id -> option key
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run one diagnosis non-interactively",
	Example: `  aisurvival diagnose --industry 製造 --occupation 管理職 --experience 20 \
      --answer q1=A --answer q2=B --answer q3=A --answer q4=C
  aisurvival diagnose --answers answers.yaml --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		input, err := diagnoseInput(cmd)
		if err != nil {
			return err
		}

		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		sess := rt.newSession()
		if err := fillSession(sess, input); err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		var opts []pipeline.Option
		if !asJSON {
			opts = append(opts, pipeline.WithObserver(func(s pipeline.State) {
				if step := s.Step(); step > 0 {
					fmt.Fprintf(os.Stderr, "Step %d: %s…\n", step, s.Description())
				}
			}))
		}

		res, err := rt.orchestrator(opts...).Run(ctx, sess)
		if id := sess.LastRun().ID; id != "" {
			fmt.Fprintf(os.Stderr, "Run %s\n", id)
		}
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		style := components.StylePlain
		if plain, _ := cmd.Flags().GetBool("plain"); !plain {
			style = components.ResolveMarkdownStyle(rt.cfg.Display.Style, os.Stdin, os.Stdout)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, survey.RenderSummary(res, 72))
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Hint.Render(strings.Repeat("─", 72)))
		fmt.Fprintln(out, components.NewMarkdown(style).Render(res.Narrative, 80))
		return nil
	},
}

// diagnoseInput merges the --answers file with the profile and --answer
// flags; flags win.
func diagnoseInput(cmd *cobra.Command) (answersFile, error) {
	var in answersFile
	path, _ := cmd.Flags().GetString("answers")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return in, fmt.Errorf("read answers file: %w", err)
		}
		if err := yaml.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("parse answers file %s: %w", path, err)
		}
	}
	if in.Answers == nil {
		in.Answers = make(map[string]string)
	}

	flags := cmd.Flags()
	if flags.Changed("industry") {
		in.Profile.Industry, _ = flags.GetString("industry")
	}
	if flags.Changed("occupation") {
		in.Profile.Occupation, _ = flags.GetString("occupation")
	}
	if flags.Changed("experience") || path == "" {
		in.Profile.ExperienceYears, _ = flags.GetInt("experience")
	}
	if flags.Changed("skill") {
		in.Profile.Skills, _ = flags.GetStringArray("skill")
	}

	pairs, _ := flags.GetStringArray("answer")
	for _, pair := range pairs {
		id, key, ok := strings.Cut(pair, "=")
		if !ok {
			return in, fmt.Errorf("invalid --answer %q, want q1=A", pair)
		}
		in.Answers[strings.ToLower(strings.TrimSpace(id))] = strings.ToUpper(strings.TrimSpace(key))
	}
	return in, nil
}

// fillSession submits the profile and records answers in catalog order.
func fillSession(sess *pipeline.Session, in answersFile) error {
	p := in.Profile
	profile, err := questionnaire.NewProfile(p.Industry, p.Occupation, p.ExperienceYears, p.Skills)
	if err != nil {
		return err
	}
	if err := sess.SetProfile(profile); err != nil {
		return err
	}

	for _, id := range sess.Catalog().IDs() {
		key, ok := in.Answers[id]
		if !ok {
			continue
		}
		if err := sess.Answer(id, key); err != nil {
			return err
		}
	}
	for id := range in.Answers {
		if _, ok := sess.Catalog().Question(id); !ok {
			return fmt.Errorf("unknown question %q", id)
		}
	}
	return nil
}

func init() {
	diagnoseFlags(diagnoseCmd)
}

func diagnoseFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("industry", "", "Industry (see `aisurvival questions`)")
	f.String("occupation", "", "Occupation (see `aisurvival questions`)")
	f.Int("experience", questionnaire.DefaultExperience, "Years of experience")
	f.StringArray("skill", nil, "Skill, repeatable")
	f.StringArray("answer", nil, "Answer as <question>=<option>, e.g. q1=A; repeatable")
	f.String("answers", "", "YAML file with profile and answers")
	f.Bool("json", false, "Print the result as JSON")
	f.Bool("plain", false, "Print the report markdown without styling")
	f.Duration("timeout", 0, "Abort the run after this long (0 = no limit)")
}
