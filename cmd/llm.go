package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aisurvival/internal/diagnosis"
	"github.com/abhisek/aisurvival/internal/llm"
	"github.com/abhisek/aisurvival/internal/store"
)

// diagnosisStages lists the model calls of one run in the order the
// pipeline makes them.
var diagnosisStages = []string{
	diagnosis.PurposeClassification,
	diagnosis.PurposeRecommendation,
	diagnosis.PurposeNarrative,
}

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model calls behind each diagnosis",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		stage, _ := cmd.Flags().GetString("stage")
		runID, _ := cmd.Flags().GetString("run")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: stage, RunID: runID})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No model calls recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-14s  %-24s  %6s  %6s  %7s  %s\n",
			"ID", "Timestamp", "Run", "Stage", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 104))
		for _, e := range events {
			fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-14s  %-24s  %6d  %6d  %7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				orDash(truncate(e.RunID, 8)),
				e.Purpose,
				truncate(e.Model, 24),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				okMark(e.Success),
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one model call",
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

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("model call %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:        %d\n", e.ID)
		fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Run:       %s\n", orDash(e.RunID))
		fmt.Fprintf(out, "Stage:     %s\n", e.Purpose)
		fmt.Fprintf(out, "Model:     %s (%s)\n", e.Model, e.Provider)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
		if !e.Success {
			fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
		}

		printSection(out, "PROMPT", e.RequestBody)
		printSection(out, "REPLY", e.ResponseBody)
		return nil
	},
}

var llmTraceCmd = &cobra.Command{
	Use:   "trace <history-id>",
	Short: "Show the model calls one diagnosis made, stage by stage",
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

		ctx := cmd.Context()
		run, err := s.RunRepo().GetRun(ctx, id)
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}
		if run == nil {
			return fmt.Errorf("run %d not found", id)
		}
		events, err := s.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{RunID: run.RunID})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		// Stored newest first; a trace reads in call order.
		slices.Reverse(events)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run:       %s\n", run.RunID)
		fmt.Fprintf(out, "Time:      %s\n", run.Timestamp.Local().Format("2006-01-02 15:04:05"))
		if run.Success {
			fmt.Fprintf(out, "Outcome:   %s / %s\n", run.Level, orDash(run.Course))
		} else {
			fmt.Fprintf(out, "Outcome:   failed (%s)\n", run.ErrorKind)
		}
		fmt.Fprintln(out)

		if len(events) == 0 {
			fmt.Fprintln(out, "No model calls recorded for this run.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-14s  %-24s  %6s  %6s  %7s  %9s  %s\n",
			"ID", "Stage", "Model", "In", "Out", "Ms", "Cost", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 88))
		t := traceTotals(events)
		for _, e := range events {
			cost := "?"
			if c, ok := callCost(e.Model, e.InputTokens, e.OutputTokens); ok {
				cost = formatCost(c)
			}
			fmt.Fprintf(out, "%-5d  %-14s  %-24s  %6d  %6d  %7d  %9s  %s\n",
				e.ID, e.Purpose, truncate(e.Model, 24),
				e.InputTokens, e.OutputTokens, e.LatencyMs, cost, okMark(e.Success))
		}
		fmt.Fprintln(out, strings.Repeat("─", 88))
		label := "TOTAL"
		if t.unpriced > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-47s  %6d  %6d  %7d  %9s\n", label, t.in, t.out, t.ms, formatCost(t.cost))
		if t.failed > 0 {
			fmt.Fprintf(out, "\n%d call(s) failed. Use 'llm view <id>' for the error.\n", t.failed)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per diagnosis stage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, _ := cmd.Flags().GetString("run")
		opts := store.QueryOpts{RunID: runID}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byStage, err := s.EventRepo().LLMUsageByPurpose(ctx, opts)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byStage) == 0 {
			fmt.Fprintln(out, "No model usage recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Usage by Stage")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Stage", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		var calls, in, outTok int
		for _, st := range orderStages(byStage) {
			fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
				st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
			calls += st.Calls
			in += st.InputTokens
			outTok += st.OutputTokens
		}
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, outTok, in+outTok)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx, opts)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated Cost (USD)")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		var total float64
		var unpriced []string
		for _, mu := range byModel {
			c, ok := callCost(mu.Model, mu.InputTokens, mu.OutputTokens)
			if !ok {
				unpriced = append(unpriced, mu.Model)
				fmt.Fprintf(out, "%-32s  %6d calls  %10s\n", truncate(mu.Model, 32), mu.Calls, "?")
				continue
			}
			total += c
			fmt.Fprintf(out, "%-32s  %6d calls  %10s\n", truncate(mu.Model, 32), mu.Calls, formatCost(c))
		}
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-32s  %12s  %10s\n", "TOTAL", "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

// orderStages puts the pipeline stages first, in call order, with zero rows
// for stages that made no call. Unknown purposes follow in name order.
func orderStages(usage []store.PurposeUsage) []store.PurposeUsage {
	out := make([]store.PurposeUsage, 0, len(diagnosisStages)+len(usage))
	for _, stage := range diagnosisStages {
		row := store.PurposeUsage{Purpose: stage}
		if i := slices.IndexFunc(usage, func(u store.PurposeUsage) bool { return u.Purpose == stage }); i >= 0 {
			row = usage[i]
		}
		out = append(out, row)
	}
	for _, u := range usage {
		if !slices.Contains(diagnosisStages, u.Purpose) {
			out = append(out, u)
		}
	}
	return out
}

type runTotals struct {
	in, out  int
	ms       int64
	cost     float64
	unpriced int
	failed   int
}

// traceTotals sums the calls of one run.
func traceTotals(events []store.LLMEventRecord) runTotals {
	var t runTotals
	for _, e := range events {
		t.in += e.InputTokens
		t.out += e.OutputTokens
		t.ms += e.LatencyMs
		if c, ok := callCost(e.Model, e.InputTokens, e.OutputTokens); ok {
			t.cost += c
		} else {
			t.unpriced++
		}
		if !e.Success {
			t.failed++
		}
	}
	return t
}

func callCost(model string, in, out int) (float64, bool) {
	cost := llm.LookupCost(model)
	if cost == nil {
		return 0, false
	}
	return cost.Cost(in, out), true
}

func printSection(out io.Writer, title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(out, body)
}

func okMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("stage", "s", "", "Filter by stage (classification, recommendation, narrative)")
	llmListCmd.Flags().String("run", "", "Filter by pipeline run id")
	llmStatsCmd.Flags().String("run", "", "Only count calls made by this run id")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmTraceCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
