package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aisurvival/internal/logging"
	"github.com/abhisek/aisurvival/internal/refdoc"
	"github.com/abhisek/aisurvival/internal/ui/components"
	"github.com/abhisek/aisurvival/internal/ui/theme"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Preview the reference document the diagnosis is grounded on",
	Long: "Prints the text extracted from the reference PDF, exactly as the narrative " +
		"stage receives it. --cover also writes the rendered cover page.",
	Example: `  aisurvival document
  aisurvival document --cover cover.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.ValidateResources(); err != nil {
			return err
		}
		log, err := logging.New(cfg.Log.Mode)
		if err != nil {
			return err
		}
		defer log.Sync()

		style := components.StylePlain
		if plain, _ := cmd.Flags().GetBool("plain"); !plain {
			style = components.ResolveMarkdownStyle(cfg.Display.Style, os.Stdin, os.Stdout)
		}
		coverPath, _ := cmd.Flags().GetString("cover")

		return previewDocument(cmd.Context(), cmd.OutOrStdout(),
			newReferenceCache(cfg, log), components.NewMarkdown(style), coverPath)
	},
}

// previewDocument prints the cached document text and, when coverPath is
// set, writes the cover page image there.
func previewDocument(ctx context.Context, out io.Writer, cache *refdoc.Cache, md *components.Markdown, coverPath string) error {
	text, err := cache.Text(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, theme.Hint.Render(cache.Path()))
	fmt.Fprintln(out, theme.Hint.Render(strings.Repeat("─", 72)))
	fmt.Fprintln(out, md.Render(text, 80))

	if coverPath == "" {
		return nil
	}
	cover, err := cache.CoverImage(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(coverPath, cover.Data, 0o644); err != nil {
		return fmt.Errorf("write cover image: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Cover page %d written to %s (%dx%d %s)\n",
		refdoc.CoverPage, coverPath, cover.Width, cover.Height, cover.MIMEType)
	return nil
}

func init() {
	documentCmd.Flags().String("cover", "", "Also write the rendered cover page to this file")
	documentCmd.Flags().Bool("plain", false, "Print the text without markdown styling")
}
