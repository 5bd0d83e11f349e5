package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/mathrender"
	"github.com/abhisek/mathflow/internal/theory"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Browse the lesson catalog",
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		catalog, err := loadCatalog(cmd, cfg)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s  %-24s  %-44s  %6s  %9s\n", "#", "ID", "Title", "Blocks", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 95))
		for _, l := range catalog.Lessons() {
			num := "★"
			if n := catalog.Number(l.ID); n > 0 {
				num = fmt.Sprintf("%d", n)
			}
			fmt.Fprintf(out, "%-4s  %-24s  %-44s  %6d  %9d\n",
				num, truncate(l.ID, 24), truncate(l.Title, 44), len(l.Theory), countQuestions(l))
		}
		return nil
	},
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <lesson-id>",
	Short: "Print a lesson's theory and exercises as plain text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		catalog, err := loadCatalog(cmd, cfg)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}
		lesson, ok := catalog.Lesson(args[0])
		if !ok {
			return fmt.Errorf("lesson %q not found", args[0])
		}
		width, _ := cmd.Flags().GetInt("width")

		out := cmd.OutOrStdout()
		renderer := mathrender.New()
		fmt.Fprintln(out, lesson.Title)
		fmt.Fprintln(out, strings.Repeat("═", max(len([]rune(lesson.Title)), 1)))
		fmt.Fprintln(out)

		for _, b := range lesson.Theory {
			var rv *theory.Reveal
			if cards, ok := b.(content.FractionCards); ok {
				// Print with every answer shown.
				rv = theory.NewReveal(len(cards.Items))
				for rv.Reveal() {
				}
			}
			fmt.Fprintln(out, ansi.Strip(theory.Render(b, rv, renderer, theory.Options{Width: width})))
			fmt.Fprintln(out)
		}

		for _, ex := range lesson.Practice {
			fmt.Fprintf(out, "── %s ──\n", ex.Title)
			if ex.Instruction != "" {
				fmt.Fprintln(out, ex.Instruction)
			}
			for _, q := range ex.Questions {
				fmt.Fprintln(out, "  "+questionLine(q, renderer))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func countQuestions(l content.Lesson) int {
	n := 0
	for _, ex := range l.Practice {
		for _, q := range ex.Questions {
			if q.Checkable() {
				n++
			}
		}
	}
	return n
}

// questionLine renders a question prompt without ANSI styling.
func questionLine(q content.Question, r *mathrender.Unicode) string {
	var parts []string
	if q.Label != "" {
		parts = append(parts, q.Label)
	}
	if q.Latex != "" {
		parts = append(parts, r.Render(q.Latex, mathrender.Inline).Text)
	} else {
		if q.PreText != "" {
			parts = append(parts, q.PreText)
		}
		if q.Checkable() {
			parts = append(parts, "____")
		}
		if q.PostText != "" {
			parts = append(parts, q.PostText)
		}
	}
	if len(q.Options) > 0 {
		parts = append(parts, "["+strings.Join(q.Options, " / ")+"]")
	}
	return strings.Join(parts, " ")
}

func init() {
	lessonsShowCmd.Flags().Int("width", 80, "Wrap width")

	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsShowCmd)
}
