package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/abhisek/mathflow/internal/answer"
	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/mathrender"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <lesson-id>",
	Short: "Answer a lesson's practice questions on stdin (no TUI)",
	Long: `Walk through every checkable question of a lesson and check each answer
with the same rules the textbook uses.

This is a developer tool for proofreading lesson content: nothing is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

var checkCmd = &cobra.Command{
	Use:   "check <answer> <correct>",
	Short: "Check one answer against a correct answer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ok, checked := answer.Evaluate(args[0], args[1])
		switch {
		case !checked:
			fmt.Fprintln(out, "empty answer (not checked)")
		case ok:
			fmt.Fprintf(out, "✓ correct (%q matches %q)\n", answer.Normalize(strings.TrimSpace(args[0])), args[1])
		default:
			fmt.Fprintf(out, "✗ incorrect (%q does not match %q)\n", answer.Normalize(strings.TrimSpace(args[0])), args[1])
		}
		return nil
	},
}

func runPreview(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	renderer := mathrender.New()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintf(out, "Lesson: %s\n\n", lesson.Title)

	var total, correct int
	for _, ex := range lesson.Practice {
		fmt.Fprintf(out, "── %s ──\n", ex.Title)
		if ex.Instruction != "" {
			fmt.Fprintln(out, ex.Instruction)
		}
		for _, q := range previewQuestions(ex) {
			total++
			fmt.Fprintf(out, "\n%s\nYour answer: ", questionLine(q, renderer))
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return previewSummary(cmd, correct, total)
			}
			input := scanner.Text()
			ok, checked := answer.Evaluate(input, q.CorrectAnswer)
			switch {
			case !checked:
				fmt.Fprintln(out, "(skipped)")
			case ok:
				correct++
				fmt.Fprintln(out, "✓ Correct!")
			default:
				fmt.Fprintf(out, "✗ Wrong. Answer: %s\n", q.CorrectAnswer)
			}
		}
		fmt.Fprintln(out)
	}
	return previewSummary(cmd, correct, total)
}

// previewQuestions returns the checkable questions of ex, with each TABLE
// row's label folded into the prompt.
func previewQuestions(ex content.Exercise) []content.Question {
	var out []content.Question
	for _, q := range ex.Questions {
		if !q.Checkable() {
			continue
		}
		if ex.DisplayMode == content.DisplayTable && q.PreText == "" && q.Latex == "" {
			q.PreText = q.Label
			q.Label = ""
		}
		out = append(out, q)
	}
	return out
}

func previewSummary(cmd *cobra.Command, correct, total int) error {
	fmt.Fprintf(cmd.OutOrStdout(), "── Summary: %d/%d correct ──\n", correct, total)
	return nil
}
