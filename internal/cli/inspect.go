package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidegen/pkg/deck"
	"github.com/matzehuels/slidegen/pkg/pipeline"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var markdown, noCache bool

	cmd := &cobra.Command{
		Use:   "inspect <outline>",
		Short: "Summarize an outline's slides",
		Long: `Lay out an outline without writing a presentation and print one table row
per slide: its title, layout, content kind, and the number of explain
paragraphs. --markdown prints a markdown preview of the deck instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], markdown, noCache)
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print a markdown preview")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, input string, markdown, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, pipeline.Options{
		Input:   input,
		Formats: []string{pipeline.FormatMarkdown},
		Theme:   c.cfg.Theme(),
		Logger:  loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	if markdown {
		_, err := w.Write(res.Artifacts[pipeline.FormatMarkdown])
		return err
	}

	if res.Deck.Title != "" {
		fmt.Fprintln(w, StyleTitle.Render(res.Deck.Title))
	}
	fmt.Fprintln(w, slideTable(res.Deck))
	for _, warning := range res.Warnings {
		fmt.Fprintln(w, StyleWarning.Render(iconWarning+" "+warning))
	}
	return nil
}

// slideTable renders one row per slide.
func slideTable(d *deck.Deck) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("#", "Title", "Layout", "Content", "Explain", "Notes").
		Rows(slideRows(d)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return styleTableCell
		})
	return t.String()
}

func slideRows(d *deck.Deck) [][]string {
	rows := make([][]string, 0, len(d.Slides))
	for _, s := range d.Slides {
		notes := ""
		if s.Notes != "" {
			notes = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Index + 1),
			truncate(s.Title, 40),
			s.Layout,
			s.ContentKind(),
			strconv.Itoa(explainParagraphs(s)),
			notes,
		})
	}
	return rows
}

func explainParagraphs(s *deck.Slide) int {
	n := 0
	for _, sh := range s.Shapes {
		if tb, ok := sh.(*deck.TextBox); ok && tb.Role == deck.RoleExplain {
			for _, p := range tb.Paragraphs {
				if p.Text() != "" {
					n++
				}
			}
		}
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
