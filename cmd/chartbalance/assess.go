package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ChartBalance/internal/calculator"
	"ChartBalance/internal/collector"
	"ChartBalance/internal/model"
	"ChartBalance/internal/parser"
)

var (
	assessPage     int
	assessTieBreak string
	assessJSON     bool
)

// assessCmd scores a single text file and prints the result
var assessCmd = &cobra.Command{
	Use:   "assess <file>",
	Short: "Assess one extracted chart report",
	Long: `Read a plain-text chart report, resolve the eight points and print the
element and quality balance. Pages are separated by form feeds; --page selects
one (1-based), 0 reads the whole file.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().IntVar(&assessPage, "page", -1, "1-based page to read, 0 for the whole file (default: config source.page)")
	assessCmd.Flags().StringVar(&assessTieBreak, "tie-break", "", "Multi-sign line rule: declaration or position (default: config parser.tie_break)")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "Print the assessment as JSON")
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync()

	tb := cfg.TieBreak()
	if assessTieBreak != "" {
		if tb, err = parser.ParseTieBreak(assessTieBreak); err != nil {
			return err
		}
	}
	page := cfg.Source.Page
	if cmd.Flags().Changed("page") {
		page = assessPage
	}

	col := collector.NewCollector(parser.New(tb), logger)
	a, err := col.Collect(collector.NewFileSource(args[0], page))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if assessJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	printAssessment(out, a)
	return nil
}

func printAssessment(w io.Writer, a *model.Assessment) {
	fmt.Fprintf(w, "Chart: %s\n", a.Source)
	fmt.Fprintln(w, strings.Repeat("═", 48))
	for _, pt := range model.Points {
		sign := "-"
		if s, ok := a.Positions.Get(pt); ok {
			sign = string(s)
		}
		fmt.Fprintf(w, "  %-10s %s\n", pt, sign)
	}

	shares := calculator.IntShares(model.Elements, a.ElementScores)
	fmt.Fprintln(w, strings.Repeat("─", 48))
	fmt.Fprintf(w, "  %-10s %5s %8s %8s  %s\n", "Element", "pts", "%", "shown", "level")
	for _, e := range model.Elements {
		fmt.Fprintf(w, "  %-10s %5d %8.2f %8.1f  %s\n",
			e, a.ElementScores[e], a.ElementPercentages[e], shares[e], a.Balance.Elements[e])
	}

	qshares := calculator.IntShares(model.Qualities, a.QualityCounts)
	fmt.Fprintln(w, strings.Repeat("─", 48))
	fmt.Fprintf(w, "  %-10s %7s %8s %8s  %s\n", "Quality", "planets", "%", "shown", "weighted")
	for _, q := range model.Qualities {
		fmt.Fprintf(w, "  %-10s %7d %8.2f %8.1f  %d\n",
			q, a.QualityCounts[q], a.QualityCountPercentages[q], qshares[q], a.QualityScores[q])
	}

	fmt.Fprintln(w, strings.Repeat("─", 48))
	if a.RulerBonus != nil {
		fmt.Fprintf(w, "  Ruler bonus: %s in %s (+%d)\n", a.RulerBonus.Point, a.RulerBonus.Sign, a.RulerBonus.Weight)
	}
	if len(a.Balance.Dominant) > 0 {
		names := make([]string, len(a.Balance.Dominant))
		for i, q := range a.Balance.Dominant {
			names[i] = string(q)
		}
		fmt.Fprintf(w, "  Dominant: %s\n", strings.Join(names, ", "))
	}
	if len(a.Unresolved) > 0 {
		names := make([]string, len(a.Unresolved))
		for i, pt := range a.Unresolved {
			names[i] = string(pt)
		}
		fmt.Fprintf(w, "  Unresolved: %s\n", strings.Join(names, ", "))
	}
}
