package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	mstats "github.com/montanaflynn/stats"

	"goassoc/domain/stats"
	"goassoc/domain/task"
)

// maxRowsPerSection caps how many ranked results a report section lists.
const maxRowsPerSection = 25

// Markdown renders a finished task record as a markdown report.
func Markdown(rec task.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Association Analysis Report\n\n")
	fmt.Fprintf(&b, "Task `%s`, status **%s**\n\n", rec.ID, rec.Status)

	if rec.Status == task.StatusError {
		fmt.Fprintf(&b, "## Failure\n\n%s\n\n", rec.Message)
		writeSteps(&b, rec.StepsCompleted)
		writeErrorLogs(&b, rec.ErrorLogs)
		return b.String()
	}

	bundle := rec.Bundle
	if bundle == nil {
		return b.String()
	}

	if bundle.AverageCramersV != nil {
		fmt.Fprintf(&b, "## Overall Association\n\nAverage Cramér's V: **%.4f** (%s)\n\n",
			bundle.AverageCramersV.Value, bundle.AverageCramersV.Interpretation)
	}

	if len(bundle.ChiSquare) > 0 {
		strengths := make([]float64, len(bundle.ChiSquare))
		for i, r := range bundle.ChiSquare {
			strengths[i] = r.CramersV
		}
		median, err := mstats.Median(strengths)
		fmt.Fprintf(&b, "## Pairwise Associations (%d)\n\n", len(bundle.ChiSquare))
		if err == nil {
			fmt.Fprintf(&b, "Median strength %.4f.\n\n", median)
		}
		fmt.Fprintf(&b, "| Variable 1 | Variable 2 | χ² | p-value | Cramér's V | Interpretation |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|\n")
		for i, r := range bundle.ChiSquare {
			if i == maxRowsPerSection {
				break
			}
			fmt.Fprintf(&b, "| %s | %s | %.3f | %.4g | %.4f | %s |\n",
				r.Variable1, r.Variable2, r.ChiSquare, r.PValue, r.CramersV, r.Interpretation)
		}
		b.WriteString("\n")
	}

	if len(bundle.MultiVariable) > 0 {
		fmt.Fprintf(&b, "## Multi-Variable Associations (%d)\n\n", len(bundle.MultiVariable))
		fmt.Fprintf(&b, "| Variables | χ² | p-value | Cramér's V | Interpretation |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|\n")
		for i, r := range bundle.MultiVariable {
			if i == maxRowsPerSection {
				break
			}
			fmt.Fprintf(&b, "| %s | %.3f | %.4g | %.4f | %s |\n",
				strings.Join(r.Variables, ", "), r.ChiSquare, r.PValue, r.CramersV, r.Interpretation)
		}
		b.WriteString("\n")
	}

	writeModelSection(&b, "Logistic Regression", bundle.LogisticRegression)
	writeModelSection(&b, "Decision Tree", bundle.DecisionTree)
	writeModelSection(&b, "Random Forest", bundle.RandomForest)

	writeSteps(&b, rec.StepsCompleted)
	writeErrorLogs(&b, rec.ErrorLogs)
	return b.String()
}

// HTML renders the markdown report to an HTML fragment.
func HTML(rec task.Record) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(rec)), p, renderer)
}

func writeModelSection(b *strings.Builder, title string, results []stats.ModelResult) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s Accuracy\n\n", title)
	fmt.Fprintf(b, "| Target | Accuracy | Interpretation |\n|---|---|---|\n")
	for i, r := range results {
		if i == maxRowsPerSection {
			break
		}
		fmt.Fprintf(b, "| %s | %.4f | %s |\n", r.Target, r.Accuracy, r.Interpretation)
	}
	b.WriteString("\n")
}

func writeSteps(b *strings.Builder, steps []string) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintf(b, "## Stages Completed\n\n")
	for _, step := range steps {
		fmt.Fprintf(b, "1. %s\n", step)
	}
	b.WriteString("\n")
}

func writeErrorLogs(b *strings.Builder, logs []string) {
	if len(logs) == 0 {
		return
	}
	fmt.Fprintf(b, "## Degraded Computations\n\n")
	for _, entry := range logs {
		fmt.Fprintf(b, "- %s\n", entry)
	}
	b.WriteString("\n")
}
