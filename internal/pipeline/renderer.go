package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Renderer writes analysis reports as JSON or Markdown files and prints a
// compact stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.AggregateReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a human-readable Markdown document
func (r *Renderer) RenderMarkdown(report *model.AggregateReport, path string) error {
	var sb strings.Builder

	title := report.Title
	if title == "" {
		title = report.SourceURL
	}
	fmt.Fprintf(&sb, "# Claim Analysis: %s\n\n", title)
	fmt.Fprintf(&sb, "- **Source**: %s\n", report.SourceURL)
	fmt.Fprintf(&sb, "- **Analyzed**: %s\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&sb, "- **Overall score**: %.2f (%s)\n", report.OverallScore, report.VerdictLabel)
	fmt.Fprintf(&sb, "- **Claims**: %d of %d sentences\n\n", report.Stats.TotalClaims, report.Stats.TotalSentences)

	if len(report.Claims) == 0 {
		sb.WriteString("No verifiable claims were found in this article.\n")
	} else {
		sb.WriteString("## Claims\n\n")
		for i, c := range report.Claims {
			fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, c.Claim.Text)
			fmt.Fprintf(&sb, "**Verdict**: %s (trust %.0f/100)\n\n", verdictLabel(c.Verdict), c.TrustScore)
			for _, q := range c.ReferenceQuotes {
				fmt.Fprintf(&sb, "> %s\n\n", q)
			}
			if len(c.EvidenceURLs) > 0 {
				sb.WriteString("Sources:\n")
				for _, u := range c.EvidenceURLs {
					fmt.Fprintf(&sb, "- %s\n", u)
				}
				sb.WriteString("\n")
			}
		}
	}

	if r.includeFooter {
		sb.WriteString("---\n\nGenerated by claimlens. Verdicts reflect the gathered evidence, not ground truth.\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a compact report summary to stdout
func (r *Renderer) RenderSummary(report *model.AggregateReport) {
	fmt.Printf("\n%s\n", report.SourceURL)
	fmt.Printf("Overall: %.2f (%s)\n", report.OverallScore, report.VerdictLabel)
	fmt.Printf("Claims: %d analyzed, avg trust %.0f/100\n",
		report.Stats.AnalyzedCount, report.Stats.AverageTrustScore)

	if len(report.Stats.VerdictCounts) > 0 {
		verdicts := make([]string, 0, len(report.Stats.VerdictCounts))
		for v := range report.Stats.VerdictCounts {
			verdicts = append(verdicts, string(v))
		}
		sort.Strings(verdicts)
		var parts []string
		for _, v := range verdicts {
			parts = append(parts, fmt.Sprintf("%s=%d", v, report.Stats.VerdictCounts[model.Verdict(v)]))
		}
		fmt.Printf("Verdicts: %s\n", strings.Join(parts, " "))
	}
	if report.Stats.SourcesFetched+report.Stats.SourcesFailed > 0 {
		fmt.Printf("Evidence: %d sources fetched, %d failed\n",
			report.Stats.SourcesFetched, report.Stats.SourcesFailed)
	}
}

func verdictLabel(v model.Verdict) string {
	return strings.ReplaceAll(string(v), "_", " ")
}
