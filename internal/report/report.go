// Package report renders corpus statistics and generated games as markdown,
// and markdown as HTML.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"lotogen/app"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/domain/run"
	"lotogen/domain/stats"
)

// Input is what a report covers; either part may be nil
type Input struct {
	Title string
	Stats *app.StatsReport
	Run   *run.Run
}

// Markdown renders the report as GitHub-flavored markdown
func Markdown(in Input) []byte {
	var b strings.Builder
	title := in.Title
	if title == "" {
		title = "Lotofácil report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if in.Stats != nil {
		writeStats(&b, in.Stats)
	}
	if in.Run != nil {
		writeRun(&b, in.Run)
	}
	if in.Stats == nil && in.Run == nil {
		b.WriteString("_Nothing to report._\n")
	}
	return []byte(b.String())
}

func writeStats(b *strings.Builder, r *app.StatsReport) {
	s := r.Summary
	fmt.Fprintf(b, "## Corpus\n\n")
	fmt.Fprintf(b, "- Draws: %d\n", s.Draws)
	if s.LastContest > 0 {
		fmt.Fprintf(b, "- Last contest: %d\n", s.LastContest)
	}
	fmt.Fprintf(b, "- Fingerprint: `%s`\n", r.Fingerprint.Short())
	fmt.Fprintf(b, "- Combination space: %d\n\n", s.CombinationSpace)

	if s.Draws == 0 {
		b.WriteString("_No draws loaded._\n\n")
		return
	}

	b.WriteString("## Numbers\n\n")
	b.WriteString("| Dezena | Frequency | Current delay | Max delay |\n|---:|---:|---:|---:|\n")
	for _, n := range s.Numbers {
		fmt.Fprintf(b, "| %02d | %d | %d | %d |\n", n.Number, n.Frequency, n.CurrentDelay, n.MaxDelay)
	}
	b.WriteString("\n")

	if len(s.Distributions) > 0 {
		b.WriteString("## Distributions\n\n")
		b.WriteString("| Statistic | Min | P10 | Mean | Median | P90 | Max | Std dev |\n|---|---:|---:|---:|---:|---:|---:|---:|\n")
		for _, d := range s.Distributions {
			fmt.Fprintf(b, "| %s | %.0f | %.1f | %.2f | %.1f | %.1f | %.0f | %.2f |\n",
				d.Field, d.Min, d.P10, d.Mean, d.Median, d.P90, d.Max, d.StdDev)
		}
		b.WriteString("\n")
	}

	if u := s.Uniformity; u != nil {
		fmt.Fprintf(b, "Frequency uniformity: χ² = %.2f, df = %d, p = %.4f\n\n", u.ChiSquare, u.DegreesOfFreedom, u.PValue)
	}

	if last := r.Last; last != nil {
		b.WriteString("## Last draw\n\n")
		if last.Draw.Contest > 0 {
			fmt.Fprintf(b, "Contest %d", last.Draw.Contest)
			if !last.Draw.Date.IsZero() {
				fmt.Fprintf(b, " (%s)", last.Draw.Date.Format("02/01/2006"))
			}
			b.WriteString(": ")
		}
		fmt.Fprintf(b, "`%s`\n\n", last.Draw.Numbers)
		writeStatsLine(b, last.Stats)
		f := last.Features
		fmt.Fprintf(b, "- Moldura %d, centro %d, linhas %v, colunas %v\n", f.Moldura, f.Centro, f.Linhas, f.Colunas)
		fmt.Fprintf(b, "- Passes default filter: %t\n\n", last.Passes)
	}

	b.WriteString("## Filters\n\n")
	if r.DerivedFilter != nil {
		b.WriteString("| Statistic | Default | Derived (p10..p90) |\n|---|---|---|\n")
		for _, f := range stats.Fields {
			fmt.Fprintf(b, "| %s | %s | %s |\n", f, r.DefaultFilter.Range(f), r.DerivedFilter.Range(f))
		}
	} else {
		writeFilter(b, r.DefaultFilter)
	}
	b.WriteString("\n")
}

func writeRun(b *strings.Builder, r *run.Run) {
	fmt.Fprintf(b, "## Run %s\n\n", r.ID)
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(b, "- Created: %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(b, "- Seed: %d, workers: %d\n", r.Fingerprint.Seed, r.Fingerprint.Workers)
	fmt.Fprintf(b, "- Games: %d of %d requested, %d attempts used of %d\n",
		len(r.Games), r.TargetCount, r.AttemptsUsed, r.MaxAttempts)
	if r.Exhausted {
		b.WriteString("- **Attempt budget exhausted before the target was reached**\n")
	}
	if len(r.Fingerprint.Universe) > 0 && len(r.Fingerprint.Universe) < lottery.UniverseSize {
		fmt.Fprintf(b, "- Pool: %v\n", r.Fingerprint.Universe)
	}
	fmt.Fprintf(b, "- Fingerprint: `%s`\n\n", r.Fingerprint.Fingerprint.Short())

	b.WriteString("### Filter\n\n")
	writeFilter(b, r.Filter)
	b.WriteString("\n")

	if len(r.Games) == 0 {
		b.WriteString("_No games accepted._\n")
		return
	}
	b.WriteString("### Games\n\n")
	b.WriteString("| # | Dezenas |")
	for _, f := range stats.Fields {
		fmt.Fprintf(b, " %s |", f)
	}
	b.WriteString(" Score |\n|---:|---|")
	for range stats.Fields {
		b.WriteString("---:|")
	}
	b.WriteString("---:|\n")
	for _, g := range r.Games {
		fmt.Fprintf(b, "| %d | %s |", g.Position, g.Numbers)
		for _, f := range stats.Fields {
			fmt.Fprintf(b, " %d |", g.Stats.Value(f))
		}
		if g.Score != nil {
			fmt.Fprintf(b, " %.4f |\n", *g.Score)
		} else {
			b.WriteString(" - |\n")
		}
	}
}

func writeStatsLine(b *strings.Builder, s stats.CandidateStats) {
	parts := make([]string, len(stats.Fields))
	for i, f := range stats.Fields {
		parts[i] = fmt.Sprintf("%s %d", f, s.Value(f))
	}
	fmt.Fprintf(b, "- %s\n", strings.Join(parts, ", "))
}

func writeFilter(b *strings.Builder, cfg filter.Config) {
	b.WriteString("| Statistic | Range |\n|---|---|\n")
	for _, f := range stats.Fields {
		fmt.Fprintf(b, "| %s | %s |\n", f, cfg.Range(f))
	}
}

// HTML converts markdown to an HTML fragment
func HTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.ToHTML(md, p, renderer)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 72rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin-bottom: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; }
code { background: #f4f4f4; padding: 0 0.25rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Page wraps rendered markdown in a standalone HTML document
func Page(title string, md []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(HTML(md))})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
