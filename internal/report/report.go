// Package report renders an analyzed claims table into an HTML document
// with aggregate category/sentiment statistics and a bounded row sample.
package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
)

// sampleSize bounds how many rows appear in the report sample.
const sampleSize = 30

// Stat is one category or sentiment bucket with its share of the table.
type Stat struct {
	Name  string
	Count int
	Pct   float64
}

// reportData feeds the HTML template.
type reportData struct {
	GeneratedAt    string
	TotalClaims    int
	TopCategories  string
	CategoryStats  []Stat
	SentimentStats []Stat
	Samples        []model.EnrichedClaim
	AISummary      string
}

// Generate renders the report for the enriched rows. aiSummary may be
// empty; it is included verbatim as the AI agent section when present.
func Generate(w io.Writer, rows []model.EnrichedClaim, aiSummary string) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to report")
	}

	categoryStats := tally(rows, func(r model.EnrichedClaim) string { return r.PredictedCategory })
	sentimentStats := tally(rows, func(r model.EnrichedClaim) string { return string(r.Sentiment) })

	top := categoryStats
	if len(top) > 3 {
		top = top[:3]
	}
	topNames := make([]string, len(top))
	for i, s := range top {
		topNames[i] = s.Name
	}

	samples := rows
	if len(samples) > sampleSize {
		samples = samples[:sampleSize]
	}

	data := reportData{
		GeneratedAt:    time.Now().Format("2006-01-02 15:04:05"),
		TotalClaims:    len(rows),
		TopCategories:  join(topNames),
		CategoryStats:  categoryStats,
		SentimentStats: sentimentStats,
		Samples:        samples,
		AISummary:      aiSummary,
	}

	return reportTemplate.Execute(w, data)
}

// WriteFile renders the report into dir as a timestamped HTML file and
// returns its path.
func WriteFile(dir string, rows []model.EnrichedClaim, aiSummary string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("claims_report_%s.html", time.Now().Format("2006-01-02_15-04-05")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := Generate(f, rows, aiSummary); err != nil {
		return "", err
	}
	return path, nil
}

// SummaryFromExchanges renders a QA session transcript into the report's
// AI summary text: one question/answer block per exchange.
func SummaryFromExchanges(exchanges []model.QAExchange) string {
	blocks := make([]string, 0, len(exchanges))
	for _, ex := range exchanges {
		blocks = append(blocks, fmt.Sprintf("Q: %s\nA: %s", ex.Question, ex.Answer))
	}
	return strings.Join(blocks, "\n\n")
}

// tally counts rows per bucket and sorts descending by count, ties by name.
func tally(rows []model.EnrichedClaim, key func(model.EnrichedClaim) string) []Stat {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[key(r)]++
	}

	stats := make([]Stat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, Stat{
			Name:  name,
			Count: count,
			Pct:   round2(float64(count) / float64(len(rows)) * 100),
		})
	}
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].Count != stats[b].Count {
			return stats[a].Count > stats[b].Count
		}
		return stats[a].Name < stats[b].Name
	})
	return stats
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func join(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Healthcare Claims Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2rem; color: #222; }
  h1 { border-bottom: 2px solid #2c6e91; padding-bottom: 0.3rem; }
  table { border-collapse: collapse; margin: 1rem 0; width: 100%; }
  th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
  th { background: #2c6e91; color: #fff; }
  .meta { color: #666; font-size: 0.9rem; }
  .summary { background: #f4f8fa; border-left: 4px solid #2c6e91; padding: 1rem; margin: 1rem 0; white-space: pre-line; }
</style>
</head>
<body>
<h1>Healthcare Claims Report</h1>
<p class="meta">Generated {{.GeneratedAt}} &middot; {{.TotalClaims}} claims &middot; top categories: {{.TopCategories}}</p>

<h2>Category Distribution</h2>
<table>
<tr><th>Category</th><th>Count</th><th>%</th></tr>
{{range .CategoryStats}}<tr><td>{{.Name}}</td><td>{{.Count}}</td><td>{{printf "%.2f" .Pct}}</td></tr>
{{end}}</table>

<h2>Sentiment Distribution</h2>
<table>
<tr><th>Sentiment</th><th>Count</th><th>%</th></tr>
{{range .SentimentStats}}<tr><td>{{.Name}}</td><td>{{.Count}}</td><td>{{printf "%.2f" .Pct}}</td></tr>
{{end}}</table>

{{if .AISummary}}
<h2>AI Agent Summary</h2>
<div class="summary">{{.AISummary}}</div>
{{end}}

<h2>Sample Claims</h2>
<table>
<tr><th>Claim ID</th><th>Comment</th><th>Predicted Category</th><th>Sentiment</th></tr>
{{range .Samples}}<tr><td>{{.ClaimID}}</td><td>{{.Comment}}</td><td>{{.PredictedCategory}}</td><td>{{.Sentiment}}</td></tr>
{{end}}</table>
</body>
</html>
`))
