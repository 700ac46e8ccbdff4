package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ncasas/mepreal"
)

// pageTemplate wraps the converted report in a dark standalone page. The
// chart image sits between the summary and the table, like the page the
// series is usually read on.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { background: #0e1117; color: #fafafa; font-family: "Source Sans Pro", sans-serif;
         max-width: 56rem; margin: 2rem auto; padding: 0 1rem; }
  h1 { font-size: 1.8rem; }
  img { width: 100%; height: auto; border-radius: 6px; }
  table { border-collapse: collapse; width: 100%; font-size: 0.9rem; }
  th, td { border-bottom: 1px solid #31333f; padding: 0.3rem 0.6rem; text-align: right; }
  th:first-child, td:first-child { text-align: left; }
  blockquote { background: #1c2333; border-left: 4px solid #00bfff; margin: 1rem 0;
               padding: 0.5rem 1rem; }
  footer { color: #808495; font-size: 0.8rem; margin-top: 2rem; }
</style>
</head>
<body>
{{.Summary}}
<img src="{{.ChartSrc}}" alt="{{.Title}}">
{{.Table}}
<footer>Datos: {{.Caption}}. Generado el {{.Generated}}.</footer>
</body>
</html>
`))

// Page renders the adjusted series as a standalone HTML page referencing the
// chart image at chartSrc.
func Page(adj *mepreal.AdjustedSeries, chartSrc string, opts ReportOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	md := Markdown(adj, opts)

	// The summary goes above the chart, the table below it. The table is the
	// first markdown pipe row.
	summary, table := splitAtTable(md)

	converter := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
	)

	toHTML := func(src string) (template.HTML, error) {
		var buf bytes.Buffer
		if err := converter.Convert([]byte(src), &buf); err != nil {
			return "", err
		}
		return template.HTML(buf.String()), nil
	}

	summaryHTML, err := toHTML(summary)
	if err != nil {
		return nil, fmt.Errorf("convert summary: %w", err)
	}
	tableHTML, err := toHTML(table)
	if err != nil {
		return nil, fmt.Errorf("convert table: %w", err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title     string
		Summary   template.HTML
		Table     template.HTML
		ChartSrc  string
		Caption   string
		Generated string
	}{
		Title:     opts.Title,
		Summary:   summaryHTML,
		Table:     tableHTML,
		ChartSrc:  chartSrc,
		Caption:   caption(adj),
		Generated: adj.Last().Date.Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// splitAtTable cuts the markdown right before its first table row.
func splitAtTable(md string) (before, table string) {
	for i := 0; i+1 < len(md); i++ {
		if md[i] == '\n' && md[i+1] == '|' {
			return md[:i+1], md[i+1:]
		}
	}
	return md, ""
}

// caption summarizes where the data came from, for the page footer.
func caption(adj *mepreal.AdjustedSeries) string {
	parts := append([]string{}, adj.Provenance.Sources...)
	parts = append(parts, adj.IndexOrigin.Source)
	return strings.Join(parts, ", ")
}
