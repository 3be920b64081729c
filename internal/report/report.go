package report

import (
	"fmt"
	"sort"
	"strings"

	"esglens/app"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const notAvailable = "N/A"

// Markdown renders the KPIs, advisories and dataset summary of a dashboard
func Markdown(title string, d *app.Dashboard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	writeSelection(&b, d)
	writeKPIs(&b, d)

	if len(d.Advisories) > 0 {
		b.WriteString("## Advisories\n\n")
		for _, a := range d.Advisories {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}

	writeSummary(&b, d.Summary)
	writeColumnTypes(&b, d.Summary)

	if len(d.Skipped) > 0 {
		b.WriteString("## Skipped Widgets\n\n")
		for _, s := range d.Skipped {
			fmt.Fprintf(&b, "- `%s`: %s\n", s.Widget, s.Reason)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders Markdown as an HTML page
func HTML(title string, d *app.Dashboard) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(Markdown(title, d)))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title,
	})
	return markdown.Render(doc, renderer)
}

func writeSelection(b *strings.Builder, d *app.Dashboard) {
	b.WriteString("## Filters\n\n")
	if d.Selection.Years != nil {
		fmt.Fprintf(b, "- **Years:** %d - %d\n", d.Selection.Years.Min, d.Selection.Years.Max)
		if d.Selection.IncludeMissingYear {
			b.WriteString("- **Rows without a year:** included\n")
		}
	}
	if d.Capabilities.Industry != "" {
		fmt.Fprintf(b, "- **Industries:** %s\n", joinKeys(d.Selection.Industries))
	}
	if d.Capabilities.Region != "" {
		fmt.Fprintf(b, "- **Regions:** %s\n", joinKeys(d.Selection.Regions))
	}
	b.WriteString("\n")
}

func writeKPIs(b *strings.Builder, d *app.Dashboard) {
	if len(d.KPIs) == 0 {
		return
	}
	b.WriteString("## Key Metrics\n\n| Metric | Value |\n|---|---|\n")
	for _, k := range d.KPIs {
		fmt.Fprintf(b, "| %s | %.2f |\n", k.Label, k.Value)
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, s app.Summary) {
	b.WriteString("## Dataset Summary\n\n")
	fmt.Fprintf(b, "- **Total Records:** %d\n", s.Records)
	fmt.Fprintf(b, "- **Unique Companies:** %s\n", count(s.Companies))
	fmt.Fprintf(b, "- **Industries:** %s\n", count(s.Industries))
	fmt.Fprintf(b, "- **Regions:** %s\n", count(s.Regions))

	period := notAvailable
	if s.Period != nil {
		period = fmt.Sprintf("%g - %g", s.Period.From, s.Period.To)
	}
	fmt.Fprintf(b, "- **Time Period:** %s\n", period)

	completeness := notAvailable
	if s.Completeness != nil {
		completeness = fmt.Sprintf("%.1f%%", *s.Completeness)
	}
	fmt.Fprintf(b, "- **Data Completeness:** %s\n", completeness)
	fmt.Fprintf(b, "- **Missing Values:** %d\n", s.MissingCells)
	fmt.Fprintf(b, "- **Total Columns:** %d\n", s.ColumnCount)

	if len(s.NegativeColumns) > 0 {
		fmt.Fprintf(b, "- **Columns with Negative Values:** %s\n", strings.Join(s.NegativeColumns, ", "))
	}
	b.WriteString("\n")
}

func writeColumnTypes(b *strings.Builder, s app.Summary) {
	if len(s.ColumnTypes) == 0 {
		return
	}
	types := append([]app.ColumnType(nil), s.ColumnTypes...)
	sort.SliceStable(types, func(i, j int) bool { return types[i].Kind < types[j].Kind })

	b.WriteString("## Column Types\n\n| Column | Type |\n|---|---|\n")
	for _, ct := range types {
		fmt.Fprintf(b, "| %s | %s |\n", ct.Name, ct.Kind)
	}
	b.WriteString("\n")
}

func count(n *int) string {
	if n == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d", *n)
}

func joinKeys(keys []string) string {
	if len(keys) == 0 {
		return "none"
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == "" {
			k = "(missing)"
		}
		out[i] = k
	}
	return strings.Join(out, ", ")
}
