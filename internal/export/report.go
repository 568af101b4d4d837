package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mwaldrop/bomgen/internal/bom"
	"github.com/mwaldrop/bomgen/internal/survey"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// BuildMarkdown produces the human-facing report: survey tallies sorted by
// descending count, then the BoM table.
func BuildMarkdown(sv survey.Result, lines []bom.Line) string {
	var sb strings.Builder

	sb.WriteString("## Drawing summary\n\n")
	sb.WriteString("| Entity | Count |\n|---|---|\n")
	for _, c := range survey.SortedDesc(sv.Entities) {
		fmt.Fprintf(&sb, "| %s | %d |\n", c.Name, c.Count)
	}

	sb.WriteString("\n## Layers\n\n")
	sb.WriteString("| Layer | Entities |\n|---|---|\n")
	for _, c := range survey.SortedDesc(sv.Layers) {
		fmt.Fprintf(&sb, "| %s | %d |\n", c.Name, c.Count)
	}

	sb.WriteString("\n## Blocks\n\n")
	sb.WriteString("| Block | Inserts |\n|---|---|\n")
	for _, c := range survey.SortedDesc(sv.Blocks) {
		fmt.Fprintf(&sb, "| %s | %d |\n", c.Name, c.Count)
	}

	sb.WriteString("\n## Bill of materials\n\n")
	sb.WriteString("| Item | Quantity | Unit | Source |\n|---|---|---|---|\n")
	for _, line := range lines {
		fmt.Fprintf(&sb, "| %s | %v | %s | %s |\n", line.Item, line.Quantity, line.Unit, line.Source)
	}

	return sb.String()
}

// RenderHTML converts the Markdown report into an HTML fragment for the
// results page.
func RenderHTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return template.HTML(buf.String()), nil
}
