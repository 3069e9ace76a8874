package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorMuted  = lipgloss.Color("#878580")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	labelStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	ruleStyle   = lipgloss.NewStyle().Foreground(colorBorder)
)

// ConsoleFormatter renders a titled metric list and the result's breakdown
// table for the terminal. Styles degrade to plain text when the output is
// not a colour terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report domain.Report) ([]byte, error) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(title(report.Calculator))))
	b.WriteString("\n")
	if report.Result == nil {
		b.WriteString(labelStyle.Render("  no result"))
		b.WriteString("\n")
		return []byte(b.String()), nil
	}

	metrics := report.Result.Metrics()
	labelWidth := 0
	for _, m := range metrics {
		if w := lipgloss.Width(m.Label); w > labelWidth {
			labelWidth = w
		}
	}
	for _, m := range metrics {
		label := fmt.Sprintf("  %-*s", labelWidth, m.Label)
		fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render(label), valueStyle.Render(displayMetric(m)))
	}

	if t := report.Result.Table(); t != nil && len(t.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(renderTable(*t))
	}
	return []byte(b.String()), nil
}

// renderTable draws a boxed table. The first column is left-aligned and
// the rest, being numbers, are right-aligned.
func renderTable(t domain.Table) string {
	cols := len(t.Headers)
	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	rule := func(left, mid, right string) string {
		parts := make([]string, cols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return ruleStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
	}
	line := func(cells []string, style lipgloss.Style) string {
		var sb strings.Builder
		sb.WriteString(ruleStyle.Render("│"))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", w-lipgloss.Width(cell))
			if i == 0 {
				cell += pad
			} else {
				cell = pad + cell
			}
			sb.WriteString(style.Render(" " + cell + " "))
			sb.WriteString(ruleStyle.Render("│"))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(headerStyle.Render("  " + t.Title))
		b.WriteString("\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	b.WriteString(line(t.Headers, headerStyle))
	b.WriteString(rule("├", "┼", "┤"))
	for _, row := range t.Rows {
		b.WriteString(line(row, valueStyle))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}
