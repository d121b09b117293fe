// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors for terminal UI rendering.
var (
	Purple = lipgloss.Color("99")
	Gray   = lipgloss.Color("245")
	White  = lipgloss.Color("15")
	Teal   = lipgloss.Color("#06ffa5")
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	valueStyle  = lipgloss.NewStyle().Foreground(Teal)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	evenStyle   = lipgloss.NewStyle().Foreground(Teal)
	oddStyle    = lipgloss.NewStyle().Foreground(White)

	// DimStyle is a muted style for secondary text.
	DimStyle = lipgloss.NewStyle().Foreground(Gray)
)

// Section is a titled table.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// compactMaxColWidth is the maximum column width before truncation.
const compactMaxColWidth = 50

const colGap = 2

// PrintCompactTable renders column-aligned tables to w. Headers are
// uppercased, rows alternate colors, multi-line cells are flattened and
// long cells are truncated with an ellipsis.
func PrintCompactTable(
	w io.Writer,
	sections []Section,
) {
	for _, section := range sections {
		if section.Title != "" {
			_, _ = fmt.Fprintf(w, "\n  %s:\n", headerStyle.Render(section.Title))
		} else {
			_, _ = fmt.Fprintln(w)
		}

		rows := flattenRows(section.Rows)
		widths := columnWidths(section.Headers, rows)

		headers := make([]string, len(section.Headers))
		for i, h := range section.Headers {
			headers[i] = strings.ToUpper(h)
		}
		_, _ = fmt.Fprintln(w, renderLine(headers, widths, headerStyle))

		for r, row := range rows {
			style := evenStyle
			if r%2 != 0 {
				style = oddStyle
			}
			_, _ = fmt.Fprintln(w, renderLine(row, widths, style))
		}
	}
}

func flattenRows(
	rows [][]string,
) [][]string {
	flat := make([][]string, len(rows))
	for r, row := range rows {
		flat[r] = make([]string, len(row))
		for c, cell := range row {
			flat[r][c] = strings.Join(strings.Fields(cell), " ")
		}
	}

	return flat
}

func columnWidths(
	headers []string,
	rows [][]string,
) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], compactMaxColWidth)
	}

	return widths
}

func renderLine(
	cells []string,
	widths []int,
	style lipgloss.Style,
) string {
	var line strings.Builder
	line.WriteString("  ")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if len(cell) > width {
			cell = cell[:width-1] + "…"
		}
		if i < len(widths)-1 {
			cell = fmt.Sprintf("%-*s", width+colGap, cell)
		}
		line.WriteString(style.Render(cell))
	}

	return line.String()
}

// PrintKV prints alternating label, value arguments on one indented line.
// Odd-length input prints nothing.
func PrintKV(
	w io.Writer,
	pairs ...string,
) {
	if len(pairs)%2 != 0 || len(pairs) == 0 {
		return
	}

	rendered := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		rendered = append(
			rendered,
			labelStyle.Render(pairs[i]+":")+" "+valueStyle.Render(pairs[i+1]),
		)
	}

	_, _ = fmt.Fprintln(w, "  "+strings.Join(rendered, "    "))
}

// FormatAge formats d as "3d 4h", "12h 30m", "45m" or "30s".
func FormatAge(
	d time.Duration,
) string {
	switch {
	case d >= 24*time.Hour:
		days := int(d.Hours()) / 24
		return fmt.Sprintf("%dd %dh", days, int(d.Hours())%24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
