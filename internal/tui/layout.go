package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	minSidebarWidth = 24
	maxSidebarWidth = 40
	footerHeight    = 2
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// paneSizes splits the terminal into sidebar and detail widths plus the shared
// body height. Widths include the pane borders.
func paneSizes(width, height int) (sidebarW, detailW, bodyH int) {
	if width < 60 {
		width = 60
	}
	if height < 10 {
		height = 10
	}
	sidebarW = clamp(width/3, minSidebarWidth, maxSidebarWidth)
	detailW = width - sidebarW
	bodyH = height - footerHeight
	return sidebarW, detailW, bodyH
}

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall, so lipgloss.JoinHorizontal lines panes up.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates with an ellipsis or pads with spaces to exactly width.
func fitLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		if width <= 1 {
			return xansi.Cut(ln, 0, width)
		}
		ln = xansi.Truncate(ln, width-1, "") + "…"
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return xansi.Truncate(s, width, "…")
}

func modalBodyWidth(width int) int {
	return clamp(width-10, 30, 64)
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW).
		Padding(0, 1).
		Render(title)
	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1).
		Render(content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorFocusBorder).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}
