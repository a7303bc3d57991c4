// Package stats contains usage aggregation and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Bar is one labeled value on a 0-100 usage scale.
type Bar struct {
	Label     string
	Value     float64
	Highlight bool
}

type ansiColor struct {
	name string
	code string
}

const (
	minPlotWidth        = 10
	maxPlotValue        = 100.0
	axisSeparator       = " │ "
	valueSuffixWidth    = 5
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// Eighth blocks, index = filled eighths.
var partialBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

const fullBlock = '█'

var (
	highlightColor = ansiColor{name: "blue", code: "\x1b[34m"}
	baseColor      = ansiColor{name: "cyan", code: "\x1b[36m"}
)

// PlotBarsWithColor renders a horizontal bar chart scaled to 0-100%.
// Color is used when forceColor is set or w is a terminal.
func PlotBarsWithColor(w io.Writer, title string, bars []Bar, width int, legend [2]string, forceColor bool) error {
	return plotBars(w, title, bars, width, legend, forceColor)
}

func plotBars(w io.Writer, title string, bars []Bar, width int, legend [2]string, forceColor bool) error {
	if len(bars) == 0 {
		return nil
	}
	labelWidth := 0
	for _, b := range bars {
		if lw := runewidth.StringWidth(b.Label); lw > labelWidth {
			labelWidth = lw
		}
	}
	if width <= 0 {
		width = terminalWidth()
	}
	barWidth := barWidthFor(width, labelWidth)
	useColor := shouldUseColor(w, forceColor)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, b := range bars {
		var row strings.Builder
		row.WriteString(runewidth.FillLeft(b.Label, labelWidth))
		row.WriteString(axisSeparator)
		bar := renderBar(b.Value, barWidth)
		if useColor {
			row.WriteString(colorFor(b.Highlight).code)
			row.WriteString(bar)
			row.WriteString(colorReset)
		} else {
			row.WriteString(bar)
		}
		row.WriteString(fmt.Sprintf(" %3.0f%%", b.Value))
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if legend[0] != "" || legend[1] != "" {
		if _, err := fmt.Fprintln(w, renderLegend(legend, useColor)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// renderBar draws a bar padded to width cells.
func renderBar(value float64, width int) string {
	if width <= 0 {
		return ""
	}
	value = math.Max(0, math.Min(maxPlotValue, value))
	eighths := int(math.Round(value / maxPlotValue * float64(width*8)))
	full := eighths / 8
	rem := eighths % 8
	var b strings.Builder
	b.WriteString(strings.Repeat(string(fullBlock), full))
	cells := full
	if rem > 0 && cells < width {
		b.WriteRune(partialBlocks[rem])
		cells++
	}
	b.WriteString(strings.Repeat(" ", width-cells))
	return b.String()
}

func colorFor(highlight bool) ansiColor {
	if highlight {
		return highlightColor
	}
	return baseColor
}

func renderLegend(legend [2]string, useColor bool) string {
	parts := make([]string, 0, 2)
	for i, name := range legend {
		if name == "" {
			continue
		}
		label := fmt.Sprintf("%c %s", fullBlock, name)
		if useColor {
			label = colorFor(i == 0).code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func barWidthFor(totalWidth, labelWidth int) int {
	axisWidth := labelWidth + runewidth.StringWidth(axisSeparator) + valueSuffixWidth
	barWidth := totalWidth - axisWidth
	if barWidth < minPlotWidth {
		barWidth = minPlotWidth
	}
	return barWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
