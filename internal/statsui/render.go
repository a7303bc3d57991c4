package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/usageheat/internal/model"
	"github.com/verte-zerg/usageheat/internal/stats"
)

const (
	hourColumnWidth = 7
	cellWidth       = 6
)

var (
	darkTextColor  = lipgloss.Color("#1A1A1A")
	lightTextColor = lipgloss.Color("#FFFFFF")
	primeMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

func renderHeatmapTab(report stats.Report, width int) string {
	cards := renderSummaryCards(report.Insights, width)
	grid := renderHeatmap(report.Views.Grid[:])
	return strings.TrimRight(cards+"\n\n"+grid, "\n")
}

func renderSummaryCards(ins stats.Insights, width int) string {
	if ins.FactCount == 0 {
		return "No facts match the filter."
	}
	cards := []string{
		metricCard("Peak Hour", model.HourLabel(ins.PeakHour)),
		metricCard("Peak Day", ins.PeakDay.Name()),
		metricCard("Prime Boost", fmt.Sprintf("%+.1f%%", ins.PrimeTimeBoost)),
		metricCard("Weekend Boost", fmt.Sprintf("%+.1f%%", ins.WeekendBoost)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderHeatmap(grid []model.GridCell) string {
	if len(grid) != model.GridCellCount {
		return fmt.Sprintf("Failed to render heatmap: grid has %d cells", len(grid))
	}
	lines := make([]string, 0, model.HourCount+3)
	lines = append(lines, cardValueStyle.Render("Usage Intensity Heatmap"))

	header := []string{strings.Repeat(" ", hourColumnWidth)}
	for _, day := range model.Days() {
		header = append(header, headerStyle.Width(cellWidth).Align(lipgloss.Center).Render(day.Short()))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, hour := range model.Hours() {
		row := []string{headerStyle.Width(hourColumnWidth).Render(model.HourLabel(hour))}
		for _, day := range model.Days() {
			row = append(row, heatCell(grid[model.GridIndex(day, hour)].Usage))
		}
		if model.IsPrimeHour(hour) {
			row = append(row, primeMarkStyle.Render(" *"))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	lines = append(lines, renderBandLegend())
	return strings.Join(lines, "\n")
}

func heatCell(usage int) string {
	return bandStyle(stats.BandFor(usage)).Render(fmt.Sprintf("%d%%", usage))
}

func bandStyle(b stats.Band) lipgloss.Style {
	fg := lightTextColor
	if b.DarkText() {
		fg = darkTextColor
	}
	return lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Background(lipgloss.Color(b.Hex())).
		Foreground(fg)
}

func renderBandLegend() string {
	parts := []string{headerStyle.Render("Usage intensity:")}
	for _, b := range stats.Bands() {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(b.Hex())).Render("  ")
		parts = append(parts, swatch+" "+headerStyle.Render(b.String()))
	}
	parts = append(parts, primeMarkStyle.Render("*")+headerStyle.Render(" prime time"))
	return strings.Join(parts, "  ")
}

func renderPatterns(views model.Views, width int) string {
	var buf bytes.Buffer
	spark := stats.HourlySparkline(views.Hourly[:])
	buf.WriteString(headerStyle.Render("Hourly trend "+model.HourLabel(model.MinHour)+" "+spark+" "+model.HourLabel(model.MaxHour)) + "\n\n")
	if err := stats.RenderChartsWithSize(&buf, views, width, true); err != nil {
		return fmt.Sprintf("Failed to render charts: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderInsights(report stats.Report, alert stats.Alert) string {
	var buf bytes.Buffer
	if err := stats.RenderInsights(&buf, report.Insights, report.Views.Grid[:], alert); err != nil {
		return fmt.Sprintf("Failed to render insights: %v", err)
	}
	return strings.TrimRight(alertBadge(alert)+"\n\n"+buf.String(), "\n")
}

func alertBadge(alert stats.Alert) string {
	badge := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(darkTextColor).
		Background(lipgloss.Color(alert.Level.Hex())).
		Render(alert.Type)
	return badge + " " + cardTitleStyle.Render(alert.Action)
}

func facilityColumns() []table.Column {
	return []table.Column{
		{Title: "Facility", Width: 18},
		{Title: "Avg Usage", Width: 9},
		{Title: "Prime Time", Width: 10},
		{Title: "Off-Peak", Width: 8},
		{Title: "Band", Width: 10},
	}
}

func facilityRows(facilities []model.FacilitySummary) []table.Row {
	rows := make([]table.Row, 0, len(facilities))
	for _, f := range facilities {
		rows = append(rows, table.Row{
			string(f.Facility),
			fmt.Sprintf("%d%%", f.AvgUsage),
			fmt.Sprintf("%d%%", f.PrimeTime),
			fmt.Sprintf("%d%%", f.OffPeak),
			stats.BandFor(f.AvgUsage).String(),
		})
	}
	return rows
}

func tierColumns() []table.Column {
	return []table.Column{
		{Title: "Tier", Width: 18},
		{Title: "Avg Usage", Width: 9},
		{Title: "Prime Time", Width: 10},
		{Title: "Members", Width: 7},
	}
}

func tierRows(tiers []model.TierSummary) []table.Row {
	rows := make([]table.Row, 0, len(tiers))
	for _, t := range tiers {
		rows = append(rows, table.Row{
			string(t.Tier),
			fmt.Sprintf("%d%%", t.AvgUsage),
			fmt.Sprintf("%d%%", t.PrimeTimeUsage),
			fmt.Sprintf("%d", t.MemberCount),
		})
	}
	return rows
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func setTableSize(t *table.Model, width, height int) {
	t.SetWidth(width)
	t.SetHeight(maxInt(1, height-1))
	adjustTableHeight(t, height)
}

// adjustTableHeight corrects for the header border so the rendered table
// fills bodyHeight exactly.
func adjustTableHeight(t *table.Model, bodyHeight int) {
	target := maxInt(1, bodyHeight)
	for range 2 {
		viewHeight := lipgloss.Height(t.View())
		if viewHeight == target {
			return
		}
		t.SetHeight(maxInt(1, t.Height()+target-viewHeight))
	}
}
