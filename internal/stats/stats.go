// Package stats contains usage aggregation and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/usageheat/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders usage percentages as a single ASCII line on a fixed 0-100 scale.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		pos := math.Max(0, math.Min(1, float64(v)/maxPlotValue))
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// HourlySparkline renders the hourly view from opening to closing.
func HourlySparkline(hourly []model.HourlySummary) string {
	values := make([]int, len(hourly))
	for i, h := range hourly {
		values[i] = h.Usage
	}
	return Sparkline(values)
}

// RenderHourly prints the hourly usage table.
func RenderHourly(w io.Writer, hourly []model.HourlySummary) error {
	rows := make([][]string, 0, len(hourly))
	for _, h := range hourly {
		rows = append(rows, []string{h.Label, percent(h.Usage), h.PrimeTimeLabel()})
	}
	headers := []string{"Hour", "Usage", "Window"}
	return writeTable(w, "Hourly Usage Patterns", headers, rows, map[int]bool{0: true, 1: true})
}

// RenderDaily prints the daily usage table.
func RenderDaily(w io.Writer, daily []model.DailySummary) error {
	rows := make([][]string, 0, len(daily))
	for _, d := range daily {
		rows = append(rows, []string{d.Day.Short(), percent(d.Usage), d.WeekendLabel()})
	}
	headers := []string{"Day", "Usage", "Type"}
	return writeTable(w, "Daily Usage Distribution", headers, rows, map[int]bool{1: true})
}

// RenderFacilities prints prime time versus off-peak usage per facility.
func RenderFacilities(w io.Writer, facilities []model.FacilitySummary) error {
	rows := make([][]string, 0, len(facilities))
	for _, f := range facilities {
		rows = append(rows, []string{
			string(f.Facility),
			percent(f.AvgUsage),
			percent(f.PrimeTime),
			percent(f.OffPeak),
		})
	}
	headers := []string{"Facility", "Avg Usage", "Prime Time", "Off-Peak"}
	return writeTable(w, "Prime Time vs Off-Peak by Facility", headers, rows, map[int]bool{1: true, 2: true, 3: true})
}

// RenderTiers prints usage per member tier.
func RenderTiers(w io.Writer, tiers []model.TierSummary) error {
	rows := make([][]string, 0, len(tiers))
	for _, t := range tiers {
		rows = append(rows, []string{
			string(t.Tier),
			percent(t.AvgUsage),
			percent(t.PrimeTimeUsage),
			fmt.Sprintf("%d", t.MemberCount),
		})
	}
	headers := []string{"Tier", "Avg Usage", "Prime Time", "Members"}
	return writeTable(w, "Usage by Member Tier", headers, rows, map[int]bool{1: true, 2: true, 3: true})
}

// RenderGrid prints hours as rows and days as columns. With useColor each
// cell is shaded by its usage band.
func RenderGrid(w io.Writer, grid []model.GridCell, useColor bool) error {
	if len(grid) != model.GridCellCount {
		return fmt.Errorf("grid has %d cells, expected %d", len(grid), model.GridCellCount)
	}
	if _, err := fmt.Fprintln(w, "Usage Intensity Heatmap"); err != nil {
		return err
	}
	var header strings.Builder
	header.WriteString("      ")
	for _, day := range model.Days() {
		header.WriteString(fmt.Sprintf(" %4s", day.Short()))
	}
	if _, err := fmt.Fprintln(w, header.String()); err != nil {
		return err
	}
	for _, hour := range model.Hours() {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%6s", model.HourLabel(hour)))
		for _, day := range model.Days() {
			cell := grid[model.GridIndex(day, hour)]
			text := fmt.Sprintf("%4s", percent(cell.Usage))
			row.WriteByte(' ')
			if useColor {
				band := BandFor(cell.Usage)
				row.WriteString(band.ansiBackground())
				row.WriteString(bandForeground(band))
				row.WriteString(text)
				row.WriteString(colorReset)
			} else {
				row.WriteString(text)
			}
		}
		if model.IsPrimeHour(hour) {
			row.WriteString("  *")
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, gridLegend()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func bandForeground(b Band) string {
	if b.DarkText() {
		return "\x1b[30m"
	}
	return "\x1b[97m"
}

func gridLegend() string {
	parts := make([]string, 0, len(Bands()))
	for _, b := range Bands() {
		parts = append(parts, b.String())
	}
	return "* prime time   Usage intensity: " + strings.Join(parts, " < ")
}

// RenderChartsWithSize prints hourly, daily and facility bar charts sized to totalWidth.
func RenderChartsWithSize(w io.Writer, views model.Views, totalWidth int, useColor bool) error {
	hourly := make([]Bar, 0, len(views.Hourly))
	for _, h := range views.Hourly {
		hourly = append(hourly, Bar{Label: h.Label, Value: float64(h.Usage), Highlight: h.IsPrimeTime})
	}
	if err := PlotBarsWithColor(w, "Hourly Usage", hourly, totalWidth, [2]string{"Prime Time", "Off-Peak"}, useColor); err != nil {
		return err
	}
	daily := make([]Bar, 0, len(views.Daily))
	for _, d := range views.Daily {
		daily = append(daily, Bar{Label: d.Day.Short(), Value: float64(d.Usage), Highlight: d.IsWeekend})
	}
	if err := PlotBarsWithColor(w, "Daily Usage", daily, totalWidth, [2]string{"Weekend", "Weekday"}, useColor); err != nil {
		return err
	}
	facilities := make([]Bar, 0, 2*len(views.Facilities))
	for _, f := range views.Facilities {
		facilities = append(facilities,
			Bar{Label: string(f.Facility) + " prime", Value: float64(f.PrimeTime), Highlight: true},
			Bar{Label: string(f.Facility) + " off-peak", Value: float64(f.OffPeak)},
		)
	}
	return PlotBarsWithColor(w, "Prime Time vs Off-Peak", facilities, totalWidth, [2]string{"Prime Time", "Off-Peak"}, useColor)
}

// RenderSummary prints every table view.
func RenderSummary(w io.Writer, views model.Views) error {
	if err := RenderHourly(w, views.Hourly[:]); err != nil {
		return err
	}
	if err := RenderDaily(w, views.Daily[:]); err != nil {
		return err
	}
	if err := RenderFacilities(w, views.Facilities[:]); err != nil {
		return err
	}
	return RenderTiers(w, views.Tiers[:])
}

// RenderInsights prints peak statistics, the busiest and quietest slots and
// the optimization alert.
func RenderInsights(w io.Writer, ins Insights, grid []model.GridCell, alert Alert) error {
	if ins.FactCount == 0 {
		if _, err := fmt.Fprintln(w, "No facts match the filter."); err != nil {
			return err
		}
		return writeAlert(w, alert)
	}
	lines := []string{
		"Usage Pattern Insights",
		fmt.Sprintf("Facts analyzed: %d", ins.FactCount),
		fmt.Sprintf("Peak hour: %s", model.HourLabel(ins.PeakHour)),
		fmt.Sprintf("Peak day: %s", ins.PeakDay.Name()),
		fmt.Sprintf("Prime time avg: %.1f%%  Off-peak avg: %.1f%%  Boost: %+.1f%%", ins.PrimeTimeAvg, ins.OffPeakAvg, ins.PrimeTimeBoost),
		fmt.Sprintf("Weekend avg: %.1f%%  Weekday avg: %.1f%%  Boost: %+.1f%%", ins.WeekendAvg, ins.WeekdayAvg, ins.WeekendBoost),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	peakRows := make([][]string, 0, len(ins.FacilityPeaks))
	for _, p := range ins.FacilityPeaks {
		peakRows = append(peakRows, []string{string(p.Facility), model.HourLabel(p.Hour)})
	}
	if err := writeTable(w, "Facility Peak Hours", []string{"Facility", "Peak"}, peakRows, map[int]bool{1: true}); err != nil {
		return err
	}
	if err := writeSlots(w, "Busiest Slots", BusiestSlots(grid, 5)); err != nil {
		return err
	}
	if err := writeSlots(w, "Quietest Slots", QuietestSlots(grid, 5)); err != nil {
		return err
	}
	return writeAlert(w, alert)
}

func writeSlots(w io.Writer, title string, cells []model.GridCell) error {
	rows := make([][]string, 0, len(cells))
	for _, c := range cells {
		window := "Off-Peak"
		if c.IsPrimeTime {
			window = "Prime Time"
		}
		rows = append(rows, []string{c.Day.Short(), model.HourLabel(c.Hour), percent(c.Usage), window})
	}
	return writeTable(w, title, []string{"Day", "Hour", "Usage", "Window"}, rows, map[int]bool{1: true, 2: true})
}

func percent(v int) string {
	return fmt.Sprintf("%d%%", v)
}
