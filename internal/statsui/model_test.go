package statsui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/usageheat/internal/generator"
	"github.com/verte-zerg/usageheat/internal/model"
	"github.com/verte-zerg/usageheat/internal/stats"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	facts := generator.NewSeeded(7, generator.DefaultNoise).Generate()
	m := NewModel(facts, model.DefaultFilter(), nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestCycleFacilityKey(t *testing.T) {
	m := newTestModel(t)
	want := append([]model.Facility{}, model.Facilities()...)
	want = append(want, model.FacilityAll)
	for _, facility := range want {
		m.Update(key("f"))
		if m.Filter().Facility != facility {
			t.Fatalf("expected %q, got %q", facility, m.Filter().Facility)
		}
	}
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
}

func TestCycleTierAndTimeframeKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("t"))
	if m.Filter().MemberTier != model.VentureNorthClub {
		t.Fatalf("expected top tier, got %q", m.Filter().MemberTier)
	}
	if m.report.Insights.FactCount != model.DayCount*model.HourCount*model.FacilityCount {
		t.Fatalf("expected tier-filtered fact count, got %d", m.report.Insights.FactCount)
	}
	m.Update(key("p"))
	if m.Filter().Timeframe != model.TimeframeMonth {
		t.Fatalf("expected month, got %q", m.Filter().Timeframe)
	}
	m.Update(key("p"))
	m.Update(key("p"))
	if m.Filter().Timeframe != model.TimeframeWeek {
		t.Fatalf("expected timeframe to wrap to week, got %q", m.Filter().Timeframe)
	}
}

func TestFilterFormApplies(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("/"))
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	m.filterInputs[inputFacility].SetValue("player lab")
	m.filterInputs[inputTier].SetValue("All-Access")
	m.filterInputs[inputTimeframe].SetValue("quarter")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter mode to close")
	}
	got := m.Filter()
	if got.Facility != model.PlayerLab || got.MemberTier != model.AllAccess || got.Timeframe != model.TimeframeQuarter {
		t.Fatalf("unexpected filter %+v", got)
	}
	want, err := stats.Aggregate(m.facts, got)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if m.report.Views != want {
		t.Fatalf("expected dashboard views to match the aggregator")
	}
}

func TestFilterFormRejectsUnknownFacility(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("/"))
	m.filterInputs[inputFacility].SetValue("Swimming Pool")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode {
		t.Fatalf("expected form to stay open")
	}
	if !strings.Contains(m.filterError, "invalid facility") {
		t.Fatalf("expected facility error, got %q", m.filterError)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterMode || m.Filter().Facility != model.FacilityAll {
		t.Fatalf("expected cancel to keep the previous filter")
	}
}

func TestRegenerateKey(t *testing.T) {
	calls := 0
	regen := func() []model.UsageFact {
		calls++
		return generator.NewSeeded(int64(100+calls), generator.DefaultNoise).Generate()
	}
	m := NewModel(regen(), model.DefaultFilter(), regen)
	m.Update(key("r"))
	if calls != 2 {
		t.Fatalf("expected regenerate to be called, got %d calls", calls)
	}
	if m.report.Insights.FactCount != model.FactCount {
		t.Fatalf("expected %d facts, got %d", model.FactCount, m.report.Insights.FactCount)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestMoveTabWraps(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("h"))
	if m.activeTab != tabInsights {
		t.Fatalf("expected insights tab, got %d", m.activeTab)
	}
	m.Update(key("l"))
	if m.activeTab != tabHeatmap {
		t.Fatalf("expected heatmap tab, got %d", m.activeTab)
	}
}

func TestViewFitsWindow(t *testing.T) {
	m := newTestModel(t)
	for range m.tabs {
		view := m.View()
		lines := strings.Split(view, "\n")
		if len(lines) != 40 {
			t.Fatalf("tab %d: expected 40 lines, got %d", m.activeTab, len(lines))
		}
		m.Update(key("l"))
	}
}

func TestRenderHeatmap(t *testing.T) {
	views, err := stats.Aggregate(generator.NewSeeded(1, 0).Generate(), model.DefaultFilter())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	out := renderHeatmap(views.Grid[:])
	for _, want := range []string{"Usage Intensity Heatmap", "Mon", "Sun", "6:00", "22:00", "Low-Medium", "prime time"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in heatmap", want)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) != model.HourCount+3 {
		t.Fatalf("expected %d lines, got %d", model.HourCount+3, len(lines))
	}
	if !strings.Contains(renderHeatmap(nil), "Failed to render heatmap") {
		t.Fatalf("expected error text for empty grid")
	}
}

func TestFacilityRowsKeepOrder(t *testing.T) {
	views, err := stats.Aggregate(nil, model.DefaultFilter())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	rows := facilityRows(views.Facilities[:])
	if len(rows) != model.FacilityCount {
		t.Fatalf("expected %d rows, got %d", model.FacilityCount, len(rows))
	}
	if rows[0][0] != string(model.BasketballCourts) || rows[0][1] != "0%" || rows[0][4] != "Low" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	tiers := tierRows(views.Tiers[:])
	if tiers[1][0] != string(model.AllAccess) || tiers[1][3] != "743" {
		t.Fatalf("unexpected tier row %v", tiers[1])
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("expected %q, got %q", "abc...", got)
	}
	if got := truncateLine("abc", 6); got != "abc" {
		t.Fatalf("expected %q, got %q", "abc", got)
	}
}

func TestInsightsTabShowsHourAlert(t *testing.T) {
	facts := generator.NewSeeded(7, generator.DefaultNoise).Generate()
	m := NewModel(facts, model.DefaultFilter(), nil)
	m.now = func() time.Time { return time.Date(2026, 3, 2, 11, 30, 0, 0, time.Local) }
	m.renderTabContents()
	out := renderInsights(m.report, stats.AlertFor(m.now().Hour()))
	for _, want := range []string{"Low Utilization", "Send targeted promotions to Basic members", "Usage Pattern Insights"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in insights tab", want)
		}
	}
	if !strings.Contains(renderInsights(m.report, stats.AlertFor(20)), "Enable 20% premium pricing") {
		t.Fatalf("expected high demand action at 20:00")
	}
}
