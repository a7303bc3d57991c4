// Package statsui provides the Bubble Tea usage dashboard.
package statsui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/usageheat/internal/model"
	"github.com/verte-zerg/usageheat/internal/stats"
)

const (
	tabHeatmap = iota
	tabPatterns
	tabFacilities
	tabTiers
	tabInsights
)

const (
	inputFacility = iota
	inputTier
	inputTimeframe
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Regenerator produces a fresh fact table.
type Regenerator func() []model.UsageFact

// Model implements the Bubble Tea usage dashboard.
type Model struct {
	facts  []model.UsageFact
	regen  Regenerator
	filter model.FilterState
	now    func() time.Time

	report stats.Report
	errMsg string

	tabs          []string
	activeTab     int
	viewports     []viewport.Model
	facilityTable table.Model
	tierTable     table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a dashboard over facts. regen may be nil, which
// disables regeneration.
func NewModel(facts []model.UsageFact, filter model.FilterState, regen Regenerator) *Model {
	if filter.Timeframe == "" {
		filter.Timeframe = model.TimeframeWeek
	}
	m := &Model{
		facts:  facts,
		regen:  regen,
		filter: filter,
		now:    time.Now,
		tabs:   []string{"Heatmap", "Patterns", "Facilities", "Tiers", "Insights"},
	}
	m.initInputs()
	m.initTables()
	m.initViewports()
	m.refreshReport()
	return m
}

// Filter returns the active filter.
func (m *Model) Filter() model.FilterState {
	return m.filter
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "f":
			m.filter.Facility = nextFacility(m.filter.Facility)
			m.refreshReport()
			return m, nil
		case "t":
			m.filter.MemberTier = nextTier(m.filter.MemberTier)
			m.refreshReport()
			return m, nil
		case "p":
			m.filter.Timeframe = nextTimeframe(m.filter.Timeframe)
			m.refreshReport()
			return m, nil
		case "r":
			if m.regen != nil {
				m.facts = m.regen()
				m.refreshReport()
			}
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if t := m.activeTable(); t != nil {
				t.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if t := m.activeTable(); t != nil {
				t.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if t := m.activeTable(); t != nil {
				var cmd tea.Cmd
				*t, cmd = t.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Facility: "),
		newFilterInput("Tier: "),
		newFilterInput("Timeframe: "),
	}
	m.filterInputs[inputFacility].Placeholder = "all"
	m.filterInputs[inputTier].Placeholder = "all"
	m.filterInputs[inputTimeframe].Placeholder = "week"
	m.setInputsFromFilter()
}

func (m *Model) initTables() {
	m.facilityTable = newTable(facilityColumns())
	m.tierTable = newTable(tierColumns())
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromFilter() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[inputFacility].SetValue(string(m.filter.Facility))
	m.filterInputs[inputTier].SetValue(string(m.filter.MemberTier))
	m.filterInputs[inputTimeframe].SetValue(string(m.filter.Timeframe))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	setTableSize(&m.facilityTable, m.width, vpHeight)
	setTableSize(&m.tierTable, m.width, vpHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) activeTable() *table.Model {
	switch m.activeTab {
	case tabFacilities:
		return &m.facilityTable
	case tabTiers:
		return &m.tierTable
	default:
		return nil
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.facilityTable.Blur()
	m.tierTable.Blur()
	if t := m.activeTable(); t != nil {
		t.Focus()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("Filter: facility=%s  tier=%s  timeframe=%s  facts=%d",
		m.filter.Facility, m.filter.MemberTier, m.filter.Timeframe.Label(), m.report.Insights.FactCount)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Facility: f  Tier: t  Period: p  Filter: /  Regenerate: r  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: ctrl+c")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filter (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, headerStyle.Render("Facilities: all, "+joinFacilities()))
	lines = append(lines, headerStyle.Render("Tiers: all, "+joinTiers()))
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if t := m.activeTable(); t != nil && m.errMsg == "" {
		return fitLines(tableMutedStyle.Render(t.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(m.facts, m.filter)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to aggregate usage.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.facilityTable.SetRows(facilityRows(report.Views.Facilities[:]))
	m.tierTable.SetRows(tierRows(report.Views.Tiers[:]))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to aggregate usage.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabHeatmap].SetContent(renderHeatmapTab(m.report, width))
	m.viewports[tabPatterns].SetContent(renderPatterns(m.report.Views, width))
	m.viewports[tabInsights].SetContent(renderInsights(m.report, stats.AlertFor(m.now().Hour())))
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromFilter()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	facility, err := model.ParseFacility(m.filterInputs[inputFacility].Value())
	if err != nil {
		return fmt.Errorf("invalid facility: %w", err)
	}
	tier, err := model.ParseTier(m.filterInputs[inputTier].Value())
	if err != nil {
		return fmt.Errorf("invalid tier: %w", err)
	}
	timeframe, err := model.ParseTimeframe(m.filterInputs[inputTimeframe].Value())
	if err != nil {
		return fmt.Errorf("invalid timeframe: %w", err)
	}
	m.filter = model.FilterState{
		Facility:   facility,
		MemberTier: tier,
		Timeframe:  timeframe,
	}
	return nil
}

func nextFacility(current model.Facility) model.Facility {
	options := append([]model.Facility{model.FacilityAll}, model.Facilities()...)
	return options[(current.Index()+2)%len(options)]
}

func nextTier(current model.Tier) model.Tier {
	options := append([]model.Tier{model.TierAll}, model.Tiers()...)
	return options[(current.Index()+2)%len(options)]
}

func nextTimeframe(current model.Timeframe) model.Timeframe {
	options := model.Timeframes()
	for i, t := range options {
		if t == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func joinFacilities() string {
	names := make([]string, 0, model.FacilityCount)
	for _, f := range model.Facilities() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func joinTiers() string {
	names := make([]string, 0, model.TierCount)
	for _, t := range model.Tiers() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
