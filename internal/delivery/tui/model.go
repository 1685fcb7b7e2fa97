// Package tui renders the alert dashboard in a terminal.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pricealert/internal/domain"
	"pricealert/internal/usecase"
	"pricealert/internal/utils"
)

const barWidth = 24

// Effects is the read side of the cosmetic scheduler
type Effects interface {
	Now() time.Time
	Glitching() bool
}

// RefreshMsg asks the model to redraw after an effects change
type RefreshMsg struct{}

// Model is the bubbletea model of the dashboard
type Model struct {
	alerts  *usecase.AlertService
	effects Effects
	input   textinput.Model
	cursor  int
	err     string
}

// New builds a model over the alert service
func New(alerts *usecase.AlertService, effects Effects) Model {
	in := textinput.New()
	in.Placeholder = "0.00"
	in.CharLimit = 24
	in.Prompt = "$ "
	in.SetValue(alerts.Form().TargetPrice)
	in.Focus()

	return Model{alerts: alerts, effects: effects, input: in}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "left", "right":
			m.cycleSymbol(msg.String() == "right")
			return m, nil
		case "tab":
			m.toggleCondition()
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.alerts.Alerts())-1 {
				m.cursor++
			}
			return m, nil
		case "x", "delete":
			m.removeSelected()
			return m, nil
		case "enter":
			m.submit()
			return m, nil
		}

		if !acceptsKey(msg) {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.alerts.SetTargetPrice(m.input.Value())
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// acceptsKey lets through what a numeric field accepts plus editing keys
func acceptsKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' && r != '-' {
				return false
			}
		}
		return true
	}
	return false
}

func (m *Model) cycleSymbol(forward bool) {
	symbols := m.alerts.Symbols()
	if len(symbols) == 0 {
		return
	}
	current := m.alerts.Form().Symbol
	idx := 0
	for i, s := range symbols {
		if s == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(symbols)
	} else {
		idx = (idx - 1 + len(symbols)) % len(symbols)
	}
	m.alerts.SelectSymbol(symbols[idx])
}

func (m *Model) toggleCondition() {
	next := domain.ConditionBelow
	if m.alerts.Form().Condition == domain.ConditionBelow {
		next = domain.ConditionAbove
	}
	_ = m.alerts.SelectCondition(string(next))
}

func (m *Model) submit() {
	m.alerts.SetTargetPrice(m.input.Value())
	if !m.alerts.Form().CanSubmit() {
		return
	}
	if _, err := m.alerts.Submit(); err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.cursor = 0
	m.input.SetValue("")
}

func (m *Model) removeSelected() {
	alerts := m.alerts.Alerts()
	if m.cursor < 0 || m.cursor >= len(alerts) {
		return
	}
	m.alerts.RemoveAlert(alerts[m.cursor].ID)
	if m.cursor >= len(alerts)-1 && m.cursor > 0 {
		m.cursor--
	}
}

func (m Model) View() string {
	alerts := m.alerts.Alerts()
	counts := domain.CountAlerts(alerts)
	clock := utils.FormatClock(m.effects.Now())

	var b strings.Builder
	b.WriteString(m.header(clock))
	b.WriteString("\n\n")
	b.WriteString(m.stats(counts))
	b.WriteString("\n")

	form := panelStyle.Render(m.form(counts))
	list := panelStyle.Render(m.list(alerts, counts, clock))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, form, " ", list))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("←/→ token · tab condition · enter create · ↑/↓ select · x remove · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) header(clock string) string {
	title := titleStyle.Render("● PRICE_ALERT.BOT")
	if m.effects.Glitching() {
		title = glitchStyle.Render("● PR1CE_AL3RT.B0T")
	}
	return title + "   " + dimStyle.Render("[SYS]") + " " + clock + " UTC"
}

func (m Model) stats(c domain.AlertCounts) string {
	cell := func(v string, style lipgloss.Style, label string) string {
		return lipgloss.JoinVertical(lipgloss.Center, style.Render(v), dimStyle.Render(label))
	}
	return panelStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		cell(fmt.Sprint(c.Total), valueStyle, "TOTAL ALERTS"), "   ",
		cell(fmt.Sprint(c.Active), activeStyle, "ACTIVE"), "   ",
		cell(fmt.Sprint(c.Triggered), triggeredStyle, "TRIGGERED"), "   ",
		cell(fmt.Sprint(len(m.alerts.Symbols())), valueStyle, "TOKENS"),
	))
}

func (m Model) form(counts domain.AlertCounts) string {
	f := m.alerts.Form()

	above, below := toggleOff, toggleOff
	if f.Condition == domain.ConditionBelow {
		below = toggleOn.BorderForeground(red).Foreground(red)
	} else {
		above = toggleOn
	}

	submit := dimStyle.Render("[+] CREATE ALERT")
	if f.CanSubmit() {
		submit = valueStyle.Render("[+] CREATE ALERT")
	}

	lines := []string{
		titleStyle.Render("> NEW_ALERT"),
		"",
		labelStyle.Render("TOKEN"),
		"◀ " + valueStyle.Render(f.Symbol) + " ▶",
		"",
		labelStyle.Render("CURRENT PRICE"),
		valueStyle.Render("$" + utils.FormatPrice(m.alerts.Price(f.Symbol))),
		"",
		labelStyle.Render("CONDITION"),
		lipgloss.JoinHorizontal(lipgloss.Top, above.Render("ABOVE"), " ", below.Render("BELOW")),
		labelStyle.Render("TARGET PRICE"),
		m.input.View(),
		"",
		submit,
	}
	if m.err != "" {
		lines = append(lines, errorStyle.Render("[ERR] "+m.err))
	}
	if counts.Active > 0 {
		lines = append(lines, "", activeStyle.Render("  ·  radar: "+fmt.Sprint(counts.Active)+" blip(s)"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) list(alerts []domain.Alert, counts domain.AlertCounts, clock string) string {
	lines := []string{titleStyle.Render("> ACTIVE_ALERTS") + dimStyle.Render(fmt.Sprintf("  [%d]", counts.Total)), ""}

	if len(alerts) == 0 {
		lines = append(lines,
			dimStyle.Render("   ___"),
			dimStyle.Render("  |   |"),
			dimStyle.Render("  | _ |"),
			dimStyle.Render("  |___|"),
			"",
			dimStyle.Render("No alerts configured"),
			dimStyle.Render("Create your first alert to start monitoring"),
		)
	}

	for i, a := range alerts {
		badge := aboveBadge.Render(a.Condition.Label())
		if a.Condition == domain.ConditionBelow {
			badge = belowBadge.Render(a.Condition.Label())
		}
		status := dimStyle.Render("● MONITORING")
		symbol := valueStyle.Render(fmt.Sprintf("%-5s", a.Symbol))
		if a.IsTriggered {
			status = triggeredStyle.Render("● TRIGGERED")
			symbol = triggeredStyle.Render(fmt.Sprintf("%-5s", a.Symbol))
		}

		row := fmt.Sprintf("%s %s %s  %s  %s",
			symbol, badge,
			targetStyle.Render("$"+utils.FormatPrice(a.TargetPrice)),
			dimStyle.Render("Current: $"+utils.FormatPrice(a.CurrentPrice)),
			status,
		)
		bar := fillBar(a)
		if i == m.cursor {
			row = selectedStyle.Render("› " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row, "  "+bar, "")
	}

	lines = append(lines,
		dimStyle.Render(fmt.Sprintf("[%s] System online. Monitoring %d alert(s)...", clock, counts.Active)),
		dimStyle.Render(fmt.Sprintf("[%s] Price feed connected. Latency: 12ms", clock)),
		dimStyle.Render(fmt.Sprintf("[%s] Awaiting price updates..._", clock)),
	)
	return strings.Join(lines, "\n")
}

// fillBar draws the progress bar for an alert's fill percentage
func fillBar(a domain.Alert) string {
	pct := a.FillPercent().InexactFloat64()
	filled := int(math.Round(pct / 100 * barWidth))
	style := valueStyle
	if a.IsTriggered {
		style = triggeredStyle
	}
	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
}
