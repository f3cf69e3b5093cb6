package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/config"
	"github.com/theirongolddev/salarygap/internal/pipeline"
	"github.com/theirongolddev/salarygap/internal/tui/components"
	"github.com/theirongolddev/salarygap/internal/tui/theme"
)

const (
	settingsFieldDataDir = iota
	settingsFieldTheme
	settingsFieldAdditional
	settingsFieldAddr
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message after a write
	saveErr error // non-nil if last save failed
}

func (a *App) updateSettingsKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "j", "down":
		a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
	case "k", "up":
		a.settings.cursor = max(a.settings.cursor-1, 0)
	case "enter":
		return true, a.startSettingsEdit()
	default:
		return false, nil
	}
	a.settings.saved = false
	return true, nil
}

func (a *App) startSettingsEdit() tea.Cmd {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	switch a.settings.cursor {
	case settingsFieldDataDir:
		ti.Placeholder = "./data"
		ti.SetValue(a.cfg.Data.Dir)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldAdditional:
		ti.Placeholder = "250 (monthly USD)"
		ti.SetValue(strconv.FormatFloat(a.cfg.Budget.AdditionalMonthly, 'f', 2, 64))
	case settingsFieldAddr:
		ti.Placeholder = "127.0.0.1:8788"
		ti.SetValue(a.cfg.Server.Addr)
	}

	ti.Focus()
	a.settings.input = ti
	a.settings.editing = true
	a.settings.saved = false
	return ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		a.settings.saveErr = a.saveSetting(strings.TrimSpace(a.settings.input.Value()))
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// saveSetting validates val for the field under the cursor and writes the
// whole config back. The data directory and the additional expenses default
// apply from the next start; the theme switches immediately.
func (a *App) saveSetting(val string) error {
	cfg := a.cfg

	switch a.settings.cursor {
	case settingsFieldDataDir:
		if val == "" {
			return errors.New("data directory must not be empty")
		}
		cfg.Data.Dir = val
	case settingsFieldTheme:
		if !theme.Known(val) {
			return fmt.Errorf("unknown theme %q (choose from %s)", val, strings.Join(theme.Names(), ", "))
		}
		cfg.Appearance.Theme = val
	case settingsFieldAdditional:
		v, err := parseAmount(val)
		if err != nil {
			return fmt.Errorf("additional expenses: %w", err)
		}
		cfg.Budget.AdditionalMonthly = v
	case settingsFieldAddr:
		if val == "" {
			return errors.New("server address must not be empty")
		}
		cfg.Server.Addr = val
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	if cfg.Appearance.Theme != a.cfg.Appearance.Theme {
		theme.SetActive(cfg.Appearance.Theme)
	}
	a.cfg = cfg
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	fields := []struct{ label, value string }{
		{"Data Directory", a.cfg.Data.Dir},
		{"Theme", a.cfg.Appearance.Theme},
		{"Additional Expenses", cli.FormatMoney(a.cfg.Budget.AdditionalMonthly) + "/mo"},
		{"Server Address", a.cfg.Server.Addr},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-21s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			line := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-21s ", f.label+":")) +
				selectedStyle.Render(f.value)
			formBody.WriteString(line)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-21s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved. Data settings apply on next start."))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	info := []struct{ label, value string }{
		{"Loaded from:   ", a.dataDir},
		{"Config file:   ", config.ConfigPath()},
		{"Table cache:   ", pipeline.CachePath()},
		{"Load time:     ", fmt.Sprintf("%.1fs", a.loadTime.Seconds())},
	}
	if a.sess != nil {
		ds := a.sess.Dataset()
		info = append(info,
			struct{ label, value string }{"Salary years:  ", cli.FormatNumber(int64(len(ds.Salaries.Rows)))},
			struct{ label, value string }{"Jobs:          ", cli.FormatNumber(int64(len(ds.Salaries.Categories)))},
			struct{ label, value string }{"Cost columns:  ", cli.FormatNumber(int64(len(ds.AnnualCosts.Categories)))},
		)
	}
	for i, row := range info {
		if i > 0 {
			infoBody.WriteString("\n")
		}
		infoBody.WriteString(labelStyle.Render(row.label) + valueStyle.Render(truncStr(row.value, max(innerW-15, 8))))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}
