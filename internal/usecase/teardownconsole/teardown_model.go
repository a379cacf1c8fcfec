// Package teardownconsole is the interactive confirmation screen in front of
// a permanent tenant teardown.
package teardownconsole

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/domain/teardown"
	"workshop/internal/errs"
	"workshop/internal/ports"
)

type TenantTeardown interface {
	GetBusiness(ctx context.Context, businessID uint64) (ports.Business, error)
	TeardownPlan(ctx context.Context) ([]teardown.Step, error)
	PermanentlyDeleteTenant(ctx context.Context, businessID uint64) (bool, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseConfirm
	phaseRunning
	phaseDone
	phaseAborted
)

// Outcome is what happened once the program exits.
type Outcome struct {
	Confirmed bool
	Deleted   bool
	Err       error
}

type teardownModel struct {
	ctx        context.Context
	service    TenantTeardown
	businessID uint64

	phase    phase
	business ports.Business
	plan     []teardown.Step
	typed    string
	status   string
	outcome  Outcome
}

type planLoadedMsg struct {
	business ports.Business
	plan     []teardown.Step
	err      error
}

type teardownDoneMsg struct {
	deleted bool
	err     error
}

func NewTeardownModel(ctx context.Context, service TenantTeardown, businessID uint64) tea.Model {
	return &teardownModel{
		ctx:        ctx,
		service:    service,
		businessID: businessID,
		status:     "loading tenant",
	}
}

// OutcomeOf extracts the result from the final model returned by tea.Program.Run.
func OutcomeOf(model tea.Model) Outcome {
	m, ok := model.(*teardownModel)
	if !ok {
		return Outcome{Err: fmt.Errorf("unexpected model %T", model)}
	}
	return m.outcome
}

func (m *teardownModel) Init() tea.Cmd {
	return m.loadPlanCmd()
}

func (m *teardownModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case planLoadedMsg:
		if msg.err != nil {
			m.phase = phaseAborted
			m.outcome = Outcome{Err: msg.err}
			m.status = "load failed: " + msg.err.Error()
			return m, tea.Quit
		}
		m.business = msg.business
		m.plan = msg.plan
		m.phase = phaseConfirm
		m.status = fmt.Sprintf("type %d and press enter to delete, esc to abort", m.businessID)
		return m, nil
	case teardownDoneMsg:
		m.phase = phaseDone
		m.outcome = Outcome{Confirmed: true, Deleted: msg.deleted, Err: msg.err}
		switch {
		case msg.err != nil:
			m.status = "teardown rolled back: " + msg.err.Error()
		case msg.deleted:
			m.status = "tenant deleted"
		default:
			m.status = "tenant was already gone"
		}
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *teardownModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.abort("aborted by operator")
	}
	if m.phase != phaseConfirm {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if m.typed != "" {
			m.typed = m.typed[:len(m.typed)-1]
		}
		return m, nil
	case tea.KeyEnter:
		if m.typed != strconv.FormatUint(m.businessID, 10) {
			return m.abort(fmt.Sprintf("confirmation %q does not match tenant %d", m.typed, m.businessID))
		}
		m.phase = phaseRunning
		m.status = "deleting"
		logging.Warn(m.logCtx(), "tenant teardown confirmed in console")
		return m, m.teardownCmd()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				m.typed += string(r)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *teardownModel) abort(reason string) (tea.Model, tea.Cmd) {
	if m.phase == phaseRunning {
		return m, nil
	}
	m.phase = phaseAborted
	m.status = reason
	m.outcome = Outcome{}
	logging.Info(m.logCtx(), "tenant teardown aborted", slog.String("reason", reason))
	return m, tea.Quit
}

func (m *teardownModel) logCtx() context.Context {
	return logging.WithAttrs(
		logging.WithBusiness(m.ctx, m.businessID),
		slog.String("component", "usecase.teardownconsole"),
	)
}

func (m *teardownModel) loadPlanCmd() tea.Cmd {
	return func() tea.Msg {
		business, err := m.service.GetBusiness(m.ctx, m.businessID)
		if err != nil {
			return planLoadedMsg{err: errs.Wrapf(err, "load business %d", m.businessID)}
		}
		plan, err := m.service.TeardownPlan(m.ctx)
		if err != nil {
			return planLoadedMsg{err: err}
		}
		return planLoadedMsg{business: business, plan: plan}
	}
}

func (m *teardownModel) teardownCmd() tea.Cmd {
	return func() tea.Msg {
		deleted, err := m.service.PermanentlyDeleteTenant(m.ctx, m.businessID)
		return teardownDoneMsg{deleted: deleted, err: err}
	}
}

func (m *teardownModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dangerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Tenant Teardown"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf("business=%d name=%s", m.businessID, firstNonEmpty(m.business.Name, "-"))))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Plan"))
	builder.WriteString("\n")
	if len(m.plan) == 0 {
		builder.WriteString(dimStyle.Render("- not loaded"))
		builder.WriteString("\n")
	} else {
		for i, step := range m.plan {
			line := fmt.Sprintf("%2d. %s", i+1, step.Table)
			if step.ViaParent() {
				line += fmt.Sprintf(" (via %s.%s)", step.Parent, step.ForeignKey)
			}
			if step.Optional {
				line += dimStyle.Render(" optional")
			}
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}
	builder.WriteString("\n")

	if m.phase == phaseConfirm {
		builder.WriteString(dangerStyle.Render("This permanently deletes every row above. It cannot be undone."))
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Confirm tenant id: %s_\n\n", m.typed))
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + firstNonEmpty(m.status, "ready"))
	builder.WriteString("\n\n")

	builder.WriteString(dimStyle.Render("Keys: digits type id  enter confirm  esc abort"))
	return builder.String()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
