package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

// confirmPublish asks the operator to confirm a publish run by typing
// the candidate version. Publishing pushes a signed tag and uploads
// artifacts, so a bare y/n is too easy to hit by accident.
func confirmPublish(cmd *cobra.Command, plan domain.ReleasePlan) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("%w: stdin is not a terminal, re-run with --yes", domain.ErrPublishDeclined)
	}

	model := newConfirmModel(plan)
	p := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}

	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	return m.confirmed, nil
}

// confirmModel is the bubbletea model for the publish confirmation.
type confirmModel struct {
	plan      domain.ReleasePlan
	input     textinput.Model
	confirmed bool
	done      bool
}

func newConfirmModel(plan domain.ReleasePlan) confirmModel {
	ti := textinput.New()
	ti.Placeholder = plan.RCVersion
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 32

	return confirmModel{plan: plan, input: ti}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.confirmed = m.input.Value() == m.plan.RCVersion
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf(
		"%s\n\n  Candidate tag: %s\n  Next snapshot: %s\n\n%s %s\n\n(esc to abort)\n",
		titleStyle.Render(fmt.Sprintf("Publish %s?", m.plan.RCTag)),
		m.plan.RCTag,
		m.plan.NextSnapshot,
		promptLabelStyle.Render(fmt.Sprintf("Type %q to confirm:", m.plan.RCVersion)),
		m.input.View(),
	)
}
