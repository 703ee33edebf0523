package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ytget/map-downloader/internal/workflow"
)

var _ workflow.Presenter = (*TerminalPresenter)(nil)

// TerminalPresenter asks the workflow's questions on a terminal. Every
// answer is given before the presenter method returns.
type TerminalPresenter struct {
	in  *bufio.Reader
	out io.Writer

	// AssumeYes answers every question with yes
	AssumeYes bool

	// Metered, when set, overrides the metered network checkbox
	Metered *bool

	title   *color.Color
	warning *color.Color
	success *color.Color
	failure *color.Color
}

// NewTerminalPresenter creates a presenter reading answers from in
func NewTerminalPresenter(in io.Reader, out io.Writer) *TerminalPresenter {
	return &TerminalPresenter{
		in:      bufio.NewReader(in),
		out:     out,
		title:   color.New(color.FgCyan, color.Bold),
		warning: color.New(color.FgYellow),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

// ConfirmDownload implements workflow.Presenter
func (p *TerminalPresenter) ConfirmDownload(pr workflow.Prompt, meteredLabel string, allowMetered bool, onDecision func(accepted, allowMetered bool)) {
	p.title.Fprintln(p.out, pr.Title)
	fmt.Fprintln(p.out, pr.Message)

	metered := allowMetered
	if p.Metered != nil {
		metered = *p.Metered
	}

	accepted := p.ask(pr.ConfirmLabel+"?", false)
	if accepted && p.Metered == nil && !p.AssumeYes {
		metered = p.ask(meteredLabel+"?", allowMetered)
	}
	onDecision(accepted, metered)
}

// Confirm implements workflow.Presenter
func (p *TerminalPresenter) Confirm(pr workflow.Prompt, onDecision func(accepted bool)) {
	p.title.Fprintln(p.out, pr.Title)
	p.warning.Fprintln(p.out, pr.Message)
	onDecision(p.ask(pr.ConfirmLabel+"?", false))
}

// Inform implements workflow.Presenter
func (p *TerminalPresenter) Inform(pr workflow.Prompt, onAck func()) {
	p.title.Fprintln(p.out, pr.Title)
	p.warning.Fprintln(p.out, pr.Message)
	if onAck != nil {
		onAck()
	}
}

// Dismiss implements workflow.Presenter
func (p *TerminalPresenter) Dismiss() {}

// Notify implements workflow.Presenter
func (p *TerminalPresenter) Notify(message string, short bool) {
	if short {
		p.success.Fprintln(p.out, message)
		return
	}
	p.failure.Fprintln(p.out, message)
}

// ask prints question and reads a yes/no answer. Empty input and EOF
// select def.
func (p *TerminalPresenter) ask(question string, def bool) bool {
	if p.AssumeYes {
		return true
	}

	hint := " [y/N] "
	if def {
		hint = " [Y/n] "
	}
	fmt.Fprint(p.out, question+hint)

	line, err := p.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		if err != nil {
			fmt.Fprintln(p.out)
		}
		return def
	}
	return answer == "y" || answer == "yes" || answer == "j" || answer == "ja" || answer == "д" || answer == "да"
}
