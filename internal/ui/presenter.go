package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/map-downloader/internal/workflow"
)

var _ workflow.Presenter = (*DialogPresenter)(nil)

// DialogPresenter shows workflow prompts as Fyne dialogs on a window
type DialogPresenter struct {
	window  fyne.Window
	current dialog.Dialog
	notify  func(message string, short bool)
}

// NewDialogPresenter creates a presenter for window. notify shows
// transient notices; when nil they are shown as information dialogs.
func NewDialogPresenter(window fyne.Window, notify func(message string, short bool)) *DialogPresenter {
	return &DialogPresenter{window: window, notify: notify}
}

// ConfirmDownload implements workflow.Presenter
func (p *DialogPresenter) ConfirmDownload(pr workflow.Prompt, meteredLabel string, allowMetered bool, onDecision func(accepted, allowMetered bool)) {
	content, check := confirmationContent(pr.Message, meteredLabel, allowMetered)
	d := dialog.NewCustomConfirm(pr.Title, pr.ConfirmLabel, pr.DismissLabel, content, decisionHandler(check, onDecision), p.window)
	d.Resize(fyne.NewSize(ConfirmDialogWidth, d.MinSize().Height))
	p.current = d
	d.Show()
}

// Confirm implements workflow.Presenter
func (p *DialogPresenter) Confirm(pr workflow.Prompt, onDecision func(accepted bool)) {
	d := dialog.NewConfirm(pr.Title, pr.Message, onDecision, p.window)
	if pr.ConfirmLabel != "" {
		d.SetConfirmText(pr.ConfirmLabel)
	}
	if pr.DismissLabel != "" {
		d.SetDismissText(pr.DismissLabel)
	}
	d.Show()
}

// Inform implements workflow.Presenter
func (p *DialogPresenter) Inform(pr workflow.Prompt, onAck func()) {
	d := dialog.NewInformation(pr.Title, pr.Message, p.window)
	if pr.ConfirmLabel != "" {
		d.SetDismissText(pr.ConfirmLabel)
	}
	if onAck != nil {
		d.SetOnClosed(onAck)
	}
	d.Show()
}

// Dismiss implements workflow.Presenter
func (p *DialogPresenter) Dismiss() {
	if p.current == nil {
		return
	}
	p.current.Hide()
	p.current = nil
}

// Notify implements workflow.Presenter
func (p *DialogPresenter) Notify(message string, short bool) {
	if p.notify != nil {
		p.notify(message, short)
		return
	}
	dialog.ShowInformation("", message, p.window)
}

// confirmationContent builds the body of the download confirmation
func confirmationContent(message, meteredLabel string, allowMetered bool) (fyne.CanvasObject, *widget.Check) {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord

	check := widget.NewCheck(meteredLabel, nil)
	check.SetChecked(allowMetered)

	return container.NewVBox(label, check), check
}

// decisionHandler reads the checkbox at the moment a button is pressed
func decisionHandler(check *widget.Check, onDecision func(accepted, allowMetered bool)) func(bool) {
	return func(accepted bool) {
		onDecision(accepted, check.Checked)
	}
}
