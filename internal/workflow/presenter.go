package workflow

// Prompt is the text of a modal dialog
type Prompt struct {
	Title        string
	Message      string
	ConfirmLabel string
	DismissLabel string
}

// Presenter shows dialogs and notices on behalf of the workflow. Every
// callback must be called at most once.
type Presenter interface {
	// ConfirmDownload shows the download confirmation with the
	// "allow metered network" checkbox preset to allowMetered.
	ConfirmDownload(p Prompt, meteredLabel string, allowMetered bool, onDecision func(accepted, allowMetered bool))

	// Confirm shows a two-button question.
	Confirm(p Prompt, onDecision func(accepted bool))

	// Inform shows a message with a single acknowledge button.
	Inform(p Prompt, onAck func())

	// Dismiss closes the dialog opened by ConfirmDownload, if still visible.
	Dismiss()

	// Notify shows a transient notice.
	Notify(message string, short bool)
}
