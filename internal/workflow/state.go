package workflow

import "fmt"

// State is a step of the download flow
type State int

const (
	StateAwaitingPermission State = iota
	StateAwaitingFolderDecision
	StateAwaitingUserConfirmation
	StateEnqueuing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAwaitingPermission:
		return "AwaitingPermission"
	case StateAwaitingFolderDecision:
		return "AwaitingFolderDecision"
	case StateAwaitingUserConfirmation:
		return "AwaitingUserConfirmation"
	case StateEnqueuing:
		return "Enqueuing"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Message moves a Flow from one state to the next
type Message interface {
	message()
}

// PermissionResult answers the storage permission request
type PermissionResult struct {
	Granted bool
}

// FolderDecision answers the "folder not writable" prompt. Information
// dialogs always answer with Continue false.
type FolderDecision struct {
	Continue bool
}

// ConfirmDecision answers the download confirmation
type ConfirmDecision struct {
	Accepted     bool
	AllowMetered bool
}

func (PermissionResult) message() {}
func (FolderDecision) message()   {}
func (ConfirmDecision) message()  {}
