package model

// TaskStatus mirrors the lifecycle a download manager reports for an
// enqueued transfer.
type TaskStatus string

const (
	// TaskStatusPending means the transfer is queued and waits for a free slot
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusRunning means bytes are being transferred
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusSuccessful means the file was written to its destination
	TaskStatusSuccessful TaskStatus = "Successful"

	// TaskStatusFailed means the transfer stopped with an error
	TaskStatusFailed TaskStatus = "Failed"

	// TaskStatusCancelled means the transfer was removed before it finished
	TaskStatusCancelled TaskStatus = "Cancelled"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true while the download manager still owns the transfer
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusRunning
}

// IsFinished returns true for terminal states
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusSuccessful || ts == TaskStatusFailed || ts == TaskStatusCancelled
}
