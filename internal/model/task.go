package model

import (
	"fmt"
	"time"
)

// DownloadTask is the download manager's view of one enqueued transfer
type DownloadTask struct {
	ID         int64
	Spec       EnqueueSpec
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	BytesDone  int64
	BytesTotal int64  // -1 if the server did not announce a length
	LastError  string // last error message if any
	OutputPath string // path of the finished file
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayTitle returns the spec title, falling back to the destination name
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Spec.Title != "" {
		return dt.Spec.Title
	}
	if dt.Spec.DestinationName != "" {
		return dt.Spec.DestinationName
	}
	return dt.Spec.URI
}

// GetSizeString returns "done / total" in human readable units
func (dt *DownloadTask) GetSizeString() string {
	if dt.BytesTotal <= 0 {
		return FormatBytes(dt.BytesDone)
	}
	return FormatBytes(dt.BytesDone) + " / " + FormatBytes(dt.BytesTotal)
}

// FormatBytes renders a byte count with binary units
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
