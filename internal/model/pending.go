package model

// PendingDownload records a download that a download manager accepted.
// ID is the identifier the manager assigned on enqueue and is treated as
// opaque.
type PendingDownload struct {
	ID       int64   `json:"id"`
	Filename string  `json:"filename"`
	URI      string  `json:"uri"`
	Date     int64   `json:"date"`
	Type     MapType `json:"type"`
}

// NewPendingDownload builds the record for an accepted request
func NewPendingDownload(id int64, req DownloadRequest) PendingDownload {
	return PendingDownload{
		ID:       id,
		Filename: req.Filename(),
		URI:      req.URI(),
		Date:     req.Date(),
		Type:     req.Type(),
	}
}
