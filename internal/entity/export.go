package entity

import "time"

const (
	ExportStatusProcessing = "processing"
	ExportStatusCompleted  = "completed"
	ExportStatusFailed     = "failed"

	FormatPNG = "png"
	FormatPDF = "pdf"
)

type ExportJob struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Format    string    `json:"format"`
	Error     string    `json:"error,omitempty"`
	File      string    `json:"file,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportTask is the message published for the export worker.
type ExportTask struct {
	ExportID string `json:"export_id"`
}

type ExportResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
