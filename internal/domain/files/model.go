package files

import "time"

// PhotoCategory classifies a site photograph.
type PhotoCategory string

const (
	PhotoProgress PhotoCategory = "progress"
	PhotoBefore   PhotoCategory = "before"
	PhotoAfter    PhotoCategory = "after"
	PhotoDetail   PhotoCategory = "detail"
	PhotoOther    PhotoCategory = "other"
)

// ReceiptCategory classifies an expense document.
type ReceiptCategory string

const (
	ReceiptService  ReceiptCategory = "service"
	ReceiptMaterial ReceiptCategory = "material"
	ReceiptOther    ReceiptCategory = "other"
)

// Photo is the stored record of a project site photograph. Only metadata is
// kept; the image bytes live on disk at LocalPath.
type Photo struct {
	ID           string        `json:"id"`
	ProjectID    string        `json:"projectId"`
	FileName     string        `json:"filename"`
	OriginalName string        `json:"originalName"`
	LocalPath    string        `json:"localPath,omitempty"`
	UploadedAt   time.Time     `json:"uploadDate"`
	Description  string        `json:"description,omitempty"`
	Category     PhotoCategory `json:"category"`
	Size         int64         `json:"size"`
}

// Receipt is the stored record of an expense document attached to a project.
type Receipt struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"clientId,omitempty"`
	ProjectID    string          `json:"projectId,omitempty"`
	FileName     string          `json:"filename"`
	OriginalName string          `json:"originalName"`
	LocalPath    string          `json:"localPath,omitempty"`
	UploadedAt   time.Time       `json:"uploadDate"`
	Amount       float64         `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Category     ReceiptCategory `json:"category"`
}
