package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// ExportRecord is the history row written for every generated document.
type ExportRecord struct {
	ID           uuid.UUID              `json:"id"`
	OwnerID      string                 `json:"owner_id,omitempty"`
	DraftID      uuid.UUID              `json:"draft_id"`
	Title        string                 `json:"title"`
	Template     string                 `json:"template"`
	FileName     string                 `json:"file_name"`
	FileSize     int                    `json:"file_size"`
	ArtifactKey  string                 `json:"artifact_key,omitempty"`
	ThumbnailKey string                 `json:"thumbnail_key,omitempty"`
	Status       string                 `json:"status"`
	Metadata     map[string]interface{} `json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
}
