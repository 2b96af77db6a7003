package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	UploadStatusUploaded = "uploaded"

	ParsingStatusPending    = "pending"
	ParsingStatusProcessing = "processing"
	ParsingStatusCompleted  = "completed"
	ParsingStatusFailed     = "failed"
)

type Resume struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID          uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	FileName       string    `gorm:"type:varchar(255)" json:"file_name"`
	FilePath       string    `gorm:"type:varchar(512)" json:"file_path"`
	FileType       string    `gorm:"type:varchar(10)" json:"file_type"` // "pdf" or "docx"
	CandidateName  string    `gorm:"type:varchar(255)" json:"candidate_name"`
	CandidateEmail string    `gorm:"type:varchar(255)" json:"candidate_email"`
	UploadStatus   string    `gorm:"type:varchar(50)" json:"upload_status"`
	ParsingStatus  string    `gorm:"type:varchar(50);index" json:"parsing_status"`
	Score          *float64  `gorm:"type:float" json:"score"`
	Rank           *int      `json:"rank"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}
