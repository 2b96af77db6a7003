package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
)

type ResumeDTO struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	FileName       string    `json:"file_name"`
	FileType       string    `json:"file_type"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	UploadStatus   string    `json:"upload_status"`
	ParsingStatus  string    `json:"parsing_status"`
	Score          *float64  `json:"score"`
	Rank           *int      `json:"rank"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResumeDTO(resume *model.Resume) ResumeDTO {
	return ResumeDTO{
		ID:             resume.ID,
		JobID:          resume.JobID,
		FileName:       resume.FileName,
		FileType:       resume.FileType,
		CandidateName:  resume.CandidateName,
		CandidateEmail: resume.CandidateEmail,
		UploadStatus:   resume.UploadStatus,
		ParsingStatus:  resume.ParsingStatus,
		Score:          resume.Score,
		Rank:           resume.Rank,
		CreatedAt:      resume.CreatedAt,
	}
}

// TriggerResponse acknowledges that a background task was accepted for
// a single resume.
type TriggerResponse struct {
	Message  string    `json:"message"`
	ResumeID uuid.UUID `json:"resume_id"`
	Status   string    `json:"status"`
}

// BatchTriggerResponse acknowledges a job-wide background task.
type BatchTriggerResponse struct {
	Message string    `json:"message"`
	JobID   uuid.UUID `json:"job_id"`
	Count   int       `json:"count"`
}

// LeaderboardEntry is one row of a job's ranked candidate list.
type LeaderboardEntry struct {
	ResumeID      uuid.UUID `json:"resume_id"`
	CandidateName string    `json:"candidate_name"`
	FileName      string    `json:"file_name"`
	Score         float64   `json:"score"`
	Rank          int       `json:"rank"`
}
