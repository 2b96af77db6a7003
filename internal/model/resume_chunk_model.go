package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ResumeChunk is one indexed text segment of a resume, searchable via pgvector.
type ResumeChunk struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID      uuid.UUID       `gorm:"type:uuid;index" json:"resume_id"`
	JobID         uuid.UUID       `gorm:"type:uuid;index" json:"job_id"`
	CandidateName string          `gorm:"type:varchar(255)" json:"candidate_name"`
	ChunkIndex    int             `json:"chunk_index"`
	TotalChunks   int             `json:"total_chunks"`
	Content       string          `gorm:"type:text" json:"content"`
	Embedding     pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (c *ResumeChunk) TableName() string {
	return "resume_chunks"
}
