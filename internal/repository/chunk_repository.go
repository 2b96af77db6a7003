package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) *ChunkRepository {
	return &ChunkRepository{db}
}

// ChunkMatch is a search hit with its cosine distance to the query.
type ChunkMatch struct {
	model.ResumeChunk
	Distance float64 `json:"distance"`
}

// Replace swaps the indexed chunks of a resume in one transaction.
func (r *ChunkRepository) Replace(ctx context.Context, resumeID uuid.UUID, chunks []model.ResumeChunk) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ResumeChunk{}, "resume_id = ?", resumeID).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		return tx.Create(&chunks).Error
	})
}

// Search returns the topK chunks nearest to the embedding by cosine distance,
// optionally scoped to one job.
func (r *ChunkRepository) Search(ctx context.Context, embedding pgvector.Vector, topK int, jobID *uuid.UUID) ([]ChunkMatch, error) {
	var matches []ChunkMatch
	query := `
        SELECT *, embedding <=> ? AS distance
        FROM resume_chunks`
	args := []any{embedding}
	if jobID != nil {
		query += ` WHERE job_id = ?`
		args = append(args, *jobID)
	}
	query += `
        ORDER BY embedding <=> ?
        LIMIT ?`
	args = append(args, embedding, topK)

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&matches).Error
	return matches, err
}

func (r *ChunkRepository) DeleteByResume(ctx context.Context, resumeID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ResumeChunk{}, "resume_id = ?", resumeID).Error
}
