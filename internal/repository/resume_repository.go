package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
	"gorm.io/gorm"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *ResumeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.WithContext(ctx).First(&resume, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepository) ListByJob(ctx context.Context, jobID uuid.UUID, page, pageSize int) ([]model.Resume, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Resume{}).Where("job_id = ?", jobID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var resumes []model.Resume
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&resumes).Error
	return resumes, total, err
}

func (r *ResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Resume{}, "id = ?", id).Error
}

// BeginParsing atomically moves a resume from pending or failed into processing.
// Returns false when the resume is already processing or completed, so two
// concurrent triggers cannot both start a pipeline run.
func (r *ResumeRepository) BeginParsing(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Resume{}).
		Where("id = ? AND parsing_status IN ?", id, []string{model.ParsingStatusPending, model.ParsingStatusFailed}).
		Update("parsing_status", model.ParsingStatusProcessing)
	return res.RowsAffected > 0, res.Error
}

func (r *ResumeRepository) SetParsingStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Resume{}).
		Where("id = ?", id).
		Update("parsing_status", status).Error
}

func (r *ResumeRepository) UpdateCandidate(ctx context.Context, id uuid.UUID, name, email string) error {
	updates := map[string]any{}
	if name != "" {
		updates["candidate_name"] = name
	}
	if email != "" {
		updates["candidate_email"] = email
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Resume{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ResumeRepository) UpdateScore(ctx context.Context, id uuid.UUID, score float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Resume{}).
		Where("id = ?", id).
		Update("score", score).Error
}

func (r *ResumeRepository) UpdateRank(ctx context.Context, id uuid.UUID, rank int) error {
	return r.db.WithContext(ctx).
		Model(&model.Resume{}).
		Where("id = ?", id).
		Update("rank", rank).Error
}

func (r *ResumeRepository) FindPendingByJob(ctx context.Context, jobID uuid.UUID) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND parsing_status = ?", jobID, model.ParsingStatusPending).
		Find(&resumes).Error
	return resumes, err
}

// FindParsedByJob returns resumes whose parsing completed and whose profile exists.
func (r *ResumeRepository) FindParsedByJob(ctx context.Context, jobID uuid.UUID) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND parsing_status = ?", jobID, model.ParsingStatusCompleted).
		Where("EXISTS (SELECT 1 FROM parsed_profiles WHERE parsed_profiles.resume_id = resumes.id)").
		Find(&resumes).Error
	return resumes, err
}

// FindScoredByJob returns scored resumes ordered for ranking: score descending,
// earlier upload first on ties, id as a final total order.
func (r *ResumeRepository) FindScoredByJob(ctx context.Context, jobID uuid.UUID) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND score IS NOT NULL", jobID).
		Order("score DESC, created_at ASC, id ASC").
		Find(&resumes).Error
	return resumes, err
}

// FindRankedByJob returns the leaderboard: scored resumes by descending score.
func (r *ResumeRepository) FindRankedByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND score IS NOT NULL", jobID).
		Order("score DESC, created_at ASC, id ASC").
		Limit(limit).
		Find(&resumes).Error
	return resumes, err
}
