package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db}
}

// Upsert replaces the resume's profile in a single statement, keyed by resume_id.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *model.ParsedProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "resume_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"raw_text", "skills", "experience", "education", "certifications",
			"languages", "total_experience_years", "summary",
			"candidate_name", "candidate_email", "phone", "metadata", "updated_at",
		}),
	}).Create(profile).Error
}

func (r *ProfileRepository) FindByResume(ctx context.Context, resumeID uuid.UUID) (*model.ParsedProfile, error) {
	var profile model.ParsedProfile
	err := r.db.WithContext(ctx).First(&profile, "resume_id = ?", resumeID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) DeleteByResume(ctx context.Context, resumeID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ParsedProfile{}, "resume_id = ?", resumeID).Error
}
