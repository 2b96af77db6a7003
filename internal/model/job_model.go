package model

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string    `gorm:"type:varchar(255)" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Requirements    string    `gorm:"type:text" json:"requirements"`
	ExperienceLevel string    `gorm:"type:varchar(50)" json:"experience_level"` // e.g. "entry", "mid", "senior"
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}
