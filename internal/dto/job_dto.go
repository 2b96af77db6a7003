package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
)

type JobRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Requirements    string `json:"requirements"`
	ExperienceLevel string `json:"experience_level"`
}

type JobDTO struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	ExperienceLevel string    `json:"experience_level"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewJobDTO(job *model.Job) JobDTO {
	return JobDTO{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		Requirements:    job.Requirements,
		ExperienceLevel: job.ExperienceLevel,
		CreatedAt:       job.CreatedAt,
	}
}
