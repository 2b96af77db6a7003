package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/dto"
	"github.com/govindp47/smarthire/internal/model"
)

type JobUsecase struct {
	jobs JobStore
}

func NewJobUsecase(jobs JobStore) *JobUsecase {
	return &JobUsecase{jobs: jobs}
}

func (uc *JobUsecase) Create(ctx context.Context, req dto.JobRequest) (*dto.JobDTO, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	job := &model.Job{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		ExperienceLevel: req.ExperienceLevel,
	}
	if err := uc.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	out := dto.NewJobDTO(job)
	return &out, nil
}

func (uc *JobUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.JobDTO, error) {
	job, err := uc.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewJobDTO(job)
	return &out, nil
}

func (uc *JobUsecase) List(ctx context.Context, page, pageSize int) ([]dto.JobDTO, int64, error) {
	jobs, total, err := uc.jobs.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.NewJobDTO(&jobs[i]))
	}
	return out, total, nil
}
