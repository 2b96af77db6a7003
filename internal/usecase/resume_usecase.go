package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/dto"
	"github.com/govindp47/smarthire/internal/logger"
	"github.com/govindp47/smarthire/internal/model"
)

type ResumeUsecase struct {
	jobs     JobStore
	resumes  ResumeStore
	profiles ProfileStore
	chunks   ChunkStore
	files    FileStore
}

func NewResumeUsecase(jobs JobStore, resumes ResumeStore, profiles ProfileStore, chunks ChunkStore, files FileStore) *ResumeUsecase {
	return &ResumeUsecase{
		jobs:     jobs,
		resumes:  resumes,
		profiles: profiles,
		chunks:   chunks,
		files:    files,
	}
}

// Upload stores the file and registers the resume in pending state. Parsing
// is a separate, explicitly triggered step.
func (uc *ResumeUsecase) Upload(ctx context.Context, jobID uuid.UUID, fileName, fileType string, data []byte) (*dto.ResumeDTO, error) {
	if _, err := uc.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	path, err := uc.files.Save(fileName, data)
	if err != nil {
		return nil, fmt.Errorf("cannot store resume file: %w", err)
	}

	resume := &model.Resume{
		JobID:         jobID,
		FileName:      fileName,
		FilePath:      path,
		FileType:      fileType,
		UploadStatus:  model.UploadStatusUploaded,
		ParsingStatus: model.ParsingStatusPending,
	}
	if err := uc.resumes.Create(ctx, resume); err != nil {
		if delErr := uc.files.Delete(path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", path).Msg("orphan file left after failed resume create")
		}
		return nil, err
	}

	out := dto.NewResumeDTO(resume)
	return &out, nil
}

func (uc *ResumeUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ResumeDTO, error) {
	resume, err := uc.resumes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewResumeDTO(resume)
	return &out, nil
}

func (uc *ResumeUsecase) ListByJob(ctx context.Context, jobID uuid.UUID, page, pageSize int) ([]dto.ResumeDTO, int64, error) {
	resumes, total, err := uc.resumes.ListByJob(ctx, jobID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ResumeDTO, 0, len(resumes))
	for i := range resumes {
		out = append(out, dto.NewResumeDTO(&resumes[i]))
	}
	return out, total, nil
}

func (uc *ResumeUsecase) GetProfile(ctx context.Context, resumeID uuid.UUID) (*model.ParsedProfile, error) {
	if _, err := uc.resumes.FindByID(ctx, resumeID); err != nil {
		return nil, err
	}
	return uc.profiles.FindByResume(ctx, resumeID)
}

// Delete removes the resume together with its profile, index chunks and file.
func (uc *ResumeUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	resume, err := uc.resumes.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.chunks.DeleteByResume(ctx, id); err != nil {
		return fmt.Errorf("cannot delete resume chunks: %w", err)
	}
	if err := uc.profiles.DeleteByResume(ctx, id); err != nil {
		return fmt.Errorf("cannot delete parsed profile: %w", err)
	}
	if err := uc.resumes.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.files.Delete(resume.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", resume.FilePath).Msg("resume file cleanup failed")
	}
	return nil
}
