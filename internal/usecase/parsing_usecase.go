package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/dto"
	"github.com/govindp47/smarthire/internal/logger"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/govindp47/smarthire/internal/util"
	"github.com/govindp47/smarthire/internal/worker"
	"github.com/pgvector/pgvector-go"
)

// ErrAlreadyRunning reports a parse trigger on a resume that is already
// processing or completed. The pipeline state is left untouched.
var ErrAlreadyRunning = errors.New("parsing already in progress or completed")

type ParsingUsecase struct {
	jobs      JobStore
	resumes   ResumeStore
	profiles  ProfileStore
	chunks    ChunkStore
	files     FileStore
	extractor TextExtractor
	parser    ProfileParser
	embedder  Embedder
	tasks     TaskRunner

	chunkSize    int
	chunkOverlap int
}

func NewParsingUsecase(
	jobs JobStore,
	resumes ResumeStore,
	profiles ProfileStore,
	chunks ChunkStore,
	files FileStore,
	extractor TextExtractor,
	parser ProfileParser,
	embedder Embedder,
	tasks TaskRunner,
	chunkSize, chunkOverlap int,
) *ParsingUsecase {
	return &ParsingUsecase{
		jobs:         jobs,
		resumes:      resumes,
		profiles:     profiles,
		chunks:       chunks,
		files:        files,
		extractor:    extractor,
		parser:       parser,
		embedder:     embedder,
		tasks:        tasks,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// TriggerParse claims the resume for processing and enqueues the pipeline.
// Only pending and failed resumes can be claimed; anything else is reported
// via ErrAlreadyRunning without side effects.
func (uc *ParsingUsecase) TriggerParse(ctx context.Context, resumeID uuid.UUID) (*dto.TriggerResponse, error) {
	resume, err := uc.resumes.FindByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	claimed, err := uc.resumes.BeginParsing(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return &dto.TriggerResponse{
			Message:  "resume is already being processed or completed",
			ResumeID: resumeID,
			Status:   resume.ParsingStatus,
		}, ErrAlreadyRunning
	}

	if err := uc.enqueueParse(resumeID); err != nil {
		if revertErr := uc.resumes.SetParsingStatus(ctx, resumeID, resume.ParsingStatus); revertErr != nil {
			logger.Error().Err(revertErr).Str("resume_id", resumeID.String()).Msg("cannot revert parsing status after queue rejection")
		}
		return nil, err
	}

	return &dto.TriggerResponse{
		Message:  "resume parsing started",
		ResumeID: resumeID,
		Status:   model.ParsingStatusProcessing,
	}, nil
}

// TriggerParseAll claims every pending resume of the job and enqueues each
// one as its own task. On queue exhaustion the unclaimed remainder stays
// pending and the partial count is returned with the error.
func (uc *ParsingUsecase) TriggerParseAll(ctx context.Context, jobID uuid.UUID) (*dto.BatchTriggerResponse, error) {
	if _, err := uc.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	pending, err := uc.resumes.FindPendingByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	submitted := 0
	for _, resume := range pending {
		claimed, err := uc.resumes.BeginParsing(ctx, resume.ID)
		if err != nil {
			return nil, err
		}
		if !claimed {
			continue
		}
		if err := uc.enqueueParse(resume.ID); err != nil {
			if revertErr := uc.resumes.SetParsingStatus(ctx, resume.ID, model.ParsingStatusPending); revertErr != nil {
				logger.Error().Err(revertErr).Str("resume_id", resume.ID.String()).Msg("cannot revert parsing status after queue rejection")
			}
			return &dto.BatchTriggerResponse{
				Message: fmt.Sprintf("queue full after %d resumes", submitted),
				JobID:   jobID,
				Count:   submitted,
			}, err
		}
		submitted++
	}

	return &dto.BatchTriggerResponse{
		Message: fmt.Sprintf("parsing started for %d resumes", submitted),
		JobID:   jobID,
		Count:   submitted,
	}, nil
}

func (uc *ParsingUsecase) enqueueParse(resumeID uuid.UUID) error {
	return uc.tasks.Submit(worker.Task{
		Name: "parse:" + resumeID.String(),
		Run: func(ctx context.Context) error {
			return uc.processResume(ctx, resumeID)
		},
		OnExhausted: func(taskErr error) {
			if err := uc.resumes.SetParsingStatus(context.Background(), resumeID, model.ParsingStatusFailed); err != nil {
				logger.Error().Err(err).Str("resume_id", resumeID.String()).Msg("cannot mark resume failed")
			}
		},
	})
}

// processResume runs the full pipeline for one claimed resume: extract text,
// parse the profile, persist it, then index chunks for semantic search. A
// failing chunk index never fails an otherwise completed parse.
func (uc *ParsingUsecase) processResume(ctx context.Context, resumeID uuid.UUID) error {
	resume, err := uc.resumes.FindByID(ctx, resumeID)
	if err != nil {
		return fmt.Errorf("cannot load resume: %w", err)
	}

	data, err := uc.files.Get(resume.FilePath)
	if err != nil {
		return fmt.Errorf("cannot read resume file: %w", err)
	}

	text, err := uc.extractor.ExtractText(data, resume.FileType)
	if err != nil {
		return fmt.Errorf("text extraction failed: %w", err)
	}
	if text == "" {
		return fmt.Errorf("no text extracted from %s", resume.FileName)
	}

	profile, err := uc.parser.Parse(ctx, text)
	if err != nil {
		return err
	}
	profile.ResumeID = resume.ID
	profile.RawText = text

	if err := uc.profiles.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("cannot persist parsed profile: %w", err)
	}
	if err := uc.resumes.UpdateCandidate(ctx, resumeID, profile.CandidateName, profile.CandidateEmail); err != nil {
		return fmt.Errorf("cannot update candidate fields: %w", err)
	}
	if err := uc.resumes.SetParsingStatus(ctx, resumeID, model.ParsingStatusCompleted); err != nil {
		return fmt.Errorf("cannot mark resume completed: %w", err)
	}

	if err := uc.indexChunks(ctx, resume, profile, text); err != nil {
		logger.Warn().Err(err).Str("resume_id", resumeID.String()).Msg("chunk indexing failed, semantic search will miss this resume")
	}

	logger.Info().Str("resume_id", resumeID.String()).Str("candidate", profile.CandidateName).Msg("resume parsed")
	return nil
}

func (uc *ParsingUsecase) indexChunks(ctx context.Context, resume *model.Resume, profile *model.ParsedProfile, text string) error {
	pieces, err := util.ChunkText(text, uc.chunkSize, uc.chunkOverlap)
	if err != nil {
		return err
	}

	chunks := make([]model.ResumeChunk, 0, len(pieces))
	for i, piece := range pieces {
		vec, err := uc.embedder.GenerateEmbedding(ctx, piece)
		if err != nil {
			return fmt.Errorf("embedding chunk %d: %w", i, err)
		}
		chunks = append(chunks, model.ResumeChunk{
			ResumeID:      resume.ID,
			JobID:         resume.JobID,
			CandidateName: profile.CandidateName,
			ChunkIndex:    i,
			TotalChunks:   len(pieces),
			Content:       piece,
			Embedding:     pgvector.NewVector(vec),
		})
	}

	return uc.chunks.Replace(ctx, resume.ID, chunks)
}
