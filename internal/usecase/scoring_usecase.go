package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/dto"
	"github.com/govindp47/smarthire/internal/logger"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/govindp47/smarthire/internal/worker"
	"gorm.io/gorm"
)

// ErrNotParsed reports a score trigger on a resume without a completed parse.
var ErrNotParsed = errors.New("resume has not been parsed yet")

type ScoringUsecase struct {
	jobs     JobStore
	resumes  ResumeStore
	profiles ProfileStore
	scorer   Scorer
	tasks    TaskRunner

	rankMu   sync.Mutex
	jobLocks map[uuid.UUID]*sync.Mutex
}

func NewScoringUsecase(jobs JobStore, resumes ResumeStore, profiles ProfileStore, scorer Scorer, tasks TaskRunner) *ScoringUsecase {
	return &ScoringUsecase{
		jobs:     jobs,
		resumes:  resumes,
		profiles: profiles,
		scorer:   scorer,
		tasks:    tasks,
		jobLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// TriggerScore enqueues scoring of one parsed resume followed by a re-rank
// of its job.
func (uc *ScoringUsecase) TriggerScore(ctx context.Context, resumeID uuid.UUID) (*dto.TriggerResponse, error) {
	resume, err := uc.resumes.FindByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if resume.ParsingStatus != model.ParsingStatusCompleted {
		return nil, fmt.Errorf("%w: parsing status is %s", ErrNotParsed, resume.ParsingStatus)
	}
	if _, err := uc.profiles.FindByResume(ctx, resumeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no parsed profile", ErrNotParsed)
		}
		return nil, err
	}

	jobID := resume.JobID
	err = uc.tasks.Submit(worker.Task{
		Name: "score:" + resumeID.String(),
		Run: func(ctx context.Context) error {
			if err := uc.scoreResume(ctx, resumeID); err != nil {
				return err
			}
			_, err := uc.RankJob(ctx, jobID)
			return err
		},
	})
	if err != nil {
		return nil, err
	}

	return &dto.TriggerResponse{
		Message:  "resume scoring started",
		ResumeID: resumeID,
		Status:   resume.ParsingStatus,
	}, nil
}

// TriggerScoreAll enqueues one batch task that scores every parsed resume of
// the job with per-resume failure isolation, then re-ranks exactly once.
func (uc *ScoringUsecase) TriggerScoreAll(ctx context.Context, jobID uuid.UUID) (*dto.BatchTriggerResponse, error) {
	if _, err := uc.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}
	parsed, err := uc.resumes.FindParsedByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(parsed))
	for _, r := range parsed {
		ids = append(ids, r.ID)
	}

	err = uc.tasks.Submit(worker.Task{
		Name: "score-all:" + jobID.String(),
		Run: func(ctx context.Context) error {
			for _, id := range ids {
				if err := uc.scoreResume(ctx, id); err != nil {
					logger.Warn().Err(err).Str("resume_id", id.String()).Msg("batch scoring skipped resume")
				}
			}
			ranked, err := uc.RankJob(ctx, jobID)
			if err != nil {
				return err
			}
			logger.Info().Str("job_id", jobID.String()).Int("ranked", ranked).Msg("job re-ranked")
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &dto.BatchTriggerResponse{
		Message: fmt.Sprintf("scoring started for %d resumes", len(ids)),
		JobID:   jobID,
		Count:   len(ids),
	}, nil
}

func (uc *ScoringUsecase) scoreResume(ctx context.Context, resumeID uuid.UUID) error {
	resume, err := uc.resumes.FindByID(ctx, resumeID)
	if err != nil {
		return fmt.Errorf("cannot load resume: %w", err)
	}
	profile, err := uc.profiles.FindByResume(ctx, resumeID)
	if err != nil {
		return fmt.Errorf("cannot load profile: %w", err)
	}
	job, err := uc.jobs.FindByID(ctx, resume.JobID)
	if err != nil {
		return fmt.Errorf("cannot load job: %w", err)
	}

	score, err := uc.scorer.Score(ctx, profile, job)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	if err := uc.resumes.UpdateScore(ctx, resumeID, score); err != nil {
		return fmt.Errorf("cannot persist score: %w", err)
	}

	logger.Info().Str("resume_id", resumeID.String()).Float64("score", score).Msg("resume scored")
	return nil
}

// RankJob recomputes dense ranks 1..N over the job's scored resumes and
// returns how many were ranked. Runs under a per-job lock so concurrent
// re-ranks cannot interleave their writes.
func (uc *ScoringUsecase) RankJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	lock := uc.jobLock(jobID)
	lock.Lock()
	defer lock.Unlock()

	scored, err := uc.resumes.FindScoredByJob(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("cannot load scored resumes: %w", err)
	}
	for i, resume := range scored {
		if err := uc.resumes.UpdateRank(ctx, resume.ID, i+1); err != nil {
			return 0, fmt.Errorf("cannot persist rank for %s: %w", resume.ID, err)
		}
	}
	return len(scored), nil
}

// Leaderboard returns the job's ranked candidates, best first.
func (uc *ScoringUsecase) Leaderboard(ctx context.Context, jobID uuid.UUID, limit int) ([]dto.LeaderboardEntry, error) {
	if _, err := uc.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}
	resumes, err := uc.resumes.FindRankedByJob(ctx, jobID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(resumes))
	for _, r := range resumes {
		entry := dto.LeaderboardEntry{
			ResumeID:      r.ID,
			CandidateName: r.CandidateName,
			FileName:      r.FileName,
		}
		if r.Score != nil {
			entry.Score = *r.Score
		}
		if r.Rank != nil {
			entry.Rank = *r.Rank
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (uc *ScoringUsecase) jobLock(jobID uuid.UUID) *sync.Mutex {
	uc.rankMu.Lock()
	defer uc.rankMu.Unlock()
	lock, ok := uc.jobLocks[jobID]
	if !ok {
		lock = &sync.Mutex{}
		uc.jobLocks[jobID] = lock
	}
	return lock
}
