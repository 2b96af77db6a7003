package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/govindp47/smarthire/internal/repository"
	"github.com/govindp47/smarthire/internal/worker"
	"github.com/pgvector/pgvector-go"
)

// Storage and service contracts the usecases depend on. Concrete
// implementations live in repository, storage and service; tests swap in fakes.

type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	List(ctx context.Context, page, pageSize int) ([]model.Job, int64, error)
}

type ResumeStore interface {
	Create(ctx context.Context, resume *model.Resume) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resume, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, page, pageSize int) ([]model.Resume, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BeginParsing(ctx context.Context, id uuid.UUID) (bool, error)
	SetParsingStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateCandidate(ctx context.Context, id uuid.UUID, name, email string) error
	UpdateScore(ctx context.Context, id uuid.UUID, score float64) error
	UpdateRank(ctx context.Context, id uuid.UUID, rank int) error
	FindPendingByJob(ctx context.Context, jobID uuid.UUID) ([]model.Resume, error)
	FindParsedByJob(ctx context.Context, jobID uuid.UUID) ([]model.Resume, error)
	FindScoredByJob(ctx context.Context, jobID uuid.UUID) ([]model.Resume, error)
	FindRankedByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]model.Resume, error)
}

type ProfileStore interface {
	Upsert(ctx context.Context, profile *model.ParsedProfile) error
	FindByResume(ctx context.Context, resumeID uuid.UUID) (*model.ParsedProfile, error)
	DeleteByResume(ctx context.Context, resumeID uuid.UUID) error
}

type ChunkStore interface {
	Replace(ctx context.Context, resumeID uuid.UUID, chunks []model.ResumeChunk) error
	Search(ctx context.Context, embedding pgvector.Vector, topK int, jobID *uuid.UUID) ([]repository.ChunkMatch, error)
	DeleteByResume(ctx context.Context, resumeID uuid.UUID) error
}

type FileStore interface {
	Save(fileName string, data []byte) (string, error)
	Get(path string) ([]byte, error)
	Delete(path string) error
}

type TextExtractor interface {
	ExtractText(data []byte, fileType string) (string, error)
}

type ProfileParser interface {
	Parse(ctx context.Context, resumeText string) (*model.ParsedProfile, error)
}

type Scorer interface {
	Score(ctx context.Context, profile *model.ParsedProfile, job *model.Job) (float64, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type TaskRunner interface {
	Submit(task worker.Task) error
}
