package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/govindp47/smarthire/internal/repository"
	"github.com/govindp47/smarthire/internal/worker"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// In-memory fakes for the storage and service contracts. The resume store
// mirrors the repository's CAS and ordering semantics so the usecases can be
// exercised without a database.

type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*model.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[uuid.UUID]*model.Job)}
}

func (s *fakeJobStore) Create(_ context.Context, job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *fakeJobStore) FindByID(_ context.Context, id uuid.UUID) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *job
	return &cp, nil
}

func (s *fakeJobStore) List(_ context.Context, page, pageSize int) ([]model.Job, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Job
	for _, job := range s.jobs {
		out = append(out, *job)
	}
	return out, int64(len(out)), nil
}

type fakeResumeStore struct {
	mu       sync.Mutex
	resumes  map[uuid.UUID]*model.Resume
	profiles *fakeProfileStore
}

func newFakeResumeStore(profiles *fakeProfileStore) *fakeResumeStore {
	return &fakeResumeStore{resumes: make(map[uuid.UUID]*model.Resume), profiles: profiles}
}

func (s *fakeResumeStore) Create(_ context.Context, resume *model.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	cp := *resume
	s.resumes[resume.ID] = &cp
	return nil
}

func (s *fakeResumeStore) FindByID(_ context.Context, id uuid.UUID) (*model.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resume, ok := s.resumes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *resume
	return &cp, nil
}

func (s *fakeResumeStore) ListByJob(_ context.Context, jobID uuid.UUID, page, pageSize int) ([]model.Resume, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Resume
	for _, r := range s.resumes {
		if r.JobID == jobID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeResumeStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resumes, id)
	return nil
}

func (s *fakeResumeStore) BeginParsing(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resume, ok := s.resumes[id]
	if !ok {
		return false, nil
	}
	if resume.ParsingStatus != model.ParsingStatusPending && resume.ParsingStatus != model.ParsingStatusFailed {
		return false, nil
	}
	resume.ParsingStatus = model.ParsingStatusProcessing
	return true, nil
}

func (s *fakeResumeStore) SetParsingStatus(_ context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resume, ok := s.resumes[id]; ok {
		resume.ParsingStatus = status
	}
	return nil
}

func (s *fakeResumeStore) UpdateCandidate(_ context.Context, id uuid.UUID, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resume, ok := s.resumes[id]; ok {
		if name != "" {
			resume.CandidateName = name
		}
		if email != "" {
			resume.CandidateEmail = email
		}
	}
	return nil
}

func (s *fakeResumeStore) UpdateScore(_ context.Context, id uuid.UUID, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resume, ok := s.resumes[id]; ok {
		v := score
		resume.Score = &v
	}
	return nil
}

func (s *fakeResumeStore) UpdateRank(_ context.Context, id uuid.UUID, rank int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resume, ok := s.resumes[id]; ok {
		v := rank
		resume.Rank = &v
	}
	return nil
}

func (s *fakeResumeStore) FindPendingByJob(_ context.Context, jobID uuid.UUID) ([]model.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Resume
	for _, r := range s.resumes {
		if r.JobID == jobID && r.ParsingStatus == model.ParsingStatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeResumeStore) FindParsedByJob(ctx context.Context, jobID uuid.UUID) ([]model.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Resume
	for _, r := range s.resumes {
		if r.JobID != jobID || r.ParsingStatus != model.ParsingStatusCompleted {
			continue
		}
		if _, err := s.profiles.FindByResume(ctx, r.ID); err != nil {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *fakeResumeStore) FindScoredByJob(_ context.Context, jobID uuid.UUID) ([]model.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Resume
	for _, r := range s.resumes {
		if r.JobID == jobID && r.Score != nil {
			out = append(out, *r)
		}
	}
	sortScored(out)
	return out, nil
}

func (s *fakeResumeStore) FindRankedByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]model.Resume, error) {
	out, err := s.FindScoredByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sortScored matches the repository's ranking order: score descending, then
// earlier upload, then id.
func sortScored(resumes []model.Resume) {
	sort.Slice(resumes, func(i, j int) bool {
		if *resumes[i].Score != *resumes[j].Score {
			return *resumes[i].Score > *resumes[j].Score
		}
		if !resumes[i].CreatedAt.Equal(resumes[j].CreatedAt) {
			return resumes[i].CreatedAt.Before(resumes[j].CreatedAt)
		}
		return resumes[i].ID.String() < resumes[j].ID.String()
	})
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.ParsedProfile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*model.ParsedProfile)}
}

func (s *fakeProfileStore) Upsert(_ context.Context, profile *model.ParsedProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *profile
	s.profiles[profile.ResumeID] = &cp
	return nil
}

func (s *fakeProfileStore) FindByResume(_ context.Context, resumeID uuid.UUID) (*model.ParsedProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[resumeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *profile
	return &cp, nil
}

func (s *fakeProfileStore) DeleteByResume(_ context.Context, resumeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, resumeID)
	return nil
}

type fakeChunkStore struct {
	mu      sync.Mutex
	chunks  map[uuid.UUID][]model.ResumeChunk
	matches []repository.ChunkMatch
}

func newFakeChunkStore() *fakeChunkStore {
	return &fakeChunkStore{chunks: make(map[uuid.UUID][]model.ResumeChunk)}
}

func (s *fakeChunkStore) Replace(_ context.Context, resumeID uuid.UUID, chunks []model.ResumeChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[resumeID] = chunks
	return nil
}

func (s *fakeChunkStore) Search(_ context.Context, _ pgvector.Vector, topK int, _ *uuid.UUID) ([]repository.ChunkMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.matches
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

func (s *fakeChunkStore) DeleteByResume(_ context.Context, resumeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, resumeID)
	return nil
}

type fakeFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string][]byte)}
}

func (s *fakeFileStore) Save(fileName string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := "mem://" + uuid.NewString() + "_" + fileName
	s.files[path] = data
	return path, nil
}

func (s *fakeFileStore) Get(path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return data, nil
}

func (s *fakeFileStore) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (e *fakeExtractor) ExtractText(_ []byte, _ string) (string, error) {
	return e.text, e.err
}

type fakeParser struct {
	profile *model.ParsedProfile
	err     error
	calls   int
}

func (p *fakeParser) Parse(_ context.Context, _ string) (*model.ParsedProfile, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	cp := *p.profile
	return &cp, nil
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (e *fakeEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return e.vec, e.err
}

type fakeScorer struct {
	scores map[uuid.UUID]float64
	calls  int
}

func (s *fakeScorer) Score(_ context.Context, profile *model.ParsedProfile, _ *model.Job) (float64, error) {
	s.calls++
	return s.scores[profile.ResumeID], nil
}

type fakeGenerator struct {
	answer string
	err    error
	prompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.answer, g.err
}

// syncRunner executes tasks inline. A failing Run triggers OnExhausted
// immediately, standing in for a pool that has burned all attempts.
type syncRunner struct {
	full      bool
	submitted int
}

func (r *syncRunner) Submit(task worker.Task) error {
	if r.full {
		return worker.ErrQueueFull
	}
	r.submitted++
	if err := task.Run(context.Background()); err != nil && task.OnExhausted != nil {
		task.OnExhausted(err)
	}
	return nil
}
