package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/govindp47/smarthire/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFixture(t *testing.T) (*SearchUsecase, *fakeJobStore, *fakeChunkStore, *fakeGenerator, *model.Job) {
	t.Helper()
	jobs := newFakeJobStore()
	chunks := newFakeChunkStore()
	gen := &fakeGenerator{answer: "Jane Doe has the most Go experience."}
	job := &model.Job{Title: "Backend Engineer"}
	require.NoError(t, jobs.Create(context.Background(), job))

	uc := NewSearchUsecase(jobs, chunks, &fakeEmbedder{vec: []float32{0.1, 0.2}}, gen)
	return uc, jobs, chunks, gen, job
}

func match(resumeID uuid.UUID, name, content string, distance float64) repository.ChunkMatch {
	m := repository.ChunkMatch{Distance: distance}
	m.ResumeID = resumeID
	m.CandidateName = name
	m.Content = content
	return m
}

func TestSearchConvertsDistanceToSimilarity(t *testing.T) {
	uc, _, chunks, _, job := newSearchFixture(t)
	id := uuid.New()
	chunks.matches = []repository.ChunkMatch{
		match(id, "Jane Doe", "Go developer since 2018", 0.25),
	}

	results, err := uc.Search(context.Background(), "go experience", 5, &job.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, id, results[0].ResumeID)
	assert.InDelta(t, 0.75, results[0].Similarity, 1e-9)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	uc, _, _, _, job := newSearchFixture(t)
	_, err := uc.Search(context.Background(), "   ", 5, &job.ID)
	require.Error(t, err)
}

func TestSearchUnknownJob(t *testing.T) {
	uc, _, _, _, _ := newSearchFixture(t)
	unknown := uuid.New()
	_, err := uc.Search(context.Background(), "go", 5, &unknown)
	require.Error(t, err)
}

func TestAskDeduplicatesSources(t *testing.T) {
	uc, _, chunks, gen, job := newSearchFixture(t)
	id := uuid.New()
	chunks.matches = []repository.ChunkMatch{
		match(id, "Jane Doe", "Go developer since 2018", 0.1),
		match(id, "Jane Doe", "Led a platform team of five", 0.2),
		match(uuid.New(), "John Roe", "Python and Django background", 0.3),
	}

	answer, err := uc.Ask(context.Background(), "who knows Go best?", 5, &job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, answer.Sources)
	assert.Equal(t, 3, answer.NumSources)
	assert.Equal(t, "Jane Doe has the most Go experience.", answer.Answer)
	assert.Contains(t, gen.prompt, "who knows Go best?")
	assert.Contains(t, gen.prompt, "Go developer since 2018")
}

func TestAskWithNoMatches(t *testing.T) {
	uc, _, _, _, job := newSearchFixture(t)

	answer, err := uc.Ask(context.Background(), "anything", 5, &job.ID)
	require.NoError(t, err)
	assert.Empty(t, answer.Sources)
	assert.Zero(t, answer.NumSources)
	assert.NotEmpty(t, answer.Answer)
}
