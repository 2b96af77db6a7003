package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringFixture struct {
	jobs     *fakeJobStore
	resumes  *fakeResumeStore
	profiles *fakeProfileStore
	scorer   *fakeScorer
	runner   *syncRunner
	uc       *ScoringUsecase

	job *model.Job
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()
	f := &scoringFixture{
		jobs:     newFakeJobStore(),
		profiles: newFakeProfileStore(),
		scorer:   &fakeScorer{scores: make(map[uuid.UUID]float64)},
		runner:   &syncRunner{},
	}
	f.resumes = newFakeResumeStore(f.profiles)
	f.job = &model.Job{Title: "Backend Engineer"}
	require.NoError(t, f.jobs.Create(context.Background(), f.job))
	f.uc = NewScoringUsecase(f.jobs, f.resumes, f.profiles, f.scorer, f.runner)
	return f
}

// addParsed registers a completed resume with a profile and a canned score.
func (f *scoringFixture) addParsed(t *testing.T, score float64, createdAt time.Time) *model.Resume {
	t.Helper()
	resume := &model.Resume{
		JobID:         f.job.ID,
		ParsingStatus: model.ParsingStatusCompleted,
		CreatedAt:     createdAt,
	}
	require.NoError(t, f.resumes.Create(context.Background(), resume))
	require.NoError(t, f.profiles.Upsert(context.Background(), &model.ParsedProfile{ResumeID: resume.ID}))
	f.scorer.scores[resume.ID] = score
	return resume
}

func TestTriggerScoreRequiresCompletedParse(t *testing.T) {
	f := newScoringFixture(t)
	resume := &model.Resume{JobID: f.job.ID, ParsingStatus: model.ParsingStatusPending}
	require.NoError(t, f.resumes.Create(context.Background(), resume))

	_, err := f.uc.TriggerScore(context.Background(), resume.ID)
	assert.ErrorIs(t, err, ErrNotParsed)
}

func TestTriggerScoreRequiresProfile(t *testing.T) {
	f := newScoringFixture(t)
	resume := &model.Resume{JobID: f.job.ID, ParsingStatus: model.ParsingStatusCompleted}
	require.NoError(t, f.resumes.Create(context.Background(), resume))

	_, err := f.uc.TriggerScore(context.Background(), resume.ID)
	assert.ErrorIs(t, err, ErrNotParsed)
}

func TestTriggerScorePersistsScoreAndRank(t *testing.T) {
	f := newScoringFixture(t)
	resume := f.addParsed(t, 87.5, time.Now())

	_, err := f.uc.TriggerScore(context.Background(), resume.ID)
	require.NoError(t, err)

	stored, err := f.resumes.FindByID(context.Background(), resume.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 87.5, *stored.Score)
	require.NotNil(t, stored.Rank)
	assert.Equal(t, 1, *stored.Rank)
}

func TestTriggerScoreAllRanksDense(t *testing.T) {
	f := newScoringFixture(t)
	base := time.Now()
	low := f.addParsed(t, 40.0, base)
	high := f.addParsed(t, 90.0, base.Add(time.Minute))
	mid := f.addParsed(t, 75.0, base.Add(2*time.Minute))

	result, err := f.uc.TriggerScoreAll(context.Background(), f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 1, f.runner.submitted, "batch scoring runs as a single task")

	expect := map[uuid.UUID]int{high.ID: 1, mid.ID: 2, low.ID: 3}
	for id, rank := range expect {
		stored, err := f.resumes.FindByID(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, stored.Rank)
		assert.Equal(t, rank, *stored.Rank)
	}
}

func TestTriggerScoreAllTieBreaksByUploadTime(t *testing.T) {
	f := newScoringFixture(t)
	base := time.Now()
	first := f.addParsed(t, 80.0, base)
	second := f.addParsed(t, 80.0, base.Add(time.Hour))

	_, err := f.uc.TriggerScoreAll(context.Background(), f.job.ID)
	require.NoError(t, err)

	storedFirst, err := f.resumes.FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	storedSecond, err := f.resumes.FindByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, *storedFirst.Rank, "earlier upload wins the tie")
	assert.Equal(t, 2, *storedSecond.Rank)
}

func TestTriggerScoreAllIsolatesFailures(t *testing.T) {
	f := newScoringFixture(t)
	ok := f.addParsed(t, 70.0, time.Now())

	// Completed resume whose profile disappeared: scoring it fails, the
	// rest of the batch must still be scored and ranked.
	broken := f.addParsed(t, 60.0, time.Now().Add(time.Minute))
	require.NoError(t, f.profiles.DeleteByResume(context.Background(), broken.ID))

	_, err := f.uc.TriggerScoreAll(context.Background(), f.job.ID)
	require.NoError(t, err)

	stored, err := f.resumes.FindByID(context.Background(), ok.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 70.0, *stored.Score)
	require.NotNil(t, stored.Rank)
	assert.Equal(t, 1, *stored.Rank)

	storedBroken, err := f.resumes.FindByID(context.Background(), broken.ID)
	require.NoError(t, err)
	assert.Nil(t, storedBroken.Score)
}

func TestRankJobIsIdempotent(t *testing.T) {
	f := newScoringFixture(t)
	base := time.Now()
	a := f.addParsed(t, 55.0, base)
	b := f.addParsed(t, 95.0, base.Add(time.Second))

	_, err := f.uc.TriggerScoreAll(context.Background(), f.job.ID)
	require.NoError(t, err)
	ranked, err := f.uc.RankJob(context.Background(), f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, ranked)

	storedA, err := f.resumes.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	storedB, err := f.resumes.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, *storedA.Rank)
	assert.Equal(t, 1, *storedB.Rank)
}

func TestLeaderboardReturnsRankedEntries(t *testing.T) {
	f := newScoringFixture(t)
	base := time.Now()
	f.addParsed(t, 30.0, base)
	top := f.addParsed(t, 99.0, base.Add(time.Second))

	_, err := f.uc.TriggerScoreAll(context.Background(), f.job.ID)
	require.NoError(t, err)

	entries, err := f.uc.Leaderboard(context.Background(), f.job.ID, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, top.ID, entries[0].ResumeID)
	assert.Equal(t, 99.0, entries[0].Score)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestLeaderboardUnknownJob(t *testing.T) {
	f := newScoringFixture(t)
	_, err := f.uc.Leaderboard(context.Background(), uuid.New(), 10)
	require.Error(t, err)
}
