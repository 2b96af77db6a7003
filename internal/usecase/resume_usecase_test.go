package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResumeFixture(t *testing.T) (*ResumeUsecase, *fakeResumeStore, *fakeProfileStore, *fakeChunkStore, *fakeFileStore, *model.Job) {
	t.Helper()
	jobs := newFakeJobStore()
	profiles := newFakeProfileStore()
	resumes := newFakeResumeStore(profiles)
	chunks := newFakeChunkStore()
	files := newFakeFileStore()

	job := &model.Job{Title: "Backend Engineer"}
	require.NoError(t, jobs.Create(context.Background(), job))

	uc := NewResumeUsecase(jobs, resumes, profiles, chunks, files)
	return uc, resumes, profiles, chunks, files, job
}

func TestUploadCreatesPendingResume(t *testing.T) {
	uc, resumes, _, _, files, job := newResumeFixture(t)

	created, err := uc.Upload(context.Background(), job.ID, "cv.pdf", "pdf", []byte("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, model.ParsingStatusPending, created.ParsingStatus)
	assert.Equal(t, model.UploadStatusUploaded, created.UploadStatus)

	stored, err := resumes.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	data, err := files.Get(stored.FilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)
}

func TestUploadUnknownJob(t *testing.T) {
	uc, _, _, _, files, _ := newResumeFixture(t)

	_, err := uc.Upload(context.Background(), uuid.New(), "cv.pdf", "pdf", []byte("x"))
	require.Error(t, err)
	assert.Empty(t, files.files, "no file may be stored for a rejected upload")
}

func TestDeleteCascades(t *testing.T) {
	uc, resumes, profiles, chunks, files, job := newResumeFixture(t)

	created, err := uc.Upload(context.Background(), job.ID, "cv.pdf", "pdf", []byte("pdf bytes"))
	require.NoError(t, err)

	require.NoError(t, profiles.Upsert(context.Background(), &model.ParsedProfile{ResumeID: created.ID}))
	require.NoError(t, chunks.Replace(context.Background(), created.ID, []model.ResumeChunk{{ResumeID: created.ID}}))

	stored, err := resumes.FindByID(context.Background(), created.ID)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err = resumes.FindByID(context.Background(), created.ID)
	assert.Error(t, err)
	_, err = profiles.FindByResume(context.Background(), created.ID)
	assert.Error(t, err)
	assert.Empty(t, chunks.chunks[created.ID])
	_, err = files.Get(stored.FilePath)
	assert.Error(t, err)
}

func TestDeleteUnknownResume(t *testing.T) {
	uc, _, _, _, _, _ := newResumeFixture(t)
	err := uc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
}
