package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/dto"
	"github.com/pgvector/pgvector-go"
)

const ragPromptTemplate = `You are an HR assistant answering questions about candidates based on their resumes.

Use ONLY the following resume excerpts to answer the question. If the excerpts do not contain enough information, say so instead of guessing.

RESUME EXCERPTS:
%s

QUESTION: %s

Answer concisely and mention candidate names when relevant.`

type SearchUsecase struct {
	jobs     JobStore
	chunks   ChunkStore
	embedder Embedder
	llm      Generator
}

func NewSearchUsecase(jobs JobStore, chunks ChunkStore, embedder Embedder, llm Generator) *SearchUsecase {
	return &SearchUsecase{jobs: jobs, chunks: chunks, embedder: embedder, llm: llm}
}

// Search returns the resume chunks most similar to the query, scoped to one
// job when jobID is set. Similarity is 1 minus cosine distance.
func (uc *SearchUsecase) Search(ctx context.Context, query string, topK int, jobID *uuid.UUID) ([]dto.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if topK <= 0 {
		topK = 5
	}
	if jobID != nil {
		if _, err := uc.jobs.FindByID(ctx, *jobID); err != nil {
			return nil, err
		}
	}

	vec, err := uc.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cannot embed query: %w", err)
	}

	matches, err := uc.chunks.Search(ctx, pgvector.NewVector(vec), topK, jobID)
	if err != nil {
		return nil, fmt.Errorf("chunk search failed: %w", err)
	}

	results := make([]dto.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, dto.SearchResult{
			ResumeID:      m.ResumeID,
			CandidateName: m.CandidateName,
			Content:       m.Content,
			ChunkIndex:    m.ChunkIndex,
			Similarity:    1 - m.Distance,
		})
	}
	return results, nil
}

// Ask answers a free-form question over the indexed resumes with retrieved
// chunks as context. Sources are deduplicated per candidate.
func (uc *SearchUsecase) Ask(ctx context.Context, query string, topK int, jobID *uuid.UUID) (*dto.AskResponse, error) {
	results, err := uc.Search(ctx, query, topK, jobID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &dto.AskResponse{
			Answer:  "No indexed resumes matched the question.",
			Sources: []string{},
			Query:   query,
		}, nil
	}

	var contextParts []string
	seen := map[string]bool{}
	sources := []string{}
	for _, r := range results {
		name := r.CandidateName
		if name == "" {
			name = "Unknown candidate"
		}
		contextParts = append(contextParts, fmt.Sprintf("[%s]\n%s", name, r.Content))
		if !seen[name] {
			seen[name] = true
			sources = append(sources, name)
		}
	}

	answer, err := uc.llm.Generate(ctx, fmt.Sprintf(ragPromptTemplate, strings.Join(contextParts, "\n\n"), query))
	if err != nil {
		return nil, fmt.Errorf("cannot generate answer: %w", err)
	}

	return &dto.AskResponse{
		Answer:     answer,
		Sources:    sources,
		Query:      query,
		NumSources: len(results),
	}, nil
}
