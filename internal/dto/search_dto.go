package dto

import "github.com/google/uuid"

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type SearchResult struct {
	ResumeID      uuid.UUID `json:"resume_id"`
	CandidateName string    `json:"candidate_name"`
	Content       string    `json:"content"`
	ChunkIndex    int       `json:"chunk_index"`
	Similarity    float64   `json:"similarity"`
}

type AskResponse struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	Query      string   `json:"query"`
	NumSources int      `json:"num_sources"`
}
