package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type PipelineConfig struct {
	ChunkSize      int
	ChunkOverlap   int
	ParserMaxChars int
	LLMProvider    string // "gemini" or "openrouter"

	Workers     int
	QueueSize   int
	MaxAttempts int
	TaskTimeout time.Duration
}

var (
	pipelineConfig *PipelineConfig
	pipelineOnce   sync.Once
)

func LoadPipelineConfig() *PipelineConfig {
	pipelineOnce.Do(func() {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		pipelineConfig = &PipelineConfig{
			ChunkSize:      envInt("CHUNK_SIZE", 1000),
			ChunkOverlap:   envInt("CHUNK_OVERLAP", 100),
			ParserMaxChars: envInt("PARSER_MAX_CHARS", 4000),
			LLMProvider:    provider,
			Workers:        envInt("PIPELINE_WORKERS", 4),
			QueueSize:      envInt("PIPELINE_QUEUE_SIZE", 64),
			MaxAttempts:    envInt("PIPELINE_MAX_ATTEMPTS", 3),
			TaskTimeout:    time.Duration(envInt("PIPELINE_TASK_TIMEOUT_SECONDS", 300)) * time.Second,
		}
	})
	return pipelineConfig
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
