package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/govindp47/smarthire/internal/logger"
	"github.com/govindp47/smarthire/internal/model"
)

const (
	skillsWeight     = 0.50
	experienceWeight = 0.25
	semanticWeight   = 0.25

	// NeutralScore is returned when scoring itself blows up, so one bad
	// resume never blocks the rest of the job's batch.
	NeutralScore = 50.0
)

// knownSkills is the vocabulary scanned for in job text when deriving the
// required skill set. Lowercase on purpose, matching is case-insensitive.
var knownSkills = []string{
	"python", "java", "javascript", "typescript", "go", "rust", "c++", "c#",
	"react", "vue", "angular", "node", "fastapi", "django", "flask",
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
	"git", "ci/cd", "jenkins", "gitlab", "github",
	"machine learning", "deep learning", "ai", "nlp",
	"rest api", "graphql", "microservices", "agile", "scrum",
}

// experienceRanges maps a job's experience level to the ideal years range.
var experienceRanges = map[string][2]float64{
	"entry":     {0, 2},
	"junior":    {0, 3},
	"mid":       {2, 6},
	"middle":    {2, 6},
	"senior":    {5, 15},
	"lead":      {7, 20},
	"principal": {10, 25},
	"staff":     {8, 20},
}

// ScoringService computes a 0-100 relevance score for a parsed profile
// against a job posting.
type ScoringService struct {
	embedder EmbeddingProvider
}

func NewScoringService(embedder EmbeddingProvider) *ScoringService {
	return &ScoringService{embedder: embedder}
}

// Score combines the skill, experience and semantic sub-scores with fixed
// weights and rounds to one decimal. Any internal panic yields NeutralScore.
func (s *ScoringService) Score(ctx context.Context, profile *model.ParsedProfile, job *model.Job) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("scoring fell back to neutral score")
			score = NeutralScore
			err = nil
		}
	}()

	skills := s.calculateSkillsScore(profile.Skills, job)
	experience := s.calculateExperienceScore(profile.TotalExperienceYears, job.ExperienceLevel)
	semantic := s.calculateSemanticScore(ctx, profile, job)

	total := skills*skillsWeight + experience*experienceWeight + semantic*semanticWeight
	return round1(total), nil
}

// calculateSkillsScore measures how many skills required by the job text the
// candidate covers. Exact matches count 1.0, partial (substring either way)
// count 0.5. No required skills detected means a full score.
func (s *ScoringService) calculateSkillsScore(candidateSkills []string, job *model.Job) float64 {
	jobText := strings.ToLower(job.Title + " " + job.Description + " " + job.Requirements)

	var required []string
	for _, skill := range knownSkills {
		if strings.Contains(jobText, skill) {
			required = append(required, skill)
		}
	}
	if len(required) == 0 {
		return 100
	}
	if len(candidateSkills) == 0 {
		return 0
	}

	normalized := make([]string, 0, len(candidateSkills))
	for _, cs := range candidateSkills {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(cs)))
	}

	matched := 0.0
	for _, req := range required {
		best := 0.0
		for _, cand := range normalized {
			if cand == req {
				best = 1.0
				break
			}
			if strings.Contains(cand, req) || strings.Contains(req, cand) {
				best = math.Max(best, 0.5)
			}
		}
		matched += best
	}

	return math.Min(matched/float64(len(required))*100, 100)
}

// calculateExperienceScore compares total years against the job level's ideal
// range, degrading gently for overqualified candidates and proportionally for
// underqualified ones.
func (s *ScoringService) calculateExperienceScore(years float64, level string) float64 {
	rng, ok := experienceRanges[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		switch {
		case years < 1:
			return 40
		case years <= 3:
			return 70
		case years <= 7:
			return 90
		default:
			return 100
		}
	}

	minYears, maxYears := rng[0], rng[1]
	switch {
	case years >= minYears && years <= maxYears:
		return 100
	case years > maxYears:
		penalty := math.Min((years-maxYears)*3, 20)
		return math.Max(80, 100-penalty)
	default:
		if minYears == 0 {
			return 80
		}
		return math.Min(years/minYears*100, 80)
	}
}

// calculateSemanticScore embeds a compact profile summary and the job posting
// and scales their cosine similarity to 0-100. Embedding failures degrade to
// a zero vector, which scores 0 rather than failing the whole computation.
func (s *ScoringService) calculateSemanticScore(ctx context.Context, profile *model.ParsedProfile, job *model.Job) float64 {
	profileText := buildProfileSummary(profile)
	jobText := job.Title + " " + job.Description + " " + job.Requirements
	if len(jobText) > 1000 {
		jobText = jobText[:1000]
	}

	profileVec := s.embedOrZero(ctx, profileText)
	jobVec := s.embedOrZero(ctx, jobText)

	similarity := cosineSimilarity(profileVec, jobVec)
	return math.Max(0, math.Min(similarity*100, 100))
}

func (s *ScoringService) embedOrZero(ctx context.Context, text string) []float32 {
	vec, err := s.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		logger.Warn().Err(err).Msg("embedding failed during scoring, using zero vector")
		return nil
	}
	return vec
}

// buildProfileSummary assembles the candidate's skills, current role and
// summary into one string capped at 500 characters.
func buildProfileSummary(profile *model.ParsedProfile) string {
	var parts []string

	if len(profile.Skills) > 0 {
		skills := profile.Skills
		if len(skills) > 20 {
			skills = skills[:20]
		}
		parts = append(parts, strings.Join(skills, ", "))
	}
	if len(profile.Experience) > 0 {
		current := profile.Experience[0]
		if current.Title != "" || current.Company != "" {
			parts = append(parts, fmt.Sprintf("Current role: %s at %s", current.Title, current.Company))
		}
	}
	if profile.Summary != "" {
		parts = append(parts, profile.Summary)
	}

	text := strings.Join(parts, ". ")
	if len(text) > 500 {
		text = text[:500]
	}
	return text
}

// cosineSimilarity returns 0 for mismatched lengths or zero-magnitude vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
