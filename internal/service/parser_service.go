package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/govindp47/smarthire/internal/model"
	"github.com/tidwall/gjson"
)

// ErrExtraction marks a failed text-extraction or LLM-parsing stage.
var ErrExtraction = errors.New("extraction failed")

const extractionPromptTemplate = `You are an expert HR assistant that extracts structured information from resumes. Always respond with valid JSON only, no additional text.

Extract the following information from this resume and return it as a JSON object:

RESUME TEXT:
%s

Extract:
1. candidate_name: Full name of the candidate
2. candidate_email: Email address
3. phone: Phone number (if available)
4. skills: List of technical skills, tools, and technologies
5. experience: List of work experiences, each with:
   - title, company, location
   - start_date (YYYY-MM format if possible, or text)
   - end_date (YYYY-MM format, or "Present" if current)
   - duration_months: Estimated duration in months
   - description: Brief description of responsibilities
6. education: List of education entries, each with:
   - degree, field, institution, graduation_year, gpa (if mentioned)
7. certifications: List of certifications (simple string list)
8. languages: List of languages spoken
9. summary: A 2-3 sentence professional summary

Return ONLY valid JSON with this exact structure:
{
  "candidate_name": "string",
  "candidate_email": "string",
  "phone": "string or null",
  "skills": ["skill1", "skill2"],
  "experience": [
    {"title": "string", "company": "string", "location": "string", "start_date": "string", "end_date": "string", "duration_months": number, "description": "string"}
  ],
  "education": [
    {"degree": "string", "field": "string", "institution": "string", "graduation_year": number, "gpa": number or null}
  ],
  "certifications": ["cert1", "cert2"],
  "languages": ["lang1", "lang2"],
  "summary": "string"
}

If any field cannot be found, use null or empty array as appropriate.`

// ParserService extracts a structured profile from raw resume text via an LLM.
type ParserService struct {
	llm       TextGenerator
	maxChars  int
	modelName string
}

func NewParserService(llm TextGenerator, maxChars int, modelName string) *ParserService {
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &ParserService{llm: llm, maxChars: maxChars, modelName: modelName}
}

// Parse sends the (truncated) resume text to the LLM and validates the result
// against the expected schema. It does not persist anything.
func (s *ParserService) Parse(ctx context.Context, resumeText string) (*model.ParsedProfile, error) {
	text := resumeText
	if len(text) > s.maxChars {
		text = text[:s.maxChars]
	}

	raw, err := s.llm.Generate(ctx, fmt.Sprintf(extractionPromptTemplate, text))
	if err != nil {
		return nil, fmt.Errorf("%w: llm call: %v", ErrExtraction, err)
	}

	raw = stripCodeFence(raw)
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: llm response is not a JSON object", ErrExtraction)
	}

	profile := &model.ParsedProfile{
		CandidateName:  root.Get("candidate_name").String(),
		CandidateEmail: root.Get("candidate_email").String(),
		Phone:          root.Get("phone").String(),
		Skills:         stringList(root.Get("skills")),
		Certifications: stringList(root.Get("certifications")),
		Languages:      stringList(root.Get("languages")),
		Summary:        root.Get("summary").String(),
		Experience:     experienceList(root.Get("experience")),
		Education:      educationList(root.Get("education")),
		Metadata: map[string]any{
			"parsed_at":    time.Now().UTC().Format(time.RFC3339),
			"parser_model": s.modelName,
		},
	}
	profile.TotalExperienceYears = totalExperienceYears(profile.Experience)

	return profile, nil
}

// totalExperienceYears sums duration_months across entries, in years rounded
// to one decimal. Zero when no entry carries a duration.
func totalExperienceYears(entries []model.ExperienceEntry) float64 {
	totalMonths := 0
	for _, e := range entries {
		totalMonths += e.DurationMonths
	}
	if totalMonths <= 0 {
		return 0
	}
	return math.Round(float64(totalMonths)/12*10) / 10
}

// stripCodeFence removes a markdown ```json fence some models wrap around output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func stringList(res gjson.Result) []string {
	out := []string{}
	for _, item := range res.Array() {
		if v := strings.TrimSpace(item.String()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func experienceList(res gjson.Result) []model.ExperienceEntry {
	out := []model.ExperienceEntry{}
	for _, item := range res.Array() {
		out = append(out, model.ExperienceEntry{
			Title:          item.Get("title").String(),
			Company:        item.Get("company").String(),
			Location:       item.Get("location").String(),
			StartDate:      item.Get("start_date").String(),
			EndDate:        item.Get("end_date").String(),
			DurationMonths: int(item.Get("duration_months").Int()),
			Description:    item.Get("description").String(),
		})
	}
	return out
}

func educationList(res gjson.Result) []model.EducationEntry {
	out := []model.EducationEntry{}
	for _, item := range res.Array() {
		entry := model.EducationEntry{
			Degree:         item.Get("degree").String(),
			Field:          item.Get("field").String(),
			Institution:    item.Get("institution").String(),
			GraduationYear: int(item.Get("graduation_year").Int()),
		}
		if gpa := item.Get("gpa"); gpa.Exists() && gpa.Type == gjson.Number {
			v := gpa.Float()
			entry.GPA = &v
		}
		out = append(out, entry)
	}
	return out
}
