package model

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceEntry struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DurationMonths int    `json:"duration_months"`
	Description    string `json:"description"`
}

type EducationEntry struct {
	Degree         string   `json:"degree"`
	Field          string   `json:"field"`
	Institution    string   `json:"institution"`
	GraduationYear int      `json:"graduation_year"`
	GPA            *float64 `json:"gpa"`
}

// ParsedProfile is the structured extraction result, one-to-one with a resume.
// It is replaced as a whole each time parsing completes.
type ParsedProfile struct {
	ID                   uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID             uuid.UUID         `gorm:"type:uuid;uniqueIndex" json:"resume_id"`
	RawText              string            `gorm:"type:text" json:"-"`
	Skills               []string          `gorm:"serializer:json;type:jsonb" json:"skills"`
	Experience           []ExperienceEntry `gorm:"serializer:json;type:jsonb" json:"experience"`
	Education            []EducationEntry  `gorm:"serializer:json;type:jsonb" json:"education"`
	Certifications       []string          `gorm:"serializer:json;type:jsonb" json:"certifications"`
	Languages            []string          `gorm:"serializer:json;type:jsonb" json:"languages"`
	TotalExperienceYears float64           `json:"total_experience_years"`
	Summary              string            `gorm:"type:text" json:"summary"`
	CandidateName        string            `gorm:"type:varchar(255)" json:"candidate_name"`
	CandidateEmail       string            `gorm:"type:varchar(255)" json:"candidate_email"`
	Phone                string            `gorm:"type:varchar(50)" json:"phone"`
	Metadata             map[string]any    `gorm:"serializer:json;type:jsonb" json:"metadata"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func (p *ParsedProfile) TableName() string {
	return "parsed_profiles"
}
