package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/skill"
	"github.com/okian/upskill/internal/validation"
	"github.com/okian/upskill/pkg/logger"
	"github.com/okian/upskill/pkg/metrics"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Courses []courseRecord `yaml:"courses"`
	Roles   []roleRecord   `yaml:"roles"`
}

type citationRecord struct {
	SourceID string  `yaml:"source_id"`
	Span     string  `yaml:"span"`
	Score    float64 `yaml:"score"`
}

type courseRecord struct {
	ID            string           `yaml:"course_id"`
	Title         string           `yaml:"title"`
	Skills        []string         `yaml:"skills"`
	Difficulty    string           `yaml:"difficulty"`
	DurationWeeks int              `yaml:"duration_weeks"`
	Prerequisites []string         `yaml:"prerequisites"`
	Outcomes      []string         `yaml:"outcomes"`
	Description   string           `yaml:"description"`
	Rating        float64          `yaml:"rating"`
	Citations     []citationRecord `yaml:"citations"`
}

type roleRecord struct {
	Role            string            `yaml:"role"`
	RequiredSkills  map[string]string `yaml:"required_skills"`
	ExperienceYears float64           `yaml:"experience_years"`
}

// CatalogStore is an in-memory Store loaded once from YAML.
type CatalogStore struct {
	path string
	data []byte

	courses []model.Course
	byID    map[string]int
	roles   []model.RoleRequirement
	byRole  map[string]int
}

// NewCatalogStore loads and validates the catalog. Without options the
// embedded default catalog is used.
func NewCatalogStore(opts ...Option) (*CatalogStore, error) {
	s := &CatalogStore{}
	for _, opt := range opts {
		opt(s)
	}

	data := s.data
	source := "embedded"
	switch {
	case len(data) > 0:
		source = "inline"
	case s.path != "":
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
		}
		data, source = raw, s.path
	default:
		data = defaultCatalog
	}

	if err := s.load(data); err != nil {
		return nil, err
	}

	metrics.UpdateCatalogSize(len(s.courses), len(s.roles))
	logger.Get().Named("repository").Debug(context.Background(), "catalog loaded",
		logger.String("source", source),
		logger.Int("courses", len(s.courses)),
		logger.Int("roles", len(s.roles)))
	return s, nil
}

func (s *CatalogStore) load(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	s.courses = make([]model.Course, 0, len(file.Courses))
	s.byID = make(map[string]int, len(file.Courses))
	for i, rec := range file.Courses {
		c, err := rec.toModel()
		if err != nil {
			return fmt.Errorf("%w: course #%d: %v", ErrInvalidCatalog, i, err)
		}
		if _, dup := s.byID[c.ID]; dup {
			return fmt.Errorf("%w: duplicate course id %q", ErrInvalidCatalog, c.ID)
		}
		s.byID[c.ID] = len(s.courses)
		s.courses = append(s.courses, c)
	}

	s.roles = make([]model.RoleRequirement, 0, len(file.Roles))
	s.byRole = make(map[string]int, len(file.Roles))
	for i, rec := range file.Roles {
		r, err := rec.toModel()
		if err != nil {
			return fmt.Errorf("%w: role #%d: %v", ErrInvalidCatalog, i, err)
		}
		key := roleKey(r.Role)
		if _, dup := s.byRole[key]; dup {
			return fmt.Errorf("%w: duplicate role %q", ErrInvalidCatalog, r.Role)
		}
		s.byRole[key] = len(s.roles)
		s.roles = append(s.roles, r)
	}
	return nil
}

func (rec courseRecord) toModel() (model.Course, error) {
	d, err := skill.ParseDifficulty(rec.Difficulty)
	if err != nil {
		return model.Course{}, err
	}
	seen := make(map[string]struct{}, len(rec.Skills))
	for _, name := range rec.Skills {
		if _, dup := seen[name]; dup {
			return model.Course{}, fmt.Errorf("course %q lists skill %q twice", rec.ID, name)
		}
		seen[name] = struct{}{}
	}
	c := model.Course{
		ID:            strings.TrimSpace(rec.ID),
		Title:         rec.Title,
		Skills:        rec.Skills,
		Difficulty:    d,
		DurationWeeks: rec.DurationWeeks,
		Prerequisites: rec.Prerequisites,
		Outcomes:      rec.Outcomes,
		Description:   rec.Description,
		Rating:        rec.Rating,
	}
	for _, ct := range rec.Citations {
		c.Citations = append(c.Citations, model.Citation{SourceID: ct.SourceID, Span: ct.Span, Score: ct.Score})
	}
	if err := validation.ValidateCourse(c); err != nil {
		return model.Course{}, fmt.Errorf("course %q: %w", rec.ID, err)
	}
	return c, nil
}

func (rec roleRecord) toModel() (model.RoleRequirement, error) {
	r := model.RoleRequirement{
		Role:            strings.TrimSpace(rec.Role),
		Skills:          make(map[string]skill.Level, len(rec.RequiredSkills)),
		ExperienceYears: rec.ExperienceYears,
	}
	for name, level := range rec.RequiredSkills {
		lvl, err := skill.ParseLevel(level)
		if err != nil {
			return model.RoleRequirement{}, fmt.Errorf("role %q skill %q: %w", rec.Role, name, err)
		}
		r.Skills[name] = lvl
	}
	if err := validation.ValidateRole(r); err != nil {
		return model.RoleRequirement{}, fmt.Errorf("role %q: %w", rec.Role, err)
	}
	return r, nil
}

func roleKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Courses implements Store.
func (s *CatalogStore) Courses() []model.Course {
	out := make([]model.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Course implements Store.
func (s *CatalogStore) Course(id string) (model.Course, error) {
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return model.Course{}, ErrNotFound
	}
	return s.courses[i], nil
}

// Roles implements Store.
func (s *CatalogStore) Roles() []model.RoleRequirement {
	out := make([]model.RoleRequirement, len(s.roles))
	copy(out, s.roles)
	return out
}

// Role implements Store.
func (s *CatalogStore) Role(name string) (model.RoleRequirement, bool) {
	i, ok := s.byRole[roleKey(name)]
	if !ok {
		return model.RoleRequirement{}, false
	}
	return s.roles[i], true
}
