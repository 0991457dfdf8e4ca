// Package catalog holds the course catalog. It is seeded in memory and not
// persisted: the catalog is reference data, not operator state.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Level grades a course's difficulty.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// ErrInvalidInput indicates a malformed add-course request.
var ErrInvalidInput = errors.New("invalid course input")

// Course is a catalog entry.
type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Students    int    `json:"students"`
	Level       Level  `json:"level"`
}

// AddRequest describes a course to add.
type AddRequest struct {
	Name        string
	Description string
	Level       Level
}

// Service serves the course catalog.
type Service struct {
	mu      sync.Mutex
	courses []Course
	logger  *slog.Logger
}

// NewService creates a catalog seeded with the default courses.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{courses: defaultCourses(), logger: logger}
}

// List returns the catalog in insertion order.
func (s *Service) List() []Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Search filters the catalog by case-insensitive substring on name or
// description.
func (s *Service) Search(term string) []Course {
	needle := strings.ToLower(term)

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]Course, 0)
	for _, course := range s.courses {
		if needle == "" ||
			strings.Contains(strings.ToLower(course.Name), needle) ||
			strings.Contains(strings.ToLower(course.Description), needle) {
			matched = append(matched, course)
		}
	}
	return matched
}

// Add appends a new course with a generated id and zero enrolled students.
func (s *Service) Add(req AddRequest) (Course, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Course{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	level := req.Level
	if level == "" {
		level = LevelBeginner
	}
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return Course{}, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, req.Level)
	}

	course := Course{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Level:       level,
	}

	s.mu.Lock()
	s.courses = append(s.courses, course)
	s.mu.Unlock()

	s.logger.Info("course added", "course_id", course.ID, "name", course.Name)
	return course, nil
}

func defaultCourses() []Course {
	return []Course{
		{ID: "cs101", Name: "Computer Science", Description: "Introduction to computer science principles and programming", Students: 42, Level: LevelBeginner},
		{ID: "math201", Name: "Mathematics", Description: "Advanced calculus and linear algebra", Students: 28, Level: LevelIntermediate},
		{ID: "phys301", Name: "Physics", Description: "Quantum mechanics and theoretical physics", Students: 15, Level: LevelAdvanced},
		{ID: "chem202", Name: "Chemistry", Description: "Organic chemistry and laboratory techniques", Students: 23, Level: LevelIntermediate},
		{ID: "bio101", Name: "Biology", Description: "Cell biology and genetics fundamentals", Students: 35, Level: LevelBeginner},
	}
}
