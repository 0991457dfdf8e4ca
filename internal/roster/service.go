// Package roster manages the persisted student roster and the current
// selection, reconciling the two into a derived selected record.
package roster

import (
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/ganot/rosterdesk/internal/localstore"
	"github.com/ganot/rosterdesk/internal/state"
	"github.com/google/uuid"
)

// Service composes one persisted binding for the roster and one for the
// selected id. The selection is a weak reference: a lookup miss resolves to
// absent, never to stale data.
type Service struct {
	students  *state.Value[[]Student]
	selection *state.Value[string]
	logger    *slog.Logger
}

// NewService creates the roster service, hydrating both bindings from the
// store. An empty store starts with the demo roster and no selection.
func NewService(store *localstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		students:  state.New(store, StudentsKey, DefaultRoster()),
		selection: state.New(store, SelectionKey, ""),
		logger:    logger,
	}
}

// Add validates req, appends a new student with a generated id, and returns
// the created record.
func (s *Service) Add(req AddRequest) (Student, error) {
	if err := validateAddRequest(req); err != nil {
		return Student{}, err
	}

	student := Student{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(req.Email),
		Grade:  req.Grade,
		Course: req.Course,
	}

	s.students.Update(func(current []Student) []Student {
		roster := make([]Student, 0, len(current)+1)
		roster = append(roster, current...)
		return append(roster, student)
	})

	s.logger.Info("student added", "student_id", student.ID, "course", student.Course)
	return student, nil
}

// Select sets the current selection. Selecting an id that is not in the
// roster is allowed; the derived selection simply resolves to absent.
func (s *Service) Select(id string) {
	s.selection.Set(id)
}

// ClearSelection resets the selection to absent.
func (s *Service) ClearSelection() {
	s.selection.Set("")
}

// Selected derives the currently selected student by lookup. It reports
// false when nothing is selected or the selected id is gone.
func (s *Service) Selected() (Student, bool) {
	id := s.selection.Get()
	if id == "" {
		return Student{}, false
	}
	for _, student := range s.students.Get() {
		if student.ID == id {
			return student, true
		}
	}
	return Student{}, false
}

// Get returns the student with the given id.
func (s *Service) Get(id string) (Student, error) {
	for _, student := range s.students.Get() {
		if student.ID == id {
			return student, nil
		}
	}
	return Student{}, ErrStudentNotFound
}

// List returns the full roster in insertion order.
func (s *Service) List() []Student {
	return s.students.Get()
}

// Filter projects the roster: case-insensitive substring match on name or
// email, and exact course match unless course is AllCourses. Order is
// preserved; the roster is not touched.
func (s *Service) Filter(term, course string) []Student {
	needle := strings.ToLower(term)

	filtered := make([]Student, 0)
	for _, student := range s.students.Get() {
		matchesTerm := needle == "" ||
			strings.Contains(strings.ToLower(student.Name), needle) ||
			strings.Contains(strings.ToLower(student.Email), needle)
		matchesCourse := course == "" || course == AllCourses || student.Course == course

		if matchesTerm && matchesCourse {
			filtered = append(filtered, student)
		}
	}
	return filtered
}

// Courses returns the distinct courses on the roster, first-seen order.
func (s *Service) Courses() []string {
	seen := map[string]bool{}
	courses := make([]string, 0)
	for _, student := range s.students.Get() {
		if !seen[student.Course] {
			seen[student.Course] = true
			courses = append(courses, student.Course)
		}
	}
	return courses
}

// Stats summarizes the roster for the dashboard overview cards.
func (s *Service) Stats() Stats {
	return Stats{
		TotalStudents: len(s.students.Get()),
		CourseCount:   len(s.Courses()),
	}
}

func validateAddRequest(req AddRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Grade) == "" {
		return fmt.Errorf("%w: grade is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Course) == "" {
		return fmt.Errorf("%w: course is required", ErrInvalidInput)
	}
	return nil
}
