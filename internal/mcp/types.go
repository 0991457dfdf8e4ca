package mcp

import (
	"github.com/ganot/rosterdesk/internal/catalog"
	"github.com/ganot/rosterdesk/internal/identity"
	"github.com/ganot/rosterdesk/internal/roster"
)

// SessionStatusResult reports the current auth state and roster overview.
type SessionStatusResult struct {
	Authenticated bool           `json:"authenticated"`
	User          *identity.User `json:"user,omitempty"`
	Loading       bool           `json:"loading"`
	LastError     string         `json:"last_error,omitempty"`
	Stats         roster.Stats   `json:"stats"`
}

// CredentialsArgs carries a sign-up or sign-in request.
type CredentialsArgs struct {
	Email    string `json:"email" jsonschema:"account email address"`
	Password string `json:"password" jsonschema:"account password, at least 6 characters"`
}

// SignInResult returns the signed-in user.
type SignInResult struct {
	User *identity.User `json:"user"`
}

// SignOutResult acknowledges a sign-out.
type SignOutResult struct {
	SignedOut bool `json:"signed_out"`
}

// AddStudentArgs carries a new student's fields. The id is generated.
type AddStudentArgs struct {
	Name   string `json:"name" jsonschema:"student's full name"`
	Email  string `json:"email" jsonschema:"student's email address"`
	Grade  string `json:"grade" jsonschema:"letter grade, e.g. A or B+"`
	Course string `json:"course" jsonschema:"course name the student is enrolled in"`
}

// AddStudentResult returns the created record.
type AddStudentResult struct {
	Student roster.Student `json:"student"`
}

// ListStudentsArgs filters the roster.
type ListStudentsArgs struct {
	Search string `json:"search,omitempty" jsonschema:"case-insensitive substring matched against name or email"`
	Course string `json:"course,omitempty" jsonschema:"exact course name, or 'all' for every course"`
}

// ListStudentsResult returns the filtered roster plus the distinct courses
// for the filter dropdown.
type ListStudentsResult struct {
	Students []roster.Student `json:"students"`
	Courses  []string         `json:"courses"`
	Total    int              `json:"total"`
}

// StudentIDArgs identifies one student.
type StudentIDArgs struct {
	ID string `json:"id" jsonschema:"student id"`
}

// SelectStudentArgs sets the selection. An empty id clears it.
type SelectStudentArgs struct {
	ID string `json:"id,omitempty" jsonschema:"student id to select, empty to clear the selection"`
}

// SelectStudentResult returns the derived selection after the change.
type SelectStudentResult struct {
	Selected *roster.Student `json:"selected,omitempty"`
}

// StudentResult returns a single student.
type StudentResult struct {
	Student roster.Student `json:"student"`
}

// ListCoursesArgs filters the catalog.
type ListCoursesArgs struct {
	Search string `json:"search,omitempty" jsonschema:"case-insensitive substring matched against course name or description"`
}

// ListCoursesResult returns the catalog.
type ListCoursesResult struct {
	Courses []catalog.Course `json:"courses"`
}

// AddCourseArgs carries a new catalog entry.
type AddCourseArgs struct {
	Name        string `json:"name" jsonschema:"course name"`
	Description string `json:"description,omitempty" jsonschema:"course description"`
	Level       string `json:"level,omitempty" jsonschema:"Beginner, Intermediate or Advanced"`
}

// AddCourseResult returns the created course.
type AddCourseResult struct {
	Course catalog.Course `json:"course"`
}
