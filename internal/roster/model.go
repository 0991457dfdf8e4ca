package roster

// Store keys owned by the roster service.
const (
	StudentsKey  = "students"
	SelectionKey = "selected_student"
)

// AllCourses is the course filter sentinel matching every course.
const AllCourses = "all"

// Student is a single roster entry. Records are immutable once added; the
// roster only ever grows by appending.
type Student struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Grade  string `json:"grade"`
	Course string `json:"course"`
}

// AddRequest describes a student to add. The id is generated by the service.
type AddRequest struct {
	Name   string
	Email  string
	Grade  string
	Course string
}

// Stats summarizes the roster for the dashboard overview.
type Stats struct {
	TotalStudents int `json:"total_students"`
	CourseCount   int `json:"course_count"`
}

// DefaultRoster seeds an empty store with the demo roster.
func DefaultRoster() []Student {
	return []Student{
		{ID: "1", Name: "John Doe", Email: "john.doe@example.com", Grade: "A", Course: "Computer Science"},
		{ID: "2", Name: "Jane Smith", Email: "jane.smith@example.com", Grade: "B+", Course: "Mathematics"},
		{ID: "3", Name: "Alex Johnson", Email: "alex.johnson@example.com", Grade: "A-", Course: "Physics"},
	}
}
