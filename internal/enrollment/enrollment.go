// Package enrollment registers students for courses and drops them again,
// keeping the course seat counter and the student's course list in step.
//
// Every check runs before the first mutation, so a failed call leaves both
// records untouched and a successful one changes both.
package enrollment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/course-registrar/internal/registry"
	"github.com/aanand-mishra/course-registrar/internal/types"
)

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrAlreadyRegistered = errors.New("already registered in this course")
	ErrCourseFull        = errors.New("course is full")
	ErrNotRegistered     = errors.New("not registered in this course")
)

// Lookup is what the engine needs from the registry.
type Lookup interface {
	registry.CourseLookup
	registry.StudentLookup
}

// Engine applies register/drop transitions.
type Engine struct {
	lookup Lookup
	log    *slog.Logger
}

// New returns an Engine over lookup. A nil log uses slog.Default.
func New(lookup Lookup, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{lookup: lookup, log: log}
}

// Register adds code to the student's courses and takes one seat.
func (e *Engine) Register(studentID int, code string) (*types.Course, error) {
	st, course, err := e.resolve(studentID, code)
	if err != nil {
		return nil, err
	}
	if st.IsRegistered(code) {
		return nil, fmt.Errorf("register %s: %w", code, ErrAlreadyRegistered)
	}
	if course.AvailableSeats() <= 0 {
		return nil, fmt.Errorf("register %s: %w", code, ErrCourseFull)
	}

	st.AddCourse(code)
	course.IncrementEnrollment()
	return course, nil
}

// Drop removes code from the student's courses and frees one seat.
func (e *Engine) Drop(studentID int, code string) (*types.Course, error) {
	st, course, err := e.resolve(studentID, code)
	if err != nil {
		return nil, err
	}
	if !st.IsRegistered(code) {
		return nil, fmt.Errorf("drop %s: %w", code, ErrNotRegistered)
	}

	st.RemoveCourse(code)
	// a registration loaded from disk may point at a course whose counter
	// is already zero; the counter stays at zero and the drift is reported
	if course.CurrentEnrollment > 0 {
		course.DecrementEnrollment()
	} else {
		e.log.Warn("enrollment counter already zero on drop",
			slog.String("code", code),
			slog.Int("student", studentID))
	}
	return course, nil
}

// Registration is one entry of a student's course list. Course is nil when
// the code no longer resolves to a catalog entry.
type Registration struct {
	Code   string
	Course *types.Course
}

// Registrations lists the student's courses in registration order.
func (e *Engine) Registrations(studentID int) ([]Registration, error) {
	st, ok := e.lookup.FindStudent(studentID)
	if !ok {
		return nil, fmt.Errorf("student %d: %w", studentID, ErrStudentNotFound)
	}
	out := make([]Registration, 0, len(st.RegisteredCourses))
	for _, code := range st.RegisteredCourses {
		c, _ := e.lookup.FindCourse(code)
		out = append(out, Registration{Code: code, Course: c})
	}
	return out, nil
}

func (e *Engine) resolve(studentID int, code string) (*types.Student, *types.Course, error) {
	st, ok := e.lookup.FindStudent(studentID)
	if !ok {
		return nil, nil, fmt.Errorf("student %d: %w", studentID, ErrStudentNotFound)
	}
	course, ok := e.lookup.FindCourse(code)
	if !ok {
		return nil, nil, fmt.Errorf("course %s: %w", code, ErrCourseNotFound)
	}
	return st, course, nil
}
