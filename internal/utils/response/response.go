// Package response provides helpers for writing consistent console output.
//
// Every menu action ends with either a success line or an error line. Rather
// than formatting those in every handler, we centralise them here, together
// with the row formats used when listing courses and students.
package response

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aanand-mishra/course-registrar/internal/types"
	"github.com/go-playground/validator/v10"
)

// Response is one outcome line shown to the user.
type Response struct {
	Status  string
	Message string
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// String renders the line. Errors are framed so they stand out in the menu.
func (r Response) String() string {
	if r.Status == StatusError {
		return "** Error: " + r.Message + " **"
	}
	return r.Message
}

// Write prints r on its own line.
func Write(w io.Writer, r Response) error {
	_, err := fmt.Fprintln(w, r.String())
	return err
}

// OK builds a success line.
func OK(format string, args ...any) Response {
	return Response{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// GeneralError wraps any error. Validation failures are expanded field by
// field.
func GeneralError(err error) Response {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationError(verrs)
	}
	return Response{
		Status:  StatusError,
		Message: err.Error(),
	}
}

// ValidationError converts validator field errors into a single sentence.
//
//	** Error: field Name is required, field MaxCapacity must not be negative **
func ValidationError(errs validator.ValidationErrors) Response {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must not be negative", e.Field()))
		case "ltefield":
			msgs = append(msgs, fmt.Sprintf("field %s must not exceed %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status:  StatusError,
		Message: strings.Join(msgs, ", "),
	}
}

// Course renders one catalog row.
func Course(c *types.Course) string {
	state := "Open"
	if c.IsFull() {
		state = "Full"
	}
	return fmt.Sprintf("  Code: %s, Name: %s, Credits: %d, Capacity: %d/%d (%s)",
		c.Code, c.Name, c.Credits, c.CurrentEnrollment, c.MaxCapacity, state)
}

// DanglingCourse renders a registration whose course no longer exists.
func DanglingCourse(code string) string {
	return "  [DELETED] Course Code: " + code
}

// Student renders one row of the administrator's student list.
func Student(s *types.Student) string {
	role := "STUDENT"
	if s.IsAdmin {
		role = "ADMIN"
	}
	return fmt.Sprintf("%-8s ID: %d, Name: %s, Courses: %d",
		role, s.ID, s.Name, len(s.RegisteredCourses))
}
