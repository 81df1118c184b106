// Package types holds the two entities of the registrar: Course and Student.
// Keeping them in one place prevents import cycles — registry, storage,
// enrollment and the console can all import types without depending on
// each other.
//
// The entities are deliberately dumb: they mutate themselves when asked and
// leave every cross-entity rule (seat limits, duplicate registration) to the
// enrollment engine.
package types

// Course is one entry of the catalog.
//
// Invariant kept by the enrollment engine, not by Course itself:
//
//	0 <= CurrentEnrollment <= MaxCapacity
type Course struct {
	Code              string `validate:"required"`
	Name              string `validate:"required"`
	Credits           int    `validate:"gte=0"`
	MaxCapacity       int    `validate:"gte=0"`
	CurrentEnrollment int    `validate:"gte=0,ltefield=MaxCapacity"`
}

// AvailableSeats returns the number of seats still open.
func (c *Course) AvailableSeats() int {
	return c.MaxCapacity - c.CurrentEnrollment
}

// IncrementEnrollment adds one student to the counter. The caller must have
// checked AvailableSeats first.
func (c *Course) IncrementEnrollment() { c.CurrentEnrollment++ }

// DecrementEnrollment removes one student from the counter. The caller must
// have checked that the student was registered.
func (c *Course) DecrementEnrollment() { c.CurrentEnrollment-- }

// IsFull reports whether no seats are left.
func (c *Course) IsFull() bool { return c.AvailableSeats() <= 0 }

// Student is a registered user. Administrators are students with IsAdmin set;
// the flag is fixed when the record is created.
type Student struct {
	ID                int    `validate:"gte=0"`
	Name              string `validate:"required"`
	Password          string `validate:"required"`
	IsAdmin           bool
	RegisteredCourses []string
}

// IsRegistered reports whether code is in the student's course list.
func (s *Student) IsRegistered(code string) bool {
	for _, c := range s.RegisteredCourses {
		if c == code {
			return true
		}
	}
	return false
}

// AddCourse appends code unconditionally.
func (s *Student) AddCourse(code string) {
	s.RegisteredCourses = append(s.RegisteredCourses, code)
}

// RemoveCourse removes the first matching code. Absent codes are ignored.
func (s *Student) RemoveCourse(code string) {
	for i, c := range s.RegisteredCourses {
		if c == code {
			s.RegisteredCourses = append(s.RegisteredCourses[:i], s.RegisteredCourses[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy so callers can hand out a student without
// sharing the course slice.
func (s *Student) Clone() Student {
	out := *s
	out.RegisteredCourses = append([]string(nil), s.RegisteredCourses...)
	return out
}
