package enrollment

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aanand-mishra/course-registrar/internal/registry"
	"github.com/aanand-mishra/course-registrar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, capacity int, ids ...int) (*registry.Registry, *Engine) {
	t.Helper()
	r := registry.New()
	r.AddCourse(types.Course{Code: "CS101", Name: "Intro", Credits: 3, MaxCapacity: capacity})
	for _, id := range ids {
		r.AddStudent(types.Student{ID: id, Name: "s", Password: "pw"})
	}
	return r, New(r, nil)
}

func enrolled(t *testing.T, r *registry.Registry) int {
	t.Helper()
	c, ok := r.FindCourse("CS101")
	require.True(t, ok)
	return c.CurrentEnrollment
}

func TestRegisterUntilFull(t *testing.T) {
	r, e := setup(t, 2, 1001, 1002, 1003)

	_, err := e.Register(1001, "CS101")
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled(t, r))

	_, err = e.Register(1002, "CS101")
	require.NoError(t, err)
	assert.Equal(t, 2, enrolled(t, r))

	_, err = e.Register(1003, "CS101")
	assert.ErrorIs(t, err, ErrCourseFull)
	assert.Equal(t, 2, enrolled(t, r))

	s, _ := r.FindStudent(1003)
	assert.Empty(t, s.RegisteredCourses)
}

func TestRegisterTwice(t *testing.T) {
	r, e := setup(t, 5, 1001)

	_, err := e.Register(1001, "CS101")
	require.NoError(t, err)

	_, err = e.Register(1001, "CS101")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, 1, enrolled(t, r))

	s, _ := r.FindStudent(1001)
	assert.Equal(t, []string{"CS101"}, s.RegisteredCourses)
}

func TestRegisterUnknown(t *testing.T) {
	r, e := setup(t, 5, 1001)

	_, err := e.Register(1001, "NOPE")
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = e.Register(4242, "CS101")
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Equal(t, 0, enrolled(t, r))
}

func TestRegisterZeroCapacity(t *testing.T) {
	_, e := setup(t, 0, 1001)
	_, err := e.Register(1001, "CS101")
	assert.ErrorIs(t, err, ErrCourseFull)
}

func TestDrop(t *testing.T) {
	r, e := setup(t, 5, 1001)

	_, err := e.Drop(1001, "CS101")
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = e.Drop(1001, "NOPE")
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Equal(t, 0, enrolled(t, r))
}

func TestRegisterDropRestores(t *testing.T) {
	r, e := setup(t, 3, 1001)
	r.AddCourse(types.Course{Code: "MA201", Name: "Calc", MaxCapacity: 3})
	_, err := e.Register(1001, "MA201")
	require.NoError(t, err)

	s, _ := r.FindStudent(1001)
	before := s.Clone()
	beforeCount := enrolled(t, r)

	course, err := e.Register(1001, "CS101")
	require.NoError(t, err)
	assert.Equal(t, "Intro", course.Name)

	_, err = e.Drop(1001, "CS101")
	require.NoError(t, err)

	assert.Equal(t, before.RegisteredCourses, s.RegisteredCourses)
	assert.Equal(t, beforeCount, enrolled(t, r))
}

func TestDropNeverGoesNegative(t *testing.T) {
	r := registry.New()
	r.AddCourse(types.Course{Code: "CS101", MaxCapacity: 1})
	r.AddStudent(types.Student{ID: 1, RegisteredCourses: []string{"CS101"}})
	var buf bytes.Buffer
	e := New(r, slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := e.Drop(1, "CS101")
	require.NoError(t, err)
	c, _ := r.FindCourse("CS101")
	assert.Equal(t, 0, c.CurrentEnrollment)

	st, _ := r.FindStudent(1)
	assert.Empty(t, st.RegisteredCourses)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "enrollment counter already zero on drop")
	assert.Contains(t, buf.String(), "code=CS101")
	assert.Contains(t, buf.String(), "student=1")
}

func TestDropDoesNotWarnNormally(t *testing.T) {
	r := registry.New()
	r.AddCourse(types.Course{Code: "CS101", MaxCapacity: 1, CurrentEnrollment: 1})
	r.AddStudent(types.Student{ID: 1, RegisteredCourses: []string{"CS101"}})
	var buf bytes.Buffer
	e := New(r, slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := e.Drop(1, "CS101")
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestRegistrationsWithDanglingCode(t *testing.T) {
	r := registry.New()
	r.AddCourse(types.Course{Code: "CS101", Name: "Intro", MaxCapacity: 1, CurrentEnrollment: 1})
	r.AddStudent(types.Student{ID: 1, RegisteredCourses: []string{"CS101", "GONE1"}})
	e := New(r, nil)

	regs, err := e.Registrations(1)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "Intro", regs[0].Course.Name)
	assert.Equal(t, "GONE1", regs[1].Code)
	assert.Nil(t, regs[1].Course)

	_, err = e.Registrations(2)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
