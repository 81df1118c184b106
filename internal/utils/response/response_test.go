package response

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aanand-mishra/course-registrar/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, OK("registered for %s", "Intro")))
	require.NoError(t, Write(&buf, GeneralError(errors.New("course is full"))))
	assert.Equal(t, "registered for Intro\n** Error: course is full **\n", buf.String())
}

func TestValidationError(t *testing.T) {
	err := validator.New().Struct(types.Course{Code: "CS101", MaxCapacity: -1})
	require.Error(t, err)

	r := GeneralError(err)
	assert.Equal(t, StatusError, r.Status)
	assert.Contains(t, r.Message, "field Name is required")
	assert.Contains(t, r.Message, "field MaxCapacity must not be negative")
	assert.Contains(t, r.Message, "field CurrentEnrollment must not exceed MaxCapacity")
}

func TestRows(t *testing.T) {
	c := &types.Course{Code: "CS101", Name: "Intro", Credits: 3, MaxCapacity: 2, CurrentEnrollment: 2}
	assert.Equal(t, "  Code: CS101, Name: Intro, Credits: 3, Capacity: 2/2 (Full)", Course(c))

	c.DecrementEnrollment()
	assert.Contains(t, Course(c), "(Open)")

	assert.Equal(t, "  [DELETED] Course Code: GONE", DanglingCourse("GONE"))

	s := &types.Student{ID: 7, Name: "Ann", RegisteredCourses: []string{"A", "B"}}
	assert.Equal(t, "STUDENT  ID: 7, Name: Ann, Courses: 2", Student(s))
	admin := &types.Student{ID: 1, Name: "Root", IsAdmin: true}
	assert.Equal(t, "ADMIN    ID: 1, Name: Root, Courses: 0", Student(admin))
}
