package registry

import (
	"testing"

	"github.com/aanand-mishra/course-registrar/internal/storage"
	"github.com/aanand-mishra/course-registrar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAndAdd(t *testing.T) {
	r := New()

	_, ok := r.FindCourse("CS101")
	assert.False(t, ok)
	_, ok = r.FindStudent(1001)
	assert.False(t, ok)

	r.AddCourse(types.Course{Code: "CS101", Name: "Intro", MaxCapacity: 2})
	r.AddStudent(types.Student{ID: 1001, Name: "Ann", Password: "pw"})

	c, ok := r.FindCourse("CS101")
	require.True(t, ok)
	assert.Equal(t, "Intro", c.Name)

	s, ok := r.FindStudent(1001)
	require.True(t, ok)
	assert.Equal(t, "Ann", s.Name)

	assert.Equal(t, 1, r.CourseCount())
	assert.Equal(t, 1, r.StudentCount())
}

func TestPointersSurviveGrowth(t *testing.T) {
	r := New()
	first := r.AddCourse(types.Course{Code: "C0", MaxCapacity: 1})
	for i := 0; i < 100; i++ {
		r.AddCourse(types.Course{Code: string(rune('a' + i%26)) + "x", MaxCapacity: 1})
	}
	first.IncrementEnrollment()

	c, ok := r.FindCourse("C0")
	require.True(t, ok)
	assert.Same(t, first, c)
	assert.Equal(t, 1, c.CurrentEnrollment)
}

func TestInsertionOrder(t *testing.T) {
	r := New()
	for _, code := range []string{"MA201", "CS101", "EN101"} {
		r.AddCourse(types.Course{Code: code})
	}
	var got []string
	for _, c := range r.Courses() {
		got = append(got, c.Code)
	}
	assert.Equal(t, []string{"MA201", "CS101", "EN101"}, got)
}

func TestFromSnapshotDropsDuplicates(t *testing.T) {
	snap := storage.Snapshot{
		Courses: []types.Course{
			{Code: "CS101", Name: "First"},
			{Code: "CS101", Name: "Second"},
		},
		Students: []types.Student{
			{ID: 7, Name: "Ann"},
			{ID: 8, Name: "Bob"},
			{ID: 7, Name: "Impostor"},
		},
	}

	r, dups := FromSnapshot(snap, nil)
	assert.Len(t, dups, 2)
	assert.Equal(t, 1, r.CourseCount())
	assert.Equal(t, 2, r.StudentCount())

	c, _ := r.FindCourse("CS101")
	assert.Equal(t, "First", c.Name)
	s, _ := r.FindStudent(7)
	assert.Equal(t, "Ann", s.Name)
}

func TestSnapshotIsACopy(t *testing.T) {
	r := New()
	r.AddCourse(types.Course{Code: "CS101", MaxCapacity: 3})
	st := r.AddStudent(types.Student{ID: 1, RegisteredCourses: []string{"CS101"}})

	snap := r.Snapshot()
	st.AddCourse("MA201")
	c, _ := r.FindCourse("CS101")
	c.IncrementEnrollment()

	assert.Equal(t, []string{"CS101"}, snap.Students[0].RegisteredCourses)
	assert.Equal(t, 0, snap.Courses[0].CurrentEnrollment)
}
