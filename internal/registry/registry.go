// Package registry owns every Course and Student of a running registrar.
//
// TWO VIEWS OF THE SAME RECORDS
// ─────────────────────────────
// Each record is stored once, behind a pointer, and reachable two ways:
//
//	courses   []*types.Course           insertion order: listing and saving
//	courseIdx map[string]*types.Course  code -> record: every lookup
//
// Students have the same pair keyed by id. Both views hold the same
// pointer, so a change made through FindCourse (an enrollment counter
// going up, say) shows up in the next listing and the next save without
// any copy-back step.
//
// Go maps have no stable iteration order, which is why the slices exist
// at all: the files on disk keep the order records were added in.
//
// WHO SEES WHAT
// ─────────────
// Code that only reads records takes a CourseLookup or StudentLookup
// instead of *Registry. The enrollment engine is written against those
// two interfaces, and its tests can hand it anything with the two Find
// methods.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/course-registrar/internal/storage"
	"github.com/aanand-mishra/course-registrar/internal/types"
)

// CourseLookup finds a course by its code.
type CourseLookup interface {
	FindCourse(code string) (*types.Course, bool)
}

// StudentLookup finds a student by id.
type StudentLookup interface {
	FindStudent(id int) (*types.Student, bool)
}

// Registry is the in-memory owner of all records. Pointers returned by the
// Find methods stay valid for the life of the Registry: records are never
// removed, and growing the slices only moves the pointers, not the records
// they point at.
type Registry struct {
	courses  []*types.Course
	students []*types.Student

	courseIdx  map[string]*types.Course
	studentIdx map[int]*types.Student
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		courseIdx:  make(map[string]*types.Course),
		studentIdx: make(map[int]*types.Student),
	}
}

// FromSnapshot builds a Registry from persisted state. Duplicate course codes
// and student ids are not allowed in a Registry: the first record wins and
// every later duplicate is skipped, logged, and returned as a diagnostic.
func FromSnapshot(snap storage.Snapshot, log *slog.Logger) (*Registry, []error) {
	if log == nil {
		log = slog.Default()
	}
	r := New()
	var dups []error

	for i := range snap.Courses {
		c := snap.Courses[i]
		if _, ok := r.FindCourse(c.Code); ok {
			err := fmt.Errorf("duplicate course code %q skipped", c.Code)
			log.Warn("skipping duplicate course", slog.String("code", c.Code))
			dups = append(dups, err)
			continue
		}
		r.AddCourse(c)
	}

	// Clone so the Registry does not share course-list backing arrays with
	// the snapshot the store handed us.
	for i := range snap.Students {
		s := snap.Students[i].Clone()
		if _, ok := r.FindStudent(s.ID); ok {
			err := fmt.Errorf("duplicate student id %d skipped", s.ID)
			log.Warn("skipping duplicate student", slog.Int("id", s.ID))
			dups = append(dups, err)
			continue
		}
		r.AddStudent(s)
	}

	return r, dups
}

// Snapshot copies the current state for saving. The copy is detached: a
// store may hold on to it while the session keeps mutating the Registry.
func (r *Registry) Snapshot() storage.Snapshot {
	snap := storage.Snapshot{
		Courses:  make([]types.Course, 0, len(r.courses)),
		Students: make([]types.Student, 0, len(r.students)),
	}
	for _, c := range r.courses {
		snap.Courses = append(snap.Courses, *c)
	}
	for _, s := range r.students {
		snap.Students = append(snap.Students, s.Clone())
	}
	return snap
}

// FindCourse returns the course with the given code.
func (r *Registry) FindCourse(code string) (*types.Course, bool) {
	c, ok := r.courseIdx[code]
	return c, ok
}

// FindStudent returns the student with the given id.
func (r *Registry) FindStudent(id int) (*types.Student, bool) {
	s, ok := r.studentIdx[id]
	return s, ok
}

// AddCourse appends a course. The caller checks that the code is new; if it
// is not, the index points at the newer record.
func (r *Registry) AddCourse(c types.Course) *types.Course {
	// c is already a copy (passed by value); taking its address moves it
	// to the heap and makes it the one shared record.
	p := &c
	r.courses = append(r.courses, p)
	r.courseIdx[c.Code] = p
	return p
}

// AddStudent appends a student. The caller checks that the id is new.
func (r *Registry) AddStudent(s types.Student) *types.Student {
	p := &s
	r.students = append(r.students, p)
	r.studentIdx[s.ID] = p
	return p
}

// Courses returns the catalog in insertion order. The slice is a fresh
// copy; the pointers in it are the live records.
func (r *Registry) Courses() []*types.Course {
	return append([]*types.Course(nil), r.courses...)
}

// Students returns all students in insertion order.
func (r *Registry) Students() []*types.Student {
	return append([]*types.Student(nil), r.students...)
}

// CourseCount returns the number of courses.
func (r *Registry) CourseCount() int { return len(r.courses) }

// StudentCount returns the number of students, administrators included.
func (r *Registry) StudentCount() int { return len(r.students) }
