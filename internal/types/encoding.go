// This file holds the line format the text-file store reads and writes.
//
// THE LINE FORMAT
// ───────────────
// One record per line, fields separated by commas. There is no quoting
// and no escaping:
//
//	courses.txt   CS101,Intro to CS,3,30,12
//	              code,name,credits,maxCapacity,currentEnrollment
//
//	students.txt  1001,Ann Lee,pw,0,CS101|MA201
//	              id,name,password,isAdmin,courseList
//
// isAdmin is "1" or "0". The course list is the student's registered codes
// joined with "|" in registration order; it is an empty field for a
// student with no courses, so the line then ends in a comma.
//
// SPLITTING RULES
// ───────────────
// Splitting follows a reader that pulls one field at a time up to the next
// delimiter:
//
//	"a,b,"   -> ["a" "b"]       one trailing empty field is not a field
//	"a,,b"   -> ["a" "" "b"]    empty fields in the middle are kept
//	""       -> []              an empty line has no fields
//
// That is why "9999,Root,x,1," parses as four fields and still counts as a
// valid student with no courses.

package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Delimiters of the line format. Free-text fields are written as-is, so a
// name or password containing either character will not survive a round trip.
const (
	FieldSeparator  = ","
	CourseSeparator = "|"
)

// Field positions and counts. A course line has exactly five fields; a
// student line has at least four and reads its course list from the fifth.
const (
	courseFieldCount   = 5
	studentFieldsMin   = 4
	adminFlagTrue      = "1"
	adminFlagFalse     = "0"
	studentCoursesSlot = 4
)

// ErrMalformedRecord is returned by the Parse functions for lines that do not
// have the expected shape or whose numeric fields do not parse.
var ErrMalformedRecord = errors.New("malformed record")

// Encode renders the course as
//
//	code,name,credits,maxCapacity,currentEnrollment
func (c *Course) Encode() string {
	return strings.Join([]string{
		c.Code,
		c.Name,
		strconv.Itoa(c.Credits),
		strconv.Itoa(c.MaxCapacity),
		strconv.Itoa(c.CurrentEnrollment),
	}, FieldSeparator)
}

// Encode renders the student as
//
//	id,name,password,isAdmin,code1|code2|...
//
// The course field is always written, empty when the student has no courses.
func (s *Student) Encode() string {
	flag := adminFlagFalse
	if s.IsAdmin {
		flag = adminFlagTrue
	}
	return strings.Join([]string{
		strconv.Itoa(s.ID),
		s.Name,
		s.Password,
		flag,
		strings.Join(s.RegisteredCourses, CourseSeparator),
	}, FieldSeparator)
}

// ParseCourse decodes one course line. The line must split into exactly five
// fields.
func ParseCourse(line string) (Course, error) {
	parts := splitFields(line, FieldSeparator)
	if len(parts) != courseFieldCount {
		return Course{}, fmt.Errorf("%w: course needs %d fields, got %d",
			ErrMalformedRecord, courseFieldCount, len(parts))
	}

	// credits, maxCapacity and currentEnrollment are the three numeric
	// fields at the end; any one of them failing rejects the whole line.
	nums := make([]int, 3)
	for i, raw := range parts[2:] {
		n, err := parseInt(raw)
		if err != nil {
			return Course{}, err
		}
		nums[i] = n
	}

	return Course{
		Code:              parts[0],
		Name:              parts[1],
		Credits:           nums[0],
		MaxCapacity:       nums[1],
		CurrentEnrollment: nums[2],
	}, nil
}

// ParseStudent decodes one student line. At least four fields are required;
// a fifth holds the pipe-separated course list. Empty course codes are
// dropped and fields past the fifth are ignored.
func ParseStudent(line string) (Student, error) {
	parts := splitFields(line, FieldSeparator)
	if len(parts) < studentFieldsMin {
		return Student{}, fmt.Errorf("%w: student needs at least %d fields, got %d",
			ErrMalformedRecord, studentFieldsMin, len(parts))
	}

	id, err := parseInt(parts[0])
	if err != nil {
		return Student{}, err
	}

	s := Student{
		ID:       id,
		Name:     parts[1],
		Password: parts[2],
		IsAdmin:  parts[3] == adminFlagTrue,
	}

	// codes are kept as written, in file order; "CS101||MA201" loses only
	// the empty slot
	if len(parts) > studentCoursesSlot {
		for _, code := range strings.Split(parts[studentCoursesSlot], CourseSeparator) {
			if code != "" {
				s.AddCourse(code)
			}
		}
	}

	return s, nil
}

// splitFields splits like a delimiter-driven line reader: a single trailing
// empty segment is not a field, and an empty line has no fields at all.
func splitFields(line, sep string) []string {
	parts := strings.Split(line, sep)
	if n := len(parts); parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

// parseInt accepts surrounding spaces, as a stream extractor would, and
// wraps every failure in ErrMalformedRecord so callers only check one error.
func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedRecord, raw)
	}
	return n, nil
}
