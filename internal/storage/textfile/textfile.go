// Package textfile stores the registrar in two plain text files, one record
// per line:
//
//	courses.txt   code,name,credits,maxCapacity,currentEnrollment
//	students.txt  id,name,password,isAdmin,code1|code2|...
//
// Loading is lenient. A missing file is an empty collection, blank lines are
// skipped, and a line that cannot be decoded is skipped and reported as a
// LineError while the rest of the file is still read.
package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aanand-mishra/course-registrar/internal/storage"
	"github.com/aanand-mishra/course-registrar/internal/types"
	"github.com/go-playground/validator/v10"
)

// LineError describes one skipped line.
type LineError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.File, e.Line, e.Err, e.Text)
}

func (e LineError) Unwrap() error { return e.Err }

// TextFile is the file-backed implementation of storage.Storage.
type TextFile struct {
	CoursesPath  string
	StudentsPath string

	log      *slog.Logger
	validate *validator.Validate
}

// New returns a store over the two given paths. Nothing is opened until Load
// or Save is called.
func New(coursesPath, studentsPath string, log *slog.Logger) *TextFile {
	if log == nil {
		log = slog.Default()
	}
	return &TextFile{
		CoursesPath:  coursesPath,
		StudentsPath: studentsPath,
		log:          log,
		validate:     validator.New(),
	}
}

// Load reads both files. Skipped lines are logged at WARN; they never make
// Load fail. Only real I/O errors do.
func (t *TextFile) Load() (storage.Snapshot, error) {
	snap, skipped, err := t.LoadReport()
	for _, le := range skipped {
		t.log.Warn("skipping malformed record",
			slog.String("file", le.File),
			slog.Int("line", le.Line),
			slog.String("record", le.Text),
			slog.String("error", le.Err.Error()))
	}
	return snap, err
}

// MaxLineLength is the longest record line, in bytes, that Load decodes.
// Longer lines are skipped and reported like any other malformed line.
const MaxLineLength = 64 * 1024

// ErrLineTooLong is the LineError cause for lines over MaxLineLength.
var ErrLineTooLong = errors.New("line too long")

// LoadReport is Load without logging: the skipped lines are returned.
func (t *TextFile) LoadReport() (storage.Snapshot, []LineError, error) {
	var snap storage.Snapshot

	courseSkips, err := decodeFile(t.CoursesPath, func(line string) error {
		c, err := types.ParseCourse(line)
		if err == nil {
			err = t.check(c)
		}
		if err != nil {
			return err
		}
		snap.Courses = append(snap.Courses, c)
		return nil
	})
	if err != nil {
		return storage.Snapshot{}, nil, fmt.Errorf("textfile.Load: courses: %w", err)
	}

	studentSkips, err := decodeFile(t.StudentsPath, func(line string) error {
		s, err := types.ParseStudent(line)
		if err != nil {
			return err
		}
		snap.Students = append(snap.Students, s)
		return nil
	})
	if err != nil {
		return storage.Snapshot{}, nil, fmt.Errorf("textfile.Load: students: %w", err)
	}

	return snap, append(courseSkips, studentSkips...), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// decodeFile feeds every non-empty line of path to decode and collects the
// lines it rejects. Over-long lines never reach decode; the LineError keeps
// only their first bytes so the diagnostic stays readable.
// ─────────────────────────────────────────────────────────────────────────────
func decodeFile(path string, decode func(line string) error) ([]LineError, error) {
	var skipped []LineError
	err := readLines(path, func(n int, line string) {
		if len(line) > MaxLineLength {
			skipped = append(skipped, LineError{File: path, Line: n, Text: line[:64] + "...", Err: ErrLineTooLong})
			return
		}
		if err := decode(line); err != nil {
			skipped = append(skipped, LineError{File: path, Line: n, Text: line, Err: err})
		}
	})
	return skipped, err
}

// check rejects decoded courses that have no code or break the seat
// invariant. Names are free text and may be empty.
func (t *TextFile) check(c types.Course) error {
	if err := t.validate.StructPartial(c, "Code", "Credits", "MaxCapacity", "CurrentEnrollment"); err != nil {
		return fmt.Errorf("%w: %v", types.ErrMalformedRecord, err)
	}
	return nil
}

// Save overwrites both files.
func (t *TextFile) Save(snap storage.Snapshot) error {
	if err := writeFile(t.CoursesPath, func(w io.Writer) error {
		return EncodeCourses(w, snap.Courses)
	}); err != nil {
		return fmt.Errorf("textfile.Save: courses: %w", err)
	}

	if err := writeFile(t.StudentsPath, func(w io.Writer) error {
		return EncodeStudents(w, snap.Students)
	}); err != nil {
		return fmt.Errorf("textfile.Save: students: %w", err)
	}

	t.log.Debug("registrar saved",
		slog.Int("courses", len(snap.Courses)),
		slog.Int("students", len(snap.Students)))
	return nil
}

// EncodeCourses writes one line per course.
func EncodeCourses(w io.Writer, courses []types.Course) error {
	for i := range courses {
		if _, err := fmt.Fprintln(w, courses[i].Encode()); err != nil {
			return err
		}
	}
	return nil
}

// EncodeStudents writes one line per student.
func EncodeStudents(w io.Writer, students []types.Student) error {
	for i := range students {
		if _, err := fmt.Fprintln(w, students[i].Encode()); err != nil {
			return err
		}
	}
	return nil
}

// readLines calls fn for every non-empty line of path, with its 1-based line
// number. A missing file yields no lines.
//
// bufio.Reader is used instead of bufio.Scanner: the Scanner gives up on the
// whole file at its token limit, while ReadString hands back lines of any
// length and lets the caller decide what to do with them.
func readLines(path string, fn func(n int, line string)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for n := 1; ; n++ {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if line != "" {
			fn(n, line)
		}
		if err != nil {
			return nil
		}
	}
}

// defaultFileMode is used for files that do not exist yet.
const defaultFileMode fs.FileMode = 0o644

// writeFile writes to a temporary sibling and renames it over path, so a
// failed save leaves the previous file intact. The new file keeps the
// permissions of the one it replaces (0644 for a first save); CreateTemp
// alone would leave it at 0600.
func writeFile(path string, fill func(w io.Writer) error) error {
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}

	bw := bufio.NewWriter(tmp)
	if err := fill(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
