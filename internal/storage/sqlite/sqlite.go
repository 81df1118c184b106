// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The registrar keeps its own in-memory registry, so the database is only a
// place to put a Snapshot: Save replaces every row inside one transaction and
// Load reads everything back in insertion order.
//
// Schema:
//
//	courses        code, name, credits, max_capacity, current_enrollment
//	students       id, name, password, is_admin
//	registrations  student_id, position, course_code
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/course-registrar/internal/storage"
	"github.com/aanand-mishra/course-registrar/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the database-backed implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path and creates the tables if they do
// not exist yet.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// seq keeps insertion order; codes and ids are not sorted on load.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS courses (
			seq                INTEGER PRIMARY KEY,
			code               TEXT    NOT NULL,
			name               TEXT    NOT NULL,
			credits            INTEGER NOT NULL,
			max_capacity       INTEGER NOT NULL,
			current_enrollment INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS students (
			seq      INTEGER PRIMARY KEY,
			id       INTEGER NOT NULL,
			name     TEXT    NOT NULL,
			password TEXT    NOT NULL,
			is_admin INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS registrations (
			student_seq INTEGER NOT NULL,
			position    INTEGER NOT NULL,
			course_code TEXT    NOT NULL,
			PRIMARY KEY (student_seq, position)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Load reads all courses and students. An empty database yields an empty
// snapshot.
func (s *SQLite) Load() (storage.Snapshot, error) {
	var snap storage.Snapshot

	rows, err := s.Db.Query(
		"SELECT code, name, credits, max_capacity, current_enrollment FROM courses ORDER BY seq",
	)
	if err != nil {
		return snap, fmt.Errorf("sqlite.Load: query courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c types.Course
		if err := rows.Scan(&c.Code, &c.Name, &c.Credits, &c.MaxCapacity, &c.CurrentEnrollment); err != nil {
			return snap, fmt.Errorf("sqlite.Load: scan course: %w", err)
		}
		snap.Courses = append(snap.Courses, c)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("sqlite.Load: courses iteration: %w", err)
	}

	students, err := s.loadStudents()
	if err != nil {
		return storage.Snapshot{}, err
	}
	snap.Students = students

	return snap, nil
}

func (s *SQLite) loadStudents() ([]types.Student, error) {
	rows, err := s.Db.Query("SELECT seq, id, name, password, is_admin FROM students ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("sqlite.Load: query students: %w", err)
	}
	defer rows.Close()

	var students []types.Student
	bySeq := make(map[int64]int)
	for rows.Next() {
		var (
			seq int64
			st  types.Student
		)
		if err := rows.Scan(&seq, &st.ID, &st.Name, &st.Password, &st.IsAdmin); err != nil {
			return nil, fmt.Errorf("sqlite.Load: scan student: %w", err)
		}
		bySeq[seq] = len(students)
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.Load: students iteration: %w", err)
	}

	regs, err := s.Db.Query(
		"SELECT student_seq, course_code FROM registrations ORDER BY student_seq, position",
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Load: query registrations: %w", err)
	}
	defer regs.Close()

	for regs.Next() {
		var (
			seq  int64
			code string
		)
		if err := regs.Scan(&seq, &code); err != nil {
			return nil, fmt.Errorf("sqlite.Load: scan registration: %w", err)
		}
		if i, ok := bySeq[seq]; ok {
			students[i].AddCourse(code)
		}
	}
	if err := regs.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.Load: registrations iteration: %w", err)
	}

	return students, nil
}

// Save replaces the stored state with snap in a single transaction.
func (s *SQLite) Save(snap storage.Snapshot) (err error) {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite.Save: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"registrations", "students", "courses"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("sqlite.Save: clear %s: %w", table, err)
		}
	}

	courseStmt, err := tx.Prepare(
		"INSERT INTO courses (seq, code, name, credits, max_capacity, current_enrollment) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("sqlite.Save: prepare courses: %w", err)
	}
	defer courseStmt.Close()

	for i, c := range snap.Courses {
		if _, err = courseStmt.Exec(i, c.Code, c.Name, c.Credits, c.MaxCapacity, c.CurrentEnrollment); err != nil {
			return fmt.Errorf("sqlite.Save: insert course %s: %w", c.Code, err)
		}
	}

	studentStmt, err := tx.Prepare(
		"INSERT INTO students (seq, id, name, password, is_admin) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("sqlite.Save: prepare students: %w", err)
	}
	defer studentStmt.Close()

	regStmt, err := tx.Prepare(
		"INSERT INTO registrations (student_seq, position, course_code) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("sqlite.Save: prepare registrations: %w", err)
	}
	defer regStmt.Close()

	for i, st := range snap.Students {
		if _, err = studentStmt.Exec(i, st.ID, st.Name, st.Password, st.IsAdmin); err != nil {
			return fmt.Errorf("sqlite.Save: insert student %d: %w", st.ID, err)
		}
		for pos, code := range st.RegisteredCourses {
			if _, err = regStmt.Exec(i, pos, code); err != nil {
				return fmt.Errorf("sqlite.Save: insert registration %d/%s: %w", st.ID, code, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite.Save: commit: %w", err)
	}
	return nil
}
