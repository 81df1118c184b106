// Package session is the context every registrar operation runs in: it holds
// the registry, the store and the one identity that is logged in, if any.
//
// The active identity is kept as a student id and resolved through the
// registry on every use, never as a pointer into it.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/course-registrar/internal/enrollment"
	"github.com/aanand-mishra/course-registrar/internal/registry"
	"github.com/aanand-mishra/course-registrar/internal/storage"
	"github.com/aanand-mishra/course-registrar/internal/types"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrLoginFailed covers unknown id, wrong password and wrong role alike.
	ErrLoginFailed        = errors.New("login failed")
	// ErrNoUsers is for callers that check NeedsSetup before prompting.
	ErrNoUsers            = errors.New("no users registered")
	ErrDuplicateID        = errors.New("user id already registered")
	ErrDuplicateCourse    = errors.New("course code already exists")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrNotAdmin           = errors.New("administrator login required")
	ErrNotStudent         = errors.New("student login required")
	ErrAlreadyInitialized = errors.New("users already exist")
)

// Identity is who is logged in.
type Identity struct {
	StudentID int
	Name      string
	Admin     bool
}

// Session holds the registrar state for one process run.
type Session struct {
	reg      *registry.Registry
	engine   *enrollment.Engine
	store    storage.Storage
	validate *validator.Validate
	log      *slog.Logger

	active   Identity
	loggedIn bool
}

// New returns a Session over an already loaded registry. store is used by
// Save and by FirstRunSetup.
func New(reg *registry.Registry, store storage.Storage, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		reg:      reg,
		engine:   enrollment.New(reg, log),
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// Open loads the registry from store and returns a Session over it.
func Open(store storage.Storage, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	snap, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("session.Open: %w", err)
	}
	reg, _ := registry.FromSnapshot(snap, log)
	log.Info("registrar loaded",
		slog.Int("courses", reg.CourseCount()),
		slog.Int("students", reg.StudentCount()))
	return New(reg, store, log), nil
}

// Registry exposes the underlying records for listing.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Current returns the logged-in identity, if there is one.
func (s *Session) Current() (Identity, bool) {
	return s.active, s.loggedIn
}

// Logout clears the active identity.
func (s *Session) Logout() {
	if s.loggedIn {
		s.log.Info("logout", slog.Int("id", s.active.StudentID))
	}
	s.active = Identity{}
	s.loggedIn = false
}

// StudentLogin logs in a non-admin student.
func (s *Session) StudentLogin(id int, password string) (Identity, error) {
	return s.login(id, password, false)
}

// AdminLogin logs in an administrator. Like StudentLogin, every failure is
// ErrLoginFailed, including a registrar with no users at all; callers that
// want to tell the user to run first-run setup check NeedsSetup first.
func (s *Session) AdminLogin(id int, password string) (Identity, error) {
	return s.login(id, password, true)
}

func (s *Session) login(id int, password string, admin bool) (Identity, error) {
	st, ok := s.reg.FindStudent(id)
	if !ok || st.IsAdmin != admin || st.Password != password {
		s.log.Info("login failed", slog.Int("id", id), slog.Bool("admin", admin))
		return Identity{}, ErrLoginFailed
	}
	s.active = Identity{StudentID: st.ID, Name: st.Name, Admin: st.IsAdmin}
	s.loggedIn = true
	s.log.Info("login", slog.Int("id", id), slog.Bool("admin", admin))
	return s.active, nil
}

// Signup creates a non-admin student with no courses. It does not save.
// A taken id is reported as ErrDuplicateID before the other fields are
// looked at.
func (s *Session) Signup(id int, name, password string) error {
	if _, ok := s.reg.FindStudent(id); ok {
		return fmt.Errorf("signup %d: %w", id, ErrDuplicateID)
	}
	st := types.Student{ID: id, Name: name, Password: password}
	if err := s.validate.Struct(st); err != nil {
		return err
	}
	s.reg.AddStudent(st)
	s.log.Info("student signed up", slog.Int("id", id))
	return nil
}

// NeedsSetup reports whether no student exists yet.
func (s *Session) NeedsSetup() bool {
	return s.reg.StudentCount() == 0
}

// FirstRunSetup creates the first administrator and saves at once. It is
// only allowed while there are no students at all.
func (s *Session) FirstRunSetup(id int, name, password string) error {
	if !s.NeedsSetup() {
		return ErrAlreadyInitialized
	}
	admin := types.Student{ID: id, Name: name, Password: password, IsAdmin: true}
	if err := s.validate.Struct(admin); err != nil {
		return err
	}
	s.reg.AddStudent(admin)
	s.log.Info("administrator created", slog.Int("id", id))
	return s.Save()
}

// AddCourse adds an empty course to the catalog. Administrator only.
func (s *Session) AddCourse(code, name string, credits, capacity int) error {
	if _, err := s.requireRole(true); err != nil {
		return err
	}
	c := types.Course{Code: code, Name: name, Credits: credits, MaxCapacity: capacity}
	if err := s.validate.Struct(c); err != nil {
		return err
	}
	if _, ok := s.reg.FindCourse(code); ok {
		return fmt.Errorf("add course %s: %w", code, ErrDuplicateCourse)
	}
	s.reg.AddCourse(c)
	s.log.Info("course added", slog.String("code", code), slog.Int("capacity", capacity))
	return nil
}

// Register enrolls the logged-in student in code.
func (s *Session) Register(code string) (*types.Course, error) {
	st, err := s.requireRole(false)
	if err != nil {
		return nil, err
	}
	c, err := s.engine.Register(st.ID, code)
	if err != nil {
		return nil, err
	}
	s.log.Info("registered", slog.Int("id", st.ID), slog.String("code", code))
	return c, nil
}

// Drop removes the logged-in student from code.
func (s *Session) Drop(code string) (*types.Course, error) {
	st, err := s.requireRole(false)
	if err != nil {
		return nil, err
	}
	c, err := s.engine.Drop(st.ID, code)
	if err != nil {
		return nil, err
	}
	s.log.Info("dropped", slog.Int("id", st.ID), slog.String("code", code))
	return c, nil
}

// MyCourses lists the logged-in student's registrations.
func (s *Session) MyCourses() ([]enrollment.Registration, error) {
	st, err := s.requireRole(false)
	if err != nil {
		return nil, err
	}
	return s.engine.Registrations(st.ID)
}

// Save writes the registry to the store.
func (s *Session) Save() error {
	if err := s.store.Save(s.reg.Snapshot()); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	s.log.Info("registrar saved",
		slog.Int("courses", s.reg.CourseCount()),
		slog.Int("students", s.reg.StudentCount()))
	return nil
}

// requireRole resolves the active identity and checks its role.
func (s *Session) requireRole(admin bool) (*types.Student, error) {
	if !s.loggedIn {
		return nil, ErrNotLoggedIn
	}
	st, ok := s.reg.FindStudent(s.active.StudentID)
	if !ok {
		s.Logout()
		return nil, ErrNotLoggedIn
	}
	switch {
	case admin && !st.IsAdmin:
		return nil, ErrNotAdmin
	case !admin && st.IsAdmin:
		return nil, ErrNotStudent
	}
	return st, nil
}
