// Package console is the interactive menu of the registrar. It only reads
// input, calls the session and prints the outcome; every rule lives in the
// session and enrollment packages.
//
// Input is read line by line. A non-numeric answer where a number is expected
// is reported and the menu is shown again. End of input behaves like
// "Save and Exit".
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aanand-mishra/course-registrar/internal/session"
	"github.com/aanand-mishra/course-registrar/internal/utils/response"
)

var errInvalidNumber = errors.New("invalid number")

// Console drives one Session from a text stream.
type Console struct {
	sess *session.Session
	in   *bufio.Reader
	out  io.Writer
}

// New returns a Console reading from in and writing to out.
func New(sess *session.Session, in io.Reader, out io.Writer) *Console {
	return &Console{sess: sess, in: bufio.NewReader(in), out: out}
}

// Run shows the main menu until the user chooses to exit or input ends, then
// saves. The returned error is the save error, if any.
func (c *Console) Run() error {
	reg := c.sess.Registry()
	c.printf("System initialized. Loaded %d courses and %d users.\n",
		reg.CourseCount(), reg.StudentCount())

	if c.sess.NeedsSetup() {
		if err := c.firstRunSetup(); errors.Is(err, io.EOF) {
			return c.saveAndExit()
		}
	}

	for {
		c.println("\n=======================================")
		c.println("  College Course Registration System")
		c.println("=======================================")
		c.println("1. Student Login")
		c.println("2. Student Signup")
		c.println("3. Administrator Login")
		c.println("4. Save and Exit")

		choice, err := c.readChoice()
		if errors.Is(err, io.EOF) {
			return c.saveAndExit()
		}
		if err != nil {
			continue
		}

		switch choice {
		case 1:
			err = c.studentLogin()
		case 2:
			err = c.studentSignup()
		case 3:
			err = c.adminLogin()
		case 4:
			return c.saveAndExit()
		default:
			c.println("** Invalid choice. Please try again. **")
		}
		if errors.Is(err, io.EOF) {
			return c.saveAndExit()
		}
	}
}

func (c *Console) saveAndExit() error {
	c.sess.Logout()
	if err := c.sess.Save(); err != nil {
		c.result(response.GeneralError(err))
		return err
	}
	c.println("All data saved. Exiting program. Goodbye!")
	return nil
}

func (c *Console) firstRunSetup() error {
	c.println("\n=======================================")
	c.println("FIRST-RUN SYSTEM SETUP")
	c.println("=======================================")
	c.println("No users found. Please create the initial Administrator account.")

	id, err := c.readID("Enter New Admin ID (e.g., 9999): ")
	if err != nil {
		return err
	}
	name, err := c.readLine("Enter Admin Full Name: ")
	if err != nil {
		return err
	}
	password, err := c.readLine("Enter Admin Password: ")
	if err != nil {
		return err
	}

	if err := c.sess.FirstRunSetup(id, name, password); err != nil {
		c.result(response.GeneralError(err))
		return nil
	}
	c.result(response.OK("Administrator account for %s (ID: %d) created successfully!", name, id))
	c.println("Please remember this ID and Password to log in as Admin.")
	return nil
}

func (c *Console) studentLogin() error {
	c.println("\n--- Student Login ---")
	id, err := c.readID("Enter Student ID: ")
	if err != nil {
		return ignoreInvalid(err)
	}
	password, err := c.readLine("Enter Password: ")
	if err != nil {
		return err
	}

	who, err := c.sess.StudentLogin(id, password)
	if err != nil {
		c.println("** Login failed. Invalid ID, Password, or account is an Admin account. **")
		return nil
	}
	c.printf("Welcome, %s!\n", who.Name)
	return c.studentMenu(who)
}

func (c *Console) studentSignup() error {
	c.println("\n--- Student Signup ---")
	id, err := c.readID("Enter New Student ID (4-digit recommended): ")
	if err != nil {
		return ignoreInvalid(err)
	}
	if _, taken := c.sess.Registry().FindStudent(id); taken {
		c.result(response.GeneralError(session.ErrDuplicateID))
		return nil
	}
	name, err := c.readLine("Enter Full Name: ")
	if err != nil {
		return err
	}
	password, err := c.readLine("Enter Password: ")
	if err != nil {
		return err
	}

	if err := c.sess.Signup(id, name, password); err != nil {
		c.result(response.GeneralError(err))
		return nil
	}
	c.result(response.OK("Student account created successfully! Remember to Save and Exit to keep it."))
	return nil
}

func (c *Console) adminLogin() error {
	if c.sess.NeedsSetup() {
		c.result(response.GeneralError(session.ErrNoUsers))
		return nil
	}

	c.println("\n--- Administrator Login ---")
	id, err := c.readID("Enter Admin ID: ")
	if err != nil {
		return ignoreInvalid(err)
	}
	password, err := c.readLine("Enter Password: ")
	if err != nil {
		return err
	}

	who, err := c.sess.AdminLogin(id, password)
	if err != nil {
		c.println("** Login failed. Invalid Admin ID or Password. **")
		return nil
	}
	c.printf("Admin login successful. Welcome, %s.\n", who.Name)
	return c.adminMenu(who)
}

// readChoice prompts for a menu number.
func (c *Console) readChoice() (int, error) {
	n, err := c.readInt("Enter choice: ")
	if errors.Is(err, errInvalidNumber) {
		c.println("** Invalid input. Please enter a number. **")
	}
	return n, err
}

// readID prompts for a user id.
func (c *Console) readID(prompt string) (int, error) {
	n, err := c.readInt(prompt)
	if errors.Is(err, errInvalidNumber) {
		c.println("** Invalid ID. **")
	}
	return n, err
}

func (c *Console) readInt(prompt string) (int, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

// readLine prompts and returns the next trimmed line, or io.EOF once input
// is exhausted. Answers of any length are returned whole; a final line
// without a newline still counts. A broken input stream ends the session
// the same way EOF does.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) result(r response.Response) {
	response.Write(c.out, r)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ignoreInvalid turns a bad number into "back to the menu" and keeps
// everything else.
func ignoreInvalid(err error) error {
	if errors.Is(err, errInvalidNumber) {
		return nil
	}
	return err
}
