package console

import (
	"errors"
	"io"

	"github.com/aanand-mishra/course-registrar/internal/session"
	"github.com/aanand-mishra/course-registrar/internal/utils/response"
)

func (c *Console) studentMenu(who session.Identity) error {
	defer c.sess.Logout()

	for {
		c.printf("\n*** Student Menu (%s) ***\n", who.Name)
		c.println("1. View All Available Courses")
		c.println("2. Register for a Course")
		c.println("3. Drop a Course")
		c.println("4. View My Registered Courses")
		c.println("5. Logout")

		choice, err := c.readChoice()
		if errors.Is(err, io.EOF) {
			return err
		}
		if err != nil {
			continue
		}

		switch choice {
		case 1:
			c.println("\n--- All Available Courses ---")
			c.listCourses()
		case 2:
			err = c.registerCourse()
		case 3:
			err = c.dropCourse()
		case 4:
			c.myCourses()
		case 5:
			c.println("Logging out.")
			return nil
		default:
			c.println("** Invalid choice. Please try again. **")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) registerCourse() error {
	c.println("\n--- Course Registration ---")
	code, err := c.readLine("Enter Course Code to Register: ")
	if err != nil {
		return err
	}
	course, err := c.sess.Register(code)
	if err != nil {
		c.result(response.GeneralError(err))
		return nil
	}
	c.result(response.OK("Successfully registered for %s", course.Name))
	return nil
}

func (c *Console) dropCourse() error {
	c.println("\n--- Drop Course ---")
	code, err := c.readLine("Enter Course Code to Drop: ")
	if err != nil {
		return err
	}
	course, err := c.sess.Drop(code)
	if err != nil {
		c.result(response.GeneralError(err))
		return nil
	}
	c.result(response.OK("Successfully dropped %s", course.Name))
	return nil
}

func (c *Console) myCourses() {
	c.println("\n--- Your Registered Courses ---")
	regs, err := c.sess.MyCourses()
	if err != nil {
		c.result(response.GeneralError(err))
		return
	}
	if len(regs) == 0 {
		c.println("You are not currently registered for any courses.")
		return
	}
	for _, r := range regs {
		if r.Course == nil {
			c.println(response.DanglingCourse(r.Code))
			continue
		}
		c.println(response.Course(r.Course))
	}
}

func (c *Console) listCourses() {
	courses := c.sess.Registry().Courses()
	if len(courses) == 0 {
		c.println("No courses defined in the system.")
		return
	}
	for _, course := range courses {
		c.println(response.Course(course))
	}
}

func (c *Console) adminMenu(who session.Identity) error {
	defer c.sess.Logout()

	for {
		c.printf("\n*** Administrator Menu (%s) ***\n", who.Name)
		c.println("1. Add New Course")
		c.println("2. View All Courses")
		c.println("3. View All Students (Data Check)")
		c.println("4. Logout")

		choice, err := c.readChoice()
		if errors.Is(err, io.EOF) {
			return err
		}
		if err != nil {
			continue
		}

		switch choice {
		case 1:
			err = c.addCourse()
		case 2:
			c.println("\n--- All Courses in System ---")
			c.listCourses()
		case 3:
			c.println("\n--- All Students in System ---")
			for _, s := range c.sess.Registry().Students() {
				c.println(response.Student(s))
			}
		case 4:
			c.println("Logging out of Admin.")
			return nil
		default:
			c.println("** Invalid choice. Please try again. **")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) addCourse() error {
	c.println("\n--- Add New Course ---")
	code, err := c.readLine("Enter Course Code (e.g., CS101): ")
	if err != nil {
		return err
	}
	if _, exists := c.sess.Registry().FindCourse(code); exists {
		c.result(response.GeneralError(session.ErrDuplicateCourse))
		return nil
	}
	name, err := c.readLine("Enter Course Name: ")
	if err != nil {
		return err
	}

	nums := make([]int, 2)
	for i, prompt := range []string{"Enter Credits: ", "Enter Max Capacity: "} {
		n, err := c.readInt(prompt)
		if errors.Is(err, errInvalidNumber) {
			c.println("** Invalid input. **")
			return nil
		}
		if err != nil {
			return err
		}
		nums[i] = n
	}

	if err := c.sess.AddCourse(code, name, nums[0], nums[1]); err != nil {
		c.result(response.GeneralError(err))
		return nil
	}
	c.result(response.OK("Course %s added successfully!", code))
	return nil
}
