package views

import (
	"context"

	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/client"
	"github.com/yacinedz/siyaqa/client/session"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/exam"
	"github.com/yacinedz/siyaqa/core/payment"
	"github.com/yacinedz/siyaqa/core/schedule"
	"github.com/yacinedz/siyaqa/core/user"
)

// StudentDashboard shows a student their own progress: enrollments, booked
// lessons, exam results and outstanding payments.
type StudentDashboard struct {
	api *client.Client

	Profile   user.User
	Courses   []course.Course
	Schedules []schedule.Schedule
	Exams     []exam.Exam
	Payments  []payment.Payment
}

func NewStudentDashboard(api *client.Client) *StudentDashboard {
	return &StudentDashboard{api: api}
}

func (d *StudentDashboard) Load(ctx context.Context) error {
	sess, state := d.api.Session().Hydrate()
	if state != session.StateValid {
		return errors.New("not logged in")
	}

	usr, err := d.api.Me(ctx)
	if err != nil {
		return err
	}
	d.Profile = usr

	if d.Courses, err = d.api.Courses(ctx, course.QueryFilter{StudentID: sess.UserID}); err != nil {
		return err
	}
	if d.Schedules, err = d.api.Schedules(ctx, schedule.QueryFilter{StudentID: sess.UserID}); err != nil {
		return err
	}
	if d.Exams, err = d.api.Exams(ctx, exam.QueryFilter{StudentID: sess.UserID}); err != nil {
		return err
	}
	if d.Payments, err = d.api.Payments(ctx, payment.QueryFilter{StudentID: sess.UserID}); err != nil {
		return err
	}
	return nil
}

// PendingPayments returns the payments still owed.
func (d *StudentDashboard) PendingPayments() []payment.Payment {
	var pending []payment.Payment
	for _, p := range d.Payments {
		if p.Status == payment.StatusPending {
			pending = append(pending, p)
		}
	}
	return pending
}

// NextCourseType returns the stage the student can enroll in next, or ""
// when the curriculum is complete.
func (d *StudentDashboard) NextCourseType() string {
	byType := make(map[string]course.Status, len(d.Courses))
	for _, crs := range d.Courses {
		byType[string(crs.Type)] = crs.Status
	}
	for _, t := range []string{"code", "parking", "road"} {
		status, ok := byType[t]
		if !ok || status == course.StatusFailed {
			return t
		}
		if status != course.StatusCompleted {
			return "" // stage still in progress
		}
	}
	return ""
}

// TeacherDashboard shows a teacher the courses assigned to them and the
// upcoming lessons and exams for those courses.
type TeacherDashboard struct {
	api *client.Client

	Profile   user.User
	Courses   []course.Course
	Schedules []schedule.Schedule
	Exams     []exam.Exam
}

func NewTeacherDashboard(api *client.Client) *TeacherDashboard {
	return &TeacherDashboard{api: api}
}

func (d *TeacherDashboard) Load(ctx context.Context) error {
	sess, state := d.api.Session().Hydrate()
	if state != session.StateValid {
		return errors.New("not logged in")
	}

	usr, err := d.api.Me(ctx)
	if err != nil {
		return err
	}
	d.Profile = usr

	if d.Courses, err = d.api.Courses(ctx, course.QueryFilter{TeacherID: sess.UserID}); err != nil {
		return err
	}
	if d.Schedules, err = d.api.Schedules(ctx, schedule.QueryFilter{TeacherID: sess.UserID}); err != nil {
		return err
	}
	if d.Exams, err = d.api.Exams(ctx, exam.QueryFilter{}); err != nil {
		return err
	}
	return nil
}

// ActiveCourses returns the teacher's courses currently in progress.
func (d *TeacherDashboard) ActiveCourses() []course.Course {
	var active []course.Course
	for _, crs := range d.Courses {
		if crs.Status == course.StatusInProgress || crs.Status == course.StatusNotStarted {
			active = append(active, crs)
		}
	}
	return active
}
