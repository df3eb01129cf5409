package course

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

var (
	ErrNotFound       = errors.New("Course not found")
	ErrInvalidStudent = errors.New("Invalid student_id")
	ErrInvalidTeacher = errors.New("Invalid teacher_id")
	ErrInvalidSchool  = errors.New("Invalid driving_school_id")
	ErrGenderMismatch = errors.New("Teacher and student genders must match")
)

// enrollment prerequisite errors, keyed by course type
var (
	errAlreadyEnrolled = map[core.CourseType]error{
		core.CourseCode:    errors.New("Student already enrolled in a CODE course"),
		core.CourseParking: errors.New("Student already enrolled in a PARKING course"),
		core.CourseRoad:    errors.New("Student already enrolled in a ROAD course"),
	}
	errMissingPrereq = map[core.CourseType]error{
		core.CourseParking: errors.New("Student must complete CODE course before enrolling in PARKING course"),
		core.CourseRoad:    errors.New("Student must complete PARKING course before enrolling in ROAD course"),
	}
	prerequisite = map[core.CourseType]core.CourseType{
		core.CourseParking: core.CourseCode,
		core.CourseRoad:    core.CourseParking,
	}
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		// FilterCourses applies AND on available QueryFilter fields.
		FilterCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		UpdateCourseStatus(ctx context.Context, id string, status Status) (Course, error)
	}

	// PaymentRecorder records the pending payment created on enrollment.
	PaymentRecorder interface {
		RecordPending(ctx context.Context, courseID string, amount float64) error
	}

	ServiceInterface interface {
		Enroll(ctx context.Context, nc NewCourse) (Course, error)
		GetByID(ctx context.Context, id string) (Course, error)
		Filter(ctx context.Context, filter QueryFilter) ([]Course, error)
		// VisibleTo narrows the filter by the caller's role before querying:
		// students see their own courses, teachers the courses they teach,
		// managers their school's.
		VisibleTo(ctx context.Context, usr user.User, filter QueryFilter) ([]Course, error)
		SetStatus(ctx context.Context, id string, status Status) (Course, error)
	}

	service struct {
		repo     Repository
		users    user.Repository
		teachers teacher.Repository
		schools  school.Repository
		payments PaymentRecorder
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(
	repo Repository,
	users user.Repository,
	teachers teacher.Repository,
	schools school.Repository,
	payments PaymentRecorder,
) ServiceInterface {
	return &service{repo: repo, users: users, teachers: teachers, schools: schools, payments: payments}
}

// Enroll registers a student on a course, enforcing the curriculum:
// code requires nothing, parking requires a completed code course, road a
// completed parking course; at most one non-failed enrollment per type.
// The teacher's and student's genders must match. A pending payment for the
// school's price of the course type is recorded.
func (svc *service) Enroll(ctx context.Context, nc NewCourse) (Course, error) {
	student, err := svc.users.GetUserByID(ctx, nc.StudentID)
	if err != nil || !student.IsStudent() {
		return Course{}, ErrInvalidStudent
	}

	tchr, err := svc.teachers.GetTeacherByID(ctx, nc.TeacherID)
	if err != nil {
		return Course{}, ErrInvalidTeacher
	}

	sch, err := svc.schools.GetSchoolByID(ctx, nc.DrivingSchoolID)
	if err != nil {
		return Course{}, ErrInvalidSchool
	}

	teacherUser, err := svc.users.GetUserByID(ctx, tchr.UserID)
	if err != nil {
		return Course{}, errors.Wrap(err, "finding teacher user")
	}
	if teacherUser.Gender != student.Gender {
		return Course{}, ErrGenderMismatch
	}

	courseType := core.CourseType(nc.Type)
	if err = svc.checkPrerequisites(ctx, nc.StudentID, courseType); err != nil {
		return Course{}, err
	}

	c := Course{
		ID:              uuid.NewString(),
		Type:            courseType,
		StudentID:       nc.StudentID,
		TeacherID:       nc.TeacherID,
		DrivingSchoolID: nc.DrivingSchoolID,
		Status:          StatusNotStarted,
		CreatedAt:       time.Now().UTC(),
	}
	if courseType == core.CourseCode {
		c.GoogleMeetLink = "https://meet.google.com/" + randomToken(12)
	}

	c, err = svc.repo.CreateCourse(ctx, c)
	if err != nil {
		return Course{}, err
	}

	if err = svc.payments.RecordPending(ctx, c.ID, sch.Price(courseType)); err != nil {
		return Course{}, errors.Wrap(err, "recording pending payment")
	}
	return c, nil
}

func (svc *service) checkPrerequisites(ctx context.Context, studentID string, t core.CourseType) error {
	if prereq, ok := prerequisite[t]; ok {
		completed, err := svc.studentHas(ctx, studentID, prereq, func(c Course) bool {
			return c.Status == StatusCompleted
		})
		if err != nil {
			return err
		}
		if !completed {
			return errMissingPrereq[t]
		}
	}

	enrolled, err := svc.studentHas(ctx, studentID, t, func(c Course) bool {
		return c.Status != StatusFailed
	})
	if err != nil {
		return err
	}
	if enrolled {
		return errAlreadyEnrolled[t]
	}
	return nil
}

func (svc *service) studentHas(ctx context.Context, studentID string, t core.CourseType, match func(Course) bool) (bool, error) {
	courses, err := svc.repo.FilterCourses(ctx, QueryFilter{StudentID: studentID, Type: string(t)})
	if err != nil {
		return false, errors.Wrap(err, "querying student courses")
	}
	for _, c := range courses {
		if match(c) {
			return true, nil
		}
	}
	return false, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter) ([]Course, error) {
	return svc.repo.FilterCourses(ctx, filter)
}

func (svc *service) VisibleTo(ctx context.Context, usr user.User, filter QueryFilter) ([]Course, error) {
	switch usr.Role {
	case user.RoleStudent:
		filter.StudentID = usr.ID
	case user.RoleTeacher:
		if tchr, err := svc.teachers.GetTeacherByUserID(ctx, usr.ID); err == nil {
			filter.TeacherID = tchr.ID
		}
	case user.RoleManager:
		if sch, err := svc.schools.GetSchoolByManagerID(ctx, usr.ID); err == nil {
			filter.DrivingSchoolID = sch.ID
		}
	case user.RoleAdmin:
		// admins see everything
	}
	return svc.repo.FilterCourses(ctx, filter)
}

func (svc *service) SetStatus(ctx context.Context, id string, status Status) (Course, error) {
	return svc.repo.UpdateCourseStatus(ctx, id, status)
}

// IsEnrollmentError reports whether err is one of the prerequisite or
// duplicate-enrollment errors returned by Enroll.
func IsEnrollmentError(err error) bool {
	for _, m := range []map[core.CourseType]error{errAlreadyEnrolled, errMissingPrereq} {
		for _, e := range m {
			if err == e {
				return true
			}
		}
	}
	return false
}

func randomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
