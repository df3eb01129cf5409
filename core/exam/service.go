package exam

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

var (
	ErrNotFound       = errors.New("Exam not found")
	ErrInvalidCourse  = errors.New("Invalid course_id")
	ErrCourseNotFound = errors.New("Course not found")
	ErrNotOwnCourse   = errors.New("Teachers can only manage exams for their own courses")
)

type (
	Repository interface {
		CreateExam(ctx context.Context, e Exam) (Exam, error)
		GetExamByID(ctx context.Context, id string) (Exam, error)
		// FilterExams applies AND on CourseID/Status; StudentID is resolved
		// through courses by the service.
		FilterExams(ctx context.Context, filter QueryFilter) ([]Exam, error)
		UpdateExam(ctx context.Context, e Exam) (Exam, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, usr user.User, ne NewExam) (Exam, error)
		Update(ctx context.Context, usr user.User, id string, ue UpdateExam) (Exam, error)
		VisibleTo(ctx context.Context, usr user.User, filter QueryFilter) ([]Exam, error)
	}

	service struct {
		repo     Repository
		courses  course.ServiceInterface
		teachers teacher.Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, courses course.ServiceInterface, teachers teacher.Repository) ServiceInterface {
	return &service{repo: repo, courses: courses, teachers: teachers}
}

// Create schedules an exam for a course. Teachers may only schedule exams
// for courses they teach.
func (svc *service) Create(ctx context.Context, usr user.User, ne NewExam) (Exam, error) {
	c, err := svc.courses.GetByID(ctx, ne.CourseID)
	if err != nil {
		return Exam{}, ErrInvalidCourse
	}
	if err = svc.checkTeacherOwns(ctx, usr, c); err != nil {
		return Exam{}, err
	}

	e := Exam{
		ID:        uuid.NewString(),
		CourseID:  ne.CourseID,
		Date:      ne.Date,
		Status:    Status(ne.Status),
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateExam(ctx, e)
}

// Update records an exam result. A passed exam completes the course, a
// failed one fails it.
func (svc *service) Update(ctx context.Context, usr user.User, id string, ue UpdateExam) (Exam, error) {
	e, err := svc.repo.GetExamByID(ctx, id)
	if err != nil {
		return Exam{}, err
	}
	c, err := svc.courses.GetByID(ctx, e.CourseID)
	if err != nil {
		return Exam{}, ErrCourseNotFound
	}
	if err = svc.checkTeacherOwns(ctx, usr, c); err != nil {
		return Exam{}, err
	}

	e.Status = Status(ue.Status)
	if ue.Score != nil {
		e.Score = ue.Score
	}
	if ue.Feedback != "" {
		e.Feedback = ue.Feedback
	}
	e, err = svc.repo.UpdateExam(ctx, e)
	if err != nil {
		return Exam{}, err
	}

	switch e.Status {
	case StatusPassed:
		_, err = svc.courses.SetStatus(ctx, c.ID, course.StatusCompleted)
	case StatusFailed:
		_, err = svc.courses.SetStatus(ctx, c.ID, course.StatusFailed)
	}
	if err != nil {
		return Exam{}, errors.Wrap(err, "propagating exam result to course")
	}
	return e, nil
}

func (svc *service) checkTeacherOwns(ctx context.Context, usr user.User, c course.Course) error {
	if !usr.IsTeacher() {
		return nil
	}
	tchr, err := svc.teachers.GetTeacherByUserID(ctx, usr.ID)
	if err != nil || tchr.ID != c.TeacherID {
		return ErrNotOwnCourse
	}
	return nil
}

func (svc *service) VisibleTo(ctx context.Context, usr user.User, filter QueryFilter) ([]Exam, error) {
	exams, err := svc.repo.FilterExams(ctx, QueryFilter{CourseID: filter.CourseID, Status: filter.Status})
	if err != nil {
		return nil, err
	}
	if usr.IsAdmin() && filter.StudentID == "" {
		return exams, nil
	}

	courses, err := svc.courses.VisibleTo(ctx, usr, course.QueryFilter{StudentID: filter.StudentID})
	if err != nil {
		return nil, errors.Wrap(err, "narrowing courses")
	}
	visible := make(map[string]bool, len(courses))
	for _, c := range courses {
		visible[c.ID] = true
	}

	kept := exams[:0]
	for _, e := range exams {
		if visible[e.CourseID] {
			kept = append(kept, e)
		}
	}
	return kept, nil
}
