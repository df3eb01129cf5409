package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

// Teacher capacity limits. A code session is a group lecture; parking and
// road are one-on-one in-car lessons with a daily cap.
const (
	maxCodePerSlot   = 20
	maxParkingPerDay = 3
	maxRoadPerDay    = 3
)

var (
	ErrInvalidCourse   = errors.New("Invalid course_id")
	ErrTeacherNotFound = errors.New("Teacher not found for this course")
	ErrNotOwnCourse    = errors.New("Teachers can only create schedules for their own courses")
	ErrSlotFullCode    = errors.New("Teacher already has the maximum number of CODE students scheduled for this time")
	ErrSlotTaken       = errors.New("Teacher already has a student scheduled for this time")
	ErrDayFullParking  = errors.New("Teacher already has the maximum number of PARKING students scheduled for this day")
	ErrDayFullRoad     = errors.New("Teacher already has the maximum number of ROAD students scheduled for this day")
)

type (
	// RangeFilter selects schedules for a set of courses within [From, To).
	RangeFilter struct {
		CourseIDs []string
		From      time.Time
		To        time.Time
	}

	Repository interface {
		CreateSchedule(ctx context.Context, s Schedule) (Schedule, error)
		// FilterSchedules applies AND on the set fields of the filter.
		FilterSchedules(ctx context.Context, filter RangeFilter) ([]Schedule, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, usr user.User, ns NewSchedule) (Schedule, error)
		VisibleTo(ctx context.Context, usr user.User, filter QueryFilter) ([]Schedule, error)
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

// Create books a lesson, enforcing teacher capacity: up to 20 code students
// per hour slot, a single parking/road student per slot, and at most 3
// parking and 3 road lessons per teacher per day.
func (svc *service) Create(ctx context.Context, usr user.User, ns NewSchedule) (Schedule, error) {
	c, err := svc.courses.GetByID(ctx, ns.CourseID)
	if err != nil {
		return Schedule{}, ErrInvalidCourse
	}
	if _, err = svc.teachers.GetTeacherByID(ctx, c.TeacherID); err != nil {
		return Schedule{}, ErrTeacherNotFound
	}

	if usr.IsTeacher() {
		tchr, err := svc.teachers.GetTeacherByUserID(ctx, usr.ID)
		if err != nil || tchr.ID != c.TeacherID {
			return Schedule{}, ErrNotOwnCourse
		}
	}

	if err = svc.checkCapacity(ctx, c, ns); err != nil {
		return Schedule{}, err
	}

	s := Schedule{
		ID:              uuid.NewString(),
		CourseID:        ns.CourseID,
		Date:            ns.Date,
		DurationMinutes: ns.DurationMinutes,
		CreatedAt:       time.Now().UTC(),
	}
	return svc.repo.CreateSchedule(ctx, s)
}

func (svc *service) checkCapacity(ctx context.Context, c course.Course, ns NewSchedule) error {
	teacherCourses, err := svc.courses.Filter(ctx, course.QueryFilter{TeacherID: c.TeacherID})
	if err != nil {
		return errors.Wrap(err, "querying teacher courses")
	}
	if len(teacherCourses) == 0 {
		return nil
	}
	courseIDs := make([]string, 0, len(teacherCourses))
	typeByCourse := make(map[string]core.CourseType, len(teacherCourses))
	for _, tc := range teacherCourses {
		courseIDs = append(courseIDs, tc.ID)
		typeByCourse[tc.ID] = tc.Type
	}

	slotStart := ns.Date.Truncate(time.Hour)
	slotEnd := slotStart.Add(time.Duration(ns.DurationMinutes) * time.Minute)

	slot, err := svc.repo.FilterSchedules(ctx, RangeFilter{CourseIDs: courseIDs, From: slotStart, To: slotEnd})
	if err != nil {
		return errors.Wrap(err, "querying slot schedules")
	}

	if c.Type == core.CourseCode {
		if len(slot) >= maxCodePerSlot {
			return ErrSlotFullCode
		}
		return nil
	}

	if len(slot) > 0 {
		return ErrSlotTaken
	}

	dayStart := time.Date(slotStart.Year(), slotStart.Month(), slotStart.Day(), 0, 0, 0, 0, slotStart.Location())
	day, err := svc.repo.FilterSchedules(ctx, RangeFilter{CourseIDs: courseIDs, From: dayStart, To: dayStart.AddDate(0, 0, 1)})
	if err != nil {
		return errors.Wrap(err, "querying day schedules")
	}

	counts := make(map[core.CourseType]int, 2)
	for _, ds := range day {
		counts[typeByCourse[ds.CourseID]]++
	}
	if c.Type == core.CourseParking && counts[core.CourseParking] >= maxParkingPerDay {
		return ErrDayFullParking
	}
	if c.Type == core.CourseRoad && counts[core.CourseRoad] >= maxRoadPerDay {
		return ErrDayFullRoad
	}
	return nil
}

func (svc *service) VisibleTo(ctx context.Context, usr user.User, filter QueryFilter) ([]Schedule, error) {
	courseFilter := course.QueryFilter{StudentID: filter.StudentID, TeacherID: filter.TeacherID}

	var courseIDs []string
	if !usr.IsAdmin() || courseFilter.StudentID != "" || courseFilter.TeacherID != "" {
		courses, err := svc.courses.VisibleTo(ctx, usr, courseFilter)
		if err != nil {
			return nil, errors.Wrap(err, "narrowing courses")
		}
		if len(courses) == 0 {
			return []Schedule{}, nil
		}
		courseIDs = make([]string, 0, len(courses))
		for _, c := range courses {
			courseIDs = append(courseIDs, c.ID)
		}
	}
	if filter.CourseID != "" {
		courseIDs = intersect(courseIDs, filter.CourseID)
		if len(courseIDs) == 0 {
			return []Schedule{}, nil
		}
	}

	return svc.repo.FilterSchedules(ctx, RangeFilter{CourseIDs: courseIDs, From: filter.StartDate, To: filter.EndDate})
}

// intersect narrows ids to the single requested course id. An empty ids
// slice means "no narrowing yet".
func intersect(ids []string, courseID string) []string {
	if len(ids) == 0 {
		return []string{courseID}
	}
	for _, id := range ids {
		if id == courseID {
			return []string{courseID}
		}
	}
	return nil
}
