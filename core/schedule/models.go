package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yacinedz/siyaqa/core"
)

// Schedule books a lesson slot for a course.
type Schedule struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"course_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"` // UTC
}

// NewSchedule contains information needed to book a lesson.
type NewSchedule struct {
	CourseID        string    `json:"course_id" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,gt=0"`
}

func (ns *NewSchedule) Validate(validate *validator.Validate) error {
	ns.CourseID = core.CleanString(ns.CourseID)
	if ns.DurationMinutes == 0 {
		ns.DurationMinutes = 60
	}
	return validate.Struct(ns)
}

type QueryFilter struct {
	CourseID  string    `query:"course_id"`
	StudentID string    `query:"student_id"`
	TeacherID string    `query:"teacher_id"`
	StartDate time.Time `query:"start_date"`
	EndDate   time.Time `query:"end_date"`
}
