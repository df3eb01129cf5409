package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yacinedz/siyaqa/core"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Course is a student's enrollment in one stage of the curriculum at a school.
type Course struct {
	ID              string          `json:"id"`
	Type            core.CourseType `json:"type"`
	StudentID       string          `json:"student_id"`
	TeacherID       string          `json:"teacher_id"`
	DrivingSchoolID string          `json:"driving_school_id"`
	Status          Status          `json:"status"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	CompletionDate  *time.Time      `json:"completion_date,omitempty"`
	GoogleMeetLink  string          `json:"google_meet_link,omitempty"` // code courses only
	CreatedAt       time.Time       `json:"created_at"`                 // UTC
}

// NewCourse contains information needed to enroll a student.
type NewCourse struct {
	Type            string `json:"type" validate:"required,coursetype"`
	StudentID       string `json:"student_id" validate:"required"`
	TeacherID       string `json:"teacher_id" validate:"required"`
	DrivingSchoolID string `json:"driving_school_id" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.StudentID = core.CleanString(nc.StudentID)
	nc.TeacherID = core.CleanString(nc.TeacherID)
	nc.DrivingSchoolID = core.CleanString(nc.DrivingSchoolID)
	return validate.Struct(nc)
}

type QueryFilter struct {
	StudentID       string `query:"student_id"`
	TeacherID       string `query:"teacher_id"`
	DrivingSchoolID string `query:"driving_school_id"`
	Type            string `query:"type"`
	Status          string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.StudentID == "" && qf.TeacherID == "" && qf.DrivingSchoolID == "" && qf.Type == "" && qf.Status == ""
}
