package exam

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yacinedz/siyaqa/core"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPassed    Status = "passed"
	StatusFailed    Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusPassed, StatusFailed:
		return true
	}
	return false
}

type Exam struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Date      time.Time `json:"date"`
	Status    Status    `json:"status"`
	Score     *float64  `json:"score,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewExam contains information needed to schedule an exam.
type NewExam struct {
	CourseID string    `json:"course_id" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	Status   string    `json:"status" validate:"omitempty,oneof=scheduled passed failed"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.CourseID = core.CleanString(ne.CourseID)
	if ne.Status == "" {
		ne.Status = string(StatusScheduled)
	}
	return validate.Struct(ne)
}

// UpdateExam carries an exam result.
type UpdateExam struct {
	Status   string   `json:"status" validate:"required,oneof=scheduled passed failed"`
	Score    *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Feedback string   `json:"feedback"`
}

func (ue *UpdateExam) Validate(validate *validator.Validate) error {
	ue.Feedback = core.CleanString(ue.Feedback)
	return validate.Struct(ue)
}

type QueryFilter struct {
	CourseID  string `query:"course_id"`
	StudentID string `query:"student_id"`
	Status    string `query:"status"`
}
