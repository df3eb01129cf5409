package teacher

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yacinedz/siyaqa/core"
)

// Teacher is a staff record linking a User to the DrivingSchool employing them.
type Teacher struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	DrivingSchoolID string            `json:"driving_school_id"`
	Gender          core.Gender       `json:"gender"`
	YearsExperience int               `json:"years_experience"`
	Specialization  []core.CourseType `json:"specialization"`
	Bio             string            `json:"bio"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"` // UTC
}

// Teaches reports whether the teacher covers the given course type.
func (t *Teacher) Teaches(ct core.CourseType) bool {
	for _, s := range t.Specialization {
		if s == ct {
			return true
		}
	}
	return false
}

// NewTeacher contains information needed to add a Teacher to a school's staff.
type NewTeacher struct {
	UserID          string   `json:"user_id" validate:"required"`
	DrivingSchoolID string   `json:"driving_school_id" validate:"required"`
	Gender          string   `json:"gender" validate:"required,gender"`
	YearsExperience int      `json:"years_experience" validate:"gte=0"`
	Specialization  []string `json:"specialization" validate:"required,min=1,dive,coursetype"`
	Bio             string   `json:"bio"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.UserID = core.CleanString(nt.UserID)
	nt.DrivingSchoolID = core.CleanString(nt.DrivingSchoolID)
	nt.Bio = core.CleanString(nt.Bio)
	return validate.Struct(nt)
}

func (nt *NewTeacher) specialization() []core.CourseType {
	types := make([]core.CourseType, 0, len(nt.Specialization))
	for _, s := range nt.Specialization {
		types = append(types, core.CourseType(s))
	}
	return types
}

type QueryFilter struct {
	DrivingSchoolID string `query:"driving_school_id"`
	Gender          string `query:"gender"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.DrivingSchoolID == "" && qf.Gender == ""
}
