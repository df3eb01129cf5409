package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yacinedz/siyaqa/core"
)

// DrivingSchool is the tenant entity managers register and configure;
// it owns teachers, cars and course offerings.
type DrivingSchool struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	State             string    `json:"state"`
	City              string    `json:"city"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	LicenseNumber     string    `json:"license_number"`
	PriceCode         float64   `json:"price_code"`
	PriceParking      float64   `json:"price_parking"`
	PriceRoad         float64   `json:"price_road"`
	HasFemaleTeachers bool      `json:"has_female_teachers"`
	HasMaleTeachers   bool      `json:"has_male_teachers"`
	Rating            float64   `json:"rating"`
	TotalRatings      int       `json:"total_ratings"`
	ManagerID         string    `json:"manager_id"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"` // UTC
}

// Price returns the school's price for a course type.
func (s *DrivingSchool) Price(t core.CourseType) float64 {
	switch t {
	case core.CourseCode:
		return s.PriceCode
	case core.CourseParking:
		return s.PriceParking
	case core.CourseRoad:
		return s.PriceRoad
	}
	return 0
}

// NewSchool contains information needed to register a new DrivingSchool.
type NewSchool struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	State         string  `json:"state" validate:"required,wilaya"`
	City          string  `json:"city" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	LicenseNumber string  `json:"license_number" validate:"required"`
	PriceCode     float64 `json:"price_code" validate:"gte=0"`
	PriceParking  float64 `json:"price_parking" validate:"gte=0"`
	PriceRoad     float64 `json:"price_road" validate:"gte=0"`
	ManagerID     string  `json:"manager_id" validate:"required"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.State = core.CleanString(ns.State)
	ns.City = core.CleanString(ns.City)
	return validate.Struct(ns)
}

type QueryFilter struct {
	State     string `query:"state"`
	ManagerID string `query:"manager_id"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.State == "" && qf.ManagerID == ""
}

func (qf *QueryFilter) Clean() {
	qf.State = core.CleanString(qf.State)
	qf.ManagerID = core.CleanString(qf.ManagerID)
}
