package car

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yacinedz/siyaqa/core"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in_use"
	StatusMaintenance Status = "maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance:
		return true
	}
	return false
}

// Car is a vehicle in a driving school's fleet.
type Car struct {
	ID              string    `json:"id"`
	Make            string    `json:"make"`
	Model           string    `json:"model"`
	Year            int       `json:"year"`
	LicensePlate    string    `json:"license_plate"`
	Color           string    `json:"color"`
	DrivingSchoolID string    `json:"driving_school_id"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"` // UTC
}

// NewCar contains information needed to register a vehicle.
type NewCar struct {
	Make            string `json:"make" validate:"required"`
	Model           string `json:"model" validate:"required"`
	Year            int    `json:"year" validate:"required,gte=1980"`
	LicensePlate    string `json:"license_plate" validate:"required"`
	Color           string `json:"color"`
	DrivingSchoolID string `json:"driving_school_id" validate:"required"`
	Status          string `json:"status" validate:"omitempty,oneof=available in_use maintenance"`
}

func (nc *NewCar) Validate(validate *validator.Validate) error {
	nc.Make = core.CleanString(nc.Make)
	nc.Model = core.CleanString(nc.Model)
	nc.LicensePlate = core.CleanString(nc.LicensePlate)
	nc.DrivingSchoolID = core.CleanString(nc.DrivingSchoolID)
	if nc.Status == "" {
		nc.Status = string(StatusAvailable)
	}
	return validate.Struct(nc)
}

type QueryFilter struct {
	DrivingSchoolID string `query:"driving_school_id"`
	Status          string `query:"status"`
}
