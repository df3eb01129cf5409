package car

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/school"
)

var (
	ErrNotFound      = errors.New("Car not found")
	ErrInvalidSchool = errors.New("Invalid driving_school_id")
)

type (
	Repository interface {
		CreateCar(ctx context.Context, c Car) (Car, error)
		GetCarByID(ctx context.Context, id string) (Car, error)
		// FilterCars applies AND on available QueryFilter fields.
		FilterCars(ctx context.Context, filter QueryFilter) ([]Car, error)
		UpdateCarStatus(ctx context.Context, id string, status Status) (Car, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, nc NewCar) (Car, error)
		Filter(ctx context.Context, filter QueryFilter) ([]Car, error)
		SetStatus(ctx context.Context, id string, status Status) (Car, error)
	}

	service struct {
		repo    Repository
		schools school.Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, schools school.Repository) ServiceInterface {
	return &service{repo: repo, schools: schools}
}

func (svc *service) Create(ctx context.Context, nc NewCar) (Car, error) {
	if _, err := svc.schools.GetSchoolByID(ctx, nc.DrivingSchoolID); err != nil {
		return Car{}, ErrInvalidSchool
	}
	c := Car{
		ID:              uuid.NewString(),
		Make:            nc.Make,
		Model:           nc.Model,
		Year:            nc.Year,
		LicensePlate:    nc.LicensePlate,
		Color:           nc.Color,
		DrivingSchoolID: nc.DrivingSchoolID,
		Status:          Status(nc.Status),
		CreatedAt:       time.Now().UTC(),
	}
	return svc.repo.CreateCar(ctx, c)
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter) ([]Car, error) {
	return svc.repo.FilterCars(ctx, filter)
}

func (svc *service) SetStatus(ctx context.Context, id string, status Status) (Car, error) {
	return svc.repo.UpdateCarStatus(ctx, id, status)
}
